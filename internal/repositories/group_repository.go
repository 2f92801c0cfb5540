package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"splitly/internal/models/db_models"
	"splitly/pkg/utils"
)

type GroupRepository interface {
	Insert(ctx context.Context, group *db_models.Group) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Group, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.Group, error)
	Save(ctx context.Context, group *db_models.Group) error
	Delete(ctx context.Context, id uuid.UUID) error

	// AddMember inserts a member while holding the group row, so the
	// member cap and duplicate-email checks cannot race each other.
	AddMember(ctx context.Context, member *db_models.GroupMember, maxMembers int64) error
	RemoveMember(ctx context.Context, groupID, memberID uuid.UUID) error
	IsActiveMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error)
}

type groupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Insert(ctx context.Context, group *db_models.Group) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *groupRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Group, error) {
	var group db_models.Group
	err := r.db.WithContext(ctx).
		Preload("Members").
		Preload("Balances").
		First(&group, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.Group, error) {
	var groups []db_models.Group
	err := r.db.WithContext(ctx).
		Preload("Members").
		Joins("LEFT JOIN group_members gm ON gm.group_id = groups.id AND gm.deleted_at IS NULL").
		Where("groups.created_by = ? OR (gm.user_id = ? AND gm.is_active)", userID, userID).
		Distinct("groups.*").
		Order("groups.created_at DESC").
		Find(&groups).Error
	return groups, err
}

func (r *groupRepository) Save(ctx context.Context, group *db_models.Group) error {
	return r.db.WithContext(ctx).Save(group).Error
}

func (r *groupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&db_models.Group{}, "id = ?", id).Error
}

func (r *groupRepository) AddMember(ctx context.Context, member *db_models.GroupMember, maxMembers int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var group db_models.Group
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&group, "id = ?", member.GroupID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrGroupNotFound
			}
			return err
		}

		var count int64
		if err := tx.Model(&db_models.GroupMember{}).
			Where("group_id = ?", member.GroupID).
			Count(&count).Error; err != nil {
			return err
		}
		if count >= maxMembers {
			return utils.ErrMemberLimitExceeded
		}

		var dup int64
		if err := tx.Model(&db_models.GroupMember{}).
			Where("group_id = ? AND email = ?", member.GroupID, member.Email).
			Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return utils.ErrDuplicateMember
		}

		if err := tx.Create(member).Error; err != nil {
			return err
		}

		emails := appendUniqueEmail(group.InviteEmails, member.Email)
		if len(emails) == len(group.InviteEmails) {
			return nil
		}
		group.InviteEmails = emails
		return tx.Model(&group).Update("invite_emails", group.InviteEmails).Error
	})
}

// appendUniqueEmail keeps the invite list free of duplicates when a member
// is removed and re-added.
func appendUniqueEmail(emails pq.StringArray, email string) pq.StringArray {
	for _, e := range emails {
		if e == email {
			return emails
		}
	}
	return append(emails, email)
}

func (r *groupRepository) RemoveMember(ctx context.Context, groupID, memberID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("group_id = ? AND (id = ? OR user_id = ?)", groupID, memberID, memberID).
		Delete(&db_models.GroupMember{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrMemberNotFound
	}
	return nil
}

func (r *groupRepository) IsActiveMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.GroupMember{}).
		Where("group_id = ? AND user_id = ? AND is_active", groupID, userID).
		Count(&count).Error
	return count > 0, err
}

