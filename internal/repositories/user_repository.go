package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"splitly/internal/models/db_models"
)

type UserRepository interface {
	Insert(ctx context.Context, user *db_models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.User, error)
	FindByEmail(ctx context.Context, email string) (*db_models.User, error)
	Save(ctx context.Context, user *db_models.User) error

	// TryIncrementGroupsCreated bumps usage_groups_created only while it is
	// below max, as a single conditional UPDATE. Reports whether a row
	// changed, so concurrent callers cannot race past the cap.
	TryIncrementGroupsCreated(ctx context.Context, id uuid.UUID, max int64) (bool, error)
	DecrementGroupsCreated(ctx context.Context, id uuid.UUID) error

	IncrementMembersAdded(ctx context.Context, id uuid.UUID) error
	IncrementTotalExpenses(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Insert(ctx context.Context, user *db_models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.User, error) {
	var user db_models.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*db_models.User, error) {
	var user db_models.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Save(ctx context.Context, user *db_models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) TryIncrementGroupsCreated(ctx context.Context, id uuid.UUID, max int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("id = ? AND usage_groups_created < ?", id, max).
		UpdateColumn("usage_groups_created", gorm.Expr("usage_groups_created + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *userRepository) DecrementGroupsCreated(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("id = ? AND usage_groups_created > 0", id).
		UpdateColumn("usage_groups_created", gorm.Expr("usage_groups_created - 1")).Error
}

func (r *userRepository) IncrementMembersAdded(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("id = ?", id).
		UpdateColumn("usage_members_added", gorm.Expr("usage_members_added + 1")).Error
}

func (r *userRepository) IncrementTotalExpenses(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("id = ?", id).
		UpdateColumn("usage_total_expenses", gorm.Expr("usage_total_expenses + 1")).Error
}
