package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"splitly/internal/models/db_models"
	"splitly/internal/models/request_models"
	"splitly/internal/repositories"
	"splitly/pkg/utils"
)

type GroupServiceInterface interface {
	CreateGroup(ctx context.Context, userID uuid.UUID, req request_models.CreateGroupRequest) (*db_models.Group, error)
	ListGroups(ctx context.Context, userID uuid.UUID) ([]db_models.Group, error)
	GetGroup(ctx context.Context, userID, groupID uuid.UUID) (*db_models.Group, error)
	UpdateGroup(ctx context.Context, userID, groupID uuid.UUID, req request_models.UpdateGroupRequest) (*db_models.Group, error)
	DeleteGroup(ctx context.Context, userID, groupID uuid.UUID) error
	AddMember(ctx context.Context, userID, groupID uuid.UUID, req request_models.AddMemberRequest) (*db_models.Group, error)
	RemoveMember(ctx context.Context, userID, groupID, memberID uuid.UUID) (*db_models.Group, error)
}

type GroupService struct {
	groupRepo   repositories.GroupRepository
	userRepo    repositories.UserRepository
	gate        *LimitGate
	mailService IMailService
}

func NewGroupService(groupRepo repositories.GroupRepository, userRepo repositories.UserRepository, gate *LimitGate, mailService IMailService) GroupServiceInterface {
	return &GroupService{
		groupRepo:   groupRepo,
		userRepo:    userRepo,
		gate:        gate,
		mailService: mailService,
	}
}

func defaultCurrency(country db_models.Country) string {
	if country == db_models.CountryIndia {
		return "INR"
	}
	return "AED"
}

func isGroupParticipant(group *db_models.Group, userID uuid.UUID) bool {
	if group.CreatedBy == userID {
		return true
	}
	for _, m := range group.Members {
		if m.UserID != nil && *m.UserID == userID && m.IsActive {
			return true
		}
	}
	return false
}

func (s *GroupService) CreateGroup(ctx context.Context, userID uuid.UUID, req request_models.CreateGroupRequest) (*db_models.Group, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrAccountNotFound
	}

	// Claims a group slot before any write happens.
	if err := s.gate.AuthorizeGroupCreate(ctx, user); err != nil {
		return nil, err
	}

	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = defaultCurrency(user.Country)
	}

	creatorID := user.ID
	group := &db_models.Group{
		Name:         strings.TrimSpace(req.Name),
		Description:  strings.TrimSpace(req.Description),
		Currency:     currency,
		CreatedBy:    creatorID,
		InviteEmails: []string{user.Email},
		Members: []db_models.GroupMember{{
			UserID:   &creatorID,
			Name:     user.Name,
			Email:    user.Email,
			JoinedAt: utils.NowUnixSeconds(),
			IsActive: true,
		}},
	}

	if err := s.groupRepo.Insert(ctx, group); err != nil {
		if relErr := s.gate.ReleaseGroupSlot(ctx, userID); relErr != nil {
			log.Printf("Failed to release group slot for %s: %v", userID, relErr)
		}
		return nil, utils.ErrDatabaseError
	}

	return group, nil
}

func (s *GroupService) ListGroups(ctx context.Context, userID uuid.UUID) ([]db_models.Group, error) {
	groups, err := s.groupRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return groups, nil
}

func (s *GroupService) GetGroup(ctx context.Context, userID, groupID uuid.UUID) (*db_models.Group, error) {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if group == nil || !isGroupParticipant(group, userID) {
		return nil, utils.ErrGroupNotFound
	}
	return group, nil
}

func (s *GroupService) UpdateGroup(ctx context.Context, userID, groupID uuid.UUID, req request_models.UpdateGroupRequest) (*db_models.Group, error) {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if group == nil {
		return nil, utils.ErrGroupNotFound
	}
	if group.CreatedBy != userID {
		return nil, utils.ErrNotGroupAdmin
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		group.Name = name
	}
	if desc := strings.TrimSpace(req.Description); desc != "" {
		group.Description = desc
	}

	if err := s.groupRepo.Save(ctx, group); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return group, nil
}

func (s *GroupService) DeleteGroup(ctx context.Context, userID, groupID uuid.UUID) error {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if group == nil {
		return utils.ErrGroupNotFound
	}
	if group.CreatedBy != userID {
		return utils.ErrNotGroupAdmin
	}

	if err := s.groupRepo.Delete(ctx, groupID); err != nil {
		return utils.ErrDatabaseError
	}
	return s.gate.ReleaseGroupSlot(ctx, group.CreatedBy)
}

func (s *GroupService) AddMember(ctx context.Context, userID, groupID uuid.UUID, req request_models.AddMemberRequest) (*db_models.Group, error) {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if group == nil {
		return nil, utils.ErrGroupNotFound
	}
	if group.CreatedBy != userID {
		return nil, utils.ErrNotGroupAdmin
	}

	owner, err := s.userRepo.FindByID(ctx, group.CreatedBy)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if owner == nil {
		return nil, utils.ErrAccountNotFound
	}

	maxMembers, err := s.gate.AuthorizeMemberAdd(ctx, owner)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	member := &db_models.GroupMember{
		GroupID:  groupID,
		UserID:   nil, // filled in once the invitee registers
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		JoinedAt: utils.NowUnixSeconds(),
		IsActive: true,
	}

	if existing, err := s.userRepo.FindByEmail(ctx, email); err == nil && existing != nil {
		member.UserID = &existing.ID
	}

	if err := s.groupRepo.AddMember(ctx, member, maxMembers); err != nil {
		return nil, err
	}

	if err := s.userRepo.IncrementMembersAdded(ctx, userID); err != nil {
		log.Printf("Failed to bump member counter for %s: %v", userID, err)
	}

	subject := fmt.Sprintf("You were added to %s", group.Name)
	body := fmt.Sprintf("%s added you to the group %q on Splitly.", owner.Name, group.Name)
	if err := s.mailService.SendMailToNotifyUser(email, subject, body); err != nil {
		log.Printf("Failed to notify %s about group %s: %v", email, groupID, err)
	}

	return s.groupRepo.FindByID(ctx, groupID)
}

func (s *GroupService) RemoveMember(ctx context.Context, userID, groupID, memberID uuid.UUID) (*db_models.Group, error) {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if group == nil {
		return nil, utils.ErrGroupNotFound
	}
	if group.CreatedBy != userID {
		return nil, utils.ErrNotGroupAdmin
	}

	if err := s.groupRepo.RemoveMember(ctx, groupID, memberID); err != nil {
		return nil, err
	}
	return s.groupRepo.FindByID(ctx, groupID)
}
