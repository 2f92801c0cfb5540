package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"splitly/internal/models/db_models"
	"splitly/internal/models/request_models"
	"splitly/internal/models/response_models"
	"splitly/internal/repositories"
	"splitly/pkg/memcache"
	"splitly/pkg/utils"
)

// TrialPeriod is granted to every new account at signup.
const TrialPeriod = 14 * 24 * time.Hour

type AccountServiceInterface interface {
	CreateAccount(ctx context.Context, req request_models.SignUpRequest) error
	Login(ctx context.Context, req request_models.LoginRequest) (*response_models.LoginResponse, error)
	VerifyEmail(ctx context.Context, req request_models.VerifyEmailRequest) error
	ResendVerification(ctx context.Context, email string) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*db_models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req request_models.UpdateProfileRequest) (*db_models.User, error)
}

type AccountService struct {
	userRepo    repositories.UserRepository
	mailService IMailService
	codes       memcache.CodeStore
}

func NewAccountService(userRepo repositories.UserRepository, mailService IMailService, codes memcache.CodeStore) AccountServiceInterface {
	return &AccountService{
		userRepo:    userRepo,
		mailService: mailService,
		codes:       codes,
	}
}

func verificationKey(email, code string) string {
	return fmt.Sprintf("verify:%s:%s", email, code)
}

func (a *AccountService) CreateAccount(ctx context.Context, req request_models.SignUpRequest) error {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existing != nil {
		return utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return utils.ErrDatabaseError
	}

	country := db_models.Country(req.Country)
	if country == "" {
		country = db_models.CountryUAE
	}

	user := &db_models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hashedPassword,
		Country:      country,
		Role:         "user",
		Subscription: db_models.Subscription{
			Plan:             "basic",
			Status:           db_models.SubStatusTrialing,
			CurrentPeriodEnd: time.Now().Add(TrialPeriod).Unix(),
		},
	}

	if err := a.userRepo.Insert(ctx, user); err != nil {
		return utils.ErrDatabaseError
	}

	return a.sendVerificationCode(email)
}

func (a *AccountService) sendVerificationCode(email string) error {
	code, err := utils.GenerateOtpCode(6)
	if err != nil {
		return utils.ErrDatabaseError
	}
	a.codes.Set(verificationKey(email, code), email, 24*time.Hour)

	if err := a.mailService.SendVerificationCode(email, code); err != nil {
		// Mail failures should not strand the signup; the code can be resent.
		log.Printf("Failed to send verification code to %s: %v", email, err)
	}
	return nil
}

func (a *AccountService) Login(ctx context.Context, req request_models.LoginRequest) (*response_models.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrAccountNotFound
	}

	if err := utils.ComparePasswords(user.PasswordHash, req.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(user.ID, user.Role)
	if err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	return &response_models.LoginResponse{
		Token:      token,
		IsVerified: user.IsVerified,
		Plan:       user.Subscription.Plan,
	}, nil
}

func (a *AccountService) VerifyEmail(ctx context.Context, req request_models.VerifyEmailRequest) error {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil {
		return utils.ErrAccountNotFound
	}

	if a.codes.Consume(verificationKey(email, req.VerificationCode)) == "" {
		return utils.ErrInvalidOtpToken
	}

	user.IsVerified = true
	if err := a.userRepo.Save(ctx, user); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (a *AccountService) GetProfile(ctx context.Context, userID uuid.UUID) (*db_models.User, error) {
	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrAccountNotFound
	}
	return user, nil
}

func (a *AccountService) UpdateProfile(ctx context.Context, userID uuid.UUID, req request_models.UpdateProfileRequest) (*db_models.User, error) {
	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrAccountNotFound
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		user.Name = name
	}
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}
	if req.Currency != "" {
		user.Currency = strings.ToUpper(req.Currency)
	}
	if req.Country != "" {
		user.Country = db_models.Country(req.Country)
	}

	if err := a.userRepo.Save(ctx, user); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return user, nil
}

func (a *AccountService) ResendVerification(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil {
		return utils.ErrAccountNotFound
	}
	if user.IsVerified {
		return utils.ErrAlreadyVerified
	}
	return a.sendVerificationCode(email)
}
