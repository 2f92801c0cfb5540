package services

import (
	"context"
	"log"
	"math"
	"strings"

	"github.com/google/uuid"

	"splitly/internal/models/db_models"
	"splitly/internal/models/request_models"
	"splitly/internal/models/response_models"
	"splitly/internal/repositories"
	"splitly/pkg/utils"
)

// ShareSumTolerance bounds the rounding drift allowed between an expense
// amount and the sum of its participant shares.
const ShareSumTolerance = 0.01

type ExpenseServiceInterface interface {
	CreateExpense(ctx context.Context, userID uuid.UUID, req request_models.CreateExpenseRequest) (*db_models.Expense, error)
	UpdateExpense(ctx context.Context, userID, expenseID uuid.UUID, req request_models.UpdateExpenseRequest) (*db_models.Expense, error)
	ListExpenses(ctx context.Context, userID uuid.UUID) (*response_models.ExpenseListResponse, error)
	GetExpense(ctx context.Context, userID, expenseID uuid.UUID) (*db_models.Expense, error)
	DeleteExpense(ctx context.Context, userID, expenseID uuid.UUID) error
}

type ExpenseService struct {
	expenseRepo repositories.ExpenseRepository
	groupRepo   repositories.GroupRepository
	userRepo    repositories.UserRepository
}

func NewExpenseService(
	expenseRepo repositories.ExpenseRepository,
	groupRepo repositories.GroupRepository,
	userRepo repositories.UserRepository,
) ExpenseServiceInterface {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		groupRepo:   groupRepo,
		userRepo:    userRepo,
	}
}

// EqualSplit divides amount into n shares that sum back to amount exactly,
// with the remainder cents going to the first share.
func EqualSplit(amount float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	cents := int64(math.Round(amount * 100))
	base := cents / int64(n)
	remainder := cents % int64(n)

	shares := make([]float64, n)
	for i := range shares {
		shares[i] = float64(base) / 100
	}
	shares[0] += float64(remainder) / 100
	return shares
}

// ValidateShares enforces the write-time invariant: when participants
// exist, their shares must add up to the amount within the tolerance.
func ValidateShares(amount float64, shares []float64) error {
	if len(shares) == 0 {
		return nil
	}
	var sum float64
	for _, s := range shares {
		if s < 0 {
			return utils.ErrInvalidShareSum
		}
		sum += s
	}
	if math.Abs(sum-amount) > ShareSumTolerance {
		return utils.ErrInvalidShareSum
	}
	return nil
}

func buildParticipants(amount float64, splitType db_models.SplitType, inputs []request_models.ParticipantInput) ([]db_models.ExpenseParticipant, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	if splitType == "" {
		splitType = db_models.SplitEqual
	}

	shares := make([]float64, len(inputs))
	switch splitType {
	case db_models.SplitEqual:
		copy(shares, EqualSplit(amount, len(inputs)))
	case db_models.SplitPercentage:
		for i, p := range inputs {
			shares[i] = math.Round(amount*p.Share) / 100
		}
	default:
		for i, p := range inputs {
			shares[i] = p.Share
		}
	}

	if err := ValidateShares(amount, shares); err != nil {
		return nil, err
	}

	participants := make([]db_models.ExpenseParticipant, len(inputs))
	for i, p := range inputs {
		userID, err := uuid.Parse(p.UserID)
		if err != nil {
			return nil, utils.ErrInvalidShareSum
		}
		participants[i] = db_models.ExpenseParticipant{
			UserID: userID,
			Share:  shares[i],
		}
	}
	return participants, nil
}

// balanceDeltas derives the group-balance adjustments for a set of
// shares: each non-payer participant owes their share, the payer is owed
// the same. sign -1 reverses a previously applied set.
func balanceDeltas(payerID uuid.UUID, participants []db_models.ExpenseParticipant, sign float64) []repositories.BalanceDelta {
	var deltas []repositories.BalanceDelta
	for _, p := range participants {
		if p.UserID == payerID {
			continue
		}
		deltas = append(deltas,
			repositories.BalanceDelta{UserID: p.UserID, Delta: -sign * p.Share},
			repositories.BalanceDelta{UserID: payerID, Delta: sign * p.Share},
		)
	}
	return deltas
}

func (s *ExpenseService) CreateExpense(ctx context.Context, userID uuid.UUID, req request_models.CreateExpenseRequest) (*db_models.Expense, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" || len(description) > 100 {
		return nil, utils.ErrInvalidDescription
	}
	if req.Amount <= 0 {
		return nil, utils.ErrInvalidAmount
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrAccountNotFound
	}

	category := db_models.ExpenseCategory(req.Category)
	if !db_models.ValidCategory(category) {
		category = db_models.CategoryOther
	}

	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = user.Currency
	}

	date := req.Date
	if date <= 0 {
		date = utils.NowUnixSeconds()
	}

	var groupID *uuid.UUID
	if trimmed := strings.TrimSpace(req.GroupID); trimmed != "" {
		id, err := uuid.Parse(trimmed)
		if err != nil {
			return nil, utils.ErrGroupNotFound
		}
		group, err := s.groupRepo.FindByID(ctx, id)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		if group == nil {
			return nil, utils.ErrGroupNotFound
		}
		if group.CreatedBy != userID {
			active, err := s.groupRepo.IsActiveMember(ctx, id, userID)
			if err != nil {
				return nil, utils.ErrDatabaseError
			}
			if !active {
				return nil, utils.ErrNotAuthorizedForGroup
			}
		}
		groupID = &id
	}

	splitType := db_models.SplitType(req.SplitType)
	if splitType == "" {
		splitType = db_models.SplitEqual
	}

	participants, err := buildParticipants(req.Amount, splitType, req.Participants)
	if err != nil {
		return nil, err
	}

	expense := &db_models.Expense{
		Description:  description,
		Amount:       req.Amount,
		Currency:     currency,
		Category:     category,
		Date:         date,
		PaidBy:       userID,
		GroupID:      groupID,
		SplitType:    splitType,
		Participants: participants,
	}

	var deltas []repositories.BalanceDelta
	if groupID != nil {
		deltas = balanceDeltas(userID, participants, 1)
	}

	// Expense and balance rows commit together.
	if err := s.expenseRepo.Insert(ctx, expense, deltas); err != nil {
		return nil, utils.ErrDatabaseError
	}

	if err := s.userRepo.IncrementTotalExpenses(ctx, userID); err != nil {
		log.Printf("Failed to bump expense counter for %s: %v", userID, err)
	}

	return expense, nil
}

// UpdateExpense re-validates everything an edit can break: the share sum
// must still reconcile with the amount, and shares cannot be reshaped once
// any participant has settled. Group balances are re-derived by reversing
// the old shares and applying the new ones in the same transaction.
func (s *ExpenseService) UpdateExpense(ctx context.Context, userID, expenseID uuid.UUID, req request_models.UpdateExpenseRequest) (*db_models.Expense, error) {
	expense, err := s.expenseRepo.FindByID(ctx, expenseID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if expense == nil || expense.PaidBy != userID {
		return nil, utils.ErrExpenseNotFound
	}

	if req.Description != "" {
		description := strings.TrimSpace(req.Description)
		if description == "" || len(description) > 100 {
			return nil, utils.ErrInvalidDescription
		}
		expense.Description = description
	}
	if req.Category != "" {
		category := db_models.ExpenseCategory(req.Category)
		if !db_models.ValidCategory(category) {
			category = db_models.CategoryOther
		}
		expense.Category = category
	}
	if req.Currency != "" {
		expense.Currency = strings.ToUpper(req.Currency)
	}
	if req.Date > 0 {
		expense.Date = req.Date
	}

	amountChanged := req.Amount != nil && *req.Amount != expense.Amount
	reshaping := amountChanged || len(req.Participants) > 0
	if reshaping {
		for _, p := range expense.Participants {
			if p.Paid {
				return nil, utils.ErrAlreadySettled
			}
		}
	}

	if req.Amount != nil {
		if *req.Amount <= 0 {
			return nil, utils.ErrInvalidAmount
		}
		expense.Amount = *req.Amount
	}

	oldParticipants := expense.Participants
	var newParticipants []db_models.ExpenseParticipant
	if len(req.Participants) > 0 {
		splitType := db_models.SplitType(req.SplitType)
		if splitType == "" {
			splitType = expense.SplitType
		}
		newParticipants, err = buildParticipants(expense.Amount, splitType, req.Participants)
		if err != nil {
			return nil, err
		}
		expense.SplitType = splitType
	} else if amountChanged && len(oldParticipants) > 0 {
		shares := make([]float64, len(oldParticipants))
		for i, p := range oldParticipants {
			shares[i] = p.Share
		}
		if err := ValidateShares(expense.Amount, shares); err != nil {
			return nil, err
		}
	}

	var deltas []repositories.BalanceDelta
	if expense.GroupID != nil && newParticipants != nil {
		deltas = append(balanceDeltas(expense.PaidBy, oldParticipants, -1),
			balanceDeltas(expense.PaidBy, newParticipants, 1)...)
	}

	if err := s.expenseRepo.Update(ctx, expense, newParticipants, deltas); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return expense, nil
}

func (s *ExpenseService) ListExpenses(ctx context.Context, userID uuid.UUID) (*response_models.ExpenseListResponse, error) {
	expenses, err := s.expenseRepo.ListByPayer(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	summary := response_models.ExpenseSummary{
		TotalCount:      len(expenses),
		CategorySummary: make(map[string]float64),
	}
	for _, e := range expenses {
		summary.TotalExpenses += e.Amount
		summary.CategorySummary[string(e.Category)] += e.Amount
	}

	return &response_models.ExpenseListResponse{
		Expenses: expenses,
		Summary:  summary,
	}, nil
}

func (s *ExpenseService) GetExpense(ctx context.Context, userID, expenseID uuid.UUID) (*db_models.Expense, error) {
	expense, err := s.expenseRepo.FindByID(ctx, expenseID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if expense == nil || expense.PaidBy != userID {
		return nil, utils.ErrExpenseNotFound
	}
	return expense, nil
}

func (s *ExpenseService) DeleteExpense(ctx context.Context, userID, expenseID uuid.UUID) error {
	return s.expenseRepo.Delete(ctx, expenseID, userID)
}
