package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"splitly/internal/models/db_models"
	"splitly/internal/models/response_models"
	"splitly/internal/repositories"
	"splitly/pkg/utils"
)

// FounderFeeRate is the fixed cut taken on every settlement.
const FounderFeeRate = 0.015

type SettlementServiceInterface interface {
	Settle(ctx context.Context, expenseID, participantID, actorID uuid.UUID, requestedAmount *float64) (*response_models.SettleExpenseResponse, error)
}

type SettlementService struct {
	expenseRepo repositories.ExpenseRepository
}

func NewSettlementService(expenseRepo repositories.ExpenseRepository) SettlementServiceInterface {
	return &SettlementService{expenseRepo: expenseRepo}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// BuildSettlement validates a settle request against the expense and
// produces the fee ledger row plus its breakdown. The settlement amount is
// the participant's share; a requested amount, when present, must match it
// within a cent. No state is mutated here.
func BuildSettlement(expense *db_models.Expense, participantID, actorID uuid.UUID, requestedAmount *float64) (*db_models.Transaction, response_models.FeeBreakdown, error) {
	var participant *db_models.ExpenseParticipant
	for i := range expense.Participants {
		if expense.Participants[i].ID == participantID {
			participant = &expense.Participants[i]
			break
		}
	}
	if participant == nil {
		return nil, response_models.FeeBreakdown{}, utils.ErrParticipantNotFound
	}
	if participant.Paid {
		return nil, response_models.FeeBreakdown{}, utils.ErrAlreadySettled
	}

	amount := participant.Share
	if requestedAmount != nil && math.Abs(*requestedAmount-amount) > 0.01 {
		return nil, response_models.FeeBreakdown{}, utils.ErrSettlementAmountMismatch
	}

	fee := roundCents(amount * FounderFeeRate)
	net := roundCents(amount - fee)

	metadata, err := json.Marshal(map[string]interface{}{
		"expense_id":        expense.ID,
		"payer_id":          actorID,
		"payee_id":          expense.PaidBy,
		"settlement_amount": amount,
		"fee_percentage":    FounderFeeRate * 100,
	})
	if err != nil {
		return nil, response_models.FeeBreakdown{}, err
	}

	txn := &db_models.Transaction{
		Type:        db_models.TxnTypeSettlementFee,
		UserID:      actorID,
		Amount:      amount,
		Currency:    expense.Currency,
		Fee:         fee,
		NetAmount:   net,
		Description: fmt.Sprintf("Settlement fee for expense %s", expense.ID),
		Status:      db_models.TxnStatusCompleted,
		Metadata:    datatypes.JSON(metadata),
	}

	breakdown := response_models.FeeBreakdown{
		SettlementAmount: amount,
		FounderFee:       fee,
		NetToPayee:       net,
		FeePercentage:    "1.5%",
	}
	return txn, breakdown, nil
}

func (s *SettlementService) Settle(ctx context.Context, expenseID, participantID, actorID uuid.UUID, requestedAmount *float64) (*response_models.SettleExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByID(ctx, expenseID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if expense == nil {
		return nil, utils.ErrExpenseNotFound
	}

	feeTxn, breakdown, err := BuildSettlement(expense, participantID, actorID, requestedAmount)
	if err != nil {
		return nil, err
	}

	// The fee write, the paid flag and the settled recompute land in one
	// database transaction inside the repository.
	updated, err := s.expenseRepo.SettleParticipant(ctx, expenseID, participantID, utils.NowUnixSeconds(), feeTxn)
	if err != nil {
		return nil, err
	}

	return &response_models.SettleExpenseResponse{
		Expense:      updated,
		FeeBreakdown: breakdown,
	}, nil
}
