package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"splitly/internal/models/db_models"
	"splitly/pkg/utils"
)

// BalanceDelta is one group-balance adjustment derived from an expense
// write; a batch of them lands in the same transaction as the expense.
type BalanceDelta struct {
	UserID uuid.UUID
	Delta  float64
}

type ExpenseRepository interface {
	// Insert creates the expense and applies the group-balance deltas in
	// one transaction; a failed balance write rolls back the expense too.
	Insert(ctx context.Context, expense *db_models.Expense, deltas []BalanceDelta) error

	// Update persists the expense's scalar fields. A non-nil participants
	// slice replaces the child rows; deltas adjust group balances. All of
	// it commits together.
	Update(ctx context.Context, expense *db_models.Expense, participants []db_models.ExpenseParticipant, deltas []BalanceDelta) error

	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Expense, error)
	ListByPayer(ctx context.Context, payerID uuid.UUID) ([]db_models.Expense, error)
	Delete(ctx context.Context, id, payerID uuid.UUID) error

	// SettleParticipant marks one participant paid, writes the fee ledger
	// row and refreshes the expense settled flag in a single database
	// transaction; either all of it lands or none of it does.
	SettleParticipant(ctx context.Context, expenseID, participantID uuid.UUID, settledAt int64, feeTxn *db_models.Transaction) (*db_models.Expense, error)
}

type expenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

func applyBalanceDeltas(tx *gorm.DB, groupID uuid.UUID, deltas []BalanceDelta) error {
	for _, d := range deltas {
		res := tx.Model(&db_models.GroupBalance{}).
			Where("group_id = ? AND user_id = ?", groupID, d.UserID).
			UpdateColumn("balance", gorm.Expr("balance + ?", d.Delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			if err := tx.Create(&db_models.GroupBalance{
				GroupID: groupID,
				UserID:  d.UserID,
				Balance: d.Delta,
			}).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *expenseRepository) Insert(ctx context.Context, expense *db_models.Expense, deltas []BalanceDelta) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(expense).Error; err != nil {
			return err
		}
		if expense.GroupID == nil || len(deltas) == 0 {
			return nil
		}
		return applyBalanceDeltas(tx, *expense.GroupID, deltas)
	})
}

func (r *expenseRepository) Update(ctx context.Context, expense *db_models.Expense, participants []db_models.ExpenseParticipant, deltas []BalanceDelta) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&db_models.Expense{BaseModel: db_models.BaseModel{ID: expense.ID}}).
			Updates(map[string]interface{}{
				"description": expense.Description,
				"amount":      expense.Amount,
				"currency":    expense.Currency,
				"category":    expense.Category,
				"date":        expense.Date,
				"split_type":  expense.SplitType,
			}).Error; err != nil {
			return err
		}

		if participants != nil {
			if err := tx.Where("expense_id = ?", expense.ID).
				Delete(&db_models.ExpenseParticipant{}).Error; err != nil {
				return err
			}
			for i := range participants {
				participants[i].ExpenseID = expense.ID
			}
			if len(participants) > 0 {
				if err := tx.Create(&participants).Error; err != nil {
					return err
				}
			}
			expense.Participants = participants
		}

		if expense.GroupID == nil || len(deltas) == 0 {
			return nil
		}
		return applyBalanceDeltas(tx, *expense.GroupID, deltas)
	})
}

func (r *expenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Expense, error) {
	var expense db_models.Expense
	err := r.db.WithContext(ctx).
		Preload("Participants").
		First(&expense, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &expense, nil
}

func (r *expenseRepository) ListByPayer(ctx context.Context, payerID uuid.UUID) ([]db_models.Expense, error) {
	var expenses []db_models.Expense
	err := r.db.WithContext(ctx).
		Preload("Participants").
		Where("paid_by = ?", payerID).
		Order("date DESC, created_at DESC").
		Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepository) Delete(ctx context.Context, id, payerID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND paid_by = ?", id, payerID).
		Delete(&db_models.Expense{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrExpenseNotFound
	}
	return nil
}

func (r *expenseRepository) SettleParticipant(ctx context.Context, expenseID, participantID uuid.UUID, settledAt int64, feeTxn *db_models.Transaction) (*db_models.Expense, error) {
	var expense db_models.Expense

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Participants").
			First(&expense, "id = ?", expenseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrExpenseNotFound
			}
			return err
		}

		var participant *db_models.ExpenseParticipant
		for i := range expense.Participants {
			if expense.Participants[i].ID == participantID {
				participant = &expense.Participants[i]
				break
			}
		}
		if participant == nil {
			return utils.ErrParticipantNotFound
		}
		if participant.Paid {
			return utils.ErrAlreadySettled
		}

		// Conditional flip before the fee insert. A concurrent settle of
		// the same participant blocks on the row lock, then matches zero
		// rows once the winner commits, so only one fee row can land.
		res := tx.Model(&db_models.ExpenseParticipant{}).
			Where("id = ? AND paid = ?", participantID, false).
			Updates(map[string]interface{}{
				"paid":       true,
				"settled_at": settledAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return utils.ErrAlreadySettled
		}
		participant.Paid = true
		participant.SettledAt = &settledAt

		if err := tx.Create(feeTxn).Error; err != nil {
			return fmt.Errorf("%w: %v", utils.ErrFeeProcessingFailed, err)
		}

		allPaid := true
		for i := range expense.Participants {
			if !expense.Participants[i].Paid {
				allPaid = false
				break
			}
		}
		expense.IsSettled = allPaid
		return tx.Model(&db_models.Expense{BaseModel: db_models.BaseModel{ID: expense.ID}}).
			Update("is_settled", allPaid).Error
	})
	if err != nil {
		return nil, err
	}
	return &expense, nil
}
