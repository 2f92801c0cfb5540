package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"splitly/internal/models/db_models"
)

type RevenueRow struct {
	Currency         string  `gorm:"column:currency" json:"currency"`
	TotalRevenue     float64 `gorm:"column:total_revenue" json:"totalRevenue"`
	TransactionCount int64   `gorm:"column:transaction_count" json:"transactionCount"`
}

type TransactionRepository interface {
	Insert(ctx context.Context, txn *db_models.Transaction) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status db_models.TransactionStatus) error
	HistoryByUser(ctx context.Context, userID uuid.UUID, limit int) ([]db_models.Transaction, error)

	// RevenueByCurrency sums fees of completed subscription and
	// settlement-fee transactions created since the given instant,
	// grouped by currency.
	RevenueByCurrency(ctx context.Context, since time.Time) ([]RevenueRow, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Insert(ctx context.Context, txn *db_models.Transaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *transactionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status db_models.TransactionStatus) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Transaction{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *transactionRepository) HistoryByUser(ctx context.Context, userID uuid.UUID, limit int) ([]db_models.Transaction, error) {
	var txns []db_models.Transaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&txns).Error
	return txns, err
}

func (r *transactionRepository) RevenueByCurrency(ctx context.Context, since time.Time) ([]RevenueRow, error) {
	var rows []RevenueRow
	err := r.db.WithContext(ctx).
		Model(&db_models.Transaction{}).
		Select("currency, SUM(fee) AS total_revenue, COUNT(*) AS transaction_count").
		Where("created_at >= ? AND status = ? AND type IN ?",
			since.Unix(),
			db_models.TxnStatusCompleted,
			[]db_models.TransactionType{db_models.TxnTypeSubscription, db_models.TxnTypeSettlementFee}).
		Group("currency").
		Find(&rows).Error
	return rows, err
}
