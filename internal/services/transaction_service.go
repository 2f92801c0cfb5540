package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"splitly/internal/models/db_models"
	"splitly/internal/models/response_models"
	"splitly/internal/repositories"
	"splitly/pkg/utils"
)

const historyLimit = 50

type TransactionServiceInterface interface {
	Revenue(ctx context.Context, period string) (*response_models.RevenueStats, error)
	History(ctx context.Context, userID uuid.UUID) ([]db_models.Transaction, error)
}

type TransactionService struct {
	txnRepo repositories.TransactionRepository
}

func NewTransactionService(txnRepo repositories.TransactionRepository) TransactionServiceInterface {
	return &TransactionService{txnRepo: txnRepo}
}

// Revenue sums founder fees per currency for the current month or year.
func (s *TransactionService) Revenue(ctx context.Context, period string) (*response_models.RevenueStats, error) {
	now := time.Now()
	since := utils.StartOfMonth(now)
	if period == "year" {
		since = utils.StartOfYear(now)
	}

	rows, err := s.txnRepo.RevenueByCurrency(ctx, since)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	stats := &response_models.RevenueStats{ByCurrency: rows}
	for _, row := range rows {
		stats.TotalRevenue += row.TotalRevenue
		stats.TransactionCount += row.TransactionCount
	}
	return stats, nil
}

func (s *TransactionService) History(ctx context.Context, userID uuid.UUID) ([]db_models.Transaction, error) {
	txns, err := s.txnRepo.HistoryByUser(ctx, userID, historyLimit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return txns, nil
}
