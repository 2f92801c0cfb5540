package transaction_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"splitly/internal/repositories"
	"splitly/internal/services"
)

var Module = fx.Provide(
	provideTransactionService, provideTransactionRepo)

func provideTransactionRepo(db *gorm.DB) repositories.TransactionRepository {
	return repositories.NewTransactionRepository(db)
}

func provideTransactionService(txnRepo repositories.TransactionRepository) services.TransactionServiceInterface {
	return services.NewTransactionService(txnRepo)
}
