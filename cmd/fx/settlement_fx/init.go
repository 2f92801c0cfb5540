package settlement_fx

import (
	"go.uber.org/fx"

	"splitly/internal/repositories"
	"splitly/internal/services"
)

var Module = fx.Provide(
	provideSettlementService)

func provideSettlementService(expenseRepo repositories.ExpenseRepository) services.SettlementServiceInterface {
	return services.NewSettlementService(expenseRepo)
}
