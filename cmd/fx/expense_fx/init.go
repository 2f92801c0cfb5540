package expense_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"splitly/internal/repositories"
	"splitly/internal/services"
)

var Module = fx.Provide(
	provideExpenseService, provideExpenseRepo)

func provideExpenseRepo(db *gorm.DB) repositories.ExpenseRepository {
	return repositories.NewExpenseRepository(db)
}

func provideExpenseService(
	expenseRepo repositories.ExpenseRepository,
	groupRepo repositories.GroupRepository,
	userRepo repositories.UserRepository,
) services.ExpenseServiceInterface {
	return services.NewExpenseService(expenseRepo, groupRepo, userRepo)
}
