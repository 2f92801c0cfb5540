package payment_fx

import (
	"go.uber.org/fx"

	"splitly/internal/repositories"
	"splitly/internal/services"
)

var Module = fx.Provide(
	providePaymentService)

func providePaymentService(txnRepo repositories.TransactionRepository, userRepo repositories.UserRepository) services.PaymentServiceInterface {
	return services.NewPaymentService(txnRepo, userRepo)
}
