package plans_fx

import (
	"go.uber.org/fx"

	"splitly/internal/plans"
	"splitly/internal/repositories"
	"splitly/internal/services"
)

var Module = fx.Provide(
	provideCatalog, provideLimitGate)

func provideCatalog() *plans.Catalog {
	return plans.NewCatalog()
}

func provideLimitGate(catalog *plans.Catalog, userRepo repositories.UserRepository) *services.LimitGate {
	return services.NewLimitGate(catalog, userRepo)
}
