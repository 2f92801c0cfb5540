package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"splitly/internal/repositories"
	"splitly/internal/services"
	mem "splitly/pkg/memcache"
)

var Module = fx.Provide(
	provideAccountService, provideUserRepo)

func provideUserRepo(db *gorm.DB) repositories.UserRepository {
	return repositories.NewUserRepository(db)
}

func provideAccountService(userRepo repositories.UserRepository, mailService services.IMailService, codes mem.CodeStore) services.AccountServiceInterface {
	return services.NewAccountService(userRepo, mailService, codes)
}
