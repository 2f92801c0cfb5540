package group_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"splitly/internal/repositories"
	"splitly/internal/services"
)

var Module = fx.Provide(
	provideGroupService, provideGroupRepo)

func provideGroupRepo(db *gorm.DB) repositories.GroupRepository {
	return repositories.NewGroupRepository(db)
}

func provideGroupService(
	groupRepo repositories.GroupRepository,
	userRepo repositories.UserRepository,
	gate *services.LimitGate,
	mailService services.IMailService,
) services.GroupServiceInterface {
	return services.NewGroupService(groupRepo, userRepo, gate, mailService)
}
