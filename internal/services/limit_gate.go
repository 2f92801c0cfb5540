package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"splitly/internal/models/db_models"
	"splitly/internal/plans"
	"splitly/internal/repositories"
	"splitly/pkg/utils"
)

// LimitGate decides whether a user's plan and subscription state allow a
// mutation, and owns the usage counters backing those decisions.
type LimitGate struct {
	catalog  *plans.Catalog
	userRepo repositories.UserRepository
}

func NewLimitGate(catalog *plans.Catalog, userRepo repositories.UserRepository) *LimitGate {
	return &LimitGate{catalog: catalog, userRepo: userRepo}
}

// EvaluateSubscription maps subscription state onto an allow/deny decision
// for mutations. Reads are never gated. trialing and active subscriptions
// allow mutations until their period end; past_due and canceled never do.
func EvaluateSubscription(sub db_models.Subscription, now time.Time) error {
	switch sub.Status {
	case db_models.SubStatusTrialing:
		if now.Unix() > sub.CurrentPeriodEnd {
			return utils.ErrTrialExpired
		}
	case db_models.SubStatusActive:
		if now.Unix() > sub.CurrentPeriodEnd {
			return utils.ErrSubscriptionExpired
		}
	case db_models.SubStatusPastDue, db_models.SubStatusCanceled:
		return utils.ErrSubscriptionBlocked
	default:
		return utils.ErrSubscriptionBlocked
	}
	return nil
}

func (g *LimitGate) Limits(plan string) plans.Limits {
	return g.catalog.Limits(plan)
}

// AuthorizeGroupCreate checks subscription state and claims a group slot.
// The claim is a conditional increment, so two concurrent creates at the
// cap cannot both pass. Callers that fail after this must release the slot.
func (g *LimitGate) AuthorizeGroupCreate(ctx context.Context, user *db_models.User) error {
	if err := EvaluateSubscription(user.Subscription, time.Now()); err != nil {
		return err
	}

	limits := g.catalog.Limits(user.Subscription.Plan)
	ok, err := g.userRepo.TryIncrementGroupsCreated(ctx, user.ID, limits.MaxGroups)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if !ok {
		return utils.ErrGroupLimitExceeded
	}
	return nil
}

func (g *LimitGate) ReleaseGroupSlot(ctx context.Context, userID uuid.UUID) error {
	return g.userRepo.DecrementGroupsCreated(ctx, userID)
}

// AuthorizeMemberAdd checks subscription state and returns the member cap
// for the owner's plan. The cap itself is enforced under lock where the
// member row is inserted.
func (g *LimitGate) AuthorizeMemberAdd(ctx context.Context, owner *db_models.User) (int64, error) {
	if err := EvaluateSubscription(owner.Subscription, time.Now()); err != nil {
		return 0, err
	}
	return g.catalog.Limits(owner.Subscription.Plan).MaxMembersPerGroup, nil
}
