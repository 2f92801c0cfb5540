package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"splitly/internal/models/db_models"
	"splitly/internal/plans"
	"splitly/internal/repositories"
	"splitly/pkg/utils"
)

// fakeUserRepo keeps the counter contract of the real repository: the
// increment succeeds only while the counter is below max, atomically.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*db_models.User
}

func newFakeUserRepo(users ...*db_models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[uuid.UUID]*db_models.User)}
	for _, u := range users {
		if u.ID == uuid.Nil {
			u.ID = uuid.New()
		}
		repo.users[u.ID] = u
	}
	return repo
}

func (f *fakeUserRepo) Insert(_ context.Context, user *db_models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*db_models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[id], nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*db_models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Save(_ context.Context, user *db_models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) TryIncrementGroupsCreated(_ context.Context, id uuid.UUID, max int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok || u.Usage.GroupsCreated >= max {
		return false, nil
	}
	u.Usage.GroupsCreated++
	return true, nil
}

func (f *fakeUserRepo) DecrementGroupsCreated(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok && u.Usage.GroupsCreated > 0 {
		u.Usage.GroupsCreated--
	}
	return nil
}

func (f *fakeUserRepo) IncrementMembersAdded(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		u.Usage.MembersAdded++
	}
	return nil
}

func (f *fakeUserRepo) IncrementTotalExpenses(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		u.Usage.TotalExpenses++
	}
	return nil
}

var _ repositories.UserRepository = (*fakeUserRepo)(nil)

func activeUser(plan string) *db_models.User {
	return &db_models.User{
		Name:  "Test User",
		Email: "user@example.com",
		Subscription: db_models.Subscription{
			Plan:             plan,
			Status:           db_models.SubStatusActive,
			CurrentPeriodEnd: time.Now().Add(24 * time.Hour).Unix(),
		},
	}
}

func TestEvaluateSubscription(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour).Unix()
	past := now.Add(-time.Hour).Unix()

	tests := []struct {
		name      string
		status    db_models.SubscriptionStatus
		periodEnd int64
		wantErr   error
	}{
		{name: "trialing within period", status: db_models.SubStatusTrialing, periodEnd: future, wantErr: nil},
		{name: "trialing expired", status: db_models.SubStatusTrialing, periodEnd: past, wantErr: utils.ErrTrialExpired},
		{name: "active within period", status: db_models.SubStatusActive, periodEnd: future, wantErr: nil},
		{name: "active expired", status: db_models.SubStatusActive, periodEnd: past, wantErr: utils.ErrSubscriptionExpired},
		{name: "past due blocked even with period left", status: db_models.SubStatusPastDue, periodEnd: future, wantErr: utils.ErrSubscriptionBlocked},
		{name: "canceled blocked", status: db_models.SubStatusCanceled, periodEnd: future, wantErr: utils.ErrSubscriptionBlocked},
		{name: "unknown status blocked", status: "garbage", periodEnd: future, wantErr: utils.ErrSubscriptionBlocked},
		{name: "period end exactly now still allowed", status: db_models.SubStatusActive, periodEnd: now.Unix(), wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := db_models.Subscription{Status: tt.status, CurrentPeriodEnd: tt.periodEnd}
			err := EvaluateSubscription(sub, now)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("EvaluateSubscription() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAuthorizeGroupCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("claims slots up to the plan cap", func(t *testing.T) {
		user := activeUser("basic")
		repo := newFakeUserRepo(user)
		gate := NewLimitGate(plans.NewCatalog(), repo)

		for i := 0; i < 3; i++ {
			if err := gate.AuthorizeGroupCreate(ctx, user); err != nil {
				t.Fatalf("create %d: %v", i+1, err)
			}
		}
		if err := gate.AuthorizeGroupCreate(ctx, user); !errors.Is(err, utils.ErrGroupLimitExceeded) {
			t.Errorf("fourth create err = %v, want ErrGroupLimitExceeded", err)
		}
		if user.Usage.GroupsCreated != 3 {
			t.Errorf("counter = %d, want 3", user.Usage.GroupsCreated)
		}
	})

	t.Run("release frees a slot", func(t *testing.T) {
		user := activeUser("basic")
		repo := newFakeUserRepo(user)
		gate := NewLimitGate(plans.NewCatalog(), repo)

		for i := 0; i < 3; i++ {
			if err := gate.AuthorizeGroupCreate(ctx, user); err != nil {
				t.Fatalf("create %d: %v", i+1, err)
			}
		}
		if err := gate.ReleaseGroupSlot(ctx, user.ID); err != nil {
			t.Fatalf("release: %v", err)
		}
		if err := gate.AuthorizeGroupCreate(ctx, user); err != nil {
			t.Errorf("create after release err = %v, want nil", err)
		}
	})

	t.Run("expired trial denied before any counter touch", func(t *testing.T) {
		user := activeUser("basic")
		user.Subscription.Status = db_models.SubStatusTrialing
		user.Subscription.CurrentPeriodEnd = time.Now().Add(-time.Hour).Unix()
		repo := newFakeUserRepo(user)
		gate := NewLimitGate(plans.NewCatalog(), repo)

		if err := gate.AuthorizeGroupCreate(ctx, user); !errors.Is(err, utils.ErrTrialExpired) {
			t.Fatalf("err = %v, want ErrTrialExpired", err)
		}
		if user.Usage.GroupsCreated != 0 {
			t.Errorf("counter = %d, want 0", user.Usage.GroupsCreated)
		}
	})

	t.Run("unknown plan falls back to basic cap", func(t *testing.T) {
		user := activeUser("enterprise-legacy")
		repo := newFakeUserRepo(user)
		gate := NewLimitGate(plans.NewCatalog(), repo)

		var allowed int
		for i := 0; i < 10; i++ {
			if err := gate.AuthorizeGroupCreate(ctx, user); err == nil {
				allowed++
			}
		}
		if allowed != 3 {
			t.Errorf("allowed = %d, want the basic cap of 3", allowed)
		}
	})
}

func TestAuthorizeGroupCreateConcurrent(t *testing.T) {
	user := activeUser("premium")
	repo := newFakeUserRepo(user)
	gate := NewLimitGate(plans.NewCatalog(), repo)

	const attempts = 100
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- gate.AuthorizeGroupCreate(context.Background(), user)
		}()
	}
	wg.Wait()
	close(results)

	var allowed, denied int
	for err := range results {
		switch {
		case err == nil:
			allowed++
		case errors.Is(err, utils.ErrGroupLimitExceeded):
			denied++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if allowed != 15 {
		t.Errorf("allowed = %d, want exactly the premium cap of 15", allowed)
	}
	if denied != attempts-15 {
		t.Errorf("denied = %d, want %d", denied, attempts-15)
	}
	if user.Usage.GroupsCreated != 15 {
		t.Errorf("counter = %d, want 15", user.Usage.GroupsCreated)
	}
}

func TestAuthorizeMemberAdd(t *testing.T) {
	gate := NewLimitGate(plans.NewCatalog(), newFakeUserRepo())

	t.Run("returns the plan member cap", func(t *testing.T) {
		owner := activeUser("business")
		maxMembers, err := gate.AuthorizeMemberAdd(context.Background(), owner)
		if err != nil {
			t.Fatalf("err = %v", err)
		}
		if maxMembers != 35 {
			t.Errorf("cap = %d, want 35", maxMembers)
		}
	})

	t.Run("blocked subscription denied", func(t *testing.T) {
		owner := activeUser("business")
		owner.Subscription.Status = db_models.SubStatusCanceled
		_, err := gate.AuthorizeMemberAdd(context.Background(), owner)
		if !errors.Is(err, utils.ErrSubscriptionBlocked) {
			t.Errorf("err = %v, want ErrSubscriptionBlocked", err)
		}
	})
}
