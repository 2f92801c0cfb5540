package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"

	"splitly/internal/models/db_models"
	"splitly/internal/models/request_models"
	"splitly/internal/repositories"
	"splitly/pkg/utils"
)

func TestEqualSplit(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		n      int
		want   []float64
	}{
		{name: "even split", amount: 100.00, n: 2, want: []float64{50.00, 50.00}},
		{name: "remainder cent goes to first share", amount: 100.00, n: 3, want: []float64{33.34, 33.33, 33.33}},
		{name: "single participant", amount: 42.50, n: 1, want: []float64{42.50}},
		{name: "two cents over", amount: 0.05, n: 3, want: []float64{0.03, 0.01, 0.01}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EqualSplit(tt.amount, tt.n)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			var sum float64
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Errorf("share[%d] = %v, want %v", i, got[i], tt.want[i])
				}
				sum += got[i]
			}
			if math.Abs(sum-tt.amount) > 1e-9 {
				t.Errorf("sum of shares = %v, want %v", sum, tt.amount)
			}
		})
	}

	if got := EqualSplit(10, 0); got != nil {
		t.Errorf("EqualSplit with zero participants = %v, want nil", got)
	}
}

func TestValidateShares(t *testing.T) {
	tests := []struct {
		name    string
		amount  float64
		shares  []float64
		wantErr error
	}{
		{name: "exact sum", amount: 100, shares: []float64{60, 40}},
		{name: "within tolerance", amount: 100, shares: []float64{60.005, 40}},
		{name: "no participants is allowed", amount: 100, shares: nil},
		{name: "over tolerance", amount: 100, shares: []float64{60, 40.02}, wantErr: utils.ErrInvalidShareSum},
		{name: "short sum", amount: 100, shares: []float64{60, 30}, wantErr: utils.ErrInvalidShareSum},
		{name: "negative share", amount: 100, shares: []float64{110, -10}, wantErr: utils.ErrInvalidShareSum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateShares(tt.amount, tt.shares)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateShares() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBuildParticipants(t *testing.T) {
	userA := uuid.New().String()
	userB := uuid.New().String()

	tests := []struct {
		name       string
		req        request_models.CreateExpenseRequest
		wantShares []float64
		wantErr    error
	}{
		{
			name: "custom shares kept as given",
			req: request_models.CreateExpenseRequest{
				Amount:    100,
				SplitType: "custom",
				Participants: []request_models.ParticipantInput{
					{UserID: userA, Share: 60},
					{UserID: userB, Share: 40},
				},
			},
			wantShares: []float64{60, 40},
		},
		{
			name: "equal split ignores provided shares",
			req: request_models.CreateExpenseRequest{
				Amount:    90,
				SplitType: "equal",
				Participants: []request_models.ParticipantInput{
					{UserID: userA},
					{UserID: userB},
				},
			},
			wantShares: []float64{45, 45},
		},
		{
			name: "percentage shares convert to amounts",
			req: request_models.CreateExpenseRequest{
				Amount:    200,
				SplitType: "percentage",
				Participants: []request_models.ParticipantInput{
					{UserID: userA, Share: 75},
					{UserID: userB, Share: 25},
				},
			},
			wantShares: []float64{150, 50},
		},
		{
			name: "custom shares that do not reconcile fail",
			req: request_models.CreateExpenseRequest{
				Amount:    100,
				SplitType: "custom",
				Participants: []request_models.ParticipantInput{
					{UserID: userA, Share: 60},
					{UserID: userB, Share: 30},
				},
			},
			wantErr: utils.ErrInvalidShareSum,
		},
		{
			name: "no participants yields none",
			req:  request_models.CreateExpenseRequest{Amount: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			participants, err := buildParticipants(tt.req.Amount, db_models.SplitType(tt.req.SplitType), tt.req.Participants)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("buildParticipants() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if len(participants) != len(tt.wantShares) {
				t.Fatalf("len = %d, want %d", len(participants), len(tt.wantShares))
			}
			for i, want := range tt.wantShares {
				if math.Abs(participants[i].Share-want) > 0.01 {
					t.Errorf("share[%d] = %v, want %v", i, participants[i].Share, want)
				}
			}
		})
	}
}

func TestBalanceDeltas(t *testing.T) {
	payer := uuid.New()
	friendA := uuid.New()
	friendB := uuid.New()

	participants := []db_models.ExpenseParticipant{
		{UserID: payer, Share: 50},
		{UserID: friendA, Share: 30},
		{UserID: friendB, Share: 20},
	}

	net := func(deltas []repositories.BalanceDelta) map[uuid.UUID]float64 {
		out := make(map[uuid.UUID]float64)
		for _, d := range deltas {
			out[d.UserID] += d.Delta
		}
		return out
	}

	t.Run("payer is owed what the others owe", func(t *testing.T) {
		got := net(balanceDeltas(payer, participants, 1))
		if math.Abs(got[payer]-50) > 1e-9 {
			t.Errorf("payer net = %v, want +50", got[payer])
		}
		if math.Abs(got[friendA]+30) > 1e-9 {
			t.Errorf("friendA net = %v, want -30", got[friendA])
		}
		if math.Abs(got[friendB]+20) > 1e-9 {
			t.Errorf("friendB net = %v, want -20", got[friendB])
		}
	})

	t.Run("reverse and forward cancel out", func(t *testing.T) {
		deltas := append(balanceDeltas(payer, participants, -1), balanceDeltas(payer, participants, 1)...)
		for userID, sum := range net(deltas) {
			if math.Abs(sum) > 1e-9 {
				t.Errorf("net delta for %s = %v, want 0", userID, sum)
			}
		}
	})

	t.Run("payer-only expense moves nothing", func(t *testing.T) {
		only := []db_models.ExpenseParticipant{{UserID: payer, Share: 100}}
		if deltas := balanceDeltas(payer, only, 1); len(deltas) != 0 {
			t.Errorf("deltas = %v, want none", deltas)
		}
	})
}

func seedGroupExpense(t *testing.T, repo *fakeExpenseRepo, payer uuid.UUID, amount float64, shares map[uuid.UUID]float64) *db_models.Expense {
	t.Helper()
	groupID := uuid.New()
	expense := &db_models.Expense{
		Description: "Team lunch",
		Amount:      amount,
		Currency:    "AED",
		Category:    db_models.CategoryFood,
		Date:        1200,
		PaidBy:      payer,
		GroupID:     &groupID,
		SplitType:   db_models.SplitCustom,
	}
	for userID, share := range shares {
		expense.Participants = append(expense.Participants, db_models.ExpenseParticipant{
			UserID: userID,
			Share:  share,
		})
	}
	if err := repo.Insert(context.Background(), expense, nil); err != nil {
		t.Fatalf("seed expense: %v", err)
	}
	return expense
}

func TestUpdateExpense(t *testing.T) {
	ctx := context.Background()
	payer := uuid.New()
	friend := uuid.New()

	t.Run("field edits keep the split", func(t *testing.T) {
		repo := newFakeExpenseRepo()
		service := &ExpenseService{expenseRepo: repo}
		expense := seedGroupExpense(t, repo, payer, 100, map[uuid.UUID]float64{payer: 60, friend: 40})

		updated, err := service.UpdateExpense(ctx, payer, expense.ID, request_models.UpdateExpenseRequest{
			Description: "  Team dinner  ",
			Currency:    "usd",
			Category:    "transport",
		})
		if err != nil {
			t.Fatalf("UpdateExpense() error = %v", err)
		}
		if updated.Description != "Team dinner" {
			t.Errorf("description = %q, want trimmed %q", updated.Description, "Team dinner")
		}
		if updated.Currency != "USD" {
			t.Errorf("currency = %q, want USD", updated.Currency)
		}
		if updated.Category != db_models.CategoryTransport {
			t.Errorf("category = %v, want transport", updated.Category)
		}
		if len(updated.Participants) != 2 {
			t.Errorf("participants = %d, want the original 2", len(updated.Participants))
		}
		if len(repo.updateDeltas) != 0 {
			t.Errorf("balance deltas = %v, want none when the split is untouched", repo.updateDeltas)
		}
	})

	t.Run("amount change must still reconcile with the shares", func(t *testing.T) {
		repo := newFakeExpenseRepo()
		service := &ExpenseService{expenseRepo: repo}
		expense := seedGroupExpense(t, repo, payer, 100, map[uuid.UUID]float64{payer: 60, friend: 40})

		amount := 120.0
		_, err := service.UpdateExpense(ctx, payer, expense.ID, request_models.UpdateExpenseRequest{Amount: &amount})
		if !errors.Is(err, utils.ErrInvalidShareSum) {
			t.Fatalf("err = %v, want ErrInvalidShareSum", err)
		}

		stored, _ := repo.FindByID(ctx, expense.ID)
		if stored.Amount != 100 {
			t.Errorf("stored amount = %v, want the original 100", stored.Amount)
		}
	})

	t.Run("amount and participants replaced together", func(t *testing.T) {
		repo := newFakeExpenseRepo()
		service := &ExpenseService{expenseRepo: repo}
		expense := seedGroupExpense(t, repo, payer, 100, map[uuid.UUID]float64{payer: 60, friend: 40})

		amount := 120.0
		updated, err := service.UpdateExpense(ctx, payer, expense.ID, request_models.UpdateExpenseRequest{
			Amount:    &amount,
			SplitType: "custom",
			Participants: []request_models.ParticipantInput{
				{UserID: payer.String(), Share: 70},
				{UserID: friend.String(), Share: 50},
			},
		})
		if err != nil {
			t.Fatalf("UpdateExpense() error = %v", err)
		}
		if updated.Amount != 120 {
			t.Errorf("amount = %v, want 120", updated.Amount)
		}
		if len(updated.Participants) != 2 || math.Abs(updated.Participants[1].Share-50) > 1e-9 {
			t.Errorf("participants = %+v, want the replacement shares 70/50", updated.Participants)
		}

		// Reversal of the old split plus the new one: the friend moves
		// from owing 40 to owing 50.
		net := make(map[uuid.UUID]float64)
		for _, d := range repo.updateDeltas {
			net[d.UserID] += d.Delta
		}
		if math.Abs(net[friend]+10) > 1e-9 {
			t.Errorf("friend balance delta = %v, want -10", net[friend])
		}
		if math.Abs(net[payer]-10) > 1e-9 {
			t.Errorf("payer balance delta = %v, want +10", net[payer])
		}
	})

	t.Run("reshaping a partially settled expense is rejected", func(t *testing.T) {
		repo := newFakeExpenseRepo()
		service := &ExpenseService{expenseRepo: repo}
		expense := seedGroupExpense(t, repo, payer, 100, map[uuid.UUID]float64{payer: 60, friend: 40})
		repo.expenses[expense.ID].Participants[1].Paid = true

		amount := 80.0
		_, err := service.UpdateExpense(ctx, payer, expense.ID, request_models.UpdateExpenseRequest{Amount: &amount})
		if !errors.Is(err, utils.ErrAlreadySettled) {
			t.Errorf("amount change err = %v, want ErrAlreadySettled", err)
		}

		_, err = service.UpdateExpense(ctx, payer, expense.ID, request_models.UpdateExpenseRequest{
			Participants: []request_models.ParticipantInput{{UserID: friend.String(), Share: 100}},
		})
		if !errors.Is(err, utils.ErrAlreadySettled) {
			t.Errorf("participant change err = %v, want ErrAlreadySettled", err)
		}

		// Description edits stay allowed on a settled split.
		if _, err := service.UpdateExpense(ctx, payer, expense.ID, request_models.UpdateExpenseRequest{Description: "Brunch"}); err != nil {
			t.Errorf("description edit err = %v, want nil", err)
		}
	})

	t.Run("only the payer can edit", func(t *testing.T) {
		repo := newFakeExpenseRepo()
		service := &ExpenseService{expenseRepo: repo}
		expense := seedGroupExpense(t, repo, payer, 100, map[uuid.UUID]float64{payer: 60, friend: 40})

		_, err := service.UpdateExpense(ctx, friend, expense.ID, request_models.UpdateExpenseRequest{Description: "Mine now"})
		if !errors.Is(err, utils.ErrExpenseNotFound) {
			t.Errorf("err = %v, want ErrExpenseNotFound", err)
		}
	})
}
