// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/users/account"
	"github.com/taibuivan/folio/internal/users/auth"
	"github.com/taibuivan/folio/pkg/clock"
	"github.com/taibuivan/folio/pkg/pagination"
	"github.com/taibuivan/folio/pkg/pointer"
)

type memoryAccounts struct {
	users   map[string]*auth.User
	rewards map[string][]account.RewardEntry
}

func (store *memoryAccounts) FindByID(_ context.Context, id string) (*auth.User, error) {
	user, ok := store.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	clone := *user
	return &clone, nil
}

func (store *memoryAccounts) Update(_ context.Context, user *auth.User) error {
	if _, ok := store.users[user.ID]; !ok {
		return apperr.NotFound("User")
	}
	clone := *user
	store.users[user.ID] = &clone
	return nil
}

func (store *memoryAccounts) SoftDelete(_ context.Context, userID string, _ time.Time) error {
	if _, ok := store.users[userID]; !ok {
		return apperr.NotFound("User")
	}
	delete(store.users, userID)
	return nil
}

func (store *memoryAccounts) ListRewards(_ context.Context, userID string, limit, offset int) ([]account.RewardEntry, int, error) {
	entries := store.rewards[userID]
	total := len(entries)
	if offset >= total {
		return []account.RewardEntry{}, total, nil
	}
	return entries[offset:min(offset+limit, total)], total, nil
}

func newAccountService() (*account.Service, *memoryAccounts) {
	store := &memoryAccounts{
		users: map[string]*auth.User{
			"u1": {ID: "u1", Username: "ana", DisplayName: "ana", Level: 1, Plan: auth.PlanFree, Points: 500, Balance: 10000},
		},
		rewards: map[string][]account.RewardEntry{
			"u1": {
				{ID: "r2", BookTitle: "Ulysses", Money: 30000, Points: 900},
				{ID: "r1", BookTitle: "Walden", Money: 10000, Points: 500},
			},
		},
	}
	clk := clock.NewManual(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	return account.NewService(store, store, clk), store
}

func TestService_GetWallet(t *testing.T) {
	service, _ := newAccountService()

	wallet, err := service.GetWallet(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, &account.Wallet{UserID: "u1", Level: 1, Plan: auth.PlanFree, Points: 500, Balance: 10000}, wallet)

	_, err = service.GetWallet(context.Background(), "missing")
	assert.ErrorIs(t, err, apperr.NotFound("User"))
}

func TestService_ListRewards(t *testing.T) {
	service, _ := newAccountService()

	entries, total, err := service.ListRewards(context.Background(), "u1", pagination.Params{Page: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, entries, 1)
	assert.Equal(t, "r2", entries[0].ID)
}

func TestService_UpdateProfile(t *testing.T) {
	service, store := newAccountService()
	ctx := context.Background()

	user, err := service.UpdateProfile(ctx, "u1", account.UpdateProfileInput{DisplayName: pointer.To("  Ana B. ")})
	require.NoError(t, err)
	assert.Equal(t, "Ana B.", user.DisplayName)
	assert.Equal(t, "Ana B.", store.users["u1"].DisplayName)

	_, err = service.UpdateProfile(ctx, "u1", account.UpdateProfileInput{DisplayName: pointer.To("   ")})
	assertValidation(t, err, account.FieldDisplayName)
}

func TestService_ChangeTier(t *testing.T) {
	service, store := newAccountService()
	ctx := context.Background()

	premium := auth.PlanPremium
	user, err := service.ChangeTier(ctx, "u1", account.TierInput{Plan: &premium, Level: pointer.To(3)})
	require.NoError(t, err)
	assert.Equal(t, auth.PlanPremium, user.Plan)
	assert.Equal(t, 3, store.users["u1"].Level)

	// Paid rewards are untouched by a tier change.
	assert.Equal(t, int64(10000), store.users["u1"].Balance)

	t.Run("level_zero", func(t *testing.T) {
		user, err := service.ChangeTier(ctx, "u1", account.TierInput{Level: pointer.To(0)})
		require.NoError(t, err)
		assert.Equal(t, 0, user.Level)
	})

	t.Run("invalid", func(t *testing.T) {
		gold := auth.Plan("gold")
		_, err := service.ChangeTier(ctx, "u1", account.TierInput{Plan: &gold})
		assertValidation(t, err, account.FieldPlan)

		_, err = service.ChangeTier(ctx, "u1", account.TierInput{Level: pointer.To(-1)})
		assertValidation(t, err, account.FieldLevel)

		_, err = service.ChangeTier(ctx, "u1", account.TierInput{})
		assertValidation(t, err, account.FieldPlan)
	})
}

func TestService_DeleteAccount(t *testing.T) {
	service, store := newAccountService()
	ctx := context.Background()

	require.NoError(t, service.DeleteAccount(ctx, "u1"))
	assert.NotContains(t, store.users, "u1")

	err := service.DeleteAccount(ctx, "u1")
	assert.ErrorIs(t, err, apperr.NotFound("User"))
}

func assertValidation(t *testing.T, err error, field string) {
	t.Helper()
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	require.NotEmpty(t, appErr.Details)
	assert.Equal(t, field, appErr.Details[0].Field)
}
