// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/ctxutil"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/internal/users/auth"
	"github.com/taibuivan/folio/pkg/clock"
	"github.com/taibuivan/folio/pkg/pagination"
)

var errUserNotFound = apperr.NotFound("User")

// # Service Layer

// Service orchestrates wallet views, profile edits and tier changes.
type Service struct {
	users      UserFinder
	repository Repository
	clock      clock.Clock
}

// NewService constructs a new [Service] with its repository dependencies.
func NewService(users UserFinder, repository Repository, clk clock.Clock) *Service {
	return &Service{users: users, repository: repository, clock: clk}
}

// # Wallet

// GetWallet returns the reader's balance, points, level and plan.
func (service *Service) GetWallet(context context.Context, userID string) (*Wallet, error) {
	user, err := service.users.FindByID(context, userID)
	if err != nil {
		return nil, err
	}
	return &Wallet{
		UserID:  user.ID,
		Level:   user.Level,
		Plan:    user.Plan,
		Points:  user.Points,
		Balance: user.Balance,
	}, nil
}

// ListRewards pages through the reader's reward ledger.
func (service *Service) ListRewards(context context.Context, userID string, params pagination.Params) ([]RewardEntry, int, error) {
	return service.repository.ListRewards(context, userID, params.Limit, params.Offset())
}

// # Profile Management

// UpdateProfileInput defines the mutable subset of user profile fields.
type UpdateProfileInput struct {
	DisplayName *string
}

/*
UpdateProfile applies a partial set of changes to a reader's profile.

Returns:
  - *auth.User: The updated user profile
  - error: Validation, not found or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {
	if input.DisplayName != nil {
		name := strings.TrimSpace(*input.DisplayName)
		validator := &validate.Validator{}
		validator.Required(FieldDisplayName, name).MaxLen(FieldDisplayName, name, auth.MaxDisplayNameLength)
		if err := validator.Err(); err != nil {
			return nil, err
		}
		input.DisplayName = &name
	}

	user, err := service.users.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != nil {
		user.DisplayName = *input.DisplayName
	}
	user.UpdatedAt = service.clock.Now()

	if err := service.repository.Update(context, user); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "user_profile_updated", slog.String("user_id", userID))
	return user, nil
}

// DeleteAccount soft-deletes the account. Outstanding tokens stop resolving
// to a reader, so reading operations fail as unauthenticated.
func (service *Service) DeleteAccount(context context.Context, userID string) error {
	if err := service.repository.SoftDelete(context, userID, service.clock.Now()); err != nil {
		return err
	}

	ctxutil.GetLogger(context).WarnContext(context, "user_account_deleted", slog.String("user_id", userID))
	return nil
}

// # Tier Management

// TierInput changes a reader's plan or level. Nil fields are left as is.
type TierInput struct {
	Plan  *auth.Plan
	Level *int
}

/*
ChangeTier moves a reader between plans and levels.

Description: Plan changes affect the money multiplier of future completions;
level changes affect which books the reader may start. Rewards already paid
are never recomputed.
*/
func (service *Service) ChangeTier(context context.Context, userID string, input TierInput) (*auth.User, error) {
	validator := &validate.Validator{}
	if input.Plan != nil {
		validator.OneOf(FieldPlan, string(*input.Plan), string(auth.PlanFree), string(auth.PlanPremium))
	}
	if input.Level != nil {
		validator.NonNegative(FieldLevel, int64(*input.Level))
	}
	if input.Plan == nil && input.Level == nil {
		validator.Custom(FieldPlan, true, "Provide a plan or a level")
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.users.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	if input.Plan != nil {
		user.Plan = *input.Plan
	}
	if input.Level != nil {
		user.Level = *input.Level
	}
	user.UpdatedAt = service.clock.Now()

	if err := service.repository.Update(context, user); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "user_tier_changed",
		slog.String("user_id", userID),
		slog.String("plan", string(user.Plan)),
		slog.Int("level", user.Level),
	)
	return user, nil
}
