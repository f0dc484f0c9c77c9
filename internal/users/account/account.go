// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account manages the progression side of a reader account.

Readers see their wallet (balance, points, level, plan) and the reward ledger
written by completed reading sessions, and may edit their display name or
close the account. Administrators move readers between plans and levels,
which changes what books they can start and how much they earn.
*/
package account

import (
	"context"
	"time"

	"github.com/taibuivan/folio/internal/users/auth"
)

// # Domain Entities

// Wallet is the reward-facing projection of an account.
type Wallet struct {
	UserID  string    `json:"user_id"`
	Level   int       `json:"level"`
	Plan    auth.Plan `json:"plan"`
	Points  int64     `json:"points"`
	Balance int64     `json:"balance"`
}

// RewardEntry is one ledger row joined with the book it paid for.
type RewardEntry struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	BookID    string    `json:"book_id"`
	BookTitle string    `json:"book_title"`
	Money     int64     `json:"money"`
	Points    int64     `json:"points"`
	Donated   int64     `json:"donated"`
	CreatedAt time.Time `json:"created_at"`
}

// # Field Identifiers

const (
	FieldDisplayName = "display_name"
	FieldPlan        = "plan"
	FieldLevel       = "level"
)

// # Repository Contracts

// UserFinder loads accounts.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*auth.User, error)
}

// Repository persists account changes and reads the reward ledger.
type Repository interface {
	// Update writes display name, plan and level.
	Update(ctx context.Context, user *auth.User) error

	// SoftDelete flags the account; lookups stop returning it.
	SoftDelete(ctx context.Context, userID string, at time.Time) error

	// ListRewards returns the reader's ledger, newest first, with the total count.
	ListRewards(ctx context.Context, userID string, limit, offset int) ([]RewardEntry, int, error)
}
