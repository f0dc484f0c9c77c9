// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements reader accounts and token-based identity.

Besides credentials, an account carries the reading progression state used by
the reward engine: its level (gates which books can be started), its plan
(scales money rewards) and its points and balance.
*/
package auth

import (
	"time"

	"github.com/taibuivan/folio/internal/platform/sec"
)

// # Domain Entities

// Plan is the subscription tier of an account.
type Plan string

const (
	PlanFree    Plan = "free"
	PlanPremium Plan = "premium"
)

// StartingLevel is the level assigned to new accounts.
const StartingLevel = 0

// User represents a registered reader.
type User struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	DisplayName  string       `json:"display_name"`
	Role         sec.UserRole `json:"role"`
	Level        int          `json:"level"`
	Plan         Plan         `json:"plan"`
	Points       int64        `json:"points"`

	// Balance is in minor currency units.
	Balance int64 `json:"balance"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// # Field Identifiers

const (
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldDisplayName = "display_name"
	FieldLogin       = "login"
)
