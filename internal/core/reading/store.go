// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reading

import (
	"context"
	"time"
)

// Review is the reader's rating submitted with a completion.
type Review struct {
	ID             string    `json:"id"`
	SessionID      string    `json:"session_id"`
	UserID         string    `json:"user_id"`
	BookID         string    `json:"book_id"`
	Rating         int       `json:"rating"`
	Comment        *string   `json:"comment,omitempty"`
	DonationAmount int64     `json:"donation_amount"`
	CreatedAt      time.Time `json:"created_at"`
}

// RewardGrant is the balance and points delta applied on completion.
// Money is credited net of the donation.
type RewardGrant struct {
	ID        string
	SessionID string
	UserID    string
	Money     int64
	Points    int64
	Donated   int64
}

// # Repository Interfaces

// SessionRepository persists reading sessions.
type SessionRepository interface {
	// Create stores a new active session, superseding any other active session
	// of the same reader for the same book.
	Create(ctx context.Context, session *Session) error

	// FindByID returns ErrSessionNotFound when absent.
	FindByID(ctx context.Context, id string) (*Session, error)

	// HasCompleted reports whether the reader already completed the book.
	HasCompleted(ctx context.Context, userID, bookID string) (bool, error)

	// Update writes navigation state if the stored version still equals
	// expectedVersion, then bumps session.Version. Otherwise it returns
	// ErrConcurrentUpdate, ErrAlreadyCompleted or ErrSessionNotFound.
	Update(ctx context.Context, session *Session, expectedVersion int64) error
}

// CompletionRepository persists a completion atomically.
type CompletionRepository interface {
	// Complete marks the session completed (guarded like Update), inserts the
	// review, records the ledger entry and credits the account, all or nothing.
	// A second completion of the same session returns ErrAlreadyCompleted.
	Complete(ctx context.Context, session *Session, expectedVersion int64, review *Review, grant RewardGrant) error
}
