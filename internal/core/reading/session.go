// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package reading implements reading sessions and completion rewards.

A [Session] tracks one reader's traversal of one book. Forward navigation is
gated by a per-page dwell time measured from a persisted timestamp, so the
rule holds across requests and server restarts without background timers.
Every state transition takes the current time as an argument.

Completion is terminal and pays exactly once: the state machine refuses a
second completion and the repository guards the write with a version check
and a unique ledger entry per session.
*/
package reading

import (
	"slices"
	"time"

	"github.com/taibuivan/folio/internal/core/book"
)

// Status is the lifecycle state of a session.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Direction is a navigation request.
type Direction string

const (
	DirectionForward  Direction = "forward"
	DirectionBackward Direction = "backward"
)

// Session is a per-(user, book) reading record.
type Session struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	BookID string `json:"book_id"`

	// Pagination the session was started with.
	PageCount         int `json:"page_count"`
	PageSize          int `json:"page_size"`
	PaginationVersion int `json:"pagination_version"`

	DwellSeconds int       `json:"dwell_seconds"`
	CurrentPage  int       `json:"current_page"`
	ReadPages    []int     `json:"read_pages"`
	DwellStart   time.Time `json:"dwell_start"`
	Status       Status    `json:"status"`

	// Version is bumped on every persisted change.
	Version int64 `json:"version"`

	EarnedMoney  int64      `json:"earned_money"`
	EarnedPoints int64      `json:"earned_points"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession starts a session on page 0, which counts as read.
func NewSession(id, userID, bookID string, pageCount, pageSize int, dwell time.Duration, now time.Time) *Session {
	return &Session{
		ID:                id,
		UserID:            userID,
		BookID:            bookID,
		PageCount:         pageCount,
		PageSize:          pageSize,
		PaginationVersion: book.PaginationVersion,
		DwellSeconds:      int(dwell / time.Second),
		CurrentPage:       0,
		ReadPages:         []int{0},
		DwellStart:        now,
		Status:            StatusActive,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func (s *Session) dwell() time.Duration {
	return time.Duration(s.DwellSeconds) * time.Second
}

func (s *Session) hasRead(page int) bool {
	_, found := slices.BinarySearch(s.ReadPages, page)
	return found
}

func (s *Session) markRead(page int) {
	at, found := slices.BinarySearch(s.ReadPages, page)
	if !found {
		s.ReadPages = slices.Insert(s.ReadPages, at, page)
	}
}

/*
Remaining returns how long the reader must still stay on the current page.

It is zero once the dwell time has elapsed, and always zero on a page the
reader has already moved past (its successor is read), so going back to
re-read never re-imposes the wait.
*/
func (s *Session) Remaining(now time.Time) time.Duration {
	if s.Status == StatusCompleted {
		return 0
	}
	if next := s.CurrentPage + 1; next < s.PageCount && s.hasRead(next) {
		return 0
	}

	elapsed := now.Sub(s.DwellStart)
	if elapsed < 0 {
		elapsed = 0
	}
	if remaining := s.dwell() - elapsed; remaining > 0 {
		return remaining
	}
	return 0
}

// CanAdvance reports whether the dwell requirement is met.
func (s *Session) CanAdvance(now time.Time) bool {
	return s.Remaining(now) == 0
}

// Advance moves to the next page and starts its dwell timer.
func (s *Session) Advance(now time.Time) error {
	if s.Status == StatusCompleted {
		return ErrAlreadyCompleted
	}
	if s.CurrentPage >= s.PageCount-1 {
		return ErrAtLastPage
	}
	if !s.CanAdvance(now) {
		return ErrNotYetEligible
	}

	s.CurrentPage++
	s.markRead(s.CurrentPage)
	s.DwellStart = now
	s.UpdatedAt = now
	return nil
}

// Retreat moves to the previous page.
func (s *Session) Retreat(now time.Time) error {
	if s.Status == StatusCompleted {
		return ErrAlreadyCompleted
	}
	if s.CurrentPage == 0 {
		return ErrAtFirstPage
	}

	s.CurrentPage--
	s.markRead(s.CurrentPage)
	s.DwellStart = now
	s.UpdatedAt = now
	return nil
}

// IsComplete reports whether every page has been read.
func (s *Session) IsComplete() bool {
	return len(s.ReadPages) == s.PageCount
}

/*
Complete finalises the session and computes its payout.

Returns:
  - RewardOutcome: the payout, also stored on the session
  - error: ErrAlreadyCompleted, ErrIncomplete or ErrInsufficientLevel
*/
func (s *Session) Complete(now time.Time, terms RewardTerms) (RewardOutcome, error) {
	if s.Status == StatusCompleted {
		return RewardOutcome{}, ErrAlreadyCompleted
	}
	if !s.IsComplete() {
		return RewardOutcome{}, ErrIncomplete
	}

	outcome, err := ComputeReward(terms)
	if err != nil {
		return RewardOutcome{}, err
	}

	s.Status = StatusCompleted
	s.EarnedMoney = outcome.EarnedMoney
	s.EarnedPoints = outcome.EarnedPoints
	s.CompletedAt = &now
	s.UpdatedAt = now
	return outcome, nil
}
