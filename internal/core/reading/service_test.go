// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reading_test

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/core/book"
	"github.com/taibuivan/folio/internal/core/reading"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/retry"
	"github.com/taibuivan/folio/internal/users/auth"
	"github.com/taibuivan/folio/pkg/clock"
)

// # Fakes

type tokenTable map[string]string

func (tokens tokenTable) Authenticate(_ context.Context, token string) (string, error) {
	if userID, ok := tokens[token]; ok {
		return userID, nil
	}
	return "", apperr.Unauthorized("Invalid or expired token")
}

type catalog struct {
	books map[string]*book.Book
	pages map[string][]book.Page
}

func (c *catalog) Get(_ context.Context, id string) (*book.Book, error) {
	if found, ok := c.books[id]; ok {
		return found, nil
	}
	return nil, apperr.NotFound("Book")
}

func (c *catalog) Pages(_ context.Context, b *book.Book, _ int) ([]book.Page, error) {
	return c.pages[b.ID], nil
}

type accounts struct {
	mu    sync.Mutex
	users map[string]*auth.User
}

func (a *accounts) FindByID(_ context.Context, id string) (*auth.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if user, ok := a.users[id]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, apperr.NotFound("User")
}

func (a *accounts) credit(userID string, money, points int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.users[userID].Balance += money
	a.users[userID].Points += points
}

// memoryStore mirrors the guarded writes of the PostgreSQL repository.
type memoryStore struct {
	mu       sync.Mutex
	accounts *accounts
	sessions map[string]*reading.Session
	reviews  []*reading.Review
	ledger   map[string]reading.RewardGrant

	// failures makes the next n calls fail with a transient error.
	failures int
}

func newMemoryStore(accounts *accounts) *memoryStore {
	return &memoryStore{
		accounts: accounts,
		sessions: map[string]*reading.Session{},
		ledger:   map[string]reading.RewardGrant{},
	}
}

func copySession(session *reading.Session) *reading.Session {
	clone := *session
	clone.ReadPages = slices.Clone(session.ReadPages)
	return &clone
}

func (store *memoryStore) transient() error {
	if store.failures > 0 {
		store.failures--
		return errors.New("connection reset by peer")
	}
	return nil
}

func (store *memoryStore) Create(_ context.Context, session *reading.Session) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if err := store.transient(); err != nil {
		return err
	}
	for id, existing := range store.sessions {
		if existing.UserID == session.UserID && existing.BookID == session.BookID && existing.Status == reading.StatusActive {
			delete(store.sessions, id)
		}
	}
	store.sessions[session.ID] = copySession(session)
	return nil
}

func (store *memoryStore) FindByID(_ context.Context, id string) (*reading.Session, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if err := store.transient(); err != nil {
		return nil, err
	}
	found, ok := store.sessions[id]
	if !ok {
		return nil, reading.ErrSessionNotFound
	}
	return copySession(found), nil
}

func (store *memoryStore) HasCompleted(_ context.Context, userID, bookID string) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if err := store.transient(); err != nil {
		return false, err
	}
	for _, session := range store.sessions {
		if session.UserID == userID && session.BookID == bookID && session.Status == reading.StatusCompleted {
			return true, nil
		}
	}
	return false, nil
}

func (store *memoryStore) guard(id string, expectedVersion int64) error {
	stored, ok := store.sessions[id]
	switch {
	case !ok:
		return reading.ErrSessionNotFound
	case stored.Status == reading.StatusCompleted:
		return reading.ErrAlreadyCompleted
	case stored.Version != expectedVersion:
		return reading.ErrConcurrentUpdate
	}
	return nil
}

func (store *memoryStore) Update(_ context.Context, session *reading.Session, expectedVersion int64) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if err := store.transient(); err != nil {
		return err
	}
	if err := store.guard(session.ID, expectedVersion); err != nil {
		return err
	}
	session.Version = expectedVersion + 1
	store.sessions[session.ID] = copySession(session)
	return nil
}

func (store *memoryStore) Complete(_ context.Context, session *reading.Session, expectedVersion int64, review *reading.Review, grant reading.RewardGrant) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if err := store.transient(); err != nil {
		return err
	}
	if err := store.guard(session.ID, expectedVersion); err != nil {
		return err
	}
	if _, paid := store.ledger[grant.SessionID]; paid {
		return reading.ErrAlreadyCompleted
	}

	session.Version = expectedVersion + 1
	store.sessions[session.ID] = copySession(session)
	store.reviews = append(store.reviews, review)
	store.ledger[grant.SessionID] = grant
	store.accounts.credit(grant.UserID, grant.Money, grant.Points)
	return nil
}

// # Fixture

const (
	bookID     = "0190a8a0-0000-7000-8000-000000000001"
	advancedID = "0190a8a0-0000-7000-8000-000000000002"
)

type fixture struct {
	service  *reading.Service
	clock    *clock.Manual
	store    *memoryStore
	accounts *accounts
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	users := &accounts{users: map[string]*auth.User{
		"u-free":    {ID: "u-free", Username: "ana", Level: 0, Plan: auth.PlanFree},
		"u-premium": {ID: "u-premium", Username: "bo", Level: 0, Plan: auth.PlanPremium},
		"u-other":   {ID: "u-other", Username: "cy", Level: 0, Plan: auth.PlanFree},
	}}
	books := &catalog{
		books: map[string]*book.Book{
			bookID:     {ID: bookID, Title: "Walden", BaseRewardMoney: 10000, RewardPoints: 500, RequiredLevel: 0},
			advancedID: {ID: advancedID, Title: "Ulysses", BaseRewardMoney: 50000, RewardPoints: 900, RequiredLevel: 1},
		},
		pages: map[string][]book.Page{
			bookID:     {{Index: 0, Text: "one"}, {Index: 1, Text: "two"}, {Index: 2, Text: "three"}},
			advancedID: {{Index: 0, Text: "yes"}},
		},
	}
	tokens := tokenTable{"t-free": "u-free", "t-premium": "u-premium", "t-other": "u-other", "t-ghost": "u-deleted"}

	store := newMemoryStore(users)
	clk := clock.NewManual(start)
	policy := reading.Policy{
		Dwell:    dwell,
		PageSize: 3000,
		Retry:    retry.Policy{Attempts: 3, InitialInterval: time.Millisecond, MaxInterval: time.Millisecond},
	}

	return &fixture{
		service:  reading.NewService(tokens, books, users, store, store, clk, policy),
		clock:    clk,
		store:    store,
		accounts: users,
	}
}

// readThrough starts a session and advances to the last page.
func (f *fixture) readThrough(t *testing.T, token string) string {
	t.Helper()
	ctx := context.Background()

	view, err := f.service.StartReading(ctx, token, bookID)
	require.NoError(t, err)

	for range view.Session.PageCount - 1 {
		f.clock.Advance(dwell)
		_, err := f.service.RequestPageAdvance(ctx, token, view.Session.ID, reading.DirectionForward)
		require.NoError(t, err)
	}
	return view.Session.ID
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	appErr := apperr.As(err)
	require.NotNil(t, appErr, "expected an AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
}

// # Tests

func TestService_StartReading(t *testing.T) {
	f := newFixture(t)

	view, err := f.service.StartReading(context.Background(), "t-free", bookID)
	require.NoError(t, err)

	assert.Len(t, view.Pages, 3)
	assert.Equal(t, 3, view.Session.PageCount)
	assert.Equal(t, 0, view.Session.CurrentPage)
	assert.Equal(t, 120, view.RemainingSeconds)
	assert.False(t, view.CanAdvance)
	assert.Contains(t, f.store.sessions, view.Session.ID)
}

func TestService_StartReading_Rejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("bad_token", func(t *testing.T) {
		_, err := f.service.StartReading(ctx, "forged", bookID)
		assertCode(t, err, "UNAUTHENTICATED")
	})

	t.Run("deleted_account", func(t *testing.T) {
		_, err := f.service.StartReading(ctx, "t-ghost", bookID)
		assertCode(t, err, "UNAUTHENTICATED")
	})

	t.Run("unknown_book", func(t *testing.T) {
		_, err := f.service.StartReading(ctx, "t-free", "0190a8a0-0000-7000-8000-0000000000ff")
		assertCode(t, err, "NOT_FOUND")
	})

	t.Run("level_gate", func(t *testing.T) {
		_, err := f.service.StartReading(ctx, "t-free", advancedID)
		assert.ErrorIs(t, err, reading.ErrInsufficientLevel)
	})

	assert.Empty(t, f.store.sessions)
}

func TestService_StartReading_LevelZero(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.service.StartReading(ctx, "t-free", bookID)
	require.NoError(t, err)
	assert.Equal(t, 3, view.Session.PageCount)

	f.store.sessions = map[string]*reading.Session{}
	_, err = f.service.StartReading(ctx, "t-free", advancedID)
	assert.ErrorIs(t, err, reading.ErrInsufficientLevel)
	assert.Empty(t, f.store.sessions)

	f.accounts.users["u-free"].Level = 1
	_, err = f.service.StartReading(ctx, "t-free", advancedID)
	assert.NoError(t, err)
}

func TestService_StartReading_Supersedes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.service.StartReading(ctx, "t-free", bookID)
	require.NoError(t, err)
	second, err := f.service.StartReading(ctx, "t-free", bookID)
	require.NoError(t, err)

	assert.NotEqual(t, first.Session.ID, second.Session.ID)
	assert.Len(t, f.store.sessions, 1)

	_, err = f.service.GetSession(ctx, "t-free", first.Session.ID)
	assert.ErrorIs(t, err, reading.ErrSessionNotFound)
}

func TestService_RequestPageAdvance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.service.StartReading(ctx, "t-free", bookID)
	require.NoError(t, err)
	id := view.Session.ID

	f.clock.Advance(dwell - time.Second)
	_, err = f.service.RequestPageAdvance(ctx, "t-free", id, reading.DirectionForward)
	assert.ErrorIs(t, err, reading.ErrNotYetEligible)

	f.clock.Advance(time.Second)
	moved, err := f.service.RequestPageAdvance(ctx, "t-free", id, reading.DirectionForward)
	require.NoError(t, err)
	assert.Equal(t, 1, moved.Session.CurrentPage)
	assert.Equal(t, int64(1), moved.Session.Version)
	assert.Nil(t, moved.Pages)

	back, err := f.service.RequestPageAdvance(ctx, "t-free", id, reading.DirectionBackward)
	require.NoError(t, err)
	assert.Equal(t, 0, back.Session.CurrentPage)
	assert.True(t, back.CanAdvance)

	_, err = f.service.RequestPageAdvance(ctx, "t-free", id, reading.Direction("sideways"))
	assertCode(t, err, "VALIDATION_ERROR")
}

func TestService_Ownership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.service.StartReading(ctx, "t-free", bookID)
	require.NoError(t, err)
	id := view.Session.ID

	_, err = f.service.GetSession(ctx, "t-other", id)
	assert.ErrorIs(t, err, reading.ErrNotOwner)

	_, err = f.service.RequestPageAdvance(ctx, "t-other", id, reading.DirectionForward)
	assert.ErrorIs(t, err, reading.ErrNotOwner)

	_, err = f.service.CompleteSession(ctx, "t-other", id, reading.CompleteInput{Rating: 5})
	assert.ErrorIs(t, err, reading.ErrNotOwner)
}

func TestService_CompleteSession_Rewards(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		userID     string
		wantMoney  int64
		wantPoints int64
	}{
		{name: "free", token: "t-free", userID: "u-free", wantMoney: 10000, wantPoints: 500},
		{name: "premium", token: "t-premium", userID: "u-premium", wantMoney: 30000, wantPoints: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			id := f.readThrough(t, tt.token)

			result, err := f.service.CompleteSession(context.Background(), tt.token, id, reading.CompleteInput{
				Rating:  5,
				Comment: "  Loved it  ",
			})
			require.NoError(t, err)

			assert.Equal(t, tt.wantMoney, result.Outcome.EarnedMoney)
			assert.Equal(t, tt.wantPoints, result.Outcome.EarnedPoints)
			assert.Equal(t, tt.wantMoney, result.Credited)
			require.NotNil(t, result.Review.Comment)
			assert.Equal(t, "Loved it", *result.Review.Comment)

			user := f.accounts.users[tt.userID]
			assert.Equal(t, tt.wantMoney, user.Balance)
			assert.Equal(t, tt.wantPoints, user.Points)
			assert.Equal(t, reading.StatusCompleted, f.store.sessions[id].Status)
		})
	}
}

func TestService_CompleteSession_Donation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.readThrough(t, "t-free")

	_, err := f.service.CompleteSession(ctx, "t-free", id, reading.CompleteInput{Rating: 4, Donation: 10001})
	assertCode(t, err, "VALIDATION_ERROR")
	assert.Equal(t, reading.StatusActive, f.store.sessions[id].Status)

	result, err := f.service.CompleteSession(ctx, "t-free", id, reading.CompleteInput{Rating: 4, Donation: 2500})
	require.NoError(t, err)
	assert.Equal(t, int64(7500), result.Credited)
	assert.Nil(t, result.Review.Comment)
	assert.Equal(t, int64(7500), f.accounts.users["u-free"].Balance)
	assert.Equal(t, int64(2500), f.store.ledger[id].Donated)

	// The ledger keeps the net credit, the outcome the gross reward.
	assert.Equal(t, int64(7500), f.store.ledger[id].Money)
	assert.Equal(t, int64(10000), result.Outcome.EarnedMoney)
}

func TestService_CompleteSession_Invalid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.service.StartReading(ctx, "t-free", bookID)
	require.NoError(t, err)
	id := view.Session.ID

	_, err = f.service.CompleteSession(ctx, "t-free", id, reading.CompleteInput{Rating: 0, Donation: -1})
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Len(t, appErr.Details, 2)

	_, err = f.service.CompleteSession(ctx, "t-free", id, reading.CompleteInput{Rating: 5})
	assert.ErrorIs(t, err, reading.ErrIncomplete)
	assert.Empty(t, f.store.ledger)
}

func TestService_CompleteSession_PaysOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.readThrough(t, "t-free")

	_, err := f.service.CompleteSession(ctx, "t-free", id, reading.CompleteInput{Rating: 5})
	require.NoError(t, err)

	_, err = f.service.CompleteSession(ctx, "t-free", id, reading.CompleteInput{Rating: 5})
	assert.ErrorIs(t, err, reading.ErrAlreadyCompleted)

	_, err = f.service.StartReading(ctx, "t-free", bookID)
	assert.ErrorIs(t, err, reading.ErrAlreadyCompleted)

	assert.Equal(t, int64(10000), f.accounts.users["u-free"].Balance)
	assert.Len(t, f.store.reviews, 1)
}

func TestService_CompleteSession_Concurrent(t *testing.T) {
	f := newFixture(t)
	id := f.readThrough(t, "t-premium")

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = f.service.CompleteSession(context.Background(), "t-premium", id, reading.CompleteInput{Rating: 3})
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t,
			errors.Is(err, reading.ErrAlreadyCompleted) || errors.Is(err, reading.ErrConcurrentUpdate),
			"unexpected error: %v", err)
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, int64(30000), f.accounts.users["u-premium"].Balance)
}

func TestService_DependencyFailures(t *testing.T) {
	t.Run("transient_is_retried", func(t *testing.T) {
		f := newFixture(t)
		f.store.failures = 2

		_, err := f.service.StartReading(context.Background(), "t-free", bookID)
		assert.NoError(t, err)
	})

	t.Run("exhausted", func(t *testing.T) {
		f := newFixture(t)
		f.store.failures = 10

		_, err := f.service.StartReading(context.Background(), "t-free", bookID)
		assertCode(t, err, "DEPENDENCY_UNAVAILABLE")
		assert.Empty(t, f.store.sessions)
	})
}

func TestService_GetSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	started, err := f.service.StartReading(ctx, "t-free", bookID)
	require.NoError(t, err)

	f.clock.Advance(30 * time.Second)
	view, err := f.service.GetSession(ctx, "t-free", started.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, 90, view.RemainingSeconds)
	assert.Len(t, view.Pages, 3)

	f.store.sessions[started.Session.ID].PaginationVersion = book.PaginationVersion + 1
	_, err = f.service.GetSession(ctx, "t-free", started.Session.ID)
	assert.ErrorIs(t, err, reading.ErrPaginationChanged)
}
