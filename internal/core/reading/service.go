// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reading

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/taibuivan/folio/internal/core/book"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/ctxutil"
	"github.com/taibuivan/folio/internal/platform/retry"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/internal/users/auth"
	"github.com/taibuivan/folio/pkg/clock"
	"github.com/taibuivan/folio/pkg/pointer"
	"github.com/taibuivan/folio/pkg/uuid"
)

const (
	MinRating        = 1
	MaxRating        = 5
	MaxCommentLength = 500

	FieldDirection = "direction"
	FieldRating    = "rating"
	FieldComment   = "comment"
	FieldDonation  = "donation_amount"
)

// # Collaborators

// Authenticator resolves an access token to a user ID.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

// BookCatalog loads books and their pagination.
type BookCatalog interface {
	Get(ctx context.Context, id string) (*book.Book, error)
	Pages(ctx context.Context, b *book.Book, pageSize int) ([]book.Page, error)
}

// UserFinder loads reader accounts.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*auth.User, error)
}

// Policy holds the reading rules.
type Policy struct {
	Dwell    time.Duration
	PageSize int
	Retry    retry.Policy
}

// # Service Layer

// Service coordinates sessions, the dwell gate and completion rewards.
type Service struct {
	authenticator Authenticator
	books         BookCatalog
	users         UserFinder
	sessions      SessionRepository
	completions   CompletionRepository
	clock         clock.Clock
	policy        Policy
	tracer        trace.Tracer
}

// NewService constructs a new [Service].
func NewService(
	authenticator Authenticator,
	books BookCatalog,
	users UserFinder,
	sessions SessionRepository,
	completions CompletionRepository,
	clk clock.Clock,
	policy Policy,
) *Service {
	if policy.PageSize <= 0 {
		policy.PageSize = book.DefaultPageSize
	}
	return &Service{
		authenticator: authenticator,
		books:         books,
		users:         users,
		sessions:      sessions,
		completions:   completions,
		clock:         clk,
		policy:        policy,
		tracer:        otel.Tracer("folio/reading"),
	}
}

// SessionView is a session plus the projections a reader UI needs.
type SessionView struct {
	Session          *Session    `json:"session"`
	Pages            []book.Page `json:"pages,omitempty"`
	RemainingSeconds int         `json:"remaining_seconds"`
	CanAdvance       bool        `json:"can_advance"`
	IsComplete       bool        `json:"is_complete"`
}

func newView(session *Session, pages []book.Page, now time.Time) *SessionView {
	remaining := session.Remaining(now)
	return &SessionView{
		Session:          session,
		Pages:            pages,
		RemainingSeconds: int((remaining + time.Second - 1) / time.Second),
		CanAdvance:       remaining == 0 && session.CurrentPage < session.PageCount-1,
		IsComplete:       session.IsComplete(),
	}
}

// # Reading Flow

/*
StartReading opens a new session for the caller on bookID.

Description: Authenticates, enforces the level gate, refuses books the caller
already completed, paginates, and stores a fresh session that supersedes any
active one for the same book.

Returns:
  - *SessionView: the session, all pages and the dwell countdown
  - error: ErrUnauthenticated, apperr.NotFound, ErrInsufficientLevel,
    ErrAlreadyCompleted or DEPENDENCY_UNAVAILABLE
*/
func (service *Service) StartReading(context context.Context, token, bookID string) (view *SessionView, err error) {
	context, span := service.tracer.Start(context, "reading.start", trace.WithAttributes(attribute.String("book.id", bookID)))
	defer func() { endSpan(span, err) }()

	userID, err := service.authenticate(context, token)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("user.id", userID))

	target, err := retry.Do(context, service.policy.Retry, "book_find", func() (*book.Book, error) {
		return service.books.Get(context, bookID)
	})
	if err != nil {
		return nil, err
	}

	reader, err := service.loadUser(context, userID)
	if err != nil {
		return nil, err
	}
	if reader.Level < target.RequiredLevel {
		return nil, ErrInsufficientLevel
	}

	completed, err := retry.Do(context, service.policy.Retry, "session_has_completed", func() (bool, error) {
		return service.sessions.HasCompleted(context, userID, target.ID)
	})
	if err != nil {
		return nil, err
	}
	if completed {
		return nil, ErrAlreadyCompleted
	}

	pages, err := service.books.Pages(context, target, service.policy.PageSize)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, apperr.Internal(fmt.Errorf("reading: book %s has no readable pages", target.ID))
	}

	now := service.clock.Now()
	session := NewSession(uuid.New(), userID, target.ID, len(pages), service.policy.PageSize, service.policy.Dwell, now)

	if err := retry.Exec(context, service.policy.Retry, "session_create", func() error {
		return service.sessions.Create(context, session)
	}); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "reading_session_started",
		slog.String("session_id", session.ID),
		slog.String("user_id", userID),
		slog.String("book_id", target.ID),
		slog.Int("page_count", session.PageCount),
	)
	return newView(session, pages, now), nil
}

/*
GetSession returns the caller's session with its pages and dwell countdown.

Pages are omitted for completed sessions.
*/
func (service *Service) GetSession(context context.Context, token, sessionID string) (view *SessionView, err error) {
	context, span := service.tracer.Start(context, "reading.get", trace.WithAttributes(attribute.String("session.id", sessionID)))
	defer func() { endSpan(span, err) }()

	session, err := service.loadOwned(context, token, sessionID)
	if err != nil {
		return nil, err
	}

	var pages []book.Page
	if session.Status == StatusActive {
		target, err := retry.Do(context, service.policy.Retry, "book_find", func() (*book.Book, error) {
			return service.books.Get(context, session.BookID)
		})
		if err != nil {
			return nil, err
		}
		if pages, err = service.books.Pages(context, target, session.PageSize); err != nil {
			return nil, err
		}
		if len(pages) != session.PageCount {
			return nil, ErrPaginationChanged
		}
	}

	return newView(session, pages, service.clock.Now()), nil
}

/*
RequestPageAdvance moves the caller's session one page forward or backward.

State machine errors (ErrNotYetEligible, ErrAtLastPage, ErrAtFirstPage,
ErrAlreadyCompleted) are returned verbatim. A concurrent write yields
ErrConcurrentUpdate.
*/
func (service *Service) RequestPageAdvance(context context.Context, token, sessionID string, direction Direction) (view *SessionView, err error) {
	context, span := service.tracer.Start(context, "reading.navigate", trace.WithAttributes(
		attribute.String("session.id", sessionID),
		attribute.String("direction", string(direction)),
	))
	defer func() { endSpan(span, err) }()

	if direction != DirectionForward && direction != DirectionBackward {
		return nil, validate.RequiredError(FieldDirection, "Must be one of: forward, backward")
	}

	session, err := service.loadOwned(context, token, sessionID)
	if err != nil {
		return nil, err
	}

	expected := session.Version
	now := service.clock.Now()

	if direction == DirectionForward {
		err = session.Advance(now)
	} else {
		err = session.Retreat(now)
	}
	if err != nil {
		return nil, err
	}

	if err := retry.Exec(context, service.policy.Retry, "session_update", func() error {
		return service.sessions.Update(context, session, expected)
	}); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).DebugContext(context, "reading_page_changed",
		slog.String("session_id", session.ID),
		slog.String("direction", string(direction)),
		slog.Int("current_page", session.CurrentPage),
	)
	return newView(session, nil, now), nil
}

// CompleteInput is the review submitted with a completion.
type CompleteInput struct {
	Rating   int
	Comment  string
	Donation int64
}

// CompletionResult reports what was paid.
type CompletionResult struct {
	Outcome RewardOutcome `json:"reward"`

	// Credited is the money added to the balance after the donation.
	Credited int64   `json:"credited_money"`
	Review   *Review `json:"review"`
}

/*
CompleteSession finalises the caller's session, stores the review and pays
the reward atomically.

Description: The donation comes out of the earned money, so it may not exceed
it. Completing twice, or racing two completions, pays once and the loser gets
ErrAlreadyCompleted.

The ledger row (the money delta listed by account.ListRewards) holds the
credited money, net of the donation, while Outcome reports the gross reward.

Returns:
  - *CompletionResult: payout and stored review
  - error: validation failures, ErrIncomplete, ErrAlreadyCompleted,
    ErrInsufficientLevel or DEPENDENCY_UNAVAILABLE
*/
func (service *Service) CompleteSession(context context.Context, token, sessionID string, input CompleteInput) (result *CompletionResult, err error) {
	context, span := service.tracer.Start(context, "reading.complete", trace.WithAttributes(attribute.String("session.id", sessionID)))
	defer func() { endSpan(span, err) }()

	comment := strings.TrimSpace(input.Comment)
	validator := &validate.Validator{}
	validator.Range(FieldRating, input.Rating, MinRating, MaxRating).
		MaxLen(FieldComment, comment, MaxCommentLength).
		NonNegative(FieldDonation, input.Donation)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	session, err := service.loadOwned(context, token, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == StatusCompleted {
		return nil, ErrAlreadyCompleted
	}

	target, err := retry.Do(context, service.policy.Retry, "book_find", func() (*book.Book, error) {
		return service.books.Get(context, session.BookID)
	})
	if err != nil {
		return nil, err
	}
	reader, err := service.loadUser(context, session.UserID)
	if err != nil {
		return nil, err
	}

	expected := session.Version
	now := service.clock.Now()
	outcome, err := session.Complete(now, RewardTerms{
		BaseMoney:     target.BaseRewardMoney,
		BasePoints:    target.RewardPoints,
		Plan:          reader.Plan,
		UserLevel:     reader.Level,
		RequiredLevel: target.RequiredLevel,
	})
	if err != nil {
		return nil, err
	}

	if input.Donation > outcome.EarnedMoney {
		return nil, validate.RequiredError(FieldDonation, fmt.Sprintf("Must be at most %d", outcome.EarnedMoney))
	}

	review := &Review{
		ID:             uuid.New(),
		SessionID:      session.ID,
		UserID:         session.UserID,
		BookID:         session.BookID,
		Rating:         input.Rating,
		Comment:        pointer.NonZero(comment),
		DonationAmount: input.Donation,
		CreatedAt:      now,
	}
	grant := RewardGrant{
		ID:        uuid.New(),
		SessionID: session.ID,
		UserID:    session.UserID,
		Money:     outcome.EarnedMoney - input.Donation,
		Points:    outcome.EarnedPoints,
		Donated:   input.Donation,
	}

	if err := retry.Exec(context, service.policy.Retry, "session_complete", func() error {
		return service.completions.Complete(context, session, expected, review, grant)
	}); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "reading_session_completed",
		slog.String("session_id", session.ID),
		slog.String("user_id", session.UserID),
		slog.String("book_id", session.BookID),
		slog.Int64("earned_money", outcome.EarnedMoney),
		slog.Int64("earned_points", outcome.EarnedPoints),
		slog.Int64("donated", input.Donation),
	)

	return &CompletionResult{Outcome: outcome, Credited: grant.Money, Review: review}, nil
}

// # Helpers

func (service *Service) authenticate(context context.Context, token string) (string, error) {
	userID, err := service.authenticator.Authenticate(context, token)
	if err != nil || userID == "" {
		return "", ErrUnauthenticated.WithCause(err)
	}
	return userID, nil
}

// loadUser maps a missing account to ErrUnauthenticated: the token outlived it.
func (service *Service) loadUser(context context.Context, userID string) (*auth.User, error) {
	reader, err := retry.Do(context, service.policy.Retry, "user_find", func() (*auth.User, error) {
		return service.users.FindByID(context, userID)
	})
	if errors.Is(err, apperr.NotFound("User")) {
		return nil, ErrUnauthenticated.WithCause(err)
	}
	return reader, err
}

// loadOwned authenticates the caller and loads one of their sessions.
func (service *Service) loadOwned(context context.Context, token, sessionID string) (*Session, error) {
	userID, err := service.authenticate(context, token)
	if err != nil {
		return nil, err
	}

	session, err := retry.Do(context, service.policy.Retry, "session_find", func() (*Session, error) {
		return service.sessions.FindByID(context, sessionID)
	})
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrNotOwner
	}
	if session.Status == StatusActive && session.PaginationVersion != book.PaginationVersion {
		return nil, ErrPaginationChanged
	}
	return session, nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
