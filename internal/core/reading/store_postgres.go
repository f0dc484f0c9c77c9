// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reading

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/dberr"
)

// PostgresRepository implements [SessionRepository] and [CompletionRepository].
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the reading store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// # Sessions

/*
Create stores a new active session inside a transaction that first deletes
the reader's previous active session for the same book.

A partial unique index on (userid, bookid) WHERE status = 'active' turns a
concurrent start into ErrConcurrentUpdate.
*/
func (repository *PostgresRepository) Create(context context.Context, session *Session) error {
	table := schema.ReadingSession

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_session_begin_failed: %w", err)
	}
	defer func() { _ = transaction.Rollback(context) }()

	supersede := fmt.Sprintf(
		"DELETE FROM %s WHERE %s = $1 AND %s = $2 AND %s = $3",
		table.Table, table.UserID, table.BookID, table.Status,
	)
	if _, err := transaction.Exec(context, supersede, session.UserID, session.BookID, StatusActive); err != nil {
		return fmt.Errorf("postgres_session_supersede_failed: %w", err)
	}

	columns := table.Columns()
	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	insert := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table.Table, strings.Join(columns, ", "), strings.Join(placeholders, ", "),
	)

	_, err = transaction.Exec(context, insert,
		session.ID,
		session.UserID,
		session.BookID,
		session.PageCount,
		session.PageSize,
		session.PaginationVersion,
		session.DwellSeconds,
		session.CurrentPage,
		session.ReadPages,
		session.DwellStart,
		session.Status,
		session.Version,
		session.EarnedMoney,
		session.EarnedPoints,
		session.CompletedAt,
		session.CreatedAt,
		session.UpdatedAt,
	)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return ErrConcurrentUpdate.WithCause(err)
		}
		return fmt.Errorf("postgres_session_create_failed: %w", err)
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_session_commit_failed: %w", err)
	}
	return nil
}

// FindByID loads a session by primary key.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Session, error) {
	table := schema.ReadingSession
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1",
		strings.Join(table.Columns(), ", "), table.Table, table.ID,
	)

	session := &Session{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&session.ID,
		&session.UserID,
		&session.BookID,
		&session.PageCount,
		&session.PageSize,
		&session.PaginationVersion,
		&session.DwellSeconds,
		&session.CurrentPage,
		&session.ReadPages,
		&session.DwellStart,
		&session.Status,
		&session.Version,
		&session.EarnedMoney,
		&session.EarnedPoints,
		&session.CompletedAt,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres_session_find_failed: %w", err)
	}
	return session, nil
}

// HasCompleted reports whether a completed session exists for the pair.
func (repository *PostgresRepository) HasCompleted(context context.Context, userID, bookID string) (bool, error) {
	table := schema.ReadingSession
	query := fmt.Sprintf(
		"SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2 AND %s = $3)",
		table.Table, table.UserID, table.BookID, table.Status,
	)

	var exists bool
	if err := repository.pool.QueryRow(context, query, userID, bookID, StatusCompleted).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_session_has_completed_failed: %w", err)
	}
	return exists, nil
}

// Update persists navigation state behind the optimistic version check.
func (repository *PostgresRepository) Update(context context.Context, session *Session, expectedVersion int64) error {
	table := schema.ReadingSession
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3, %s = $4, %s = $5, %s = %s + 1, %s = $6
		WHERE %s = $1 AND %s = $2 AND %s = '%s'`,
		table.Table,
		table.CurrentPage, table.ReadPages, table.DwellStart, table.Version, table.Version, table.UpdatedAt,
		table.ID, table.Version, table.Status, StatusActive,
	)

	tag, err := repository.pool.Exec(context, query,
		session.ID, expectedVersion,
		session.CurrentPage, session.ReadPages, session.DwellStart, session.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_session_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.explainMiss(context, repository.pool, session.ID)
	}

	session.Version = expectedVersion + 1
	return nil
}

// querier is satisfied by both the pool and a transaction.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// explainMiss turns a guarded write that touched no row into the precise error.
func (repository *PostgresRepository) explainMiss(context context.Context, db querier, id string) error {
	table := schema.ReadingSession
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1", table.Status, table.Table, table.ID)

	var status Status
	err := db.QueryRow(context, query, id).Scan(&status)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return ErrSessionNotFound
	case err != nil:
		return fmt.Errorf("postgres_session_status_failed: %w", err)
	case status == StatusCompleted:
		return ErrAlreadyCompleted
	default:
		return ErrConcurrentUpdate
	}
}

// # Completion

/*
Complete runs the completion as one transaction:
 1. flip the session to completed behind the version check
 2. insert the review (unique per session)
 3. apply the reward: ledger row (unique per session) and account credit
*/
func (repository *PostgresRepository) Complete(context context.Context, session *Session, expectedVersion int64, review *Review, grant RewardGrant) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_completion_begin_failed: %w", err)
	}
	defer func() { _ = transaction.Rollback(context) }()

	table := schema.ReadingSession
	markCompleted := fmt.Sprintf(`
		UPDATE %s
		SET %s = '%s', %s = $3, %s = $4, %s = $5, %s = %s + 1, %s = $5
		WHERE %s = $1 AND %s = $2 AND %s = '%s'`,
		table.Table,
		table.Status, StatusCompleted, table.EarnedMoney, table.EarnedPoints, table.CompletedAt,
		table.Version, table.Version, table.UpdatedAt,
		table.ID, table.Version, table.Status, StatusActive,
	)

	tag, err := transaction.Exec(context, markCompleted,
		session.ID, expectedVersion, session.EarnedMoney, session.EarnedPoints, session.CompletedAt,
	)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return ErrAlreadyCompleted.WithCause(err)
		}
		return fmt.Errorf("postgres_completion_mark_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.explainMiss(context, transaction, session.ID)
	}

	if err := createReview(context, transaction, review); err != nil {
		return err
	}
	if err := applyReward(context, transaction, grant); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_completion_commit_failed: %w", err)
	}

	session.Version = expectedVersion + 1
	return nil
}

func createReview(context context.Context, transaction pgx.Tx, review *Review) error {
	table := schema.ReadingReview
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		table.Table,
		table.ID, table.SessionID, table.UserID, table.BookID,
		table.Rating, table.Comment, table.DonationAmount, table.CreatedAt,
	)

	_, err := transaction.Exec(context, query,
		review.ID, review.SessionID, review.UserID, review.BookID,
		review.Rating, review.Comment, review.DonationAmount, review.CreatedAt,
	)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return ErrAlreadyCompleted.WithCause(err)
		}
		return fmt.Errorf("postgres_review_create_failed: %w", err)
	}
	return nil
}

// applyReward is idempotent per session: the ledger insert is skipped on a
// duplicate session id and the credit is only applied when it was recorded.
func applyReward(context context.Context, transaction pgx.Tx, grant RewardGrant) error {
	ledger := schema.FinanceRewardTransaction
	record := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (%s) DO NOTHING`,
		ledger.Table,
		ledger.ID, ledger.SessionID, ledger.UserID, ledger.MoneyDelta, ledger.PointsDelta, ledger.DonatedMoney, ledger.CreatedAt,
		ledger.SessionID,
	)

	tag, err := transaction.Exec(context, record,
		grant.ID, grant.SessionID, grant.UserID, grant.Money, grant.Points, grant.Donated,
	)
	if err != nil {
		return fmt.Errorf("postgres_reward_ledger_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyCompleted
	}

	account := schema.UserAccount
	credit := fmt.Sprintf(`
		UPDATE %s
		SET %s = %s + $2, %s = %s + $3, %s = NOW()
		WHERE %s = $1`,
		account.Table,
		account.Balance, account.Balance, account.Points, account.Points, account.UpdatedAt,
		account.ID,
	)

	tag, err = transaction.Exec(context, credit, grant.UserID, grant.Money, grant.Points)
	if err != nil {
		return fmt.Errorf("postgres_reward_credit_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "User", "postgres_reward_credit_failed")
	}
	return nil
}
