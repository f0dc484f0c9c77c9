// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/dberr"
	"github.com/taibuivan/folio/internal/users/auth"
)

// PostgresRepository implements [Repository].
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a new [PostgresRepository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Update modifies the mutable fields of an active account.
func (repository *PostgresRepository) Update(context context.Context, user *auth.User) error {
	table := schema.UserAccount
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5
		WHERE %s = $1 AND %s IS NULL`,
		table.Table,
		table.DisplayName, table.Plan, table.Level, table.UpdatedAt,
		table.ID, table.DeletedAt,
	)

	tag, err := repository.pool.Exec(context, query, user.ID, user.DisplayName, user.Plan, user.Level, user.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "User", "postgres_account_update_failed")
	}
	if tag.RowsAffected() == 0 {
		return errUserNotFound
	}
	return nil
}

// SoftDelete is idempotent: deleting an already deleted account reports NotFound.
func (repository *PostgresRepository) SoftDelete(context context.Context, userID string, at time.Time) error {
	table := schema.UserAccount
	query := fmt.Sprintf(
		"UPDATE %s SET %s = $2, %s = $2 WHERE %s = $1 AND %s IS NULL",
		table.Table, table.DeletedAt, table.UpdatedAt, table.ID, table.DeletedAt,
	)

	tag, err := repository.pool.Exec(context, query, userID, at)
	if err != nil {
		return fmt.Errorf("postgres_account_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errUserNotFound
	}
	return nil
}

/*
ListRewards pages through the reader's ledger.

The session join recovers the book, which the ledger row does not carry.
*/
func (repository *PostgresRepository) ListRewards(context context.Context, userID string, limit, offset int) ([]RewardEntry, int, error) {
	ledger := schema.FinanceRewardTransaction
	session := schema.ReadingSession
	book := schema.CatalogBook

	query := fmt.Sprintf(`
		SELECT r.%s, r.%s, s.%s, b.%s, r.%s, r.%s, r.%s, r.%s, COUNT(*) OVER() AS total_count
		FROM %s r
		JOIN %s s ON s.%s = r.%s
		JOIN %s b ON b.%s = s.%s
		WHERE r.%s = $1
		ORDER BY r.%s DESC, r.%s DESC
		LIMIT $2 OFFSET $3`,
		ledger.ID, ledger.SessionID, session.BookID, book.Title,
		ledger.MoneyDelta, ledger.PointsDelta, ledger.DonatedMoney, ledger.CreatedAt,
		ledger.Table,
		session.Table, session.ID, ledger.SessionID,
		book.Table, book.ID, session.BookID,
		ledger.UserID,
		ledger.CreatedAt, ledger.ID,
	)

	rows, err := repository.pool.Query(context, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_reward_list_failed: %w", err)
	}
	defer rows.Close()

	entries := []RewardEntry{}
	total := 0
	for rows.Next() {
		var entry RewardEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.SessionID,
			&entry.BookID,
			&entry.BookTitle,
			&entry.Money,
			&entry.Points,
			&entry.Donated,
			&entry.CreatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres_reward_scan_failed: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_reward_list_failed: %w", err)
	}

	return entries, total, nil
}
