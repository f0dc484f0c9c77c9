// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/dberr"
)

// bookRepository implements [Repository] using pgx.
type bookRepository struct {
	pool *pgxpool.Pool
}

// NewBookRepository constructs a PostgreSQL backed book store.
func NewBookRepository(pool *pgxpool.Pool) Repository {
	return &bookRepository{pool: pool}
}

/*
FindByID loads a single book with its full content.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *Book: the book
  - error: apperr.NotFound on absent rows
*/
func (repository *bookRepository) FindByID(context context.Context, id string) (*Book, error) {
	table := schema.CatalogBook
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM %s
		WHERE %s = $1`,
		strings.Join(table.SummaryColumns(), ", "), table.Content,
		table.Table,
		table.ID,
	)

	var book Book
	err := repository.pool.QueryRow(context, query, id).Scan(
		&book.ID,
		&book.Title,
		&book.Slug,
		&book.Author,
		&book.BaseRewardMoney,
		&book.RewardPoints,
		&book.RequiredLevel,
		&book.IsInitialBook,
		&book.CreatedAt,
		&book.UpdatedAt,
		&book.Content,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Book", "postgres_book_find_failed")
	}

	return &book, nil
}

/*
List returns catalogue summaries ordered by creation date, newest first.

The total is computed with a window function so a single round-trip serves
both the page and the pagination metadata.
*/
func (repository *bookRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Book, int, error) {
	table := schema.CatalogBook

	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE TRUE`,
		strings.Join(table.SummaryColumns(), ", "),
		table.Table,
	))

	args := []any{limit, offset}
	if filter.InitialOnly {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = TRUE", table.IsInitialBook))
	}
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s DESC, %s DESC LIMIT $1 OFFSET $2", table.CreatedAt, table.ID))

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_book_list_failed: %w", err)
	}
	defer rows.Close()

	books := []*Book{}
	total := 0
	for rows.Next() {
		var book Book
		if err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.Slug,
			&book.Author,
			&book.BaseRewardMoney,
			&book.RewardPoints,
			&book.RequiredLevel,
			&book.IsInitialBook,
			&book.CreatedAt,
			&book.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres_book_scan_failed: %w", err)
		}
		books = append(books, &book)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_book_list_failed: %w", err)
	}

	return books, total, nil
}

// Create inserts a new catalogue entry.
func (repository *bookRepository) Create(context context.Context, book *Book) error {
	table := schema.CatalogBook
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		table.Table,
		table.ID, table.Title, table.Slug, table.Author, table.Content,
		table.BaseRewardMoney, table.RewardPoints, table.RequiredLevel, table.IsInitialBook,
		table.CreatedAt, table.UpdatedAt,
	)

	_, err := repository.pool.Exec(context, query,
		book.ID,
		book.Title,
		book.Slug,
		book.Author,
		book.Content,
		book.BaseRewardMoney,
		book.RewardPoints,
		book.RequiredLevel,
		book.IsInitialBook,
		book.CreatedAt,
		book.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Book", "postgres_book_create_failed")
	}

	return nil
}
