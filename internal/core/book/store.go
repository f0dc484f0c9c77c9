// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import "context"

// # Repository Interfaces

// Repository defines the persistence contract for catalogue entries.
type Repository interface {
	// FindByID returns the book including its content, or apperr.NotFound.
	FindByID(ctx context.Context, id string) (*Book, error)

	// List returns book summaries (no content) and the total match count.
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Book, int, error)

	// Create persists a new book. Duplicate slugs map to apperr.Conflict.
	Create(ctx context.Context, book *Book) error
}

// PageCache stores paginated text. Implementations may lose entries at any time.
type PageCache interface {
	// Load returns the cached pages and whether they were present.
	Load(ctx context.Context, bookID string, pageSize int) ([]Page, bool, error)
	Store(ctx context.Context, bookID string, pageSize int, pages []Page) error
}
