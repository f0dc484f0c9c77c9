// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/folio/internal/platform/ctxutil"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/pkg/clock"
	"github.com/taibuivan/folio/pkg/pagination"
	"github.com/taibuivan/folio/pkg/slug"
	"github.com/taibuivan/folio/pkg/uuid"
)

const (
	maxTitleLength  = 200
	maxAuthorLength = 120
)

// # Service Layer

// Service orchestrates catalogue reads, publishing and pagination.
type Service struct {
	repository Repository
	cache      PageCache
	clock      clock.Clock
}

// NewService constructs a new [Service]. cache may be nil.
func NewService(repository Repository, cache PageCache, clk clock.Clock) *Service {
	return &Service{repository: repository, cache: cache, clock: clk}
}

// Get returns a single book with content.
func (service *Service) Get(context context.Context, id string) (*Book, error) {
	return service.repository.FindByID(context, id)
}

/*
List returns a page of catalogue summaries.

Parameters:
  - context: context.Context
  - filter: Filter (e.g. initial books only)
  - params: pagination.Params

Returns:
  - []*Book: summaries without content
  - int: total matching books
*/
func (service *Service) List(context context.Context, filter Filter, params pagination.Params) ([]*Book, int, error) {
	return service.repository.List(context, filter, params.Limit, params.Offset())
}

// CreateInput holds the data required to publish a book.
type CreateInput struct {
	Title           string
	Author          string
	Content         string
	BaseRewardMoney int64
	RewardPoints    int64
	RequiredLevel   int
	IsInitialBook   bool
}

/*
Create validates and publishes a new book.

Description: Content must produce at least one page so every reading session
has something to read. The slug is derived from the title.

Returns:
  - *Book: the stored book
  - error: validation failures or apperr.Conflict on a duplicate slug
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Book, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Author = strings.TrimSpace(input.Author)

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, maxTitleLength).
		Required(FieldAuthor, input.Author).
		MaxLen(FieldAuthor, input.Author, maxAuthorLength).
		Custom(FieldContent, len(Paginate(input.Content, DefaultPageSize)) == 0, "must contain readable text").
		NonNegative(FieldBaseRewardMoney, input.BaseRewardMoney).
		NonNegative(FieldRewardPoints, input.RewardPoints).
		NonNegative(FieldRequiredLevel, int64(input.RequiredLevel))
	if err := validator.Err(); err != nil {
		return nil, err
	}

	id := uuid.New()
	bookSlug := slug.From(input.Title)
	if bookSlug == "" {
		bookSlug = id
	}

	now := service.clock.Now()
	book := &Book{
		ID:              id,
		Title:           input.Title,
		Slug:            bookSlug,
		Author:          input.Author,
		Content:         input.Content,
		BaseRewardMoney: input.BaseRewardMoney,
		RewardPoints:    input.RewardPoints,
		RequiredLevel:   input.RequiredLevel,
		IsInitialBook:   input.IsInitialBook,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := service.repository.Create(context, book); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "book_published",
		slog.String("book_id", book.ID),
		slog.String("slug", book.Slug),
	)
	return book, nil
}

/*
Pages returns the pagination of book at pageSize, served from the page cache
when possible.

Cache failures are logged and ignored: pages are always re-derivable from the
content.
*/
func (service *Service) Pages(context context.Context, book *Book, pageSize int) ([]Page, error) {
	logger := ctxutil.GetLogger(context)

	if service.cache != nil {
		pages, found, err := service.cache.Load(context, book.ID, pageSize)
		if err != nil {
			logger.WarnContext(context, "page_cache_load_failed", slog.String("book_id", book.ID), slog.Any("error", err))
		} else if found {
			return pages, nil
		}
	}

	started := time.Now()
	pages := Paginate(book.Content, pageSize)
	logger.DebugContext(context, "book_paginated",
		slog.String("book_id", book.ID),
		slog.Int("pages", len(pages)),
		slog.Duration("took", time.Since(started)),
	)

	if service.cache != nil {
		if err := service.cache.Store(context, book.ID, pageSize, pages); err != nil {
			logger.WarnContext(context, "page_cache_store_failed", slog.String("book_id", book.ID), slog.Any("error", err))
		}
	}

	return pages, nil
}
