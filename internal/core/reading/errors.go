// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reading

import (
	"net/http"

	"github.com/taibuivan/folio/internal/platform/apperr"
)

// # Session State Errors

var (
	ErrNotYetEligible = apperr.New("NOT_YET_ELIGIBLE",
		"The minimum reading time for this page has not elapsed", http.StatusConflict)

	ErrAtLastPage = apperr.New("AT_LAST_PAGE",
		"Already on the last page", http.StatusConflict)

	ErrAtFirstPage = apperr.New("AT_FIRST_PAGE",
		"Already on the first page", http.StatusConflict)

	ErrAlreadyCompleted = apperr.New("ALREADY_COMPLETED",
		"This book has already been completed and rewarded", http.StatusConflict)

	ErrIncomplete = apperr.New("INCOMPLETE_SESSION",
		"Every page must be read before completing", http.StatusConflict)

	ErrConcurrentUpdate = apperr.New("CONCURRENT_UPDATE",
		"The session was modified by another request, reload and retry", http.StatusConflict)

	ErrPaginationChanged = apperr.New("PAGINATION_CHANGED",
		"This session was paginated by an older version, start the book again", http.StatusConflict)
)

// # Authorization Errors

var (
	ErrInsufficientLevel = apperr.New("INSUFFICIENT_LEVEL",
		"Your level is too low for this book", http.StatusForbidden)

	ErrUnauthenticated = apperr.Unauthorized("Authentication required")

	ErrNotOwner = apperr.Forbidden("This reading session belongs to another reader")

	ErrSessionNotFound = apperr.NotFound("Reading session")
)
