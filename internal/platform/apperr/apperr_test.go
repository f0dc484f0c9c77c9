// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/platform/apperr"
)

/*
TestAppError_Is verifies that sentinels match by code through wrapping.
*/
func TestAppError_Is(t *testing.T) {
	sentinel := apperr.New("AT_LAST_PAGE", "Already on the last page", http.StatusConflict)

	wrapped := fmt.Errorf("advance: %w", sentinel.WithCause(errors.New("boom")))

	assert.True(t, errors.Is(wrapped, sentinel))
	assert.False(t, errors.Is(wrapped, apperr.Conflict("other")))

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.EqualError(t, ae.Cause, "boom")
}

/*
TestAppError_Kind checks the status to taxonomy mapping.
*/
func TestAppError_Kind(t *testing.T) {
	tests := []struct {
		name string
		err  *apperr.AppError
		kind apperr.Kind
	}{
		{"validation", apperr.ValidationError("bad"), apperr.KindValidation},
		{"unauthorized", apperr.Unauthorized("who"), apperr.KindAuthorization},
		{"forbidden", apperr.Forbidden("no"), apperr.KindAuthorization},
		{"conflict", apperr.Conflict("again"), apperr.KindState},
		{"rate_limited", apperr.RateLimited(3), apperr.KindState},
		{"dependency", apperr.DependencyUnavailable(errors.New("down")), apperr.KindDependency},
		{"internal", apperr.Internal(errors.New("x")), apperr.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.err.Kind())
		})
	}
}
