// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/platform/ctxutil"
	"github.com/taibuivan/folio/internal/platform/sec"
)

func TestRequestScope(t *testing.T) {
	background := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, ctxutil.GetRequestID(background))
		assert.Same(t, slog.Default(), ctxutil.GetLogger(background))
		assert.Nil(t, ctxutil.GetAuthUser(background))
		assert.Empty(t, ctxutil.GetToken(background))
	})

	t.Run("populated", func(t *testing.T) {
		ctx := ctxutil.WithRequestID(background, "req-1")
		ctx = ctxutil.WithLogger(ctx, logger)
		ctx = ctxutil.WithAuthUser(ctx, &sec.AuthClaims{UserID: "reader-7", Role: "reader"}, "raw.jwt.value")

		assert.Equal(t, "req-1", ctxutil.GetRequestID(ctx))
		assert.Same(t, logger, ctxutil.GetLogger(ctx))

		claims := ctxutil.GetAuthUser(ctx)
		require.NotNil(t, claims)
		assert.Equal(t, "reader-7", claims.UserID)
		assert.Equal(t, "raw.jwt.value", ctxutil.GetToken(ctx))
	})

	t.Run("typed_nil_logger", func(t *testing.T) {
		ctx := ctxutil.WithLogger(background, nil)
		assert.Same(t, slog.Default(), ctxutil.GetLogger(ctx))
	})
}
