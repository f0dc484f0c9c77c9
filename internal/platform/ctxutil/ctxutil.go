// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil carries per-request values (request ID, logger, caller
// identity) through [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/folio/internal/platform/sec"
)

type (
	requestIDKey struct{}
	loggerKey    struct{}
	identityKey  struct{}
)

// identity is what Authenticate learned about the caller. The raw token is
// kept because the reading service re-authenticates it on every operation.
type identity struct {
	claims *sec.AuthClaims
	token  string
}

// # Request Tracing

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// GetRequestID returns "" outside an HTTP request.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// # Structured Logging

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger falls back to [slog.Default] so background work can log too.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// # Identity

// WithAuthUser stores verified claims along with the token they came from.
func WithAuthUser(ctx context.Context, claims *sec.AuthClaims, token string) context.Context {
	return context.WithValue(ctx, identityKey{}, identity{claims: claims, token: token})
}

// GetAuthUser returns nil for anonymous requests.
func GetAuthUser(ctx context.Context) *sec.AuthClaims {
	caller, _ := ctx.Value(identityKey{}).(identity)
	return caller.claims
}

// GetToken returns "" for anonymous requests.
func GetToken(ctx context.Context) string {
	caller, _ := ctx.Value(identityKey{}).(identity)
	return caller.token
}
