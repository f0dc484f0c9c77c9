// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package retry wraps calls to external collaborators (PostgreSQL, Redis) in a
bounded exponential backoff.

Classification:

  - [apperr.AppError] values are business outcomes (not found, conflict,
    state violations). They are returned immediately and never retried.
  - Any other error is treated as transient. Once the attempt budget is spent
    it is surfaced as [apperr.DependencyUnavailable].
*/
package retry

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/ctxutil"
)

// Policy bounds a retry loop.
type Policy struct {
	// Attempts is the total number of tries including the first one.
	Attempts uint

	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultPolicy returns the policy used for repository calls.
func DefaultPolicy(attempts uint) Policy {
	if attempts == 0 {
		attempts = 1
	}
	return Policy{
		Attempts:        attempts,
		InitialInterval: 50 * time.Millisecond,
		MaxInterval:     time.Second,
	}
}

func (policy Policy) backOff() backoff.BackOff {
	exponential := backoff.NewExponentialBackOff()
	if policy.InitialInterval > 0 {
		exponential.InitialInterval = policy.InitialInterval
	}
	if policy.MaxInterval > 0 {
		exponential.MaxInterval = policy.MaxInterval
	}
	return exponential
}

/*
Do runs operation until it succeeds, returns an [apperr.AppError], or the
attempt budget is exhausted.

Parameters:
  - context: cancellation stops the loop early
  - name: operation label used in logs (e.g. "session_find")

Returns:
  - T: the operation result
  - error: the AppError as-is, or DependencyUnavailable wrapping the last failure
*/
func Do[T any](context context.Context, policy Policy, name string, operation func() (T, error)) (T, error) {
	attempt := 0
	wrapped := func() (T, error) {
		attempt++
		result, err := operation()
		if err != nil && apperr.IsAppError(err) {
			return result, backoff.Permanent(err)
		}
		return result, err
	}

	notify := func(err error, wait time.Duration) {
		ctxutil.GetLogger(context).WarnContext(context, "dependency_call_retrying",
			slog.String("operation", name),
			slog.Int("attempt", attempt),
			slog.Duration("wait", wait),
			slog.Any("error", err),
		)
	}

	attempts := policy.Attempts
	if attempts == 0 {
		attempts = 1
	}

	result, err := backoff.Retry(context, wrapped,
		backoff.WithBackOff(policy.backOff()),
		backoff.WithMaxTries(attempts),
		backoff.WithNotify(notify),
	)
	if err == nil {
		return result, nil
	}
	if apperr.IsAppError(err) {
		return result, err
	}

	ctxutil.GetLogger(context).ErrorContext(context, "dependency_call_failed",
		slog.String("operation", name),
		slog.Int("attempts", attempt),
		slog.Any("error", err),
	)
	var zero T
	return zero, apperr.DependencyUnavailable(err)
}

// Exec is [Do] for operations that only return an error.
func Exec(context context.Context, policy Policy, name string, operation func() error) error {
	_, err := Do(context, policy, name, func() (struct{}, error) {
		return struct{}{}, operation()
	})
	return err
}
