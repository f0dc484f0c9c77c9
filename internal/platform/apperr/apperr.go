// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr is the single error type that crosses the service boundary.

An [AppError] pairs a stable machine code with a client-safe message and an
HTTP status. Domain packages declare sentinels with [New] and compare them
with [errors.Is], which matches on Code. The optional Cause is for logs only.

Every code falls into one [Kind], which is what clients branch on:

	validation     fix the request, never retry
	state          the request is valid but the session or account forbids it now
	authorization  sign in, or the caller lacks the rank or level
	dependency     storage or cache kept failing, retry later
	internal       a bug
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an [AppError] for retry and UI decisions.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindState         Kind = "state"
	KindAuthorization Kind = "authorization"
	KindDependency    Kind = "dependency"
	KindInternal      Kind = "internal"
)

// Generic codes. Domain packages add their own through [New].
const (
	CodeNotFound              = "NOT_FOUND"
	CodeUnauthenticated       = "UNAUTHENTICATED"
	CodeForbidden             = "FORBIDDEN"
	CodeConflict              = "CONFLICT"
	CodeValidation            = "VALIDATION_ERROR"
	CodeRateLimited           = "RATE_LIMITED"
	CodeInternal              = "INTERNAL_ERROR"
	CodeDependencyUnavailable = "DEPENDENCY_UNAVAILABLE"
)

// AppError is returned by every service method that can fail.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"error"`
	HTTPStatus int          `json:"-"`
	Cause      error        `json:"-"`
	Details    []FieldError `json:"details,omitempty"`
}

// FieldError is one failed input field of a VALIDATION_ERROR.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Cause }

// Is matches any [*AppError] with the same Code, so a sentinel still matches
// after [AppError.WithCause] copied it.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// WithCause returns a copy carrying cause. The receiver is left untouched so
// package-level sentinels stay shareable.
func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

// Kind derives the class from the HTTP status.
func (e *AppError) Kind() Kind {
	switch e.HTTPStatus {
	case http.StatusBadRequest, http.StatusMethodNotAllowed, http.StatusUnprocessableEntity:
		return KindValidation
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindAuthorization
	case http.StatusConflict, http.StatusNotFound, http.StatusTooManyRequests:
		return KindState
	case http.StatusServiceUnavailable:
		return KindDependency
	default:
		return KindInternal
	}
}

// New declares an error with an arbitrary code.
func New(code, msg string, status int) *AppError {
	return &AppError{Code: code, Message: msg, HTTPStatus: status}
}

// # Constructors

// NotFound reads "<resource> not found".
func NotFound(resource string) *AppError {
	return New(CodeNotFound, resource+" not found", http.StatusNotFound)
}

func Unauthorized(msg string) *AppError {
	return New(CodeUnauthenticated, msg, http.StatusUnauthorized)
}

func Forbidden(msg string) *AppError {
	return New(CodeForbidden, msg, http.StatusForbidden)
}

// Conflict is for unique-constraint violations.
func Conflict(msg string) *AppError {
	return New(CodeConflict, msg, http.StatusConflict)
}

func ValidationError(msg string, details ...FieldError) *AppError {
	err := New(CodeValidation, msg, http.StatusBadRequest)
	err.Details = details
	return err
}

func RateLimited(retryAfterSeconds int) *AppError {
	return New(CodeRateLimited, fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds), http.StatusTooManyRequests)
}

// Internal hides cause behind a generic message.
func Internal(cause error) *AppError {
	return New(CodeInternal, "An unexpected error occurred", http.StatusInternalServerError).WithCause(cause)
}

// DependencyUnavailable is what a collaborator failure becomes once retries
// are exhausted.
func DependencyUnavailable(cause error) *AppError {
	return New(CodeDependencyUnavailable, "Service temporarily unavailable, please try again", http.StatusServiceUnavailable).WithCause(cause)
}

// # Helpers

// IsAppError reports whether err's chain holds an [*AppError].
func IsAppError(err error) bool {
	return As(err) != nil
}

// As returns the first [*AppError] in err's chain, or nil.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}
