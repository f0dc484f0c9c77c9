// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package validate collects field-level input errors and reports them as one
VALIDATION_ERROR.

Services validate domain input with a [Validator]. Handlers only reach for
[ErrInvalidJSON] and [RequiredError] when the payload shape itself is wrong.

	v := &validate.Validator{}
	v.Range("rating", input.Rating, 1, 5).NonNegative("donation_amount", input.Donation)
	if err := v.Err(); err != nil {
		return nil, err
	}
*/
package validate

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/pkg/uuid"
)

// ErrInvalidJSON is returned when the request body cannot be decoded.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

// Validator accumulates failures. It is single-use and not safe for
// concurrent use.
type Validator struct {
	errs []apperr.FieldError
}

func (v *Validator) check(failed bool, field, message string) *Validator {
	if failed {
		v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
	}
	return v
}

// # Text

// Required fails on an empty or whitespace-only value.
func (v *Validator) Required(field, value string) *Validator {
	return v.check(strings.TrimSpace(value) == "", field, "This field is required")
}

// MaxLen counts runes, so accented text is not penalised.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	return v.check(utf8.RuneCountInString(value) > max, field, fmt.Sprintf("Maximum %d characters", max))
}

func (v *Validator) MinLen(field, value string, min int) *Validator {
	return v.check(utf8.RuneCountInString(value) < min, field, fmt.Sprintf("Minimum %d characters", min))
}

func (v *Validator) Email(field, value string) *Validator {
	_, err := mail.ParseAddress(value)
	return v.check(err != nil, field, "Must be a valid email address")
}

func (v *Validator) UUID(field, value string) *Validator {
	return v.check(!uuid.Valid(value), field, "Must be a valid UUID")
}

// OneOf fails unless value is one of allowed.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	for _, candidate := range allowed {
		if value == candidate {
			return v
		}
	}
	return v.check(true, field, "Must be one of: "+strings.Join(allowed, ", "))
}

// # Numbers

// Range is inclusive on both ends.
func (v *Validator) Range(field string, value, min, max int) *Validator {
	return v.check(value < min || value > max, field, fmt.Sprintf("Must be between %d and %d", min, max))
}

// NonNegative guards amounts in minor currency units.
func (v *Validator) NonNegative(field string, value int64) *Validator {
	return v.check(value < 0, field, "Must not be negative")
}

// Custom records message for field when failed is true.
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	return v.check(failed, field, message)
}

// # Results

// Err returns the accumulated failures as one AppError, or nil.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// RequiredError builds a single-field validation error.
func RequiredError(field, message string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{Field: field, Message: message})
}
