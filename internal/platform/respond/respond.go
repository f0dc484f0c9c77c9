// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package respond writes the JSON envelopes every handler returns.

Success bodies are {"data": ...} with an optional "meta" block for lists.
Error bodies carry the machine-readable code and its kind so the reader app
can tell "wait longer" (NOT_YET_ELIGIBLE, kind state) apart from "try again
later" (DEPENDENCY_UNAVAILABLE, kind dependency) without parsing messages.
*/
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/ctxutil"
	"github.com/taibuivan/folio/pkg/pagination"
)

// dependencyRetryAfter is advertised on 503 responses.
const dependencyRetryAfter = 5

type envelope struct {
	Data any              `json:"data"`
	Meta *pagination.Meta `json:"meta,omitempty"`
}

// ErrorEnvelope is the body of every non-2xx response.
type ErrorEnvelope struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Kind    apperr.Kind         `json:"kind"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// JSON writes payload as-is with statusCode.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// # Success

func OK(writer http.ResponseWriter, data any) {
	Status(writer, http.StatusOK, data)
}

func Created(writer http.ResponseWriter, data any) {
	Status(writer, http.StatusCreated, data)
}

// Status wraps data in the success envelope under an explicit code.
func Status(writer http.ResponseWriter, statusCode int, data any) {
	JSON(writer, statusCode, envelope{Data: data})
}

// Paginated writes a list page together with its [pagination.Meta].
func Paginated(writer http.ResponseWriter, data any, metadata pagination.Meta) {
	JSON(writer, http.StatusOK, envelope{Data: data, Meta: &metadata})
}

func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

// # Failure

/*
Error renders err as an [ErrorEnvelope].

Errors outside the [apperr.AppError] family become INTERNAL_ERROR and their
text stays in the logs. Internal and dependency failures are logged with the
cause; state and validation failures are routine and are not.
*/
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	context := request.Context()
	logger := ctxutil.GetLogger(context).With(slog.String("request_id", ctxutil.GetRequestID(context)))

	appError := apperr.As(err)
	if appError == nil {
		logger.ErrorContext(context, "unhandled_error_swallowed", slog.String("error", err.Error()))
		appError = apperr.Internal(err)
	}

	kind := appError.Kind()
	switch kind {
	case apperr.KindDependency:
		writer.Header().Set("Retry-After", strconv.Itoa(dependencyRetryAfter))
		logger.WarnContext(context, "api_dependency_unavailable",
			slog.String("code", appError.Code),
			slog.Any("cause", appError.Cause),
		)
	case apperr.KindInternal:
		logger.ErrorContext(context, "api_server_error",
			slog.String("code", appError.Code),
			slog.Any("cause", appError.Cause),
		)
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Error:   appError.Message,
		Code:    appError.Code,
		Kind:    kind,
		Details: appError.Details,
	})
}
