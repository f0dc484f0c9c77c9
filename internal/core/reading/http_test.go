// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reading_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/core/reading"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/middleware"
	"github.com/taibuivan/folio/internal/platform/sec"
)

type verifier tokenTable

func (v verifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	userID, ok := v[token]
	if !ok {
		return nil, apperr.Unauthorized("Invalid or expired token")
	}
	return &sec.AuthClaims{UserID: userID, Role: string(sec.RoleReader)}, nil
}

func newRouter(f *fixture) http.Handler {
	tokens := verifier{"t-free": "u-free", "t-other": "u-other"}
	return middleware.Authenticate(tokens)(reading.NewHandler(f.service).Routes())
}

func call(t *testing.T, router http.Handler, method, path, token, body string) (int, map[string]any) {
	t.Helper()
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return recorder.Code, envelope
}

func TestHandler_ReadingFlow(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)

	status, body := call(t, router, http.MethodPost, "/sessions", "t-free", `{"book_id":"`+bookID+`"}`)
	require.Equal(t, http.StatusCreated, status)
	data := body["data"].(map[string]any)
	session := data["session"].(map[string]any)
	id := session["id"].(string)
	assert.Len(t, data["pages"], 3)
	assert.EqualValues(t, 120, data["remaining_seconds"])

	status, body = call(t, router, http.MethodPost, "/sessions/"+id+"/navigate", "t-free", `{"direction":"forward"}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "NOT_YET_ELIGIBLE", body["code"])

	status, body = call(t, router, http.MethodGet, "/sessions/"+id, "t-other", "")
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", body["code"])

	for range 2 {
		f.clock.Advance(dwell)
		status, _ = call(t, router, http.MethodPost, "/sessions/"+id+"/navigate", "t-free", `{"direction":"forward"}`)
		require.Equal(t, http.StatusOK, status)
	}

	status, body = call(t, router, http.MethodPost, "/sessions/"+id+"/complete", "t-free", `{"rating":5,"comment":"great","donation_amount":1000}`)
	require.Equal(t, http.StatusOK, status)
	result := body["data"].(map[string]any)
	assert.EqualValues(t, 9000, result["credited_money"])

	status, body = call(t, router, http.MethodPost, "/sessions/"+id+"/complete", "t-free", `{"rating":5}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "ALREADY_COMPLETED", body["code"])
}

func TestHandler_Rejects(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)

	t.Run("anonymous", func(t *testing.T) {
		status, body := call(t, router, http.MethodPost, "/sessions", "", `{"book_id":"`+bookID+`"}`)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "UNAUTHENTICATED", body["code"])
	})

	t.Run("bad_book_id", func(t *testing.T) {
		status, body := call(t, router, http.MethodPost, "/sessions", "t-free", `{"book_id":"nope"}`)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "VALIDATION_ERROR", body["code"])
	})

	t.Run("unknown_field", func(t *testing.T) {
		status, _ := call(t, router, http.MethodPost, "/sessions", "t-free", `{"book":"x"}`)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("bad_session_id", func(t *testing.T) {
		status, _ := call(t, router, http.MethodGet, "/sessions/not-a-uuid", "t-free", "")
		assert.Equal(t, http.StatusBadRequest, status)
	})
}
