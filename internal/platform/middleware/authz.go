// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/constants"
	"github.com/taibuivan/folio/internal/platform/ctxutil"
	"github.com/taibuivan/folio/internal/platform/respond"
	"github.com/taibuivan/folio/internal/platform/sec"
)

var (
	errMalformedAuthorization = apperr.Unauthorized("Invalid authorization format")
	errInvalidToken           = apperr.Unauthorized("Invalid or expired token")
	errAnonymous              = apperr.Unauthorized("Authentication required")
	errRoleTooLow             = apperr.Forbidden("Insufficient permissions")
)

// TokenVerifier is satisfied by [sec.TokenService].
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// bearer splits "Bearer <token>". The scheme is case-insensitive.
func bearer(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	return token, found && strings.EqualFold(scheme, "bearer") && token != ""
}

/*
Authenticate resolves the caller from the Authorization header.

Requests without the header pass through anonymously; routes that need a
caller add [RequireAuth]. A header that is present but malformed, or a token
that fails verification, is rejected here. On success the claims, the raw
token and a logger tagged with user_id are put on the request context.
*/
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			header := request.Header.Get(constants.HeaderAuthorization)
			if header == "" {
				next.ServeHTTP(writer, request)
				return
			}

			token, ok := bearer(header)
			if !ok {
				respond.Error(writer, request, errMalformedAuthorization)
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				respond.Error(writer, request, errInvalidToken.WithCause(err))
				return
			}

			ctx := ctxutil.WithAuthUser(request.Context(), claims, token)
			ctx = ctxutil.WithLogger(ctx, ctxutil.GetLogger(ctx).With(slog.String("user_id", claims.UserID)))
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth rejects anonymous requests. Mount it after [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return RequireRole(sec.RoleReader)(next)
}

// RequireRole rejects callers ranked below role.
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.GetAuthUser(request.Context())
			switch {
			case claims == nil:
				respond.Error(writer, request, errAnonymous)
			case !sec.UserRole(claims.Role).AtLeast(role):
				respond.Error(writer, request, errRoleTooLow)
			default:
				next.ServeHTTP(writer, request)
			}
		})
	}
}
