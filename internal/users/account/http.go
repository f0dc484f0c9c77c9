// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/folio/internal/platform/middleware"
	requestutil "github.com/taibuivan/folio/internal/platform/request"
	"github.com/taibuivan/folio/internal/platform/respond"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/users/auth"
	"github.com/taibuivan/folio/pkg/pagination"
)

// Handler implements the HTTP layer for account progression.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] mounted at /api/v1/account.
//
// # Endpoints
//   - GET    /wallet            : Balance, points, level and plan.
//   - GET    /rewards           : Reward ledger, newest first.
//   - PATCH  /profile           : Edit the display name.
//   - DELETE /profile           : Close the account.
//   - PUT    /users/{id}/tier   : Change plan or level (admin).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/wallet", handler.getWallet)
	router.Get("/rewards", handler.listRewards)
	router.Patch("/profile", handler.updateProfile)
	router.Delete("/profile", handler.deleteProfile)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Put("/users/{id}/tier", handler.changeTier)
	})

	return router
}

// getWallet handles GET /api/v1/account/wallet.
func (handler *Handler) getWallet(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	wallet, err := handler.accountService.GetWallet(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, wallet)
}

/*
GET /api/v1/account/rewards

Request:
  - page, limit: int

Response:
  - 200: []RewardEntry with pagination meta
*/
func (handler *Handler) listRewards(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	entries, total, err := handler.accountService.ListRewards(request.Context(), claims.UserID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, entries, pagination.NewMeta(params, total))
}

type updateProfileRequest struct {
	DisplayName *string `json:"display_name"`
}

// updateProfile handles PATCH /api/v1/account/profile.
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateProfileRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateProfile(request.Context(), claims.UserID, UpdateProfileInput{
		DisplayName: input.DisplayName,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// deleteProfile handles DELETE /api/v1/account/profile.
func (handler *Handler) deleteProfile(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.DeleteAccount(request.Context(), claims.UserID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

type changeTierRequest struct {
	Plan  *auth.Plan `json:"plan"`
	Level *int       `json:"level"`
}

/*
PUT /api/v1/account/users/{id}/tier (admin)

Response:
  - 200: User
  - 400: unknown plan, level below 1, or empty body
  - 404: user not found
*/
func (handler *Handler) changeTier(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changeTierRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.ChangeTier(request.Context(), id, TierInput{Plan: input.Plan, Level: input.Level})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
