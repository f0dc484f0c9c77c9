// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reading

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/folio/internal/platform/middleware"
	requestutil "github.com/taibuivan/folio/internal/platform/request"
	"github.com/taibuivan/folio/internal/platform/respond"
	"github.com/taibuivan/folio/internal/platform/validate"
)

// Handler exposes reading sessions over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a new reading [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router mounted at /api/v1/reading.
//
// # Endpoints
//   - POST /sessions               : Start reading a book.
//   - GET  /sessions/{id}          : Session state, pages and countdown.
//   - POST /sessions/{id}/navigate : Move forward or backward one page.
//   - POST /sessions/{id}/complete : Review and collect the reward.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/sessions", handler.start)
	router.Get("/sessions/{id}", handler.get)
	router.Post("/sessions/{id}/navigate", handler.navigate)
	router.Post("/sessions/{id}/complete", handler.complete)

	return router
}

type startRequest struct {
	BookID string `json:"book_id"`
}

type navigateRequest struct {
	Direction Direction `json:"direction"`
}

type completeRequest struct {
	Rating         int    `json:"rating"`
	Comment        string `json:"comment"`
	DonationAmount int64  `json:"donation_amount"`
}

/*
POST /api/v1/reading/sessions

Response:
  - 201: SessionView
  - 403: INSUFFICIENT_LEVEL
  - 404: book not found
  - 409: ALREADY_COMPLETED
*/
func (handler *Handler) start(writer http.ResponseWriter, request *http.Request) {
	token, err := requestutil.BearerToken(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input startRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required("book_id", input.BookID).UUID("book_id", input.BookID)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.service.StartReading(request.Context(), token, input.BookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, view)
}

// get returns the caller's session.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	token, err := requestutil.BearerToken(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.service.GetSession(request.Context(), token, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, view)
}

/*
POST /api/v1/reading/sessions/{id}/navigate

Response:
  - 200: SessionView without pages
  - 409: NOT_YET_ELIGIBLE, AT_LAST_PAGE, AT_FIRST_PAGE, CONCURRENT_UPDATE
*/
func (handler *Handler) navigate(writer http.ResponseWriter, request *http.Request) {
	token, err := requestutil.BearerToken(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input navigateRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.service.RequestPageAdvance(request.Context(), token, id, input.Direction)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, view)
}

/*
POST /api/v1/reading/sessions/{id}/complete

Response:
  - 200: CompletionResult
  - 400: rating, comment or donation invalid
  - 409: INCOMPLETE_SESSION, ALREADY_COMPLETED
*/
func (handler *Handler) complete(writer http.ResponseWriter, request *http.Request) {
	token, err := requestutil.BearerToken(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input completeRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.CompleteSession(request.Context(), token, id, CompleteInput{
		Rating:   input.Rating,
		Comment:  input.Comment,
		Donation: input.DonationAmount,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}
