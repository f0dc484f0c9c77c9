// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/folio/internal/platform/middleware"
	requestutil "github.com/taibuivan/folio/internal/platform/request"
	"github.com/taibuivan/folio/internal/platform/respond"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for the catalogue.
type Handler struct {
	service *Service
}

// NewHandler constructs a new book [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the catalogue router mounted at /api/v1/books.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Post("/", handler.create)
	})

	return router
}

/*
GET /api/v1/books

Request:
  - initial: bool (only books offered to new accounts)
  - page, limit: int

Response:
  - 200: []Book with pagination meta
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	filter := Filter{InitialOnly: request.URL.Query().Get("initial") == "true"}

	books, total, err := handler.service.List(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, books, pagination.NewMeta(params, total))
}

/*
GET /api/v1/books/{id}

Response:
  - 200: Book (content excluded; it is served page by page through a reading session)
  - 404: ErrNotFound
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, book)
}

type createBookRequest struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	Content         string `json:"content"`
	BaseRewardMoney int64  `json:"base_reward_money"`
	RewardPoints    int64  `json:"reward_points"`
	RequiredLevel   int    `json:"required_level"`
	IsInitialBook   bool   `json:"is_initial_book"`
}

/*
POST /api/v1/books (admin)

Response:
  - 201: Book
  - 400: validation failure
  - 409: duplicate slug
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createBookRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.Create(request.Context(), CreateInput{
		Title:           input.Title,
		Author:          input.Author,
		Content:         input.Content,
		BaseRewardMoney: input.BaseRewardMoney,
		RewardPoints:    input.RewardPoints,
		RequiredLevel:   input.RequiredLevel,
		IsInitialBook:   input.IsInitialBook,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, book)
}
