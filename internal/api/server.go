// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api is the HTTP composition root: it mounts every domain router
behind one middleware chain and owns the [http.Server] lifecycle.

Routes:

	GET  /health             liveness
	GET  /ready              PostgreSQL and Redis probes
	/api/v1/auth             registration, login, profile
	/api/v1/account          wallet, reward history, tier changes
	/api/v1/books            catalogue and pagination
	/api/v1/reading          sessions, navigation, completion
*/
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/folio/internal/core/book"
	"github.com/taibuivan/folio/internal/core/reading"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/config"
	"github.com/taibuivan/folio/internal/platform/constants"
	"github.com/taibuivan/folio/internal/platform/middleware"
	"github.com/taibuivan/folio/internal/platform/respond"
	"github.com/taibuivan/folio/internal/users/account"
	"github.com/taibuivan/folio/internal/users/auth"
)

var (
	errRouteNotFound    = apperr.NotFound("Route")
	errMethodNotAllowed = apperr.New("METHOD_NOT_ALLOWED", "Method not allowed", http.StatusMethodNotAllowed)
)

// Handlers is everything [NewServer] mounts.
type Handlers struct {
	Liveness  http.HandlerFunc
	Readiness http.HandlerFunc

	Auth    *auth.Handler
	Account *account.Handler
	Book    *book.Handler
	Reading *reading.Handler
}

// Server owns the router and the listening socket.
type Server struct {
	httpServer *http.Server
	router     chi.Router
	log        *slog.Logger
}

// NewServer builds the router. ctx bounds background work started here
// (the rate limiter's eviction loop).
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	limiter := middleware.NewRateLimiter(ctx, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID(),
		middleware.Trace(),
		middleware.StructuredLogger(log),
		chimw.Timeout(constants.GlobalRequestTimeout),
		limiter.Handler,
		middleware.PanicRecovery(),
		middleware.Authenticate(verifier),
		middleware.CORS(cfg, cfg.AllowedOriginSuffix),
		chimw.CleanPath,
	)

	router.NotFound(func(writer http.ResponseWriter, request *http.Request) {
		respond.Error(writer, request, errRouteNotFound)
	})
	router.MethodNotAllowed(func(writer http.ResponseWriter, request *http.Request) {
		respond.Error(writer, request, errMethodNotAllowed)
	})

	router.Get("/health", h.Liveness)
	router.Get("/ready", h.Readiness)

	router.Route("/api/v1", func(v1 chi.Router) {
		v1.Mount("/auth", h.Auth.Routes())
		v1.Mount("/account", h.Account.Routes())
		v1.Mount("/books", h.Book.Routes())
		v1.Mount("/reading", h.Reading.Routes())
	})

	return &Server{
		router: router,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           router,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
			ErrorLog:          slog.NewLogLogger(log.Handler(), slog.LevelWarn),
		},
	}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

/*
Run serves until ctx is cancelled or the listener fails, then drains
in-flight requests for up to [constants.ShutdownTimeout].

Returns:
  - error: nil after a clean drain, otherwise the listen or shutdown failure
*/
func (s *Server) Run(ctx context.Context) error {
	listenErr := make(chan error, 1)
	go func() {
		s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
		listenErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-listenErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("api: listen: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("server_draining", slog.Duration("timeout", constants.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), constants.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("api: shutdown: %w", err)
	}
	return nil
}
