// Package api implements the local preview server.
//
// The server exposes board rendering over HTTP so a browser can be used
// as a live preview while iterating on a topology: change a query
// parameter, refresh, and get the regenerated drawing. It shares the
// pipeline Runner with the CLI, so cached plans and artifacts are reused
// across both entry points.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ringforge/ringforge/pkg/errors"
	"github.com/ringforge/ringforge/pkg/pipeline"
	"github.com/ringforge/ringforge/pkg/store"
)

// Server is the preview HTTP server.
type Server struct {
	Addr   string
	router *chi.Mux
	server *http.Server
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
}

// NewServer creates a preview server backed by the given runner and store.
// The store may be nil, in which case the plan endpoints return 404.
func NewServer(addr string, runner *pipeline.Runner, s store.Store, logger *log.Logger) *Server {
	srv := &Server{
		Addr:   addr,
		router: chi.NewRouter(),
		runner: runner,
		store:  s,
		logger: logger,
	}

	srv.setupRoutes()

	srv.server = &http.Server{
		Addr:         addr,
		Handler:      srv.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return srv
}

// setupRoutes configures all routes.
func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.logRequests)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Get("/health", s.handleHealth)

	s.router.Get("/board.{format}", s.handleBoard)
	s.router.Get("/network.svg", s.handleNetwork)

	s.router.Get("/plans", s.handleListPlans)
	s.router.Get("/plans/{name}", s.handleGetPlan)
}

// Start starts the server and blocks until it stops.
func (s *Server) Start() error {
	s.logger.Info("preview server listening", "addr", s.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Response is the JSON envelope for non-artifact endpoints.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Error writes a JSON error response.
func (s *Server) Error(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(Response{Success: false, Error: message})
}

// Success writes a JSON success response.
func (s *Server) Success(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(Response{Success: true, Data: data})
}

// statusFor maps pipeline error codes to HTTP status codes.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidTopology,
		errors.ErrCodeInvalidFormat, errors.ErrCodeLayoutOverflow:
		return http.StatusBadRequest
	case errors.ErrCodePlanNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}
