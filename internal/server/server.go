// Package server provides the HTTP server and routing for the factor
// evaluation API.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/quantdash/quantdash/internal/modules/factors"
	factorhandlers "github.com/quantdash/quantdash/internal/modules/factors/handlers"
	"github.com/quantdash/quantdash/internal/modules/industry"
	industryhandlers "github.com/quantdash/quantdash/internal/modules/industry/handlers"
)

// Config holds server configuration.
type Config struct {
	Log      zerolog.Logger
	Port     int
	DevMode  bool
	Registry *factors.Registry
	Resolver *industry.Resolver
}

// Server represents the HTTP server.
type Server struct {
	router         *chi.Mux
	server         *http.Server
	log            zerolog.Logger
	systemHandlers *SystemHandlers
}

// New creates a new HTTP server and wires all routes.
func New(cfg Config) *Server {
	s := &Server{
		router:         chi.NewRouter(),
		log:            cfg.Log.With().Str("service", "server").Logger(),
		systemHandlers: NewSystemHandlers(cfg.Log),
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	if cfg.DevMode {
		s.router.Use(middleware.Logger)
	}
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(30 * time.Second))

	// The dashboard frontend runs on a separate origin in development.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	factorhandlers.NewHandler(cfg.Registry, cfg.Resolver, cfg.Log).RegisterRoutes(s.router)
	industryhandlers.NewHandler(cfg.Resolver, cfg.Log).RegisterRoutes(s.router)
	s.systemHandlers.RegisterRoutes(s.router)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Router exposes the router, primarily for tests.
func (s *Server) Router() chi.Router {
	return s.router
}

// Start begins listening. Blocks until the server stops.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("HTTP server listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
