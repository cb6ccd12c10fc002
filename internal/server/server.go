package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"newswire/internal/core"
	"newswire/internal/features/diagnostics"
	"newswire/internal/features/news"
	"newswire/internal/server/handlers"
)

type Server struct {
	config   *core.Config
	logger   *core.Logger
	db       *core.Database
	registry *core.Registry
	router   chi.Router
	server   *http.Server
}

// New wires the features described by config. A DATABASE_URL that cannot be
// opened is not fatal; it is surfaced by the diagnostics report instead.
func New(config *core.Config, logger *core.Logger) (*Server, error) {
	var (
		db      *core.Database
		openErr error
	)
	if config.Database.URL != "" {
		db, openErr = core.OpenDatabase(config.Database.URL, logger)
		if openErr != nil {
			logger.Warn("Failed to open database", "error", openErr)
		}
	}

	registry := core.NewRegistry(logger)

	if config.IsFeatureEnabled("news") {
		if err := registry.Register(news.NewFeature(logger, news.NewConfig(config))); err != nil {
			return nil, fmt.Errorf("failed to register news feature: %w", err)
		}
	}

	if config.IsFeatureEnabled("diagnostics") {
		feature := diagnostics.NewFeature(logger, db, openErr, diagnostics.NewConfig(config))
		if err := registry.Register(feature); err != nil {
			return nil, fmt.Errorf("failed to register diagnostics feature: %w", err)
		}
	}

	srv := &Server{
		config:   config,
		logger:   logger,
		db:       db,
		registry: registry,
	}

	srv.setupRoutes()

	return srv, nil
}

func (s *Server) setupRoutes() {
	systemHandler := handlers.NewSystemHandler(s.logger, s.registry)

	mux := chi.NewRouter()

	mux.Use(middleware.Recoverer)
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(middleware.Logger)
	mux.Use(cors.Handler(cors.Options{
		// Any origin is echoed back
		AllowOriginFunc:  func(r *http.Request, origin string) bool { return true },
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	mux.NotFound(systemHandler.NotFoundHandler)
	mux.MethodNotAllowed(systemHandler.MethodNotAllowedHandler)

	mux.Get("/", systemHandler.RootHandler)
	mux.Get("/api/hello", systemHandler.HelloHandler)
	mux.Get("/health", systemHandler.HealthCheckHandler)

	// Feature routes
	for _, route := range s.registry.GetAllRoutes() {
		mux.Method(route.Method, route.Path, route.Handler)
	}

	s.router = mux
	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Init initializes every enabled feature
func (s *Server) Init(ctx context.Context) error {
	if err := s.registry.InitAll(ctx); err != nil {
		s.logger.Error("Failed to initialize features", "error", err)
		return err
	}
	return nil
}

// Start initializes the features and serves until Shutdown is called
func (s *Server) Start(ctx context.Context) error {
	if err := s.Init(ctx); err != nil {
		return err
	}

	s.logger.Info("Starting server", "host", s.config.Server.Host, "port", s.config.Server.Port)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	if err := s.registry.ShutdownAll(ctx); err != nil {
		s.logger.Error("Failed to shutdown features", "error", err)
	}

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
