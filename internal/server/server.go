// Package server wires handlers, middleware, and routes, and owns the
// HTTP server lifecycle.
//
// This is the composition root: New assembles the whole dependency
// chain (DB → repositories → services → handlers) in one place, so no
// other package constructs its own dependencies.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mquintana/help-center/internal/auth"
	"github.com/mquintana/help-center/internal/config"
	"github.com/mquintana/help-center/internal/handler"
	"github.com/mquintana/help-center/internal/middleware"
	sqliteRepo "github.com/mquintana/help-center/internal/repository/sqlite"
	"github.com/mquintana/help-center/internal/service"
)

// Server holds the router and the resources it owns. The database
// connection is closed during graceful shutdown.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New opens the database and assembles the full dependency chain.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware and all route handlers.
//
// ROUTE STRUCTURE:
//
//	GET  /auth/{provider}            → redirect to OAuth provider
//	GET  /auth/{provider}/callback   → complete login, redirect
//	POST /auth/logout                → destroy session
//	GET  /api/me                     → current user (requires session)
//	POST /api/reports                → submit incident report
//	POST /api/users                  → register user
//	GET  /api/users/{id}             → fetch user
//	PUT  /api/users/{id}             → update user
//	GET  /api/articles/{slug}        → article with ordered sections
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	// The front end is served from a different origin, so the API needs
	// CORS. Credentials stay off when the origin list is a wildcard —
	// browsers reject that combination anyway.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: len(s.config.AllowedOrigins) > 0 && s.config.AllowedOrigins[0] != "*",
	}))

	// === Dependency chain ===
	identityService := service.NewIdentityService(s.db.Users(), s.logger)
	reportService := service.NewReportService(s.db.Reports(), s.logger)
	articleService := service.NewArticleService(s.db.Articles(), s.logger)

	userHandler := handler.NewUserHandler(identityService, s.logger)
	reportHandler := handler.NewReportHandler(reportService, s.logger)
	articleHandler := handler.NewArticleHandler(articleService, s.logger)

	var sessionService *service.SessionService
	if s.config.SessionSecret != "" {
		tokens, err := auth.NewTokenService(s.config.SessionSecret)
		if err != nil {
			return fmt.Errorf("creating token service: %w", err)
		}
		sessionService = service.NewSessionService(s.db.Sessions(), s.db.Users(), tokens, s.logger)
	} else {
		s.logger.Warn("SESSION_SECRET not set — login is disabled")
	}

	// === Auth routes (only for configured providers) ===
	if sessionService != nil {
		authHandler := handler.NewAuthHandler(
			identityService,
			sessionService,
			s.config.LoginSuccessURL,
			s.config.LoginFailureURL,
			s.logger,
		)

		providers := []auth.Provider{}
		if s.config.Google.Configured() {
			providers = append(providers, auth.NewGoogleProvider(
				s.config.Google.ClientID,
				s.config.Google.ClientSecret,
				s.config.Google.CallbackURL,
			))
		}
		if s.config.GitHub.Configured() {
			providers = append(providers, auth.NewGitHubProvider(
				s.config.GitHub.ClientID,
				s.config.GitHub.ClientSecret,
				s.config.GitHub.CallbackURL,
			))
		}

		for _, p := range providers {
			s.router.Get("/auth/"+p.Name(), authHandler.HandleLogin(p))
			s.router.Get("/auth/"+p.Name()+"/callback", authHandler.HandleCallback(p))
		}
		s.router.Post("/auth/logout", authHandler.HandleLogout)

		s.router.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(sessionService))
			r.Get("/api/me", authHandler.HandleMe)
		})
	}

	// === API routes ===
	s.router.Route("/api", func(r chi.Router) {
		r.Post("/reports", reportHandler.HandleCreate)
		r.Post("/users", userHandler.HandleCreate)
		r.Get("/users/{id}", userHandler.HandleGet)
		r.Put("/users/{id}", userHandler.HandleUpdate)
		r.Get("/articles/{slug}", articleHandler.HandleGet)
	})

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, drain in-flight requests for
// up to 30s, close the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}

// Router exposes the assembled router for tests.
func (s *Server) Router() http.Handler {
	return s.router
}
