// Package server is the composition root: it wires repositories, services,
// and handlers together, mounts the routes, and owns the listen/shutdown
// lifecycle. main.go stays minimal — read config, build a Server, Start().
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
	"github.com/rs/cors"

	"github.com/Renan-Hawladar/OrbitAI/internal/auth"
	"github.com/Renan-Hawladar/OrbitAI/internal/gemini"
	"github.com/Renan-Hawladar/OrbitAI/internal/handler"
	"github.com/Renan-Hawladar/OrbitAI/internal/middleware"
	sqliteRepo "github.com/Renan-Hawladar/OrbitAI/internal/repository/sqlite"
	"github.com/Renan-Hawladar/OrbitAI/internal/service"
)

// Config holds everything the server needs from the environment.
type Config struct {
	Port         int
	DBPath       string
	JWTSecret    string
	GeminiAPIKey string

	// Google OAuth is optional: when ClientID is empty the /auth/google
	// routes are simply not mounted.
	GoogleClientID     string
	GoogleClientSecret string
	GoogleCallbackURL  string

	// FrontendURL is where OAuth callbacks redirect to; AllowedOrigins is
	// the CORS allowlist for the browser client.
	FrontendURL    string
	AllowedOrigins []string
}

// Server owns the router and the resources that need closing on shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New builds the full dependency chain: database → services → handlers →
// routes. Each layer receives interfaces, not concretions, so everything
// below the handler is swappable in tests.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Server, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("server: JWT secret is required")
	}

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

	if err := s.setupRoutes(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

func (s *Server) setupRoutes(ctx context.Context) error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	s.router.Use(cors.New(cors.Options{
		AllowedOrigins:   s.config.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler)

	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	advisor, err := gemini.New(ctx, s.config.GeminiAPIKey, s.logger)
	if err != nil {
		return fmt.Errorf("creating Gemini client: %w", err)
	}

	authService := service.NewAuthService(s.db, s.db, tokens, passwords, s.logger)
	profileService := service.NewProfileService(s.db, s.logger)
	careerService := service.NewCareerService(s.db, s.db, advisor, s.logger)

	var google *auth.GoogleProvider
	if s.config.GoogleClientID != "" {
		google = auth.NewGoogleProvider(
			s.config.GoogleClientID,
			s.config.GoogleClientSecret,
			s.config.GoogleCallbackURL,
		)
	}

	authHandler := handler.NewAuthHandler(authService, google, s.config.FrontendURL, s.logger)
	profileHandler := handler.NewProfileHandler(profileService, s.logger)
	careerHandler := handler.NewCareerHandler(careerService, s.logger)

	s.router.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy"}`))
	})

	s.router.Post("/api/auth/register", authHandler.HandleRegister)
	s.router.Post("/api/auth/login", authHandler.HandleLogin)

	if google != nil {
		s.router.Get("/auth/google/login", authHandler.HandleGoogleLogin)
		s.router.Get("/auth/google/callback", authHandler.HandleGoogleCallback)
	} else {
		s.logger.Warn("Google OAuth not configured, /auth/google routes disabled")
	}

	s.router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(tokens))

		r.Get("/api/profile", profileHandler.HandleGet)
		r.Put("/api/profile", profileHandler.HandleUpdate)
		r.Post("/api/analyze-career", careerHandler.HandleAnalyze)
		r.Post("/api/search-career", careerHandler.HandleSearch)
		r.Get("/api/analyses", careerHandler.HandleHistory)
	})

	return nil
}

// Start runs the server until SIGINT/SIGTERM, then drains in-flight
// requests (30s) and closes the database so the WAL is flushed.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second, // analyze calls wait on the AI provider
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

// Router exposes the composed handler for tests.
func (s *Server) Router() http.Handler {
	return s.router
}
