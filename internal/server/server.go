// Package server wires handlers, middleware and routes, and owns the HTTP
// lifecycle. It is the composition root: every dependency is constructed
// here and injected downward, so handlers never build their own.
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

	"github.com/rahulbhardwaj/dorawi/internal/auth"
	"github.com/rahulbhardwaj/dorawi/internal/handler"
	"github.com/rahulbhardwaj/dorawi/internal/middleware"
	"github.com/rahulbhardwaj/dorawi/internal/repository"
	"github.com/rahulbhardwaj/dorawi/internal/repository/memory"
	sqliteRepo "github.com/rahulbhardwaj/dorawi/internal/repository/sqlite"
	"github.com/rahulbhardwaj/dorawi/internal/translate"
)

// Config holds server configuration, loaded from the environment by main.
type Config struct {
	Port         int
	DBPath       string
	JWTSecret    string
	GeminiAPIKey string
	GeminiModel  string
}

// Server owns the router, the persistence store and the HTTP lifecycle.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	store  repository.Store
}

// New assembles the full dependency chain.
//
// The persistence mode is decided here, once: the durable sqlite store is
// opened optimistically, and if the open fails the server falls back to the
// in-process store instead of refusing to start. The mode is never
// re-evaluated until restart; handlers only see the repository interfaces.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	var store repository.Store
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		logger.Warn("durable store unavailable, falling back to in-memory store",
			slog.String("dbPath", cfg.DBPath),
			slog.String("error", err.Error()),
		)
		store = memory.New()
	} else {
		logger.Info("using sqlite store", slog.String("dbPath", cfg.DBPath))
		store = db
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		store:  store,
	}

	if err := s.setupRoutes(); err != nil {
		store.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware and all route handlers.
//
// Everything except the health check and the auth endpoints requires a
// bearer token.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	translator, err := s.newTranslator()
	if err != nil {
		return err
	}

	authHandler := handler.NewAuthHandler(s.store, tokens, passwords, s.logger)
	historyHandler := handler.NewHistoryHandler(s.store, s.logger)
	favoriteHandler := handler.NewFavoriteHandler(s.store, s.logger)
	userHandler := handler.NewUserHandler(s.store, s.store, passwords, s.logger)
	documentHandler := handler.NewDocumentHandler(translator, s.logger)

	// Health check, used by deploy probes.
	s.router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("DoraWi API is running"))
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/auth/signup", authHandler.HandleSignup)
		r.Post("/auth/login", authHandler.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))

			r.Get("/history", historyHandler.HandleList)
			r.Post("/history", historyHandler.HandleCreate)

			r.Get("/favorites", favoriteHandler.HandleList)
			r.Post("/favorites", favoriteHandler.HandleCreate)
			r.Delete("/favorites/{id}", favoriteHandler.HandleDelete)

			r.Get("/user/profile", userHandler.HandleGetProfile)
			r.Put("/user/profile", userHandler.HandleUpdateProfile)
			r.Put("/user/password", userHandler.HandleChangePassword)
			r.Get("/user/stats", userHandler.HandleStats)

			r.Post("/document/translate", documentHandler.HandleTranslate)
		})
	})

	return nil
}

// newTranslator builds the translation pipeline around the Gemini client.
// A missing API key is not fatal: the server starts and only the translate
// endpoint reports unavailable.
func (s *Server) newTranslator() (*translate.Service, error) {
	if s.config.GeminiAPIKey == "" {
		s.logger.Warn("GEMINI_API_KEY not set — document translation is unavailable")
		return nil, nil
	}

	gen, err := translate.NewGeminiGenerator(context.Background(), s.config.GeminiAPIKey, s.config.GeminiModel)
	if err != nil {
		return nil, fmt.Errorf("creating model client: %w", err)
	}

	invoker := translate.NewInvoker(gen, translate.DefaultRetryPolicy, s.logger)
	return translate.NewService(invoker, s.logger), nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, wait up to 30s for in-flight
// requests, close the store.
func (s *Server) Start() error {
	defer s.store.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 3 * time.Minute, // must outlast a full document translation
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
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
