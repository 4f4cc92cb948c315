// Package server wires the dependency graph and defines the route table.
//
// main.go creates the Config; New() builds database → repositories →
// services → handlers and mounts them on a chi router. Handlers never touch
// the database and services never touch HTTP.
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

	"github.com/sathira/codewizard/internal/auth"
	"github.com/sathira/codewizard/internal/handler"
	"github.com/sathira/codewizard/internal/middleware"
	"github.com/sathira/codewizard/internal/repository/sqlite"
	"github.com/sathira/codewizard/internal/service"
)

// Config holds everything the server needs from the environment.
type Config struct {
	Port      int
	DBPath    string // SQLite database file, or ":memory:"
	JWTSecret string // HMAC signing key, min 16 chars
}

// Server owns the router and the database connection; the connection is
// closed during graceful shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqlite.DB
}

// New builds the full dependency graph. The returned server is ready to
// Start(); on error the database is already closed.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqlite.New(cfg.DBPath)
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

// Handler exposes the router, mainly for httptest in end-to-end tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the database. Start() does this itself; Close exists for
// callers that use Handler() without Start().
func (s *Server) Close() error {
	return s.db.Close()
}

// setupRoutes mounts middleware and the route table.
//
// Route table (auth column per the original frontend's expectations):
//
//	POST   /api/register                      public
//	POST   /api/login                         public
//	POST   /api/forgot-password               public (501 stub)
//	POST   /api/reset-password/{token}        public (501 stub)
//	GET    /api/me                            bearer
//	GET    /api/user/{email}                  bearer
//	POST   /api/problems                      bearer
//	GET    /api/problems                      public
//	GET    /api/problems/email/{email}        bearer
//	PUT    /api/problems/{id}                 bearer
//	DELETE /api/problems/{id}                 bearer
//	POST   /api/problems/{id}/comments        bearer
//	GET    /api/problems/{id}/comments        public
//	POST   /api/comments/{commentId}/replies  public (the reply form sends
//	       no token; the asymmetry with comment creation is kept)
//	GET    /health                            public
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

	users := sqlite.NewUserRepository(s.db)
	problems := sqlite.NewProblemRepository(s.db)
	comments := sqlite.NewCommentRepository(s.db)

	authSvc := service.NewAuthService(users, tokens, passwords, s.logger)
	problemSvc := service.NewProblemService(problems, s.logger)
	commentSvc := service.NewCommentService(comments, s.logger)

	authHandler := handler.NewAuthHandler(authSvc, s.logger)
	problemHandler := handler.NewProblemHandler(problemSvc, s.logger)
	commentHandler := handler.NewCommentHandler(commentSvc, s.logger)

	requireAuth := auth.RequireAuth(tokens)

	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	s.router.Route("/api", func(r chi.Router) {
		// public
		r.Post("/register", authHandler.HandleRegister)
		r.Post("/login", authHandler.HandleLogin)
		r.Post("/forgot-password", authHandler.HandleForgotPassword)
		r.Post("/reset-password/{token}", authHandler.HandleResetPassword)
		r.Get("/problems", problemHandler.HandleList)
		r.Get("/problems/{id}/comments", commentHandler.HandleListForProblem)
		r.Post("/comments/{commentId}/replies", commentHandler.HandleAddReply)

		// guarded
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/me", authHandler.HandleMe)
			r.Get("/user/{email}", authHandler.HandleGetUserByEmail)
			r.Post("/problems", problemHandler.HandleCreate)
			r.Get("/problems/email/{email}", problemHandler.HandleListByEmail)
			r.Put("/problems/{id}", problemHandler.HandleUpdate)
			r.Delete("/problems/{id}", problemHandler.HandleDelete)
			r.Post("/problems/{id}/comments", commentHandler.HandleAddComment)
		})
	})

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then drains in-flight
// requests for up to 30 seconds and closes the database.
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
