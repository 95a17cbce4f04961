// Package server sets up the HTTP server, router, and all route definitions.
//
// SERVER ARCHITECTURE:
// This package is the "wiring" layer. It connects handlers, middleware, and routes,
// and decides:
// - Which URL patterns map to which handler functions
// - What middleware runs on which routes
// - How the server starts and stops gracefully
//
// DEPENDENCY INJECTION FLOW:
//
//	config.Config → Server.New() creates:
//	  sqlite.DB → ProfileService / ContactService → ProfileHandler / ContactHandler
//	  ratelimit.FixedWindow → middleware.RateLimit
//
// This is the "composition root" pattern: all dependencies are wired
// in one place (New/setupRoutes), rather than scattered across the codebase.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/sakif/portfolio-api/internal/config"
	"github.com/sakif/portfolio-api/internal/handler"
	"github.com/sakif/portfolio-api/internal/middleware"
	"github.com/sakif/portfolio-api/internal/ratelimit"
	sqliteRepo "github.com/sakif/portfolio-api/internal/repository/sqlite"
	"github.com/sakif/portfolio-api/internal/service"
	"github.com/sakif/portfolio-api/internal/validate"
)

// Server represents the HTTP server and all its dependencies.
//
// RESOURCE MANAGEMENT:
// The Server owns the database handle. Run closes it on the way out, after
// in-flight requests have drained; callers that never Run must call Close.
type Server struct {
	router  *chi.Mux
	config  *config.Config
	logger  *slog.Logger
	db      *sqliteRepo.DB
	limiter ratelimit.Limiter
}

// New opens the store, seeds the default profile and wires every route.
//
// IMPORT ALIAS:
// We import repository/sqlite as `sqliteRepo` to avoid confusion with
// the sqlite driver package.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if err := ensureDBDir(cfg.DBPath); err != nil {
		return nil, err
	}

	// === CREATE DATABASE ===
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	limiter, err := ratelimit.NewFixedWindow(cfg.RateLimitMax, cfg.RateLimitWindow)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating rate limiter: %w", err)
	}

	s := &Server{
		router:  chi.NewRouter(),
		config:  cfg,
		logger:  logger,
		db:      db,
		limiter: limiter,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close() // Clean up DB if route setup fails
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// ensureDBDir creates the directory holding a file-backed database.
func ensureDBDir(dbPath string) error {
	if dbPath == ":memory:" || strings.HasPrefix(dbPath, "file:") {
		return nil
	}
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating database directory %s: %w", dir, err)
	}
	return nil
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
// GET    /api/health     → liveness, never touches the store
// GET    /api/profile    → current profile
// POST   /api/profile    → append a profile (becomes current)
// PUT    /api/profile    → overwrite the current profile
// GET    /api/profiles   → paginated profile history
// POST   /api/contact    → submit a contact message
// GET    /api/messages   → paginated inbox
//
// MIDDLEWARE ORDER MATTERS:
// 1. RequestID: tags the request before anything logs
// 2. RealIP: rewrites RemoteAddr from X-Forwarded-For, so the logger and the rate limiter see the client
// 3. Recoverer: a panic anywhere below becomes a 500 envelope
// 4. Logger
// 5. SecurityHeaders and CORS
// 6. RequestSize: caps every body at MaxBodyBytes
// 7. RateLimit, on /api only
func (s *Server) setupRoutes() error {
	validator, err := validate.New(s.config.PhoneRegions)
	if err != nil {
		return fmt.Errorf("creating validator: %w", err)
	}

	// DEPENDENCY CHAIN:
	//   s.db (sqlite.DB) → implements the repository interfaces
	//   services receive the repository interfaces
	//   handlers receive the services
	profileService := service.NewProfileService(s.db, validator, s.logger)
	contactService := service.NewContactService(s.db, validator, s.logger)

	seedCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := profileService.SeedDefault(seedCtx); err != nil {
		return err
	}

	profileHandler := handler.NewProfileHandler(profileService, s.config.MaxPageSize, s.logger)
	contactHandler := handler.NewContactHandler(contactService, s.config.MaxPageSize, s.logger)
	healthHandler := handler.NewHealthHandler(s.config.Version)

	// === Global Middleware ===
	s.router.Use(middleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Recoverer(s.logger, http.HandlerFunc(handler.InternalError)))
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(middleware.SecurityHeaders)
	s.router.Use(cors.New(s.config.CORSOptions()).Handler)
	s.router.Use(chimiddleware.RequestSize(s.config.MaxBodyBytes))

	// Must be set before Route so the /api subrouter inherits them.
	s.router.NotFound(handler.NotFound)
	s.router.MethodNotAllowed(handler.NotFound)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(middleware.RateLimit(s.limiter, s.logger, http.HandlerFunc(handler.TooManyRequests)))

		r.Get("/health", healthHandler.HandleHealth)

		r.Get("/profile", profileHandler.HandleGet)
		r.Post("/profile", profileHandler.HandleCreate)
		r.Put("/profile", profileHandler.HandleUpdate)
		r.Get("/profiles", profileHandler.HandleList)

		r.Post("/contact", contactHandler.HandleSubmit)
		r.Get("/messages", contactHandler.HandleList)
	})

	return nil
}

// Handler exposes the fully wired router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the database handle.
func (s *Server) Close() error {
	return s.db.Close()
}

// Start listens on the configured port and serves until ctx is cancelled
// or the process receives SIGINT or SIGTERM.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", s.config.Addr())
	if err != nil {
		s.db.Close()
		return fmt.Errorf("listening on %s: %w", s.config.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve handles requests on ln until ctx is cancelled, then shuts down.
//
// GRACEFUL SHUTDOWN:
// 1. Stop accepting new HTTP connections
// 2. Wait for in-flight requests to finish (up to ShutdownTimeout)
// 3. Close the database connection (flushes WAL, releases file lock)
//
// Step 3 runs even when the drain times out.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer s.db.Close()

	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorLog:     slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.String("addr", ln.Addr().String()),
			slog.String("database", s.config.DBPath),
			slog.String("version", s.config.Version),
		)
		serverErrors <- srv.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil

	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	s.logger.Info("server stopped gracefully")
	return nil
}
