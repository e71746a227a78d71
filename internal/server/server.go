// Package server wires the router, middleware and handlers together and
// runs the HTTP server.
//
// DEPENDENCY INJECTION FLOW:
// main.go builds the ambient pieces (logger, auth services, object store)
// and passes them in. New then assembles the rest:
//
//	sqlite.DB → services → handlers → routes
//
// Each layer only receives what it needs: services get repository
// interfaces, handlers get services. This is the composition root; nothing
// else in the codebase constructs dependencies.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/couple-gallery/internal/auth"
	"github.com/sakif/couple-gallery/internal/handler"
	"github.com/sakif/couple-gallery/internal/middleware"
	sqliteRepo "github.com/sakif/couple-gallery/internal/repository/sqlite"
	"github.com/sakif/couple-gallery/internal/service"
	"github.com/sakif/couple-gallery/internal/storage"
)

// Config holds server configuration.
type Config struct {
	Port               int
	DBPath             string
	CORSAllowedOrigins []string
	UploadMaxBytes     int64
}

// Deps are the collaborators built outside the server. Store may be nil,
// in which case uploads answer 500 "not configured".
type Deps struct {
	Passwords *auth.PasswordService
	Tokens    *auth.TokenService
	Store     storage.ObjectStore
}

// Server owns the router and the database handle. The handle is closed when
// Start returns, or by Close for servers that were never started.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New opens the database (running migrations and seeding defaults) and
// builds the route tree.
//
// IMPORT ALIAS:
// repository/sqlite is imported as sqliteRepo so it is not confused with
// the modernc driver.
func New(cfg Config, logger *slog.Logger, deps Deps) (*Server, error) {
	if deps.Passwords == nil || deps.Tokens == nil {
		return nil, errors.New("server: password and token services are required")
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

	if err := s.setupRoutes(deps); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
//
//	GET    /admin                        → admin page (HTML)
//	GET    /api/health                   → liveness + DB ping
//	GET    /api/photos, /api/artworks    → list photos (aliases)
//	GET    /api/photos/{id}              → one photo
//	GET    /api/profile                  → profile + together_days
//	GET    /api/timeline[/{id}]          → timeline events
//	GET    /api/messages                 → all messages
//	GET    /api/messages/latest          → today's message or the fallback
//	GET    /api/settings[/{key}]         → settings
//	POST   /api/auth/login               → password → token
//	*      /api/admin/...                → mutations, bearer token required
//
// MIDDLEWARE ORDER MATTERS:
// RequestID must run before Logger so the id is in the context, and CORS
// must answer preflight requests before the admin gate sees them.
func (s *Server) setupRoutes(deps Deps) error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.CORS(s.config.CORSAllowedOrigins))

	// === Services ===
	photoService := service.NewPhotoService(s.db, s.logger)
	profileService := service.NewProfileService(s.db, s.logger)
	timelineService := service.NewTimelineService(s.db, s.logger)
	messageService := service.NewMessageService(s.db, s.logger)
	settingService := service.NewSettingService(s.db, s.logger)
	authService := service.NewAuthService(deps.Passwords, deps.Tokens, s.logger)
	uploadService := service.NewUploadService(storage.NewUploader(deps.Store), s.config.UploadMaxBytes, s.logger)

	// === Handlers ===
	adminPage, err := handler.NewAdminHandler(s.logger)
	if err != nil {
		return fmt.Errorf("creating admin handler: %w", err)
	}
	health := handler.NewHealthHandler(s.db, s.logger)
	photos := handler.NewPhotoHandler(photoService, s.logger)
	profile := handler.NewProfileHandler(profileService, s.logger)
	timeline := handler.NewTimelineHandler(timelineService, s.logger)
	messages := handler.NewMessageHandler(messageService, s.logger)
	settings := handler.NewSettingHandler(settingService, s.logger)
	login := handler.NewAuthHandler(authService, s.logger)
	uploads := handler.NewUploadHandler(uploadService, s.logger)

	s.router.Get("/admin", adminPage.HandleAdmin)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", health.HandleHealth)

		r.Get("/photos", photos.HandleList)
		r.Get("/photos/{id}", photos.HandleGet)
		r.Get("/artworks", photos.HandleList)

		r.Get("/profile", profile.HandleGet)

		r.Get("/timeline", timeline.HandleList)
		r.Get("/timeline/{id}", timeline.HandleGet)

		r.Get("/messages", messages.HandleList)
		r.Get("/messages/latest", messages.HandleLatest)

		r.Get("/settings", settings.HandleList)
		r.Get("/settings/{key}", settings.HandleGet)

		r.Post("/auth/login", login.HandleLogin)

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.RequireAdmin(authService))

			r.Get("/session", login.HandleSession)

			r.Post("/photos", photos.HandleCreate)
			r.Put("/photos/{id}", photos.HandleUpdate)
			r.Delete("/photos/{id}", photos.HandleDelete)

			r.Put("/profile", profile.HandleUpdate)

			r.Post("/timeline", timeline.HandleCreate)
			r.Put("/timeline/{id}", timeline.HandleUpdate)
			r.Delete("/timeline/{id}", timeline.HandleDelete)

			r.Post("/messages", messages.HandleCreate)
			r.Put("/messages/{id}", messages.HandleUpdate)
			r.Delete("/messages/{id}", messages.HandleDelete)

			r.Put("/settings/{key}", settings.HandlePut)

			r.Post("/upload", uploads.HandleUpload)
			r.Delete("/upload", uploads.HandleDelete)
		})
	})

	return nil
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the database. Only needed when Start is never called.
func (s *Server) Close() error {
	return s.db.Close()
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully:
// stop accepting connections, let in-flight requests finish (30s), and
// close the database so the WAL is checkpointed and the file lock released.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second, // uploads
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
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
