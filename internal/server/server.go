// Package server wires the application together: handlers, middleware,
// routes, and the resources the process owns (the account database and the
// preference store).
//
// main.go reads configuration and calls New; New assembles the dependency
// graph in one place so every layer receives only what it needs — services
// get repository interfaces, handlers get services, and nothing but this
// package knows the concrete types.
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

	"github.com/sakif/profile-finder/internal/auth"
	"github.com/sakif/profile-finder/internal/github"
	"github.com/sakif/profile-finder/internal/handler"
	"github.com/sakif/profile-finder/internal/middleware"
	boltRepo "github.com/sakif/profile-finder/internal/repository/bolt"
	sqliteRepo "github.com/sakif/profile-finder/internal/repository/sqlite"
	"github.com/sakif/profile-finder/internal/service"
)

// Config holds server configuration, loaded from the environment by main.
type Config struct {
	Port        int
	TemplateDir string
	StaticDir   string
	DBPath      string // SQLite account database
	PrefsPath   string // bbolt preference store
	JWTSecret   string
	GitHubToken string // optional; raises the API rate limit
	GitHubAPI   string // override for tests, "" means the public API
}

// Server holds the router and the resources that must be released on
// shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
	prefs  *boltRepo.Store
}

// New assembles the full dependency graph and registers all routes.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	prefs, err := boltRepo.Open(cfg.PrefsPath)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("opening preference store: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
		prefs:  prefs,
	}

	if err := s.setupRoutes(); err != nil {
		prefs.Close()
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware, builds the handler graph, and maps
// every route.
//
// ROUTES:
//
//	GET    /                        → search page (HTML)
//	GET    /profile/me              → account page (HTML, redirects anonymous)
//	GET    /profile/{username}      → profile page (HTML)
//	GET    /static/*                → static assets
//
//	POST   /api/auth/signup         → create account + session
//	POST   /api/auth/login          → authenticate + session
//	POST   /api/auth/logout         → clear session
//	GET    /api/me                  → current session            [auth]
//	GET    /api/search              → GitHub user search
//	GET    /api/users/{username}    → aggregated profile view
//	GET    /api/favorites           → favorited logins           [auth]
//	GET    /api/favorites/profiles  → hydrated favorites         [auth]
//	POST   /api/favorites/{login}   → add favorite               [auth]
//	DELETE /api/favorites/{login}   → remove favorite            [auth]
//	GET    /api/prefs/theme         → dark-mode flag
//	PUT    /api/prefs/theme         → set dark-mode flag
//	GET    /api/me/avatar           → stored avatar              [auth]
//	PUT    /api/me/avatar           → store avatar               [auth]
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return err
	}
	passwords := auth.NewPasswordService()

	githubClient := github.NewClient(s.config.GitHubAPI, s.config.GitHubToken, s.logger)

	authService := service.NewAuthService(s.db, tokens, passwords, s.logger)
	favoritesService := service.NewFavoritesService(s.db, githubClient, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	searchHandler := handler.NewSearchHandler(githubClient, s.logger)
	profileHandler := handler.NewProfileHandler(githubClient, s.logger)
	favoritesHandler := handler.NewFavoritesHandler(favoritesService, s.logger)
	prefsHandler := handler.NewPrefsHandler(s.prefs, authService, s.logger)

	pageHandler, err := handler.NewPageHandler(
		s.config.TemplateDir, githubClient, githubClient, authService, favoritesService, s.logger)
	if err != nil {
		return fmt.Errorf("creating page handler: %w", err)
	}

	fileServer := http.FileServer(http.Dir(s.config.StaticDir))
	s.router.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	// Pages. OptionalAuth lets logged-in visitors see their session state
	// without blocking anonymous ones. /profile/me is registered before the
	// wildcard so chi matches it first.
	s.router.Group(func(r chi.Router) {
		r.Use(auth.OptionalAuth(tokens))
		r.Get("/", pageHandler.HandleIndex)
		r.Get("/profile/me", pageHandler.HandleMePage)
		r.Get("/profile/{username}", pageHandler.HandleProfilePage)
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/auth/signup", authHandler.HandleSignup)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/logout", authHandler.HandleLogout)

		r.Get("/search", searchHandler.HandleSearch)
		r.Get("/users/{username}", profileHandler.HandleProfile)

		r.Get("/prefs/theme", prefsHandler.HandleGetTheme)
		r.Put("/prefs/theme", prefsHandler.HandleSetTheme)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))
			r.Get("/me", authHandler.HandleMe)
			r.Get("/me/avatar", prefsHandler.HandleGetAvatar)
			r.Put("/me/avatar", prefsHandler.HandleSetAvatar)
			r.Get("/favorites", favoritesHandler.HandleList)
			r.Get("/favorites/profiles", favoritesHandler.HandleProfiles)
			r.Post("/favorites/{login}", favoritesHandler.HandleAdd)
			r.Delete("/favorites/{login}", favoritesHandler.HandleRemove)
		})
	})

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, drain in-flight requests, and
// close the stores so the WAL is flushed and the bolt file lock released.
func (s *Server) Start() error {
	defer s.db.Close()
	defer s.prefs.Close()

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
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
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
