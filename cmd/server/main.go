// Package main is the entry point for the profile finder server.
//
// main stays minimal: load configuration, create the logger, and hand off
// to internal/server, which owns the dependency graph.
package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/sakif/profile-finder/internal/server"
)

func main() {
	// A .env file is optional; real environment variables win either way.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	templateDir, _ := filepath.Abs("web/templates")
	staticDir, _ := filepath.Abs("web/static")

	dbPath := envOr("DB_PATH", "data/accounts.db")
	prefsPath := envOr("PREFS_PATH", "data/prefs.db")

	// Both stores live under data/ by default; create it up front.
	for _, p := range []string{dbPath, prefsPath} {
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			logger.Error("failed to create data directory",
				slog.String("dir", filepath.Dir(p)),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	// JWT_SECRET must be a long random string, e.g.:
	//   JWT_SECRET=$(openssl rand -hex 32)
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Error("JWT_SECRET not set — refusing to start without a signing secret")
		os.Exit(1)
	}

	// GITHUB_TOKEN is optional. Without it the public API allows 10 searches
	// a minute; with it, 30 — and 5000 core requests an hour.
	githubToken := os.Getenv("GITHUB_TOKEN")
	if githubToken == "" {
		logger.Warn("GITHUB_TOKEN not set — using unauthenticated GitHub API rate limits")
	}

	cfg := server.Config{
		Port:        port,
		TemplateDir: templateDir,
		StaticDir:   staticDir,
		DBPath:      dbPath,
		PrefsPath:   prefsPath,
		JWTSecret:   jwtSecret,
		GitHubToken: githubToken,
		GitHubAPI:   os.Getenv("GITHUB_API_URL"),
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
