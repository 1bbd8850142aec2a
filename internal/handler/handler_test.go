package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/sakif/profile-finder/internal/auth"
	"github.com/sakif/profile-finder/internal/github"
	boltRepo "github.com/sakif/profile-finder/internal/repository/bolt"
	sqliteRepo "github.com/sakif/profile-finder/internal/repository/sqlite"
	"github.com/sakif/profile-finder/internal/service"
)

// testEnv wires the full router the way internal/server does, but against
// an in-memory account store, a temp preference store, and a stubbed GitHub
// API, with the bcrypt cost dropped to the minimum.
type testEnv struct {
	router *chi.Mux

	// githubMux serves as the fake GitHub API; tests register the routes
	// they need.
	githubMux *http.ServeMux
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	db, err := sqliteRepo.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	prefs, err := boltRepo.Open(filepath.Join(t.TempDir(), "prefs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { prefs.Close() })

	githubMux := http.NewServeMux()
	githubSrv := httptest.NewServer(githubMux)
	t.Cleanup(githubSrv.Close)

	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars!!")
	require.NoError(t, err)
	passwords := auth.NewPasswordServiceForTest(4)

	githubClient := github.NewClient(githubSrv.URL, "", logger)

	authService := service.NewAuthService(db, tokens, passwords, logger)
	favoritesService := service.NewFavoritesService(db, githubClient, logger)

	authHandler := NewAuthHandler(authService, logger)
	searchHandler := NewSearchHandler(githubClient, logger)
	profileHandler := NewProfileHandler(githubClient, logger)
	favoritesHandler := NewFavoritesHandler(favoritesService, logger)
	prefsHandler := NewPrefsHandler(prefs, authService, logger)

	pageHandler, err := NewPageHandler(
		filepath.Join("..", "..", "web", "templates"),
		githubClient, githubClient, authService, favoritesService, logger)
	require.NoError(t, err)

	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(auth.OptionalAuth(tokens))
		r.Get("/", pageHandler.HandleIndex)
		r.Get("/profile/me", pageHandler.HandleMePage)
		r.Get("/profile/{username}", pageHandler.HandleProfilePage)
	})

	router.Route("/api", func(r chi.Router) {
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

	return &testEnv{router: router, githubMux: githubMux}
}

// do runs a request through the router and returns the recorder. A session
// cookie, when given, authenticates the request.
func (e *testEnv) do(t *testing.T, method, target string, body interface{}, session *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if session != nil {
		req.AddCookie(session)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// signup creates an account through the API and returns its session cookie.
func (e *testEnv) signup(t *testing.T, username, email, password string) *http.Cookie {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, "signup failed: %s", rec.Body.String())

	return sessionCookie(t, rec)
}

// sessionCookie extracts the session cookie set by a signup/login response.
func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}
