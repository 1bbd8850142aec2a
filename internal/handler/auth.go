// Package handler contains the HTTP handlers: thin translation layers
// between HTTP and the service layer. Handlers parse requests, call a
// service, and write JSON (or a rendered page); all business rules live in
// the services.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/profile-finder/internal/apperror"
	"github.com/sakif/profile-finder/internal/auth"
	"github.com/sakif/profile-finder/internal/model"
	"github.com/sakif/profile-finder/internal/service"
)

// AuthHandler manages signup, login, logout, and the current-session lookup.
type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

func NewAuthHandler(authService *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   authService,
		logger: logger,
	}
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	// Identifier is a username or an email; both work.
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// HandleSignup creates an account and logs it straight in.
//
// HTTP: POST /api/auth/signup
//
// On success the response carries the session projection and the JWT rides
// in an HttpOnly cookie, so the browser is authenticated for subsequent
// requests without the page script ever seeing the token.
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "Invalid request body"))
		return
	}

	result, err := h.auth.Signup(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	setSessionCookie(w, result.Token)
	writeJSON(w, http.StatusCreated, model.SessionOf(result.Account))
}

// HandleLogin authenticates by username or email.
//
// HTTP: POST /api/auth/login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "Invalid request body"))
		return
	}

	result, err := h.auth.Login(r.Context(), req.Identifier, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	setSessionCookie(w, result.Token)
	writeJSON(w, http.StatusOK, model.SessionOf(result.Account))
}

// HandleLogout clears the session cookie.
//
// HTTP: POST /api/auth/logout
//
// Stateless sessions mean logout is purely client-side: the cookie is
// deleted, and the token (still technically valid until expiry) is never
// sent again.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// HandleMe returns the current session projection.
//
// HTTP: GET /api/me
// Auth: required
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	accountID, ok := auth.AccountIDFromContext(r.Context())
	if !ok {
		// Should never happen on a RequireAuth-protected route, but be safe.
		writeError(w, apperror.Unauthorized("Not logged in"))
		return
	}

	session, err := h.auth.CurrentUser(r.Context(), accountID)
	if err != nil {
		h.logger.Error("HandleMe: session lookup failed",
			slog.String("accountID", accountID),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// setSessionCookie installs the JWT as the HttpOnly session cookie.
// SameSite=Lax keeps it off cross-site POSTs. Secure should be enabled when
// serving over HTTPS.
func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.SessionDuration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
