package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sakif/profile-finder/internal/apperror"
	"github.com/sakif/profile-finder/internal/auth"
	"github.com/sakif/profile-finder/internal/model"
	"github.com/sakif/profile-finder/internal/repository"
	"github.com/sakif/profile-finder/internal/service"
)

// maxAvatarBytes bounds the uploaded avatar data URI. Cropped avatars are
// small; anything past this is a misuse of the endpoint.
const maxAvatarBytes = 1 << 20

// PrefsHandler serves presentation preferences: the dark-mode flag and
// custom avatars. The theme is global (per deployment, matching the
// per-browser flag it replaces); avatars are keyed by the account's email
// and require auth.
type PrefsHandler struct {
	prefs  repository.PrefStore
	auth   *service.AuthService
	logger *slog.Logger
}

func NewPrefsHandler(prefs repository.PrefStore, authService *service.AuthService, logger *slog.Logger) *PrefsHandler {
	return &PrefsHandler{
		prefs:  prefs,
		auth:   authService,
		logger: logger,
	}
}

type themeResponse struct {
	DarkMode bool `json:"darkMode"`
}

// HandleGetTheme returns the dark-mode flag.
//
// HTTP: GET /api/prefs/theme
func (h *PrefsHandler) HandleGetTheme(w http.ResponseWriter, r *http.Request) {
	dark, err := h.prefs.DarkMode(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, themeResponse{DarkMode: dark})
}

// HandleSetTheme stores the dark-mode flag.
//
// HTTP: PUT /api/prefs/theme
func (h *PrefsHandler) HandleSetTheme(w http.ResponseWriter, r *http.Request) {
	var req themeResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "Invalid request body"))
		return
	}

	if err := h.prefs.SetDarkMode(r.Context(), req.DarkMode); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, themeResponse{DarkMode: req.DarkMode})
}

type avatarResponse struct {
	Avatar string `json:"avatar"`
}

// HandleGetAvatar returns the stored avatar data URI for the logged-in
// account, or "" when none has been uploaded.
//
// HTTP: GET /api/me/avatar
// Auth: required
func (h *PrefsHandler) HandleGetAvatar(w http.ResponseWriter, r *http.Request) {
	account, err := h.accountFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	avatar, err := h.prefs.Avatar(r.Context(), account.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, avatarResponse{Avatar: avatar})
}

// HandleSetAvatar stores a cropped avatar image for the logged-in account.
// The body carries a data URI, the same format the crop widget produces.
//
// HTTP: PUT /api/me/avatar
// Auth: required
func (h *PrefsHandler) HandleSetAvatar(w http.ResponseWriter, r *http.Request) {
	account, err := h.accountFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req avatarResponse
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAvatarBytes)).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "Invalid request body"))
		return
	}
	if !strings.HasPrefix(req.Avatar, "data:image/") {
		writeError(w, apperror.ValidationFailed("avatar", "Avatar must be an image data URI"))
		return
	}

	if err := h.prefs.SetAvatar(r.Context(), account.Email, req.Avatar); err != nil {
		writeError(w, err)
		return
	}

	h.logger.Info("avatar updated", slog.String("accountID", account.ID))
	writeJSON(w, http.StatusOK, avatarResponse{Avatar: req.Avatar})
}

// accountFromRequest resolves the authenticated account; avatars are keyed
// by its email.
func (h *PrefsHandler) accountFromRequest(r *http.Request) (*model.Account, error) {
	accountID, ok := auth.AccountIDFromContext(r.Context())
	if !ok {
		return nil, apperror.Unauthorized("Not logged in")
	}
	return h.auth.Account(r.Context(), accountID)
}
