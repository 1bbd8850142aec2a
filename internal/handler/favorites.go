package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/profile-finder/internal/apperror"
	"github.com/sakif/profile-finder/internal/auth"
	"github.com/sakif/profile-finder/internal/service"
)

// FavoritesHandler manages the authenticated account's favorited GitHub
// logins. All routes require auth.
type FavoritesHandler struct {
	favorites *service.FavoritesService
	logger    *slog.Logger
}

func NewFavoritesHandler(favorites *service.FavoritesService, logger *slog.Logger) *FavoritesHandler {
	return &FavoritesHandler{
		favorites: favorites,
		logger:    logger,
	}
}

// favoritesResponse carries the updated list after a mutation, so the client
// never needs a follow-up fetch.
type favoritesResponse struct {
	Favorites []string `json:"favorites"`
	Favorited bool     `json:"favorited,omitempty"`
}

// HandleList returns the favorited logins in the order they were added.
//
// HTTP: GET /api/favorites
func (h *FavoritesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	accountID, ok := auth.AccountIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("Not logged in"))
		return
	}

	favorites, err := h.favorites.Favorites(r.Context(), accountID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, favoritesResponse{Favorites: favorites})
}

// HandleProfiles returns the favorites hydrated into full GitHub profiles.
// Logins whose fetch fails are skipped, so one deleted GitHub account never
// blanks the whole view.
//
// HTTP: GET /api/favorites/profiles
func (h *FavoritesHandler) HandleProfiles(w http.ResponseWriter, r *http.Request) {
	accountID, ok := auth.AccountIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("Not logged in"))
		return
	}

	profiles, err := h.favorites.Profiles(r.Context(), accountID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"profiles": profiles})
}

// HandleAdd favorites a login. Adding one that is already favorited is a
// no-op returning the unchanged list.
//
// HTTP: POST /api/favorites/{login}
func (h *FavoritesHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	accountID, ok := auth.AccountIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("Not logged in"))
		return
	}

	favorites, err := h.favorites.Add(r.Context(), accountID, chi.URLParam(r, "login"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, favoritesResponse{Favorites: favorites, Favorited: true})
}

// HandleRemove unfavorites a login. Removing one that is not favorited is a
// no-op.
//
// HTTP: DELETE /api/favorites/{login}
func (h *FavoritesHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	accountID, ok := auth.AccountIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("Not logged in"))
		return
	}

	favorites, err := h.favorites.Remove(r.Context(), accountID, chi.URLParam(r, "login"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, favoritesResponse{Favorites: favorites})
}
