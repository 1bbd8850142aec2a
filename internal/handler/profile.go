package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/profile-finder/internal/apperror"
	"github.com/sakif/profile-finder/internal/github"
	"github.com/sakif/profile-finder/internal/model"
)

// ProfileHandler serves aggregated GitHub profile views.
type ProfileHandler struct {
	github *github.Client
	logger *slog.Logger
}

func NewProfileHandler(client *github.Client, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		github: client,
		logger: logger,
	}
}

// profileResponse is a ProfileView plus display-pagination metadata for the
// repositories tab.
type profileResponse struct {
	*model.ProfileView
	RepoPage      int `json:"repoPage"`
	RepoPageCount int `json:"repoPageCount"`
}

// HandleProfile returns the full profile view for a GitHub user.
//
// HTTP: GET /api/users/{username}?repos_page=N&filter=text
//
// The repository list is fetched once (up to 100, most recently updated
// first); repos_page slices it into display pages of 10. filter narrows the
// followers and following lists by login substring, case-insensitively.
func (h *ProfileHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		writeError(w, apperror.ValidationFailed("username", "Username is required"))
		return
	}

	view, err := h.github.LoadProfile(r.Context(), username)
	if err != nil {
		writeError(w, err)
		return
	}

	page := intParam(r, "repos_page")
	if page <= 0 {
		page = 1
	}
	pageCount := github.RepoPageCount(view.Repositories, github.DefaultReposPerPage)
	view.Repositories = github.ReposPage(view.Repositories, page, github.DefaultReposPerPage)

	if filter := r.URL.Query().Get("filter"); filter != "" {
		view.Followers = github.FilterUsers(view.Followers, filter)
		view.Following = github.FilterUsers(view.Following, filter)
	}

	writeJSON(w, http.StatusOK, profileResponse{
		ProfileView:   view,
		RepoPage:      page,
		RepoPageCount: pageCount,
	})
}
