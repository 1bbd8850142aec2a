package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sakif/profile-finder/internal/apperror"
	"github.com/sakif/profile-finder/internal/github"
	"github.com/sakif/profile-finder/internal/model"
	"github.com/sakif/profile-finder/internal/search"
)

// msgNoResults is shown when a search matches nothing. Zero results is a
// 200, not an error.
const msgNoResults = "No users found matching your search criteria."

// SearchHandler runs GitHub user searches.
type SearchHandler struct {
	searcher search.Searcher
	logger   *slog.Logger
}

func NewSearchHandler(searcher search.Searcher, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		searcher: searcher,
		logger:   logger,
	}
}

// searchResponse is the JSON shape for search results. Message is set only
// when the search matched nothing.
type searchResponse struct {
	Query      string              `json:"query"`
	Items      []model.UserSummary `json:"items"`
	TotalCount int                 `json:"totalCount"`
	HasMore    bool                `json:"hasMore"`
	Message    string              `json:"message,omitempty"`
}

// HandleSearch searches GitHub users.
//
// HTTP: GET /api/search?q=term&page=N&location=&min_repos=&min_followers=&type=&sort=
//
// page=N returns the accumulated results of pages 1 through N, exactly what
// a browser that pressed "load more" N-1 times would be showing: duplicates
// the API repeats across page boundaries appear once, and a failure on any
// page fails the whole request rather than serving a partial accumulation.
func (h *SearchHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := github.Query{
		Term:         r.URL.Query().Get("q"),
		Location:     r.URL.Query().Get("location"),
		MinRepos:     intParam(r, "min_repos"),
		MinFollowers: intParam(r, "min_followers"),
		Type:         r.URL.Query().Get("type"),
		Sort:         r.URL.Query().Get("sort"),
	}
	if query.IsEmpty() {
		writeError(w, apperror.ValidationFailed("q", "Please enter a username"))
		return
	}

	page := intParam(r, "page")
	if page <= 0 {
		page = 1
	}

	session := search.NewSession(h.searcher, github.DefaultPerPage)

	results, err := session.Search(r.Context(), query.String())
	if err != nil {
		writeError(w, err)
		return
	}
	for p := 2; p <= page && results.HasMore; p++ {
		if results, err = session.LoadMore(r.Context()); err != nil {
			writeError(w, err)
			return
		}
	}

	resp := searchResponse{
		Query:      query.String(),
		Items:      results.Items,
		TotalCount: results.TotalCount,
		HasMore:    results.HasMore,
	}
	if results.TotalCount == 0 {
		resp.Message = msgNoResults
	}

	writeJSON(w, http.StatusOK, resp)
}

// intParam parses a numeric query parameter, treating absent or garbage
// values as 0.
func intParam(r *http.Request, name string) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
