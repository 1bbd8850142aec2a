package handler

import (
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/profile-finder/internal/auth"
	"github.com/sakif/profile-finder/internal/github"
	"github.com/sakif/profile-finder/internal/model"
	"github.com/sakif/profile-finder/internal/search"
	"github.com/sakif/profile-finder/internal/service"
)

// PageHandler serves the server-rendered HTML views: the search page, the
// profile page, and the logged-in account page.
//
// Each page parses as its own template set (base.html plus the page's
// content block) at startup, so requests never re-parse.
type PageHandler struct {
	index   *template.Template
	profile *template.Template
	me      *template.Template

	searcher  search.Searcher
	github    *github.Client
	auth      *service.AuthService
	favorites *service.FavoritesService
	logger    *slog.Logger
}

func NewPageHandler(
	templateDir string,
	searcher search.Searcher,
	client *github.Client,
	authService *service.AuthService,
	favorites *service.FavoritesService,
	logger *slog.Logger,
) (*PageHandler, error) {
	parse := func(page string) (*template.Template, error) {
		return template.ParseFiles(
			filepath.Join(templateDir, "base.html"),
			filepath.Join(templateDir, page),
		)
	}

	index, err := parse("index.html")
	if err != nil {
		return nil, err
	}
	profile, err := parse("profile.html")
	if err != nil {
		return nil, err
	}
	me, err := parse("me.html")
	if err != nil {
		return nil, err
	}

	return &PageHandler{
		index:     index,
		profile:   profile,
		me:        me,
		searcher:  searcher,
		github:    client,
		auth:      authService,
		favorites: favorites,
		logger:    logger,
	}, nil
}

// indexData feeds the search page template.
type indexData struct {
	Title      string
	Session    *model.Session
	Query      string
	Searched   bool
	Items      []model.UserSummary
	TotalCount int
	HasMore    bool
	NextPage   int
	Message    string
	Error      string
}

// HandleIndex serves the search page.
//
// HTTP: GET /?q=term&page=N
//
// Without q it renders the empty search form. With q it runs the search and
// renders the results — "Found N users" above the cards, the no-results
// message when nothing matched, or the error banner when the search failed.
func (h *PageHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	data := indexData{
		Title:   "GitHub Profile Finder",
		Session: h.sessionFromRequest(r),
	}

	query := github.Query{
		Term:         r.URL.Query().Get("q"),
		Location:     r.URL.Query().Get("location"),
		MinRepos:     intParam(r, "min_repos"),
		MinFollowers: intParam(r, "min_followers"),
		Type:         r.URL.Query().Get("type"),
		Sort:         r.URL.Query().Get("sort"),
	}
	data.Query = query.Term

	if !query.IsEmpty() {
		data.Searched = true

		page := intParam(r, "page")
		if page <= 0 {
			page = 1
		}

		session := search.NewSession(h.searcher, github.DefaultPerPage)
		results, err := session.Search(r.Context(), query.String())
		for p := 2; err == nil && p <= page && results.HasMore; p++ {
			results, err = session.LoadMore(r.Context())
		}

		if err != nil {
			data.Error = err.Error()
		} else {
			data.Items = results.Items
			data.TotalCount = results.TotalCount
			data.HasMore = results.HasMore
			data.NextPage = page + 1
			if results.TotalCount == 0 {
				data.Message = msgNoResults
			}
		}
	}

	h.render(w, h.index, data)
}

// profileData feeds the profile page template.
type profileData struct {
	Title         string
	Session       *model.Session
	Username      string
	View          *model.ProfileView
	RepoPage      int
	RepoPageCount int
	Favorited     bool
	Error         string
}

// HandleProfilePage serves a GitHub user's profile view.
//
// HTTP: GET /profile/{username}?repos_page=N
func (h *PageHandler) HandleProfilePage(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	session := h.sessionFromRequest(r)

	data := profileData{
		Title:    username + " — GitHub Profile Finder",
		Session:  session,
		Username: username,
	}

	view, err := h.github.LoadProfile(r.Context(), username)
	if err != nil {
		data.Error = err.Error()
		h.render(w, h.profile, data)
		return
	}

	page := intParam(r, "repos_page")
	if page <= 0 {
		page = 1
	}
	data.RepoPage = page
	data.RepoPageCount = github.RepoPageCount(view.Repositories, github.DefaultReposPerPage)
	view.Repositories = github.ReposPage(view.Repositories, page, github.DefaultReposPerPage)
	data.View = view

	if session != nil {
		for _, f := range session.Favorites {
			if f == username {
				data.Favorited = true
				break
			}
		}
	}

	h.render(w, h.profile, data)
}

// meData feeds the account page template.
type meData struct {
	Title     string
	Session   *model.Session
	Favorites []model.Profile
}

// HandleMePage serves the logged-in account's page: session details plus
// the favorites hydrated into profile cards. Anonymous visitors are sent to
// the search page.
//
// HTTP: GET /profile/me
func (h *PageHandler) HandleMePage(w http.ResponseWriter, r *http.Request) {
	accountID, ok := auth.AccountIDFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	session, err := h.auth.CurrentUser(r.Context(), accountID)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	profiles, err := h.favorites.Profiles(r.Context(), accountID)
	if err != nil {
		h.logger.Warn("favorites hydration failed",
			slog.String("accountID", accountID),
			slog.String("error", err.Error()),
		)
		profiles = []model.Profile{}
	}

	h.render(w, h.me, meData{
		Title:     session.Username + " — GitHub Profile Finder",
		Session:   session,
		Favorites: profiles,
	})
}

// sessionFromRequest resolves the optional session for public pages.
// Returns nil for anonymous visitors.
func (h *PageHandler) sessionFromRequest(r *http.Request) *model.Session {
	accountID, ok := auth.AccountIDFromContext(r.Context())
	if !ok {
		return nil
	}
	session, err := h.auth.CurrentUser(r.Context(), accountID)
	if err != nil {
		return nil
	}
	return session
}

func (h *PageHandler) render(w http.ResponseWriter, tmpl *template.Template, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		h.logger.Error("failed to render template", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
