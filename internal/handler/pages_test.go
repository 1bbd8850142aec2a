package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexPage_EmptyForm(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Search GitHub users")
	assert.NotContains(t, rec.Body.String(), "Found")
}

func TestIndexPage_RendersResults(t *testing.T) {
	env := newTestEnv(t)
	env.githubMux.HandleFunc("/search/users", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"total_count":1,"items":[{"login":"torvalds","avatar_url":"https://a.example/1"}]}`)
	})

	rec := env.do(t, http.MethodGet, "/?q=torvalds", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Found 1 users")
	assert.Contains(t, body, `/profile/torvalds`)
}

func TestIndexPage_NoResultsMessage(t *testing.T) {
	env := newTestEnv(t)
	env.githubMux.HandleFunc("/search/users", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"total_count":0,"items":[]}`)
	})

	rec := env.do(t, http.MethodGet, "/?q=nobody", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No users found matching your search criteria.")
}

func TestIndexPage_SearchErrorBanner(t *testing.T) {
	env := newTestEnv(t)
	env.githubMux.HandleFunc("/search/users", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	rec := env.do(t, http.MethodGet, "/?q=torvalds", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(),
		"API rate limit exceeded. Please try again later or add a GitHub token.")
}

func TestProfilePage_RendersProfile(t *testing.T) {
	env := newTestEnv(t)
	env.githubMux.HandleFunc("/users/torvalds", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"login":"torvalds","name":"Linus Torvalds","followers":100,"html_url":"https://github.com/torvalds"}`)
	})
	env.githubMux.HandleFunc("/users/torvalds/repos", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id":1,"name":"linux","html_url":"https://github.com/torvalds/linux"}]`)
	})
	env.githubMux.HandleFunc("/users/torvalds/followers", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"login":"follower1"}]`)
	})
	env.githubMux.HandleFunc("/users/torvalds/following", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})

	rec := env.do(t, http.MethodGet, "/profile/torvalds", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Linus Torvalds")
	assert.Contains(t, body, "100 followers")
	assert.Contains(t, body, "linux")
}

func TestProfilePage_UnknownUser(t *testing.T) {
	env := newTestEnv(t)
	env.githubMux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rec := env.do(t, http.MethodGet, "/profile/ghost", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "User ghost not found")
}

func TestMePage_RedirectsAnonymous(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/profile/me", nil, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestMePage_ShowsFavorites(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.signup(t, "alice", "alice@example.com", "secret1")

	env.githubMux.HandleFunc("/users/torvalds", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"login":"torvalds","followers":100,"public_repos":5}`)
	})

	rec := env.do(t, http.MethodPost, "/api/favorites/torvalds", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/profile/me", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "alice")
	assert.Contains(t, body, "/profile/torvalds")
}
