package github

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sakif/profile-finder/internal/model"
)

func makeRepos(n int) []model.Repository {
	repos := make([]model.Repository, n)
	for i := range repos {
		repos[i] = model.Repository{ID: int64(i + 1)}
	}
	return repos
}

func TestReposPage(t *testing.T) {
	repos := makeRepos(25)

	page1 := ReposPage(repos, 1, 10)
	assert.Len(t, page1, 10)
	assert.Equal(t, int64(1), page1[0].ID)

	page3 := ReposPage(repos, 3, 10)
	assert.Len(t, page3, 5)
	assert.Equal(t, int64(21), page3[0].ID)

	// Out of range pages are empty, not an error.
	assert.Empty(t, ReposPage(repos, 4, 10))
	assert.Empty(t, ReposPage(nil, 1, 10))

	// Page and size zero fall back to defaults.
	assert.Len(t, ReposPage(repos, 0, 0), DefaultReposPerPage)
}

func TestRepoPageCount(t *testing.T) {
	assert.Equal(t, 0, RepoPageCount(nil, 10))
	assert.Equal(t, 1, RepoPageCount(makeRepos(10), 10))
	assert.Equal(t, 2, RepoPageCount(makeRepos(11), 10))
	assert.Equal(t, 3, RepoPageCount(makeRepos(25), 10))
}

func TestFilterUsers(t *testing.T) {
	users := []model.UserSummary{
		{Login: "torvalds"},
		{Login: "Octocat"},
		{Login: "gaearon"},
	}

	assert.Equal(t, users, FilterUsers(users, ""))

	matched := FilterUsers(users, "OCTO")
	assert.Len(t, matched, 1)
	assert.Equal(t, "Octocat", matched[0].Login)

	matched = FilterUsers(users, "a")
	assert.Len(t, matched, 3)

	assert.Empty(t, FilterUsers(users, "zzz"))
}
