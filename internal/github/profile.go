package github

import (
	"context"
	"strings"

	"github.com/sakif/profile-finder/internal/model"
)

// DefaultReposPerPage is the display window for the repositories tab. The
// full set (up to 100) is fetched once; paging through it never touches the
// network again.
const DefaultReposPerPage = 10

// LoadProfile aggregates the four requests a profile view needs: the user,
// their repositories, followers, and following. The requests run in order
// and the first failure aborts the whole load — there is no partial profile,
// the caller surfaces that request's error as the view's error.
func (c *Client) LoadProfile(ctx context.Context, username string) (*model.ProfileView, error) {
	profile, err := c.User(ctx, username)
	if err != nil {
		return nil, err
	}

	repos, err := c.Repos(ctx, username)
	if err != nil {
		return nil, err
	}

	followers, err := c.Followers(ctx, username)
	if err != nil {
		return nil, err
	}

	following, err := c.Following(ctx, username)
	if err != nil {
		return nil, err
	}

	return &model.ProfileView{
		Profile:      profile,
		Repositories: repos,
		Followers:    followers,
		Following:    following,
	}, nil
}

// ReposPage slices the fetched repository list into the given display page
// (1-based). Out-of-range pages return an empty slice.
func ReposPage(repos []model.Repository, page, perPage int) []model.Repository {
	if perPage <= 0 {
		perPage = DefaultReposPerPage
	}
	if page <= 0 {
		page = 1
	}

	start := (page - 1) * perPage
	if start >= len(repos) {
		return []model.Repository{}
	}
	end := start + perPage
	if end > len(repos) {
		end = len(repos)
	}
	return repos[start:end]
}

// RepoPageCount returns the number of display pages for the fetched set.
func RepoPageCount(repos []model.Repository, perPage int) int {
	if perPage <= 0 {
		perPage = DefaultReposPerPage
	}
	return (len(repos) + perPage - 1) / perPage
}

// FilterUsers returns the users whose login contains the filter text,
// case-insensitively. An empty filter returns the input unchanged. Backs the
// filter box on the followers/following tabs.
func FilterUsers(users []model.UserSummary, filter string) []model.UserSummary {
	if filter == "" {
		return users
	}

	needle := strings.ToLower(filter)
	matched := []model.UserSummary{}
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Login), needle) {
			matched = append(matched, u)
		}
	}
	return matched
}
