// Package github is a minimal read-only client for the public GitHub REST
// API: user search, profiles, repositories, and follower lists.
//
// The client decodes only the fields the views render, and translates HTTP
// status codes into the application's error taxonomy with the exact messages
// the views surface. There is no retry, caching, or rate-limit recovery —
// a 403 is reported to the user and the action is simply retried later.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"golang.org/x/oauth2"

	"github.com/sakif/profile-finder/internal/apperror"
	"github.com/sakif/profile-finder/internal/model"
)

// DefaultBaseURL is the public GitHub API root. Tests point the client at an
// httptest server instead.
const DefaultBaseURL = "https://api.github.com"

// DefaultPerPage is the search page size.
const DefaultPerPage = 30

// reposPerFetch is how many repositories a profile load requests; display
// pagination slices this set client-side rather than fetching more pages.
const reposPerFetch = 100

const acceptHeader = "application/vnd.github.v3+json"

// User-facing error messages. Surfaced verbatim, so wording matters.
const (
	msgSearchRateLimited  = "API rate limit exceeded. Please try again later or add a GitHub token."
	msgProfileRateLimited = "API rate limit exceeded. Please try again later."
	msgInvalidQuery       = "Invalid search query. Please try a different search term."
	msgSearchFailed       = "Failed to fetch search results. Please try again later."
	msgProfileFailed      = "Failed to fetch profile. Please try again later."
	msgReposFailed        = "Failed to fetch repositories. Please try again later."
	msgFollowersFailed    = "Failed to fetch followers. Please try again later."
	msgFollowingFailed    = "Failed to fetch following list. Please try again later."
)

// Client talks to the GitHub REST API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a Client. baseURL "" means the public API. When token is
// non-empty every request carries "Authorization: token <token>" — the
// oauth2 transport injects the header, with the token type set to GitHub's
// classic "token" scheme.
func NewClient(baseURL, token string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := http.DefaultClient
	if token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: token,
			TokenType:   "token",
		})
		httpClient = oauth2.NewClient(context.Background(), src)
	}

	return &Client{
		baseURL: baseURL,
		http:    httpClient,
		logger:  logger,
	}
}

// SearchUsers runs GET /search/users for the given query string (already in
// GitHub search syntax — see Query) and returns the requested page.
//
// Status mapping: 403 → rate limit, 422 → invalid query, other non-2xx →
// generic search failure. A response with TotalCount == 0 is returned as-is;
// "no results" is a domain condition for the caller, not an error.
func (c *Client) SearchUsers(ctx context.Context, q string, page, perPage int) (*model.SearchResult, error) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	endpoint := fmt.Sprintf("%s/search/users?q=%s&per_page=%d&page=%d",
		c.baseURL, url.QueryEscape(q), perPage, page)

	resp, err := c.get(ctx, endpoint)
	if err != nil {
		c.logger.Warn("search request failed", slog.String("error", err.Error()))
		return nil, apperror.Upstream(msgSearchFailed)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden:
		return nil, apperror.RateLimited(msgSearchRateLimited)
	case resp.StatusCode == http.StatusUnprocessableEntity:
		return nil, apperror.ValidationFailed("q", msgInvalidQuery)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.logger.Warn("search returned unexpected status",
			slog.Int("status", resp.StatusCode),
		)
		return nil, apperror.Upstream(msgSearchFailed)
	}

	var result model.SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, apperror.Upstream(msgSearchFailed)
	}
	if result.Items == nil {
		result.Items = []model.UserSummary{}
	}

	return &result, nil
}

// User fetches GET /users/:username. A 404 becomes the user-not-found error
// naming the requested login.
func (c *Client) User(ctx context.Context, username string) (*model.Profile, error) {
	resp, err := c.get(ctx, fmt.Sprintf("%s/users/%s", c.baseURL, url.PathEscape(username)))
	if err != nil {
		c.logger.Warn("profile request failed",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return nil, apperror.Upstream(msgProfileFailed)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperror.NotFoundMsg(fmt.Sprintf("User %s not found", username))
	case resp.StatusCode == http.StatusForbidden:
		return nil, apperror.RateLimited(msgProfileRateLimited)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, apperror.Upstream(msgProfileFailed)
	}

	var profile model.Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, apperror.Upstream(msgProfileFailed)
	}

	return &profile, nil
}

// Repos fetches the user's repositories, most recently updated first, up to
// reposPerFetch in a single request.
func (c *Client) Repos(ctx context.Context, username string) ([]model.Repository, error) {
	endpoint := fmt.Sprintf("%s/users/%s/repos?per_page=%d&sort=updated",
		c.baseURL, url.PathEscape(username), reposPerFetch)

	var repos []model.Repository
	if err := c.getList(ctx, endpoint, &repos, msgReposFailed); err != nil {
		return nil, err
	}
	if repos == nil {
		repos = []model.Repository{}
	}
	return repos, nil
}

// Followers fetches GET /users/:username/followers.
func (c *Client) Followers(ctx context.Context, username string) ([]model.UserSummary, error) {
	endpoint := fmt.Sprintf("%s/users/%s/followers", c.baseURL, url.PathEscape(username))
	return c.userList(ctx, endpoint, msgFollowersFailed)
}

// Following fetches GET /users/:username/following.
func (c *Client) Following(ctx context.Context, username string) ([]model.UserSummary, error) {
	endpoint := fmt.Sprintf("%s/users/%s/following", c.baseURL, url.PathEscape(username))
	return c.userList(ctx, endpoint, msgFollowingFailed)
}

func (c *Client) userList(ctx context.Context, endpoint, failMsg string) ([]model.UserSummary, error) {
	var users []model.UserSummary
	if err := c.getList(ctx, endpoint, &users, failMsg); err != nil {
		return nil, err
	}
	if users == nil {
		users = []model.UserSummary{}
	}
	return users, nil
}

// getList fetches a list endpoint and applies the shared status mapping for
// the per-profile sub-requests: 403 → rate limit, any other non-2xx → the
// endpoint's generic failure message.
func (c *Client) getList(ctx context.Context, endpoint string, dst any, failMsg string) error {
	resp, err := c.get(ctx, endpoint)
	if err != nil {
		c.logger.Warn("list request failed",
			slog.String("url", endpoint),
			slog.String("error", err.Error()),
		)
		return apperror.Upstream(failMsg)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden:
		return apperror.RateLimited(msgProfileRateLimited)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return apperror.Upstream(failMsg)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return apperror.Upstream(failMsg)
	}
	return nil
}

func (c *Client) get(ctx context.Context, endpoint string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("github: building request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)

	return c.http.Do(req)
}
