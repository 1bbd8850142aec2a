package model

// GitHub API payloads. GitHub returns much larger objects — we only unmarshal
// the fields the views render. None of these are persisted; they are fetched
// fresh per view and held only in transient state.

// UserSummary is a search-result or follower entry.
type UserSummary struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
	Bio       string `json:"bio,omitempty"`
}

// Profile is the full /users/:username payload subset.
type Profile struct {
	Login           string `json:"login"`
	AvatarURL       string `json:"avatar_url"`
	HTMLURL         string `json:"html_url"`
	Name            string `json:"name,omitempty"`
	Bio             string `json:"bio,omitempty"`
	Followers       int    `json:"followers"`
	Following       int    `json:"following"`
	PublicRepos     int    `json:"public_repos"`
	Location        string `json:"location,omitempty"`
	Company         string `json:"company,omitempty"`
	Blog            string `json:"blog,omitempty"`
	TwitterUsername string `json:"twitter_username,omitempty"`
}

// Repository is a /users/:username/repos entry.
type Repository struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	HTMLURL         string `json:"html_url"`
	StargazersCount int    `json:"stargazers_count"`
	Language        string `json:"language,omitempty"`
	UpdatedAt       string `json:"updated_at"`
}

// SearchResult is the /search/users response subset.
type SearchResult struct {
	Items      []UserSummary `json:"items"`
	TotalCount int           `json:"total_count"`
}

// ProfileView is the aggregate a profile page renders: the outcome of the
// four per-profile GitHub requests combined into one value.
type ProfileView struct {
	Profile      *Profile      `json:"profile"`
	Repositories []Repository  `json:"repositories"`
	Followers    []UserSummary `json:"followers"`
	Following    []UserSummary `json:"following"`
}
