package github

import (
	"fmt"
	"strings"
)

// Query is a GitHub user-search query: a free-text term plus the search
// qualifiers the filter panel exposes. String() renders it in GitHub search
// syntax; the whole thing travels URL-encoded as the single q parameter.
type Query struct {
	Term         string
	Location     string // location:<value>
	MinRepos     int    // repos:>=N, ignored when 0
	MinFollowers int    // followers:>=N, ignored when 0
	Type         string // type:user or type:org
	Sort         string // sort:followers, sort:repositories, or sort:joined
}

// String joins the term and active qualifiers with spaces, skipping empty
// ones. Zero thresholds are treated as "no filter".
func (q Query) String() string {
	parts := make([]string, 0, 6)

	if term := strings.TrimSpace(q.Term); term != "" {
		parts = append(parts, term)
	}
	if q.Location != "" {
		parts = append(parts, "location:"+q.Location)
	}
	if q.MinRepos > 0 {
		parts = append(parts, fmt.Sprintf("repos:>=%d", q.MinRepos))
	}
	if q.MinFollowers > 0 {
		parts = append(parts, fmt.Sprintf("followers:>=%d", q.MinFollowers))
	}
	if q.Type != "" {
		parts = append(parts, "type:"+q.Type)
	}
	if q.Sort != "" {
		parts = append(parts, "sort:"+q.Sort)
	}

	return strings.Join(parts, " ")
}

// IsEmpty reports whether the query has no search term. The views require a
// term before searching ("Please enter a username").
func (q Query) IsEmpty() bool {
	return strings.TrimSpace(q.Term) == ""
}
