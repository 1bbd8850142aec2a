// Package search accumulates paginated GitHub search results for a single
// query. Each new query starts a fresh accumulation; loading more appends
// the next page to what is already shown, de-duplicating logins the API
// occasionally repeats across page boundaries.
package search

import (
	"context"
	"sync"

	"github.com/sakif/profile-finder/internal/model"
)

// Searcher is the one GitHub call the session needs. *github.Client
// satisfies it.
type Searcher interface {
	SearchUsers(ctx context.Context, q string, page, perPage int) (*model.SearchResult, error)
}

// Session holds the accumulated results of one search query and tracks how
// far pagination has advanced. It is safe for concurrent use; the lock is
// released around network calls, and a generation counter discards any load
// that finishes after Search has moved on to a different query.
type Session struct {
	searcher Searcher
	perPage  int

	mu    sync.Mutex
	gen   uint64
	query string
	page  int
	total int
	items []model.UserSummary
	seen  map[string]struct{}
}

// Results is a point-in-time snapshot of a session.
type Results struct {
	Query      string
	Items      []model.UserSummary
	TotalCount int
	HasMore    bool
}

// NewSession creates a session over the given searcher. perPage <= 0 uses
// the searcher's default page size of 30.
func NewSession(searcher Searcher, perPage int) *Session {
	if perPage <= 0 {
		perPage = 30
	}
	return &Session{
		searcher: searcher,
		perPage:  perPage,
		items:    []model.UserSummary{},
		seen:     map[string]struct{}{},
	}
}

// Search discards whatever the session has accumulated and loads the first
// page for the new query. On failure the session is left empty, not holding
// the previous query's results.
func (s *Session) Search(ctx context.Context, query string) (Results, error) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.query = query
	s.page = 0
	s.total = 0
	s.items = []model.UserSummary{}
	s.seen = map[string]struct{}{}
	s.mu.Unlock()

	return s.load(ctx, gen, query, 1)
}

// LoadMore appends the next page for the current query. Calling it when
// HasMore is false, or before any search, is a no-op returning the current
// snapshot.
func (s *Session) LoadMore(ctx context.Context) (Results, error) {
	s.mu.Lock()
	if s.query == "" || !s.hasMoreLocked() {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, nil
	}
	gen := s.gen
	query := s.query
	next := s.page + 1
	s.mu.Unlock()

	return s.load(ctx, gen, query, next)
}

// Snapshot returns the current accumulated state without touching the
// network.
func (s *Session) Snapshot() Results {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) load(ctx context.Context, gen uint64, query string, page int) (Results, error) {
	result, err := s.searcher.SearchUsers(ctx, query, page, s.perPage)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gen != gen {
		// A newer Search superseded this load; drop it.
		return s.snapshotLocked(), nil
	}

	if err != nil {
		s.items = []model.UserSummary{}
		s.seen = map[string]struct{}{}
		s.total = 0
		s.page = 0
		return s.snapshotLocked(), err
	}

	s.page = page
	s.total = result.TotalCount
	for _, u := range result.Items {
		if _, dup := s.seen[u.Login]; dup {
			continue
		}
		s.seen[u.Login] = struct{}{}
		s.items = append(s.items, u)
	}

	return s.snapshotLocked(), nil
}

func (s *Session) hasMoreLocked() bool {
	return len(s.items) < s.total
}

func (s *Session) snapshotLocked() Results {
	items := make([]model.UserSummary, len(s.items))
	copy(items, s.items)
	return Results{
		Query:      s.query,
		Items:      items,
		TotalCount: s.total,
		HasMore:    s.hasMoreLocked(),
	}
}
