package search

import (
	"slices"
	"strings"
	"sync"

	"github.com/hyperjump/fsearch/internal/fuzzy"
	"github.com/hyperjump/fsearch/internal/ranking"
)

// collector is the result set of one find call, shared by all root searches.
// A URI lands in at most one of exact and fuzzy; the first classification wins.
type collector struct {
	query      query
	fuzzyMatch bool
	limit      int

	mu    sync.Mutex
	seen  map[string]struct{}
	exact []string
	fuzzy []string
}

func newCollector(q query, fuzzyMatch bool, limit int) *collector {
	return &collector{
		query:      q,
		fuzzyMatch: fuzzyMatch,
		limit:      limit,
		seen:       make(map[string]struct{}),
	}
}

// add classifies a candidate path and records its URI. It reports whether this call
// brought the exact-match count to the limit.
func (c *collector) add(uri, candidate string) (limitReached bool) {
	isExact := c.query.matchAll || strings.Contains(strings.ToLower(candidate), c.query.lower)
	if !isExact && !(c.fuzzyMatch && fuzzy.IsMatch(c.query.raw, candidate)) {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.full() {
		return false
	}
	if _, dup := c.seen[uri]; dup {
		return false
	}
	c.seen[uri] = struct{}{}
	if !isExact {
		c.fuzzy = append(c.fuzzy, uri)
		return false
	}
	c.exact = append(c.exact, uri)
	return c.full()
}

// full reports whether the exact matches alone fill the limit. Callers hold c.mu.
func (c *collector) full() bool {
	return c.limit > 0 && len(c.exact) >= c.limit
}

// results returns exact matches in discovery order followed by ranked fuzzy matches,
// truncated to the limit.
func (c *collector) results() []string {
	c.mu.Lock()
	exact := slices.Clone(c.exact)
	fuzzyMatches := slices.Clone(c.fuzzy)
	c.mu.Unlock()

	out := make([]string, 0, len(exact)+len(fuzzyMatches))
	out = append(out, exact...)
	if c.limit <= 0 || len(out) < c.limit {
		ranking.Sort(fuzzyMatches, c.query.slash)
		out = append(out, fuzzyMatches...)
	}
	if c.limit > 0 && len(out) > c.limit {
		out = out[:c.limit]
	}
	return out
}
