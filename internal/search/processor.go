package search

import (
	"path/filepath"
	"strings"
)

// query is a find pattern prepared once per call.
type query struct {
	// raw is the pattern with separators in the platform's native style.
	raw string
	// lower is raw lower-cased, for exact (substring) matching.
	lower string
	// slash is raw with forward slashes, for ranking against file:// URIs.
	slash string
	// matchAll is set for the empty pattern and the lone wildcard.
	matchAll bool
}

// prepareQuery normalizes the pattern before any candidate is compared against it.
func prepareQuery(pattern string) query {
	raw := filepath.FromSlash(pattern)
	return query{
		raw:      raw,
		lower:    strings.ToLower(raw),
		slash:    filepath.ToSlash(raw),
		matchAll: raw == "" || raw == "*",
	}
}
