// Package fuzzy decides whether a candidate path is a fuzzy match for a query and scores it.
//
// Matching is a case-insensitive subsequence test backed by github.com/sahilm/fuzzy, which
// rewards adjacent matches, matches after separators and camel-case boundaries, and matches
// near the start of the candidate. Scores are only comparable for the same query.
package fuzzy

import "github.com/sahilm/fuzzy"

// Score returns the fuzzy score of candidate for query. ok is false when candidate does not
// contain every query character in order. An empty query never matches.
func Score(query, candidate string) (score int, ok bool) {
	if query == "" {
		return 0, false
	}
	matches := fuzzy.Find(query, []string{candidate})
	if len(matches) == 0 {
		return 0, false
	}
	return matches[0].Score, true
}

// IsMatch reports whether candidate is a fuzzy match for query.
func IsMatch(query, candidate string) bool {
	_, ok := Score(query, candidate)
	return ok
}
