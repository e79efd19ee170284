// Package ranking orders fuzzy path matches for a query.
//
// Candidates are compared by, in order:
//   - fuzzy score, higher first (a candidate the matcher rejects sorts after every match)
//   - first byte index of the query inside the candidate, earlier first (absent sorts last)
//   - length, shorter first
//   - locale-aware collation
//   - byte order
//
// Every key is computed once per candidate, and the final byte comparison makes the order
// total, so sorting is deterministic for a fixed query and input set.
package ranking

import (
	"bytes"
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/hyperjump/fsearch/internal/fuzzy"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Key holds the precomputed sort keys for one candidate.
type Key struct {
	Value   string
	Score   int
	Matched bool
	// Index is the byte offset of the first occurrence of the query in Value, or -1.
	Index     int
	collation []byte
}

// Ranker computes keys for a single query. It is not safe for concurrent use.
type Ranker struct {
	query    string
	collator *collate.Collator
	buf      collate.Buffer
}

// NewRanker returns a Ranker for query. The query must already be separator-normalized the
// same way candidates were matched.
func NewRanker(query string) *Ranker {
	return &Ranker{
		query:    query,
		collator: collate.New(language.Und),
	}
}

// Key computes the sort keys of value.
func (r *Ranker) Key(value string) Key {
	score, ok := fuzzy.Score(r.query, value)
	k := Key{
		Value:     value,
		Score:     score,
		Matched:   ok,
		Index:     strings.Index(value, r.query),
		collation: bytes.Clone(r.collator.KeyFromString(&r.buf, value)),
	}
	r.buf.Reset()
	return k
}

// Compare orders a and b for the ranker's query. It returns a negative number when a
// ranks before b.
func (r *Ranker) Compare(a, b string) int {
	return Compare(r.Key(a), r.Key(b))
}

// Compare orders two precomputed keys. It returns 0 only for identical values.
func Compare(a, b Key) int {
	if a.Matched != b.Matched {
		if a.Matched {
			return -1
		}
		return 1
	}
	if a.Matched {
		if diff := cmp.Compare(b.Score, a.Score); diff != 0 {
			return diff
		}
	}
	if diff := cmp.Compare(normalizeIndex(a.Index), normalizeIndex(b.Index)); diff != 0 {
		return diff
	}
	if diff := cmp.Compare(len(a.Value), len(b.Value)); diff != 0 {
		return diff
	}
	if diff := bytes.Compare(a.collation, b.collation); diff != 0 {
		return diff
	}
	return strings.Compare(a.Value, b.Value)
}

func normalizeIndex(idx int) int {
	if idx < 0 {
		return math.MaxInt
	}
	return idx
}

// Sort orders items in place for query.
func Sort(items []string, query string) {
	if len(items) < 2 {
		return
	}
	r := NewRanker(query)
	keys := make([]Key, len(items))
	for i, item := range items {
		keys[i] = r.Key(item)
	}
	slices.SortStableFunc(keys, Compare)
	for i := range keys {
		items[i] = keys[i].Value
	}
}
