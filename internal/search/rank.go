package search

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

// RankMode selects how matching entries are ordered.
type RankMode string

const (
	// RankNone keeps host or traversal order.
	RankNone RankMode = "none"
	// RankFuzzy orders by fuzzy score.
	RankFuzzy RankMode = "fuzzy"
)

type rankSource struct {
	keys []string
}

func (s rankSource) String(i int) string { return s.keys[i] }

func (s rankSource) Len() int { return len(s.keys) }

// Rank orders items by fuzzy score of query against key(item), both
// normalized. Items without a fuzzy hit follow in their original order. The
// result is a new slice.
func Rank[T any](query string, items []T, key func(T) string) []T {
	out := make([]T, 0, len(items))
	if query == "" || len(items) < 2 {
		return append(out, items...)
	}

	keys := make([]string, len(items))
	for i, item := range items {
		keys[i] = Normalize(key(item))
	}

	matches := fuzzy.FindFrom(Normalize(query), rankSource{keys: keys})
	used := make([]bool, len(items))
	for _, m := range matches {
		out = append(out, items[m.Index])
		used[m.Index] = true
	}
	for i, item := range items {
		if !used[i] {
			out = append(out, item)
		}
	}
	return out
}

// ParseRankMode accepts "none", "fuzzy" or empty (none).
func ParseRankMode(s string) (RankMode, error) {
	switch RankMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", RankNone:
		return RankNone, nil
	case RankFuzzy:
		return RankFuzzy, nil
	default:
		return RankNone, fmt.Errorf("unknown rank mode %q", s)
	}
}
