package search

import "strings"

// Options tunes a Matcher. The zero value matches literally with case.
type Options struct {
	// IgnoreCase folds case on the literal title and URL checks.
	IgnoreCase bool
}

// Matcher is the predicate for one query. Build it once per query and
// reuse it across entries.
type Matcher struct {
	query    string
	phonetic string
	fold     bool
}

// NewMatcher prepares the predicate for query.
func NewMatcher(query string, opts Options) Matcher {
	m := Matcher{
		query:    query,
		phonetic: Normalize(query),
		fold:     opts.IgnoreCase,
	}
	if m.fold {
		m.query = strings.ToLower(query)
	}
	return m
}

// Query returns the query as typed, or lowercased when case is folded.
func (m Matcher) Query() string { return m.query }

// Empty reports whether the matcher accepts everything.
func (m Matcher) Empty() bool { return m.query == "" }

// Match reports whether an entry with title and url satisfies the query.
func (m Matcher) Match(title, url string) bool {
	if m.query == "" {
		return true
	}
	if strings.Contains(Normalize(title), m.phonetic) {
		return true
	}

	litTitle, litURL := title, url
	if m.fold {
		litTitle, litURL = strings.ToLower(title), strings.ToLower(url)
	}
	if strings.Contains(litTitle, m.query) || strings.Contains(litURL, m.query) {
		return true
	}
	return strings.Contains(url, m.phonetic)
}

// Filter returns the items accepted by m, in input order. items is not
// modified and the result never aliases it.
func Filter[T any](items []T, m Matcher, title, url func(T) string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if m.Match(title(item), url(item)) {
			out = append(out, item)
		}
	}
	return out
}
