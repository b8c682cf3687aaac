// Package finder derives the result list for each source from the host
// stores and the current query.
//
// Each source is a pure function of (host snapshot, query):
//
//	bookmarks: BookmarkTree → Flatten → Filter(Matcher(q)) → [Rank]
//	history:   SearchHistory(Match: Matcher(q), MaxResults)  → [Rank]
//	cookies:   Cookies → FilterCookies(q)
//
// The Engine runs those functions through a per-source cache and bounds
// every host call with a timeout, so a hung store produces a Timeout
// failure instead of an endless wait.
package finder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/trawl/internal/browser"
	"github.com/five82/trawl/internal/cache"
	"github.com/five82/trawl/internal/logging"
	"github.com/five82/trawl/internal/search"
)

const DefaultFetchTimeout = 3 * time.Second

// Options configures an Engine.
type Options struct {
	HistoryLimit int
	HistoryScan  int
	FetchTimeout time.Duration
	Match        search.Options
	Rank         search.RankMode
	CacheSize    int
	CacheTTL     time.Duration
	Logger       logrus.FieldLogger
}

// Result is one source's answer to a query: the items, or a typed failure
// next to whatever stale items the cache still had.
type Result[T any] struct {
	Query     string
	Items     []T
	Err       *browser.FetchError
	Stale     bool
	FetchedAt time.Time
}

// OK reports whether the result carries no failure.
func (r Result[T]) OK() bool { return r.Err == nil }

// Engine is safe for concurrent use.
type Engine struct {
	host browser.Host
	opts Options
	log  logrus.FieldLogger

	bookmarks *cache.Cache[[]browser.FlatEntry]
	history   *cache.Cache[[]browser.HistoryEntry]
	cookies   *cache.Cache[[]browser.Cookie]
}

// New returns an Engine reading host.
func New(host browser.Host, opts Options) (*Engine, error) {
	if host == nil {
		return nil, fmt.Errorf("finder: nil host")
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = browser.DefaultHistoryResults
	}
	if opts.HistoryScan <= 0 {
		opts.HistoryScan = browser.DefaultHistoryScan
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultFetchTimeout
	}
	if opts.Rank == "" {
		opts.Rank = search.RankNone
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = cache.DefaultSize
	}

	e := &Engine{
		host: host,
		opts: opts,
		log:  logging.OrDiscard(opts.Logger).WithField("component", "finder"),
	}
	var err error
	if e.bookmarks, err = cache.New[[]browser.FlatEntry](opts.CacheSize, opts.CacheTTL); err != nil {
		return nil, err
	}
	if e.history, err = cache.New[[]browser.HistoryEntry](opts.CacheSize, opts.CacheTTL); err != nil {
		return nil, err
	}
	if e.cookies, err = cache.New[[]browser.Cookie](opts.CacheSize, opts.CacheTTL); err != nil {
		return nil, err
	}
	return e, nil
}

// Host returns the host the engine reads.
func (e *Engine) Host() browser.Host { return e.host }

// Bookmarks returns the bookmarks matching query.
func (e *Engine) Bookmarks(ctx context.Context, query string) Result[browser.FlatEntry] {
	return run(ctx, e, e.bookmarks, browser.SourceBookmarks, query, func(ctx context.Context) ([]browser.FlatEntry, error) {
		forest, err := e.host.BookmarkTree(ctx)
		if err != nil {
			return nil, err
		}
		return DeriveBookmarks(forest, query, e.opts.Match, e.opts.Rank), nil
	})
}

// History returns up to HistoryLimit visited pages matching query.
func (e *Engine) History(ctx context.Context, query string) Result[browser.HistoryEntry] {
	return run(ctx, e, e.history, browser.SourceHistory, query, func(ctx context.Context) ([]browser.HistoryEntry, error) {
		m := search.NewMatcher(query, e.opts.Match)
		entries, err := e.host.SearchHistory(ctx, browser.HistoryQuery{
			Text:       query,
			MaxResults: e.opts.HistoryLimit,
			ScanLimit:  e.opts.HistoryScan,
			Match:      m.Match,
		})
		if err != nil {
			return nil, err
		}
		if e.opts.Rank == search.RankFuzzy {
			entries = search.Rank(query, entries, historyKey)
		}
		return entries, nil
	})
}

// Cookies returns the cookies whose domain or name contains query.
func (e *Engine) Cookies(ctx context.Context, query string) Result[browser.Cookie] {
	return run(ctx, e, e.cookies, browser.SourceCookies, query, func(ctx context.Context) ([]browser.Cookie, error) {
		all, err := e.host.Cookies(ctx)
		if err != nil {
			return nil, err
		}
		return FilterCookies(all, query), nil
	})
}

// CachedBookmarks returns the cached bookmarks for query without fetching.
func (e *Engine) CachedBookmarks(query string) (Result[browser.FlatEntry], bool) {
	return cached(e.bookmarks, browser.SourceBookmarks, query)
}

// CachedHistory returns the cached history for query without fetching.
func (e *Engine) CachedHistory(query string) (Result[browser.HistoryEntry], bool) {
	return cached(e.history, browser.SourceHistory, query)
}

// CachedCookies returns the cached cookies for query without fetching.
func (e *Engine) CachedCookies(query string) (Result[browser.Cookie], bool) {
	return cached(e.cookies, browser.SourceCookies, query)
}

// Invalidate drops every cached result for source.
func (e *Engine) Invalidate(source browser.Source) {
	var removed int
	switch source {
	case browser.SourceBookmarks:
		removed = e.bookmarks.Invalidate(source)
	case browser.SourceHistory:
		removed = e.history.Invalidate(source)
	case browser.SourceCookies:
		removed = e.cookies.Invalidate(source)
	}
	e.log.WithFields(logrus.Fields{"source": source, "removed": removed}).Debug("cache invalidated")
}

// InvalidateAll drops every cached result.
func (e *Engine) InvalidateAll() {
	e.bookmarks.Purge()
	e.history.Purge()
	e.cookies.Purge()
	e.log.Debug("cache purged")
}

func cached[T any](c *cache.Cache[[]T], source browser.Source, query string) (Result[T], bool) {
	l := c.Peek(cache.Key{Source: source, Query: query})
	if !l.Found {
		return Result[T]{Query: query}, false
	}
	return Result[T]{Query: query, Items: l.Value, Stale: l.Stale, FetchedAt: l.FetchedAt}, true
}

func run[T any](ctx context.Context, e *Engine, c *cache.Cache[[]T], source browser.Source, query string, fetch func(context.Context) ([]T, error)) Result[T] {
	key := cache.Key{Source: source, Query: query}
	lookup, err := c.GetOrFetch(ctx, key, func(ctx context.Context) ([]T, error) {
		start := time.Now()
		items, err := withTimeout(ctx, e.opts.FetchTimeout, fetch)
		e.log.WithFields(logrus.Fields{
			"source":   source,
			"query":    query,
			"items":    len(items),
			"duration": time.Since(start).Round(time.Millisecond),
		}).Debug("fetched")
		return items, err
	})

	res := Result[T]{Query: query, Items: lookup.Value, Stale: lookup.Stale, FetchedAt: lookup.FetchedAt}
	if err != nil {
		res.Err = browser.AsFetchError(source, err)
		e.log.WithFields(logrus.Fields{
			"source": source,
			"kind":   res.Err.Kind.String(),
			"query":  query,
			"stale":  lookup.Stale,
		}).Warnf("fetch failed: %v", res.Err.Err)
	}
	return res
}

// withTimeout runs fetch with a deadline and gives up waiting when it
// passes, even if fetch ignores ctx.
func withTimeout[T any](ctx context.Context, timeout time.Duration, fetch func(context.Context) ([]T, error)) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		items []T
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		items, err := fetch(ctx)
		done <- outcome{items: items, err: err}
	}()

	select {
	case o := <-done:
		return o.items, o.err
	case <-ctx.Done():
		return nil, fmt.Errorf("host call: %w", ctx.Err())
	}
}

// DeriveBookmarks flattens forest and keeps the entries matching query.
func DeriveBookmarks(forest []browser.TreeNode, query string, opts search.Options, rank search.RankMode) []browser.FlatEntry {
	flat := search.Flatten(forest)
	out := search.Filter(flat, search.NewMatcher(query, opts), bookmarkTitle, bookmarkURL)
	if rank == search.RankFuzzy {
		out = search.Rank(query, out, bookmarkKey)
	}
	return out
}

// FilterCookies keeps cookies whose domain or name contains query, ignoring
// case. An empty query keeps all of them.
func FilterCookies(cookies []browser.Cookie, query string) []browser.Cookie {
	out := make([]browser.Cookie, 0, len(cookies))
	q := strings.ToLower(strings.TrimSpace(query))
	for _, c := range cookies {
		if q == "" || strings.Contains(strings.ToLower(c.Domain), q) || strings.Contains(strings.ToLower(c.Name), q) {
			out = append(out, c)
		}
	}
	return out
}

func bookmarkTitle(e browser.FlatEntry) string { return e.Title }
func bookmarkURL(e browser.FlatEntry) string   { return e.URL }
func bookmarkKey(e browser.FlatEntry) string   { return e.Title + " " + e.URL }
func historyKey(e browser.HistoryEntry) string { return e.Title + " " + e.URL }
