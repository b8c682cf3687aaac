// Package cache holds fetched results keyed by source and query.
//
// Entries are evicted least-recently-used once the capacity is reached and
// are fresh for a fixed TTL. GetOrFetch serves fresh hits directly, runs a
// single shared fetch per key otherwise, and falls back to the previous
// value with Stale set when that fetch fails. Failures are never stored.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/five82/trawl/internal/browser"
)

const (
	DefaultSize = 128
	DefaultTTL  = 30 * time.Second
)

// Key identifies one cached result.
type Key struct {
	Source browser.Source
	Query  string
}

func (k Key) String() string {
	return string(k.Source) + "\x00" + k.Query
}

// Lookup is the outcome of a cache read.
type Lookup[V any] struct {
	Value     V
	Found     bool
	Stale     bool
	FetchedAt time.Time
}

type entry[V any] struct {
	value     V
	fetchedAt time.Time
}

// Cache is safe for concurrent use.
type Cache[V any] struct {
	ttl   time.Duration
	now   func() time.Time
	group singleflight.Group

	mu      sync.Mutex
	entries *lru.Cache[Key, entry[V]]
	// generation per source; a fetch that started before Invalidate is not
	// stored.
	generation map[browser.Source]uint64
}

// New returns a cache holding up to size entries, fresh for ttl. A ttl of
// zero or less means entries never go stale.
func New[V any](size int, ttl time.Duration) (*Cache[V], error) {
	if size <= 0 {
		size = DefaultSize
	}
	entries, err := lru.New[Key, entry[V]](size)
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}
	return &Cache[V]{
		ttl:        ttl,
		now:        time.Now,
		entries:    entries,
		generation: make(map[browser.Source]uint64),
	}, nil
}

func (c *Cache[V]) fresh(e entry[V]) bool {
	return c.ttl <= 0 || c.now().Sub(e.fetchedAt) < c.ttl
}

// Peek returns the cached value without fetching or touching recency.
func (c *Cache[V]) Peek(key Key) Lookup[V] {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries.Peek(key)
	if !ok {
		return Lookup[V]{}
	}
	return Lookup[V]{Value: e.value, Found: true, Stale: !c.fresh(e), FetchedAt: e.fetchedAt}
}

// GetOrFetch returns a fresh cached value or runs fetch. Concurrent callers
// for the same key share one fetch. When fetch fails and a value is cached,
// it is returned with Stale set alongside the error.
func (c *Cache[V]) GetOrFetch(ctx context.Context, key Key, fetch func(context.Context) (V, error)) (Lookup[V], error) {
	c.mu.Lock()
	cached, ok := c.entries.Get(key)
	gen := c.generation[key.Source]
	c.mu.Unlock()

	if ok && c.fresh(cached) {
		return Lookup[V]{Value: cached.value, Found: true, FetchedAt: cached.fetchedAt}, nil
	}

	// Callers share a fetch only within one generation, and the shared
	// fetch outlives any single caller's cancellation.
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(fmt.Sprintf("%s\x00%d", key, gen), func() (any, error) {
		v, err := fetch(shared)
		if err != nil {
			return nil, err
		}
		e := entry[V]{value: v, fetchedAt: c.now()}
		c.mu.Lock()
		if c.generation[key.Source] == gen {
			c.entries.Add(key, e)
		}
		c.mu.Unlock()
		return e, nil
	})

	var res any
	var err error
	select {
	case r := <-ch:
		res, err = r.Val, r.Err
	case <-ctx.Done():
		err = ctx.Err()
	}
	if err != nil {
		if prev := c.Peek(key); prev.Found {
			prev.Stale = true
			return prev, err
		}
		return Lookup[V]{}, err
	}
	e := res.(entry[V])
	return Lookup[V]{Value: e.value, Found: true, FetchedAt: e.fetchedAt}, nil
}

// Invalidate drops every entry for source.
func (c *Cache[V]) Invalidate(source browser.Source) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation[source]++
	removed := 0
	for _, k := range c.entries.Keys() {
		if k.Source == source {
			c.entries.Remove(k)
			removed++
		}
	}
	return removed
}

// Purge drops everything.
func (c *Cache[V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range browser.Sources() {
		c.generation[s]++
	}
	c.entries.Purge()
}

// Len returns the number of cached entries.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Len()
}
