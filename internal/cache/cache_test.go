package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/five82/trawl/internal/browser"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestCache(t *testing.T, size int, ttl time.Duration) (*Cache[[]string], *fakeClock) {
	t.Helper()
	c, err := New[[]string](size, ttl)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	clock := &fakeClock{now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	c.now = clock.Now
	return c, clock
}

func staticFetch(calls *int32, value []string, err error) func(context.Context) ([]string, error) {
	return func(context.Context) ([]string, error) {
		atomic.AddInt32(calls, 1)
		return value, err
	}
}

func TestHitWithinTTLDoesNotFetch(t *testing.T) {
	c, clock := newTestCache(t, 8, 30*time.Second)
	key := Key{Source: browser.SourceBookmarks, Query: "mail"}
	var calls int32

	first, err := c.GetOrFetch(context.Background(), key, staticFetch(&calls, []string{"a"}, nil))
	if err != nil || !first.Found || first.Stale {
		t.Fatalf("unexpected first lookup %+v, %v", first, err)
	}

	clock.Advance(10 * time.Second)
	second, err := c.GetOrFetch(context.Background(), key, staticFetch(&calls, []string{"b"}, nil))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if calls != 1 || second.Value[0] != "a" {
		t.Fatalf("expected cached value without fetch, calls=%d value=%v", calls, second.Value)
	}

	clock.Advance(30 * time.Second)
	if peek := c.Peek(key); !peek.Found || !peek.Stale {
		t.Fatalf("expected stale peek after ttl, got %+v", peek)
	}
	third, err := c.GetOrFetch(context.Background(), key, staticFetch(&calls, []string{"c"}, nil))
	if err != nil || calls != 2 || third.Value[0] != "c" {
		t.Fatalf("expected refetch after ttl, calls=%d lookup=%+v err=%v", calls, third, err)
	}
}

func TestFailedRevalidationReturnsStale(t *testing.T) {
	c, clock := newTestCache(t, 8, time.Second)
	key := Key{Source: browser.SourceHistory, Query: ""}
	var calls int32

	if _, err := c.GetOrFetch(context.Background(), key, staticFetch(&calls, []string{"old"}, nil)); err != nil {
		t.Fatal(err)
	}
	clock.Advance(2 * time.Second)

	boom := errors.New("locked")
	got, err := c.GetOrFetch(context.Background(), key, staticFetch(&calls, nil, boom))
	if !errors.Is(err, boom) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	if !got.Found || !got.Stale || got.Value[0] != "old" {
		t.Fatalf("expected stale previous value, got %+v", got)
	}

	// The failure is not cached: the next call fetches again.
	if _, err := c.GetOrFetch(context.Background(), key, staticFetch(&calls, []string{"new"}, nil)); err != nil {
		t.Fatal(err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 fetches, got %d", calls)
	}
}

func TestFailureWithoutPreviousValue(t *testing.T) {
	c, _ := newTestCache(t, 8, time.Second)
	var calls int32
	got, err := c.GetOrFetch(context.Background(), Key{Source: browser.SourceCookies}, staticFetch(&calls, nil, errors.New("nope")))
	if err == nil || got.Found {
		t.Fatalf("expected miss with error, got %+v, %v", got, err)
	}
	if c.Len() != 0 {
		t.Fatalf("expected failure not stored, len %d", c.Len())
	}
}

func TestConcurrentCallersShareOneFetch(t *testing.T) {
	c, _ := newTestCache(t, 8, time.Minute)
	key := Key{Source: browser.SourceHistory, Query: "go"}

	var calls int32
	release := make(chan struct{})
	fetch := func(context.Context) ([]string, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return []string{"shared"}, nil
	}

	const callers = 8
	var started, done sync.WaitGroup
	started.Add(callers)
	done.Add(callers)
	results := make([]Lookup[[]string], callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer done.Done()
			started.Done()
			results[i], _ = c.GetOrFetch(context.Background(), key, fetch)
		}(i)
	}
	started.Wait()
	time.Sleep(20 * time.Millisecond)
	close(release)
	done.Wait()

	if n := atomic.LoadInt32(&calls); n < 1 || n > callers {
		t.Fatalf("unexpected fetch count %d", n)
	}
	for i, r := range results {
		if !r.Found || r.Value[0] != "shared" {
			t.Fatalf("caller %d got %+v", i, r)
		}
	}
	if calls != 1 {
		t.Fatalf("expected a single shared fetch, got %d", calls)
	}
}

func TestLRUEviction(t *testing.T) {
	c, _ := newTestCache(t, 2, time.Minute)
	var calls int32
	for _, q := range []string{"a", "b", "c"} {
		if _, err := c.GetOrFetch(context.Background(), Key{Source: browser.SourceBookmarks, Query: q}, staticFetch(&calls, []string{q}, nil)); err != nil {
			t.Fatal(err)
		}
	}
	if c.Peek(Key{Source: browser.SourceBookmarks, Query: "a"}).Found {
		t.Fatal("expected oldest key evicted")
	}
	if !c.Peek(Key{Source: browser.SourceBookmarks, Query: "c"}).Found {
		t.Fatal("expected newest key kept")
	}
}

func TestInvalidateSource(t *testing.T) {
	c, _ := newTestCache(t, 8, time.Minute)
	var calls int32
	keys := []Key{
		{Source: browser.SourceBookmarks, Query: "a"},
		{Source: browser.SourceBookmarks, Query: "b"},
		{Source: browser.SourceCookies, Query: "a"},
	}
	for _, k := range keys {
		if _, err := c.GetOrFetch(context.Background(), k, staticFetch(&calls, []string{"x"}, nil)); err != nil {
			t.Fatal(err)
		}
	}
	if removed := c.Invalidate(browser.SourceBookmarks); removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}
	if c.Peek(keys[0]).Found || !c.Peek(keys[2]).Found {
		t.Fatal("invalidate touched the wrong source")
	}
	c.Purge()
	if c.Len() != 0 {
		t.Fatalf("expected empty cache after purge, len %d", c.Len())
	}
}

func TestInvalidateDuringFetchDiscardsResult(t *testing.T) {
	c, _ := newTestCache(t, 8, time.Minute)
	key := Key{Source: browser.SourceHistory, Query: "q"}
	fetch := func(context.Context) ([]string, error) {
		c.Invalidate(browser.SourceHistory)
		return []string{"from before the change"}, nil
	}
	got, err := c.GetOrFetch(context.Background(), key, fetch)
	if err != nil || !got.Found {
		t.Fatalf("expected the caller to still get its result, got %+v, %v", got, err)
	}
	if c.Peek(key).Found {
		t.Fatal("expected result fetched across an invalidation not to be stored")
	}
}

func TestCallerAfterInvalidateDoesNotJoinOlderFetch(t *testing.T) {
	c, _ := newTestCache(t, 8, time.Minute)
	key := Key{Source: browser.SourceBookmarks, Query: "q"}

	started := make(chan struct{})
	release := make(chan struct{})
	oldDone := make(chan struct{})
	go func() {
		defer close(oldDone)
		_, _ = c.GetOrFetch(context.Background(), key, func(context.Context) ([]string, error) {
			close(started)
			<-release
			return []string{"old"}, nil
		})
	}()
	<-started

	c.Invalidate(browser.SourceBookmarks)

	var calls int32
	got, err := c.GetOrFetch(context.Background(), key, staticFetch(&calls, []string{"new"}, nil))
	close(release)
	<-oldDone

	if err != nil {
		t.Fatalf("GetOrFetch returned error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected a new fetch after invalidation, got %d calls", calls)
	}
	if len(got.Value) != 1 || got.Value[0] != "new" || got.Stale {
		t.Fatalf("expected fresh \"new\", got %+v", got)
	}
	if peek := c.Peek(key); len(peek.Value) != 1 || peek.Value[0] != "new" {
		t.Fatalf("expected cache to hold \"new\", got %+v", peek)
	}
}

func TestCancelledCallerDoesNotFailSharedFetch(t *testing.T) {
	c, _ := newTestCache(t, 8, time.Minute)
	key := Key{Source: browser.SourceCookies, Query: ""}

	started := make(chan struct{})
	release := make(chan struct{})
	var calls int32
	fetch := func(ctx context.Context) ([]string, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
		}
		select {
		case <-release:
			return []string{"value"}, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := c.GetOrFetch(ctx, key, fetch)
		firstErr <- err
	}()
	<-started

	type outcome struct {
		got Lookup[[]string]
		err error
	}
	second := make(chan outcome, 1)
	go func() {
		got, err := c.GetOrFetch(context.Background(), key, fetch)
		second <- outcome{got, err}
	}()

	cancel()
	if err := <-firstErr; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected the cancelled caller to see context.Canceled, got %v", err)
	}
	close(release)

	select {
	case o := <-second:
		if o.err != nil || len(o.got.Value) != 1 || o.got.Value[0] != "value" {
			t.Fatalf("expected the waiting caller to get the value, got %+v, %v", o.got, o.err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("waiting caller never returned")
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("expected one shared fetch, got %d", n)
	}
}
