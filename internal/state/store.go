package state

import (
	"fmt"
	"sync"
	"time"
)

// Snapshot represents the latest results available to the UI for one
// source.
type Snapshot[T any] struct {
	Items []T
	// Query produced Items. Wanted is the query the UI is waiting on.
	Query   string
	Wanted  string
	Pending bool
	// Stale is set when Items were served from cache after a failed fetch.
	Stale               bool
	HasItems            bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive fetch failures
}

// IsFailing returns true when the store has failed repeatedly.
func (s Snapshot[T]) IsFailing() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store[T any] struct {
	mu       sync.RWMutex
	snapshot Snapshot[T]
}

// Request records query as the one the UI wants and marks it pending. The
// previous items stay visible until an update for query arrives.
func (s *Store[T]) Request(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Wanted = query
	s.snapshot.Pending = true
}

// Update applies the result of fetching query. It returns false and
// changes nothing when query is no longer the wanted one, so a slow
// response cannot overwrite a newer query's results.
//
// When err is non-nil the previous items are kept and the error is
// recorded, unless items carries a stale fallback for query.
func (s *Store[T]) Update(query string, items []T, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if query != s.snapshot.Wanted {
		return false
	}
	s.snapshot.Pending = false
	s.snapshot.LastUpdated = time.Now()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		if items != nil {
			s.snapshot.Items = cloneItems(items)
			s.snapshot.Query = query
			s.snapshot.HasItems = true
			s.snapshot.Stale = true
		}
		return true
	}

	s.snapshot.Items = cloneItems(items)
	s.snapshot.Query = query
	s.snapshot.HasItems = true
	s.snapshot.Stale = false
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
	return true
}

// Seed shows items for query while its fetch is still pending, typically a
// stale cache hit. The failure state is left alone and the store stays
// pending. It returns false when query is no longer the wanted one.
func (s *Store[T]) Seed(query string, items []T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if query != s.snapshot.Wanted {
		return false
	}
	s.snapshot.Items = cloneItems(items)
	s.snapshot.Query = query
	s.snapshot.HasItems = true
	s.snapshot.Stale = true
	return true
}

// Snapshot returns a copy of the current snapshot.
func (s *Store[T]) Snapshot() Snapshot[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Items = cloneItems(s.snapshot.Items)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneItems[T any](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	dup := make([]T, len(items))
	copy(dup, items)
	return dup
}
