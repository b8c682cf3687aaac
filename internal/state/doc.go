// Package state holds the latest results the UI shows for each source.
//
// # Overview
//
// Every keystroke issues a fetch for the new query. Fetches run off the UI
// goroutine and finish in any order, so the Store is the point where their
// answers are reconciled with what the user is currently looking at.
//
//	UI (Update loop):                   fetch Cmd (goroutine):
//	┌────────────────────────┐          ┌──────────────────────┐
//	│ store.Request(q)       │─────────→│ engine.History(q)    │
//	│                        │          │        ↓             │
//	│ store.Update(q, ...)   │←─────────│ resultMsg            │
//	│ store.Snapshot()       │          └──────────────────────┘
//	│       ↓                │
//	│  render list           │
//	└────────────────────────┘
//
// The Store is also safe to update from other goroutines; every method
// takes its mutex.
//
// # Update Semantics
//
// Request records the wanted query and marks the store pending. Update is
// applied only when its query is still the wanted one:
//
//	store.Request("ma")
//	store.Request("mail")
//	store.Update("ma", items, nil)   → false, ignored
//	store.Update("mail", items, nil) → true
//
// Results move in whole: Items and Query always describe the same fetch.
// While a request is pending the previous Items stay visible, so the list
// never blanks between keystrokes.
//
// On error the previous Items are kept and the error is recorded:
//
//	store.Update(q, nil, err)
//	→ snapshot.Items = <unchanged>
//	→ snapshot.LastError = err
//	→ snapshot.ConsecutiveFailures++
//
// When the cache could serve a stale value for q, the caller passes it as
// items together with the error; those items replace the old ones and
// Stale is set.
//
// # Copying
//
// Update and Snapshot copy the items slice, and Snapshot wraps the error,
// so nothing the UI holds aliases the store.
//
// # Testing Considerations
//
// The zero value is ready to use:
//
//	var store state.Store[browser.FlatEntry]
//
// Snapshot returns a zero Snapshot until the first Update.
package state
