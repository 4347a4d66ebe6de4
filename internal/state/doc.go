// Package state provides the thread-safe collection store behind each list page.
//
// # Overview
//
// A Store holds the latest fetched collection for one entity together with
// its load phase, pagination and error bookkeeping. Fetches run in background
// goroutines (tea.Cmd functions and the auto-refresh poller) while the UI
// renders from snapshots, so every access goes through a sync.RWMutex.
//
//	Producer (fetch.Fetcher):      Consumer (pages / ui):
//	┌────────────────┐            ┌─────────────────┐
//	│ store.Begin()  │            │                 │
//	│ GET collection │            │                 │
//	│      ↓         │            │                 │
//	│ store.Update() │───────────→│ store.Snapshot()│
//	└────────────────┘  (mutex)   │ derive + render │
//	                              └─────────────────┘
//
// # Phases
//
//	Idle ──Begin──→ Loading ──Update(ok)──→ Ready
//	                   │
//	                   └──Update(err)──→ Failed
//
// Begin keeps the previous items visible so the table does not flash empty
// while a re-fetch is in flight.
//
// # Update Semantics
//
//	// Success: replace the collection
//	store.Update(seq, items, page, nil)
//	→ Items = items, Pagination = page.Normalize(), LastError = nil
//
//	// Failure: empty the collection and record the error
//	store.Update(seq, nil, nil, err)
//	→ Items = nil, Pagination = nil, LastError = err, ConsecutiveFailures++
//
// A failed read never leaves stale rows on screen: the page renders an empty,
// usable view and the error is shown as a toast.
//
// # Copying
//
// Update clones the incoming slice and Snapshot clones it again on the way
// out, so callers can neither mutate the stored collection nor observe a
// later Update through an earlier snapshot.
//
// # Offline Detection
//
// IsOffline reports true after two or more consecutive failures; the status
// line uses it to tell a blip from an unreachable backend.
package state
