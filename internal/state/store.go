package state

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/five82/tally/internal/listview"
)

// Phase is the lifecycle state of a fetched collection.
type Phase int

const (
	Idle Phase = iota
	Loading
	Ready
	Failed
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// Snapshot represents the latest collection available to a page.
type Snapshot[E any] struct {
	Phase               Phase
	Items               []E
	Pagination          *listview.Pagination
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
	// Seq is the request token that produced Items.
	Seq uint64
}

// IsOffline returns true when the API has been unreachable for multiple fetches.
func (s Snapshot[E]) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Loading reports whether a fetch is in flight.
func (s Snapshot[E]) Loading() bool {
	return s.Phase == Loading
}

// Store coordinates concurrent updates to the snapshot.
type Store[E any] struct {
	mu       sync.RWMutex
	snapshot Snapshot[E]
}

// Begin marks a fetch as in flight. Existing items stay visible meanwhile.
func (s *Store[E]) Begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Phase = Loading
}

// Update replaces the stored collection. When err is non-nil the collection is
// emptied and the error recorded, so views render an empty state instead of
// stale rows.
func (s *Store[E]) Update(seq uint64, items []E, page *listview.Pagination, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Seq = seq
	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.Phase = Failed
		s.snapshot.Items = nil
		s.snapshot.Pagination = nil
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Phase = Ready
	s.snapshot.Items = slices.Clone(items)
	if page != nil {
		p := page.Normalize()
		s.snapshot.Pagination = &p
	} else {
		s.snapshot.Pagination = nil
	}
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store[E]) Snapshot() Snapshot[E] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Items = slices.Clone(s.snapshot.Items)
	if s.snapshot.Pagination != nil {
		p := *s.snapshot.Pagination
		snap.Pagination = &p
	}
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
