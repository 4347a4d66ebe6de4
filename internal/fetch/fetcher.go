// Package fetch loads a remote collection into a state.Store for one list
// page, discarding responses that were overtaken by a newer request.
package fetch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/five82/tally/internal/backoffice"
	"github.com/five82/tally/internal/state"
)

// ErrStale is returned by Run when a newer request was issued while this one
// was in flight. Its result was dropped.
var ErrStale = errors.New("stale response discarded")

// Source performs one collection read.
type Source[E any] func(ctx context.Context, q backoffice.ListQuery) (backoffice.ListResult[E], error)

// FromClient adapts backoffice.List to a Source for res.
func FromClient[E any](c *backoffice.Client, res backoffice.Resource) Source[E] {
	return func(ctx context.Context, q backoffice.ListQuery) (backoffice.ListResult[E], error) {
		return backoffice.List[E](ctx, c, res, q)
	}
}

// Fetcher issues reads for one page. Every read gets a token from a
// monotonically increasing counter; only the response carrying the latest
// token is stored.
type Fetcher[E any] struct {
	source Source[E]
	store  state.Store[E]
	log    *log.Logger

	seq atomic.Uint64

	mu     sync.Mutex
	cancel context.CancelFunc
}

// New builds a Fetcher. name labels log lines.
func New[E any](name string, source Source[E], logger *log.Logger) *Fetcher[E] {
	if logger == nil {
		logger = log.Default()
	}
	return &Fetcher[E]{source: source, log: logger.With("page", name)}
}

// Begin issues a new token and marks the store as loading. Any read still in
// flight is cancelled and its response will be discarded.
func (f *Fetcher[E]) Begin() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	seq := f.seq.Add(1)
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.store.Begin()
	return seq
}

// Run performs the read for token seq. A failed read empties the stored
// collection and is returned; a read overtaken by a newer token returns
// ErrStale and leaves the store untouched.
func (f *Fetcher[E]) Run(ctx context.Context, seq uint64, q backoffice.ListQuery) error {
	ctx, cancel := context.WithCancel(ctx)
	f.mu.Lock()
	if seq != f.seq.Load() {
		f.mu.Unlock()
		cancel()
		return ErrStale
	}
	f.cancel = cancel
	f.mu.Unlock()
	defer cancel()

	res, err := f.source(ctx, q)

	// Holding mu keeps Begin from issuing a newer token between the check
	// and the store update.
	f.mu.Lock()
	defer f.mu.Unlock()
	if seq != f.seq.Load() {
		f.log.Debug("discarding stale response", "seq", seq, "latest", f.seq.Load())
		return ErrStale
	}
	f.cancel = nil
	if err != nil {
		f.log.Warn("fetch failed", "owner", q.Owner, "error", err)
		f.store.Update(seq, nil, nil, err)
		return err
	}
	f.log.Debug("fetch complete", "items", len(res.Items))
	f.store.Update(seq, res.Items, res.Pagination, nil)
	return nil
}

// Fetch is Begin followed by Run.
func (f *Fetcher[E]) Fetch(ctx context.Context, q backoffice.ListQuery) error {
	return f.Run(ctx, f.Begin(), q)
}

// Snapshot returns the stored collection.
func (f *Fetcher[E]) Snapshot() state.Snapshot[E] {
	return f.store.Snapshot()
}

// Latest returns the most recently issued token.
func (f *Fetcher[E]) Latest() uint64 {
	return f.seq.Load()
}
