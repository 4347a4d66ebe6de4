package fetch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/tally/internal/backoffice"
	"github.com/five82/tally/internal/listview"
	"github.com/five82/tally/internal/state"
)

type row struct{ id string }

func (r row) Key() string { return r.id }

func rows(ids ...string) []row {
	out := make([]row, len(ids))
	for i, id := range ids {
		out[i] = row{id: id}
	}
	return out
}

func TestFetch_StoresResult(t *testing.T) {
	var gotQuery backoffice.ListQuery
	f := New("test", func(_ context.Context, q backoffice.ListQuery) (backoffice.ListResult[row], error) {
		gotQuery = q
		return backoffice.ListResult[row]{Items: rows("a", "b")}, nil
	}, nil)

	assert.Equal(t, state.Idle, f.Snapshot().Phase)

	require.NoError(t, f.Fetch(context.Background(), backoffice.ListQuery{Owner: "org-1"}))
	snap := f.Snapshot()
	assert.Equal(t, state.Ready, snap.Phase)
	assert.Equal(t, rows("a", "b"), snap.Items)
	assert.Equal(t, uint64(1), snap.Seq)
	assert.Equal(t, "org-1", gotQuery.Owner)
}

func TestFetch_ErrorEmptiesCollection(t *testing.T) {
	fail := false
	f := New("test", func(context.Context, backoffice.ListQuery) (backoffice.ListResult[row], error) {
		if fail {
			return backoffice.ListResult[row]{}, errors.New("boom")
		}
		return backoffice.ListResult[row]{Items: rows("a")}, nil
	}, nil)

	require.NoError(t, f.Fetch(context.Background(), backoffice.ListQuery{}))
	fail = true
	err := f.Fetch(context.Background(), backoffice.ListQuery{})
	require.EqualError(t, err, "boom")

	snap := f.Snapshot()
	assert.Equal(t, state.Failed, snap.Phase)
	assert.Empty(t, snap.Items)
	assert.Equal(t, 1, snap.ConsecutiveFailures)
	require.Error(t, snap.LastError)
}

func TestFetch_StaleResponseDiscarded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var calls int
	var mu sync.Mutex

	f := New("test", func(ctx context.Context, q backoffice.ListQuery) (backoffice.ListResult[row], error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			close(started)
			<-release
			// The slow response arrives after the newer one even though the
			// newer request cancelled its context.
			return backoffice.ListResult[row]{Items: rows("old")}, nil
		}
		return backoffice.ListResult[row]{Items: rows("new")}, nil
	}, nil)

	first := f.Begin()
	done := make(chan error, 1)
	go func() { done <- f.Run(context.Background(), first, backoffice.ListQuery{PageNumber: 1}) }()
	<-started

	require.NoError(t, f.Fetch(context.Background(), backoffice.ListQuery{PageNumber: 2}))
	close(release)

	select {
	case err := <-done:
		require.ErrorIs(t, err, ErrStale)
	case <-time.After(2 * time.Second):
		t.Fatal("slow fetch did not return")
	}

	snap := f.Snapshot()
	assert.Equal(t, rows("new"), snap.Items)
	assert.Equal(t, f.Latest(), snap.Seq)
	assert.Equal(t, state.Ready, snap.Phase)
}

func TestRun_OvertakenBeforeStartIsStale(t *testing.T) {
	called := false
	f := New("test", func(context.Context, backoffice.ListQuery) (backoffice.ListResult[row], error) {
		called = true
		return backoffice.ListResult[row]{}, nil
	}, nil)

	old := f.Begin()
	f.Begin()
	require.ErrorIs(t, f.Run(context.Background(), old, backoffice.ListQuery{}), ErrStale)
	assert.False(t, called)
	assert.Equal(t, state.Loading, f.Snapshot().Phase)
}

func TestFetch_LastPageHasNoNext(t *testing.T) {
	f := New("test", func(_ context.Context, q backoffice.ListQuery) (backoffice.ListResult[row], error) {
		return backoffice.ListResult[row]{
			Items: rows("x"),
			Pagination: &listview.Pagination{
				CurrentPage: q.PageNumber,
				TotalPages:  3,
				TotalItems:  41,
				HasNextPage: true,
			},
		}, nil
	}, nil)

	require.NoError(t, f.Fetch(context.Background(), backoffice.ListQuery{PageNumber: 3, PageSize: 20}))
	p := f.Snapshot().Pagination
	require.NotNil(t, p)
	assert.False(t, p.HasNextPage)
	assert.True(t, p.HasPreviousPage)

	require.NoError(t, f.Fetch(context.Background(), backoffice.ListQuery{PageNumber: 1, PageSize: 20}))
	p = f.Snapshot().Pagination
	require.NotNil(t, p)
	assert.True(t, p.HasNextPage)
	assert.False(t, p.HasPreviousPage)
}

func TestBegin_KeepsItemsVisibleWhileLoading(t *testing.T) {
	f := New("test", func(context.Context, backoffice.ListQuery) (backoffice.ListResult[row], error) {
		return backoffice.ListResult[row]{Items: rows("a")}, nil
	}, nil)
	require.NoError(t, f.Fetch(context.Background(), backoffice.ListQuery{}))

	f.Begin()
	snap := f.Snapshot()
	assert.True(t, snap.Loading())
	assert.Equal(t, rows("a"), snap.Items)
}
