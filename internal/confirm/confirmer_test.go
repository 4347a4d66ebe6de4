package confirm

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/tally/internal/backoffice"
)

type recorder struct {
	calls       int
	credentials []string
	err         error
}

func (r *recorder) run(_ context.Context, credential string) error {
	r.calls++
	r.credentials = append(r.credentials, credential)
	return r.err
}

func TestConfirm_CancelNeverRuns(t *testing.T) {
	c := New()
	var rec recorder

	require.NoError(t, c.Request(Request{Action: "delete", Subject: "1 customer", Keys: []string{"7"}}, rec.run))
	assert.Equal(t, Requested, c.State().Phase)
	assert.True(t, c.Cancel())
	assert.Equal(t, Idle, c.State().Phase)
	assert.Zero(t, rec.calls)

	require.ErrorIs(t, c.Confirm(context.Background(), ""), ErrNotRequested)
	assert.Zero(t, rec.calls)
	assert.False(t, c.Cancel())
}

func TestConfirm_RunsExactlyOnce(t *testing.T) {
	c := New()
	var rec recorder

	require.NoError(t, c.Request(Request{Action: "delete", Keys: []string{"7"}}, rec.run))
	require.NoError(t, c.Confirm(context.Background(), "ignored"))
	assert.Equal(t, 1, rec.calls)
	assert.Equal(t, []string{""}, rec.credentials)
	assert.Equal(t, Idle, c.State().Phase)

	require.ErrorIs(t, c.Confirm(context.Background(), ""), ErrNotRequested)
	assert.Equal(t, 1, rec.calls)
}

func TestRequest_BusyWhileRequested(t *testing.T) {
	c := New()
	var first, second recorder

	require.NoError(t, c.Request(Request{Subject: "a"}, first.run))
	require.ErrorIs(t, c.Request(Request{Subject: "b"}, second.run), ErrBusy)
	assert.Equal(t, "a", c.State().Request.Subject)

	require.NoError(t, c.Confirm(context.Background(), ""))
	assert.Equal(t, 1, first.calls)
	assert.Zero(t, second.calls)
}

func TestRequest_BusyWhileSubmitting(t *testing.T) {
	c := New()
	entered := make(chan struct{})
	release := make(chan struct{})
	require.NoError(t, c.Request(Request{}, func(context.Context, string) error {
		close(entered)
		<-release
		return nil
	}))

	done := make(chan error, 1)
	go func() { done <- c.Confirm(context.Background(), "") }()
	<-entered

	assert.Equal(t, Submitting, c.State().Phase)
	assert.False(t, c.Cancel())
	require.ErrorIs(t, c.Request(Request{}, func(context.Context, string) error { return nil }), ErrBusy)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, c.Pending())
}

func TestConfirm_PrivilegedRequiresCredential(t *testing.T) {
	c := New()
	var rec recorder
	require.NoError(t, c.Request(Request{Privileged: true}, rec.run))

	require.ErrorIs(t, c.Confirm(context.Background(), "  "), ErrCredentialRequired)
	st := c.State()
	assert.Equal(t, Requested, st.Phase)
	assert.Equal(t, ErrCredentialRequired.Error(), st.FieldError)
	assert.Zero(t, rec.calls)
}

func TestConfirm_PrivilegedRejectionReturnsToRequested(t *testing.T) {
	c := New()
	rec := recorder{err: &backoffice.APIError{Status: http.StatusForbidden, Credential: true}}
	require.NoError(t, c.Request(Request{Action: "delete", Privileged: true, Keys: []string{"so-1"}}, rec.run))

	err := c.Confirm(context.Background(), "wrong")
	require.ErrorIs(t, err, backoffice.ErrInvalidCredential)
	assert.Equal(t, 1, rec.calls)
	assert.Equal(t, []string{"wrong"}, rec.credentials)

	st := c.State()
	assert.Equal(t, Requested, st.Phase)
	assert.Equal(t, backoffice.ErrInvalidCredential.Error(), st.FieldError)
	assert.Equal(t, []string{"so-1"}, st.Request.Keys)

	rec.err = nil
	require.NoError(t, c.Confirm(context.Background(), "right"))
	assert.Equal(t, 2, rec.calls)
	assert.Equal(t, Idle, c.State().Phase)
}

func TestConfirm_OtherFailureReturnsToIdle(t *testing.T) {
	c := New()
	boom := errors.New("boom")
	rec := recorder{err: boom}
	require.NoError(t, c.Request(Request{Privileged: true}, rec.run))

	require.ErrorIs(t, c.Confirm(context.Background(), "pw"), boom)
	assert.Equal(t, Idle, c.State().Phase)
	assert.Empty(t, c.State().FieldError)
}

func TestRequest_NilMutation(t *testing.T) {
	require.Error(t, New().Request(Request{}, nil))
}
