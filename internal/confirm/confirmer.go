// Package confirm gates destructive list actions behind an explicit
// confirmation step.
package confirm

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/five82/tally/internal/backoffice"
)

// Phase is the confirmer's position in Idle → Requested → Submitting → Idle.
type Phase int

const (
	Idle Phase = iota
	Requested
	Submitting
)

func (p Phase) String() string {
	switch p {
	case Requested:
		return "requested"
	case Submitting:
		return "submitting"
	default:
		return "idle"
	}
}

var (
	// ErrBusy is returned by Request when another action is pending.
	ErrBusy = errors.New("another action is awaiting confirmation")
	// ErrNotRequested is returned by Confirm when nothing is pending.
	ErrNotRequested = errors.New("no action awaiting confirmation")
	// ErrCredentialRequired is returned by Confirm when a privileged action
	// is confirmed without a credential.
	ErrCredentialRequired = errors.New("manager password required")
)

// Mutation performs the confirmed action. credential is empty unless the
// request is privileged.
type Mutation func(ctx context.Context, credential string) error

// Request describes the pending action shown in the confirmation prompt.
type Request struct {
	Action     string   // e.g. "delete"
	Subject    string   // e.g. "3 sales orders"
	Keys       []string // affected record keys
	Privileged bool     // a manager password is collected and sent with the action
}

// State is a copy of the confirmer's current state.
type State struct {
	Phase   Phase
	Request Request
	// FieldError is set when the credential was missing or rejected.
	FieldError string
}

// Confirmer is a single-slot confirmation state machine. The mutation runs
// only from Confirm, exactly once per successful confirmation.
type Confirmer struct {
	mu       sync.Mutex
	phase    Phase
	req      Request
	run      Mutation
	fieldErr string
}

// New returns an idle Confirmer.
func New() *Confirmer {
	return &Confirmer{}
}

// Request stages an action. It fails with ErrBusy unless the confirmer is idle.
func (c *Confirmer) Request(req Request, run Mutation) error {
	if run == nil {
		return errors.New("confirm: nil mutation")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != Idle {
		return ErrBusy
	}
	c.phase = Requested
	c.req = req
	c.req.Keys = append([]string(nil), req.Keys...)
	c.run = run
	c.fieldErr = ""
	return nil
}

// Cancel drops a requested action without side effects. It reports whether
// anything was cancelled; an action already submitting cannot be cancelled.
func (c *Confirmer) Cancel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != Requested {
		return false
	}
	c.resetLocked()
	return true
}

// Confirm runs the staged mutation. It blocks for the duration of the call.
//
// On success the confirmer returns to Idle. When a privileged action's
// credential is rejected by the server it returns to Requested with a field
// error so the user can retry; any other failure returns it to Idle. The
// mutation's error is returned in both cases.
func (c *Confirmer) Confirm(ctx context.Context, credential string) error {
	c.mu.Lock()
	if c.phase != Requested {
		c.mu.Unlock()
		return ErrNotRequested
	}
	if c.req.Privileged && strings.TrimSpace(credential) == "" {
		c.fieldErr = ErrCredentialRequired.Error()
		c.mu.Unlock()
		return ErrCredentialRequired
	}
	if !c.req.Privileged {
		credential = ""
	}
	c.phase = Submitting
	c.fieldErr = ""
	run := c.run
	privileged := c.req.Privileged
	c.mu.Unlock()

	err := run(ctx, credential)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil && privileged && errors.Is(err, backoffice.ErrInvalidCredential) {
		c.phase = Requested
		c.fieldErr = backoffice.ErrInvalidCredential.Error()
		return err
	}
	c.resetLocked()
	return err
}

// State returns a copy of the current state.
func (c *Confirmer) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := State{Phase: c.phase, Request: c.req, FieldError: c.fieldErr}
	s.Request.Keys = append([]string(nil), c.req.Keys...)
	return s
}

// Pending reports whether an action is requested or submitting.
func (c *Confirmer) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase != Idle
}

func (c *Confirmer) resetLocked() {
	c.phase = Idle
	c.req = Request{}
	c.run = nil
	c.fieldErr = ""
}
