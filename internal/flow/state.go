// Package flow contains the client-side state machines behind the account
// screens: sign-up, sign-in, OTP verification, password recovery, and
// password change. Each flow is owned by exactly one presenter, moves
// through Idle → Loading → Success or Error, and is reset to Idle by the
// presenter after a terminal state has been consumed.
package flow

import (
	"errors"
	"sync"
)

// Phase is the lifecycle position of a flow.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseError
)

// String returns the phase name
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// ErrInFlight is returned when an operation is started while a previous
// one on the same flow is still pending.
var ErrInFlight = errors.New("operation already in progress")

// State is a flow's observable condition. Message carries the user-facing
// text for Success and Error phases.
type State struct {
	Phase   Phase
	Message string
}

// cell is the shared state holder embedded by the flows. All transitions
// happen under one lock; an in-flight guard rejects overlapping
// operations on the same flow.
type cell struct {
	mu       sync.Mutex
	state    State
	inFlight bool
	observer func(State)
}

// Observe registers a callback invoked on every transition. Intended for
// presenters and tests; the callback runs with the flow lock held.
func (c *cell) Observe(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observer = fn
}

// State returns a snapshot of the current state.
func (c *cell) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Reset returns the flow to Idle from any phase.
func (c *cell) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLocked(State{Phase: PhaseIdle})
}

// setLocked transitions and notifies. Callers hold c.mu.
func (c *cell) setLocked(s State) {
	c.state = s
	if c.observer != nil {
		c.observer(s)
	}
}

// begin rejects overlapping operations and transitions to Loading.
func (c *cell) begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight {
		return ErrInFlight
	}
	c.inFlight = true
	c.setLocked(State{Phase: PhaseLoading})
	return nil
}

// finish ends the pending operation with a terminal state.
func (c *cell) finish(phase Phase, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false
	c.setLocked(State{Phase: phase, Message: message})
}

// abort ends the pending operation without a state transition. Used when
// the owning context was cancelled: a dead screen's flow must not change
// under it.
func (c *cell) abort() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false
}
