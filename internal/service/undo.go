// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"sync"
	"time"

	"github.com/televeda/scheduling-service/pkg/constants"
)

// UndoOutcome is the terminal state of an undoable action.
type UndoOutcome string

const (
	// UndoCommitted means the undo window elapsed without cancellation; the
	// absence of cancellation within the window is the commit signal.
	UndoCommitted UndoOutcome = "committed"
	// UndoCancelled means the user cancelled inside the window; the cancel
	// function ran exactly once and the underlying mutation was never sent.
	UndoCancelled UndoOutcome = "cancelled"
)

// UndoableAction is a countdown-driven, cancellable confirmation for a
// destructive or bulk operation. It is Armed on creation and transitions to
// exactly one terminal state: Committed when the countdown expires, or
// Cancelled when Cancel is invoked while time remains.
type UndoableAction struct {
	Key     string
	Message string

	mu        sync.Mutex
	remaining int
	timeout   int
	cancelFn  func()
	done      bool
	outcome   UndoOutcome
	resolved  chan struct{}
	stopTick  chan struct{}
}

// UndoRegistry owns the live undoable actions, at most one Armed action per
// key. Starting a new action with an existing key tears down the predecessor.
type UndoRegistry struct {
	mu      sync.Mutex
	actions map[string]*UndoableAction
}

// NewUndoRegistry creates a new UndoRegistry.
func NewUndoRegistry() *UndoRegistry {
	return &UndoRegistry{
		actions: make(map[string]*UndoableAction),
	}
}

// StartUndoable arms a new undoable action. A timeout of zero commits
// immediately and synchronously: no tick occurs and cancelFn is never called.
// A negative timeout uses the default undo window. If an Armed action already
// exists under the same key it is committed and torn down first rather than
// stacked.
func (r *UndoRegistry) StartUndoable(key, message string, cancelFn func(), timeoutSeconds int) *UndoableAction {
	if timeoutSeconds < 0 {
		timeoutSeconds = constants.DefaultUndoTimeoutSeconds
	}

	r.mu.Lock()
	if prior, ok := r.actions[key]; ok {
		// The predecessor was not cancelled inside its window, so it commits.
		prior.expire()
		delete(r.actions, key)
	}

	action := &UndoableAction{
		Key:       key,
		Message:   message,
		remaining: timeoutSeconds,
		timeout:   timeoutSeconds,
		cancelFn:  cancelFn,
		resolved:  make(chan struct{}),
		stopTick:  make(chan struct{}),
	}
	r.actions[key] = action
	r.mu.Unlock()

	if timeoutSeconds <= 0 {
		action.expire()
		r.remove(action)
		return action
	}

	go action.run(func() { r.remove(action) })
	return action
}

// Cancel cancels the action under the given key, if one is still armed.
func (r *UndoRegistry) Cancel(key string) bool {
	r.mu.Lock()
	action, ok := r.actions[key]
	r.mu.Unlock()
	if !ok {
		return false
	}
	return action.Cancel()
}

func (r *UndoRegistry) remove(action *UndoableAction) {
	r.mu.Lock()
	if r.actions[action.Key] == action {
		delete(r.actions, action.Key)
	}
	r.mu.Unlock()
}

// run drives the 1-second countdown until expiry or cancellation. The ticker
// is released in both terminal states.
func (a *UndoableAction) run(onDone func()) {
	defer onDone()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.mu.Lock()
			if a.done {
				a.mu.Unlock()
				return
			}
			a.remaining--
			expired := a.remaining <= 0
			a.mu.Unlock()
			if expired {
				a.expire()
				return
			}
		case <-a.stopTick:
			return
		}
	}
}

// Cancel transitions the action to Cancelled, invoking the cancel function
// exactly once. It reports whether this call performed the cancellation;
// calling Cancel after a terminal state is a no-op.
func (a *UndoableAction) Cancel() bool {
	a.mu.Lock()
	if a.done || a.remaining <= 0 {
		a.mu.Unlock()
		return false
	}
	a.done = true
	a.outcome = UndoCancelled
	cancelFn := a.cancelFn
	close(a.stopTick)
	close(a.resolved)
	a.mu.Unlock()

	if cancelFn != nil {
		cancelFn()
	}
	return true
}

// expire transitions the action to Committed if no terminal state was reached.
func (a *UndoableAction) expire() {
	a.mu.Lock()
	if a.done {
		a.mu.Unlock()
		return
	}
	a.done = true
	a.outcome = UndoCommitted
	select {
	case <-a.stopTick:
	default:
		close(a.stopTick)
	}
	close(a.resolved)
	a.mu.Unlock()
}

// Outcome blocks until the action reaches a terminal state or the context is
// done, so calling code can await the commit/cancel decision deterministically.
func (a *UndoableAction) Outcome(ctx context.Context) (UndoOutcome, error) {
	select {
	case <-a.resolved:
		a.mu.Lock()
		defer a.mu.Unlock()
		return a.outcome, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Remaining returns the whole seconds left in the undo window.
func (a *UndoableAction) Remaining() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.remaining < 0 {
		return 0
	}
	return a.remaining
}

// Percent returns the remaining window as a percentage for the progress
// indicator. The mapping is linear and monotonically decreasing; it is
// presentational only.
func (a *UndoableAction) Percent() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.timeout <= 0 {
		return 0
	}
	remaining := a.remaining
	if remaining < 0 {
		remaining = 0
	}
	return float64(remaining) / float64(a.timeout) * 100
}
