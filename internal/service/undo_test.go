// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/televeda/scheduling-service/pkg/constants"
)

func TestStartUndoableZeroTimeoutCommitsImmediately(t *testing.T) {
	registry := NewUndoRegistry()
	var cancelled atomic.Int32

	action := registry.StartUndoable("class-1", "Deleting Chair Yoga", func() {
		cancelled.Add(1)
	}, 0)

	outcome, err := action.Outcome(context.Background())
	require.NoError(t, err)
	assert.Equal(t, UndoCommitted, outcome)
	assert.Equal(t, int32(0), cancelled.Load())

	// The committed action is torn down, so a late cancel is a no-op.
	assert.False(t, registry.Cancel("class-1"))
	assert.Equal(t, int32(0), cancelled.Load())
}

func TestCancelRunsCancelFnOnce(t *testing.T) {
	registry := NewUndoRegistry()
	var cancelled atomic.Int32

	action := registry.StartUndoable("class-1", "Deleting Chair Yoga", func() {
		cancelled.Add(1)
	}, 60)

	assert.True(t, registry.Cancel("class-1"))
	assert.False(t, action.Cancel())

	outcome, err := action.Outcome(context.Background())
	require.NoError(t, err)
	assert.Equal(t, UndoCancelled, outcome)
	assert.Equal(t, int32(1), cancelled.Load())
}

func TestStartUndoableSameKeyCommitsPrior(t *testing.T) {
	registry := NewUndoRegistry()
	var priorCancelled atomic.Int32

	prior := registry.StartUndoable("class-1", "Deleting Chair Yoga", func() {
		priorCancelled.Add(1)
	}, 60)

	// Arming a second action under the same key commits the first: its undo
	// window is over and its cancel function must never run.
	next := registry.StartUndoable("class-1", "Deleting Chair Yoga again", nil, 60)

	outcome, err := prior.Outcome(context.Background())
	require.NoError(t, err)
	assert.Equal(t, UndoCommitted, outcome)
	assert.Equal(t, int32(0), priorCancelled.Load())

	// The replacement is still armed and cancellable.
	assert.True(t, next.Cancel())
}

func TestCancelUnknownKey(t *testing.T) {
	registry := NewUndoRegistry()
	assert.False(t, registry.Cancel("no-such-key"))
}

func TestOutcomeHonorsContext(t *testing.T) {
	registry := NewUndoRegistry()
	action := registry.StartUndoable("class-1", "Deleting Chair Yoga", nil, 60)
	defer action.Cancel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := action.Outcome(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRemainingAndPercent(t *testing.T) {
	registry := NewUndoRegistry()
	action := registry.StartUndoable("class-1", "Deleting Chair Yoga", nil, 10)
	defer action.Cancel()

	assert.Equal(t, 10, action.Remaining())
	assert.InDelta(t, 100.0, action.Percent(), 0.01)
}

func TestNegativeTimeoutUsesDefaultWindow(t *testing.T) {
	registry := NewUndoRegistry()
	action := registry.StartUndoable("class-1", "Deleting Chair Yoga", nil, -1)
	defer action.Cancel()

	assert.Equal(t, constants.DefaultUndoTimeoutSeconds, action.Remaining())
	assert.InDelta(t, 100.0, action.Percent(), 0.01)
}

func TestPercentZeroTimeout(t *testing.T) {
	registry := NewUndoRegistry()
	action := registry.StartUndoable("class-1", "Deleting Chair Yoga", nil, 0)

	assert.Equal(t, 0.0, action.Percent())
	assert.Equal(t, 0, action.Remaining())
}

func TestCountdownExpires(t *testing.T) {
	registry := NewUndoRegistry()
	var cancelled atomic.Int32

	action := registry.StartUndoable("class-1", "Deleting Chair Yoga", func() {
		cancelled.Add(1)
	}, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	outcome, err := action.Outcome(ctx)
	require.NoError(t, err)
	assert.Equal(t, UndoCommitted, outcome)
	assert.Equal(t, int32(0), cancelled.Load())
	assert.False(t, action.Cancel())
}
