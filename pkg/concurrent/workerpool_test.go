// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

package concurrent

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPool_Run(t *testing.T) {
	ctx := context.Background()
	pool := NewWorkerPool(2)

	var counter int64
	functions := []func() error{
		func() error {
			atomic.AddInt64(&counter, 1)
			time.Sleep(10 * time.Millisecond)
			return nil
		},
		func() error {
			atomic.AddInt64(&counter, 2)
			time.Sleep(10 * time.Millisecond)
			return nil
		},
		func() error {
			atomic.AddInt64(&counter, 3)
			time.Sleep(10 * time.Millisecond)
			return nil
		},
	}

	err := pool.Run(ctx, functions...)
	require.NoError(t, err)
	assert.Equal(t, int64(6), atomic.LoadInt64(&counter))
}

func TestWorkerPool_Run_WithError(t *testing.T) {
	ctx := context.Background()
	pool := NewWorkerPool(2)

	expectedError := errors.New("job failed")
	err := pool.Run(ctx,
		func() error { return nil },
		func() error { return expectedError },
	)
	require.Error(t, err)
	assert.Equal(t, expectedError, err)
}

func TestWorkerPool_Run_Empty(t *testing.T) {
	pool := NewWorkerPool(2)
	require.NoError(t, pool.Run(context.Background()))
}

func TestWorkerPool_RunAll_CollectsAllErrors(t *testing.T) {
	ctx := context.Background()
	pool := NewWorkerPool(3)

	err1 := errors.New("first failure")
	err2 := errors.New("second failure")
	var succeeded int64

	errs := pool.RunAll(ctx,
		func() error { return err1 },
		func() error {
			atomic.AddInt64(&succeeded, 1)
			return nil
		},
		func() error { return err2 },
		func() error {
			atomic.AddInt64(&succeeded, 1)
			return nil
		},
	)

	assert.Len(t, errs, 2)
	assert.Equal(t, int64(2), atomic.LoadInt64(&succeeded))
}

func TestWorkerPool_ZeroWorkersDefaultsToOne(t *testing.T) {
	pool := NewWorkerPool(0)
	require.NotNil(t, pool)

	err := pool.Run(context.Background(), func() error { return nil })
	require.NoError(t, err)
}
