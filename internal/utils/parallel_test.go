package utils

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunParallel(t *testing.T) {
	var a, b int
	err := RunParallel(context.Background(),
		func(context.Context) error { a = 1; return nil },
		func(context.Context) error { b = 2; return nil },
	)
	require.NoError(t, err)
	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
}

func TestRunParallelJoinsErrors(t *testing.T) {
	errA := errors.New("a failed")
	errB := errors.New("b failed")
	err := RunParallel(context.Background(),
		func(context.Context) error { return errA },
		func(context.Context) error { return nil },
		func(context.Context) error { return errB },
	)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
}

func TestMapBoundedKeepsOrder(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}
	out, err := MapBounded(context.Background(), 3, items, func(_ context.Context, n int) (int, error) {
		time.Sleep(time.Duration(8-n) * time.Millisecond)
		return n * n, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4, 9, 16, 25, 36, 49, 64}, out)
}

func TestMapBoundedLimitsConcurrency(t *testing.T) {
	var inFlight, peak int32
	items := make([]int, 20)
	_, err := MapBounded(context.Background(), 2, items, func(_ context.Context, _ int) (struct{}, error) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return struct{}{}, nil
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestMapBoundedReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")
	out, err := MapBounded(context.Background(), 2, []int{1, 2, 3}, func(_ context.Context, n int) (int, error) {
		if n == 2 {
			return 0, boom
		}
		return n, nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, out)
}
