package listview

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func failOn(bad ...string) Op[string] {
	set := map[string]bool{}
	for _, id := range bad {
		set[id] = true
	}
	return func(_ context.Context, id string) error {
		if set[id] {
			return errors.New("rejected " + id)
		}
		return nil
	}
}

func TestCoordinatorAllSucceed(t *testing.T) {
	c := NewCoordinator[string]()

	res, err := c.Run(context.Background(), []string{"a", "b", "c"}, failOn())

	require.NoError(t, err)
	assert.Equal(t, Completed, res.Status)
	assert.Equal(t, 3, res.Succeeded)
	assert.Equal(t, 0, res.Failed)
	assert.Equal(t, Completed, c.Status())
	assert.Equal(t, "delete succeeded for all 3 products", res.Message("delete", "products"))
	assert.NoError(t, res.FirstError())
}

func TestCoordinatorPartialFailure(t *testing.T) {
	c := NewCoordinator[string]()
	ids := []string{"1", "2", "3", "4", "5"}

	res, err := c.Run(context.Background(), ids, failOn("3"))

	require.NoError(t, err)
	assert.Equal(t, CompletedPartial, res.Status)
	assert.Equal(t, 4, res.Succeeded)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, []string{"3"}, res.FailedIDs())
	assert.Equal(t, []string{"1", "2", "4", "5"}, res.SucceededIDs())
	assert.EqualError(t, res.FirstError(), "rejected 3")
	assert.Equal(t, "delete succeeded for 4 of 5 products; 1 failed", res.Message("delete", "products"))
}

func TestCoordinatorAllFail(t *testing.T) {
	c := NewCoordinator[string]()

	res, err := c.Run(context.Background(), []string{"a", "b"}, failOn("a", "b"))

	require.NoError(t, err)
	assert.Equal(t, Failed, res.Status)
	assert.Equal(t, "archive failed for all 2 posts", res.Message("archive", "posts"))
}

func TestCoordinatorEmptyRun(t *testing.T) {
	c := NewCoordinator[string]()
	res, err := c.Run(context.Background(), nil, failOn())
	require.NoError(t, err)
	assert.Equal(t, Completed, res.Status)
	assert.Equal(t, "nothing to delete", res.Message("delete", "rows"))

	_, err = c.Run(context.Background(), []string{"a"}, nil)
	assert.Error(t, err)
}

func TestCoordinatorRunsConcurrentlyWithinBound(t *testing.T) {
	c := NewCoordinator[int](WithConcurrency(3))
	var inFlight, peak int32

	op := func(_ context.Context, _ int) error {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return nil
	}

	res, err := c.Run(context.Background(), numbered(12), op)

	require.NoError(t, err)
	assert.Equal(t, 12, res.Succeeded)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(3))
	assert.Greater(t, atomic.LoadInt32(&peak), int32(1), "items should overlap")
}

func TestCoordinatorRejectsRunWhileRunning(t *testing.T) {
	c := NewCoordinator[string]()
	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once

	done := make(chan Result[string])
	go func() {
		res, _ := c.Run(context.Background(), []string{"slow"}, func(context.Context, string) error {
			once.Do(func() { close(started) })
			<-release
			return nil
		})
		done <- res
	}()

	<-started
	assert.Equal(t, Running, c.Status())
	_, err := c.Run(context.Background(), []string{"other"}, failOn())
	assert.ErrorIs(t, err, ErrBusy)
	assert.False(t, c.Dismiss(), "cannot dismiss while running")

	close(release)
	res := <-done
	assert.Equal(t, Completed, res.Status)

	last, ok := c.Last()
	require.True(t, ok)
	assert.Equal(t, 1, last.Succeeded)

	assert.True(t, c.Dismiss())
	assert.Equal(t, Idle, c.Status())
	_, ok = c.Last()
	assert.False(t, ok)
}

func TestCoordinatorCancellationStopsScheduling(t *testing.T) {
	c := NewCoordinator[int](WithConcurrency(1))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls int32
	res, err := c.Run(ctx, numbered(5), func(_ context.Context, id int) error {
		atomic.AddInt32(&calls, 1)
		if id == 2 {
			cancel()
		}
		return nil
	})

	require.NoError(t, err)
	assert.True(t, res.Canceled)
	assert.Equal(t, CompletedPartial, res.Status)
	assert.Less(t, atomic.LoadInt32(&calls), int32(5))
	for _, o := range res.Outcomes {
		if !o.OK() {
			assert.ErrorIs(t, o.Err, context.Canceled)
		}
	}
	assert.Contains(t, res.Message("delete", "rows"), "(canceled)")
}

func TestCoordinatorSkipsItemsQueuedBeforeCancellation(t *testing.T) {
	c := NewCoordinator[int](WithConcurrency(1))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls, canceledCalls int32
	res, err := c.Run(ctx, numbered(3), func(ctx context.Context, id int) error {
		atomic.AddInt32(&calls, 1)
		if ctx.Err() != nil {
			atomic.AddInt32(&canceledCalls, 1)
		}
		if id == 0 {
			// Let the scheduler queue the next item before canceling.
			time.Sleep(20 * time.Millisecond)
			cancel()
		}
		return nil
	})

	require.NoError(t, err)
	assert.Zero(t, atomic.LoadInt32(&canceledCalls), "op never starts with a canceled context")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.True(t, res.Canceled)
	assert.Equal(t, 1, res.Succeeded)
	for _, o := range res.Outcomes[1:] {
		assert.ErrorIs(t, o.Err, context.Canceled)
	}
}

func TestCoordinatorRetriesTransientFailures(t *testing.T) {
	c := NewCoordinator[string](WithRetry(FixedRetry{Attempts: 3, Delay: time.Millisecond}))
	var mu sync.Mutex
	attempts := map[string]int{}

	res, err := c.Run(context.Background(), []string{"flaky", "broken", "fatal"}, func(_ context.Context, id string) error {
		mu.Lock()
		attempts[id]++
		n := attempts[id]
		mu.Unlock()
		switch id {
		case "flaky":
			if n < 2 {
				return errors.New("timeout")
			}
			return nil
		case "fatal":
			return Permanent(errors.New("referenced by orders"))
		default:
			return errors.New("still broken")
		}
	})

	require.NoError(t, err)
	assert.Equal(t, 1, res.Succeeded)
	assert.Equal(t, 2, res.Failed)
	assert.Equal(t, 2, attempts["flaky"])
	assert.Equal(t, 3, attempts["broken"])
	assert.Equal(t, 1, attempts["fatal"], "permanent errors are not retried")
	assert.Equal(t, 2, res.Outcomes[0].Attempts)
	assert.EqualError(t, res.Outcomes[2].Err, "referenced by orders")
	assert.True(t, IsPermanent(res.Outcomes[2].Err))
}

func TestCoordinatorRecoversPanics(t *testing.T) {
	c := NewCoordinator[string]()

	res, err := c.Run(context.Background(), []string{"ok", "boom"}, func(_ context.Context, id string) error {
		if id == "boom" {
			panic("kaboom")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, CompletedPartial, res.Status)
	assert.Contains(t, res.Outcomes[1].Err.Error(), "kaboom")
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "partial", CompletedPartial.String())
	assert.True(t, Failed.Terminal())
	assert.False(t, Running.Terminal())
	assert.False(t, Idle.Terminal())
}

func TestPermanentNil(t *testing.T) {
	assert.NoError(t, Permanent(nil))
	assert.False(t, IsPermanent(errors.New("plain")))
}
