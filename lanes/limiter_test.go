package lanes

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, cfg Config) *Limiter {
	t.Helper()
	l, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(l.Release)
	return l
}

func TestLimiter_NeverExceedsCeiling(t *testing.T) {
	l := newTestLimiter(t, Config{Extraction: 2, LLM: 1, Embedding: 2, VectorStore: 2})

	var active, maxActive atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		l.Go(Extraction, func() error {
			defer wg.Done()
			now := active.Add(1)
			for {
				max := maxActive.Load()
				if now <= max || maxActive.CompareAndSwap(max, now) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			active.Add(-1)
			return nil
		})
	}

	wg.Wait()
	assert.LessOrEqual(t, maxActive.Load(), int64(2))

	stats, ok := l.Stats(Extraction)
	require.True(t, ok)
	assert.Equal(t, int64(10), stats.Completed)
	assert.Equal(t, int64(0), stats.Pending)
	assert.Equal(t, int64(0), stats.Active)
}

func TestLimiter_FIFOAdmissionPerLane(t *testing.T) {
	// Ceiling 1 makes admission order observable as execution order.
	l := newTestLimiter(t, Config{Extraction: 1, LLM: 1, Embedding: 1, VectorStore: 1})

	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		i := i
		wg.Add(1)
		l.Go(LLM, func() error {
			defer wg.Done()
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return nil
		})
	}

	wg.Wait()
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, order)
}

func TestLimiter_SubmissionDoesNotBlock(t *testing.T) {
	l := newTestLimiter(t, Config{Extraction: 1, LLM: 1, Embedding: 1, VectorStore: 1})

	release := make(chan struct{})
	l.Go(Embedding, func() error {
		<-release
		return nil
	})

	// The lane is saturated; further submissions must return immediately.
	start := time.Now()
	var dones []<-chan error
	for i := 0; i < 50; i++ {
		dones = append(dones, l.Go(Embedding, func() error { return nil }))
	}
	assert.Less(t, time.Since(start), 500*time.Millisecond)

	close(release)
	for _, done := range dones {
		assert.NoError(t, <-done)
	}
}

func TestLimiter_FailureIsolation(t *testing.T) {
	l := newTestLimiter(t, Config{Extraction: 2, LLM: 1, Embedding: 2, VectorStore: 2})

	boom := errors.New("boom")
	failed := l.Go(VectorStore, func() error { return boom })
	assert.ErrorIs(t, <-failed, boom)

	// Subsequent jobs in the same lane still run.
	ok := l.Go(VectorStore, func() error { return nil })
	assert.NoError(t, <-ok)

	// And other lanes are untouched.
	other := l.Go(Embedding, func() error { return nil })
	assert.NoError(t, <-other)

	stats, _ := l.Stats(VectorStore)
	assert.Equal(t, int64(1), stats.Failed)
	assert.Equal(t, int64(1), stats.Completed)
}

func TestLimiter_PanicBecomesError(t *testing.T) {
	l := newTestLimiter(t, DefaultConfig())

	done := l.Go(LLM, func() error { panic("kaboom") })
	err := <-done
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kaboom")

	// The lane survives.
	assert.NoError(t, <-l.Go(LLM, func() error { return nil }))
}

func TestLimiter_UnknownLane(t *testing.T) {
	l := newTestLimiter(t, DefaultConfig())

	err := <-l.Go(Name("warp-drive"), func() error { return nil })
	assert.ErrorIs(t, err, ErrUnknownLane)
}

func TestLimiter_ReleaseFailsQueuedJobs(t *testing.T) {
	l, err := New(Config{Extraction: 1, LLM: 1, Embedding: 1, VectorStore: 1})
	require.NoError(t, err)

	block := make(chan struct{})
	l.Go(LLM, func() error {
		<-block
		return nil
	})
	queued := l.Go(LLM, func() error { return nil })

	l.Release()
	close(block)

	assert.ErrorIs(t, <-queued, ErrLimiterReleased)

	// Submissions after release fail immediately.
	assert.ErrorIs(t, <-l.Go(LLM, func() error { return nil }), ErrLimiterReleased)
}

func TestSubmit_TypedResult(t *testing.T) {
	l := newTestLimiter(t, DefaultConfig())
	ctx := context.Background()

	f := Submit(l, Embedding, func() ([]float32, error) {
		return []float32{1, 2, 3}, nil
	})
	value, err := f.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3}, value)

	// Wait is idempotent.
	again, err := f.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, value, again)
}

func TestSubmit_ErrorPropagates(t *testing.T) {
	l := newTestLimiter(t, DefaultConfig())

	boom := errors.New("embedding service down")
	f := Submit(l, Embedding, func() ([]float32, error) { return nil, boom })

	_, err := f.Wait(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestFuture_WaitHonorsContext(t *testing.T) {
	l := newTestLimiter(t, DefaultConfig())

	block := make(chan struct{})
	defer close(block)
	f := Submit(l, LLM, func() (int, error) {
		<-block
		return 0, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := f.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLimiter_DefaultConfigCeilings(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 3, cfg.Extraction)
	assert.Equal(t, 1, cfg.LLM)
	assert.Equal(t, 5, cfg.Embedding)
	assert.Equal(t, 10, cfg.VectorStore)
}
