package crypto

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slowHasher считает, сколько вычислений выполняется одновременно
type slowHasher struct {
	running atomic.Int32
	peak    atomic.Int32
	delay   time.Duration
}

func (h *slowHasher) enter() {
	n := h.running.Add(1)
	for {
		peak := h.peak.Load()
		if n <= peak || h.peak.CompareAndSwap(peak, n) {
			break
		}
	}
	time.Sleep(h.delay)
	h.running.Add(-1)
}

func (h *slowHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	h.enter()
	return "digest:" + plaintext, nil
}

func (h *slowHasher) Verify(ctx context.Context, plaintext, digest string) bool {
	h.enter()
	return digest == "digest:"+plaintext
}

func TestLimitedHasher_BoundsConcurrency(t *testing.T) {
	inner := &slowHasher{delay: 20 * time.Millisecond}
	hasher := NewLimitedHasher(inner, 2)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			digest, err := hasher.Hash(context.Background(), "testPass")
			assert.NoError(t, err)
			assert.True(t, hasher.Verify(context.Background(), "testPass", digest))
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, inner.peak.Load(), int32(2))
	assert.Positive(t, inner.peak.Load())
}

func TestLimitedHasher_RunsInParallel(t *testing.T) {
	inner := &slowHasher{delay: 50 * time.Millisecond}
	hasher := NewLimitedHasher(inner, 4)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = hasher.Hash(context.Background(), "testPass")
		}()
	}
	wg.Wait()

	// Независимые запросы не выстраиваются в очередь друг за другом
	assert.Greater(t, inner.peak.Load(), int32(1))
	assert.LessOrEqual(t, inner.peak.Load(), int32(4))
}

func TestLimitedHasher_ContextDeadlineWhileWaiting(t *testing.T) {
	inner := &slowHasher{delay: 200 * time.Millisecond}
	hasher := NewLimitedHasher(inner, 1)

	started := make(chan struct{})
	go func() {
		close(started)
		_, _ = hasher.Hash(context.Background(), "first")
	}()
	<-started
	time.Sleep(20 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := hasher.Hash(ctx, "second")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, hasher.Verify(ctx, "second", "digest:second"))
}

func TestLimitedHasher_DefaultLimit(t *testing.T) {
	hasher := NewLimitedHasher(NewBcryptHasher(4), 0)

	digest, err := hasher.Hash(context.Background(), "testPass")
	require.NoError(t, err)
	assert.True(t, hasher.Verify(context.Background(), "testPass", digest))
}
