package crypto

import (
	"context"
	"runtime"

	"golang.org/x/sync/semaphore"
)

// LimitedHasher bounds the number of hash computations running at once.
// Requests beyond the limit wait for a slot or for their context to end;
// every request still runs on its own goroutine.
type LimitedHasher struct {
	next PasswordHasher
	sem  *semaphore.Weighted
}

// NewLimitedHasher wraps next. limit <= 0 means runtime.NumCPU().
func NewLimitedHasher(next PasswordHasher, limit int) *LimitedHasher {
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	return &LimitedHasher{
		next: next,
		sem:  semaphore.NewWeighted(int64(limit)),
	}
}

// Hash waits for a free slot and delegates to the wrapped hasher
func (h *LimitedHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer h.sem.Release(1)

	return h.next.Hash(ctx, plaintext)
}

// Verify waits for a free slot and delegates to the wrapped hasher.
// A context that ends while waiting yields false.
func (h *LimitedHasher) Verify(ctx context.Context, plaintext, digest string) bool {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false
	}
	defer h.sem.Release(1)

	return h.next.Verify(ctx, plaintext, digest)
}
