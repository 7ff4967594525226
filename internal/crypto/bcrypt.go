package crypto

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxBcryptPasswordLen - bcrypt использует только первые 72 байта
const MaxBcryptPasswordLen = 72

// BcryptHasher implements PasswordHasher using bcrypt
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a bcrypt hasher.
// A cost outside [bcrypt.MinCost, bcrypt.MaxCost] falls back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Cost returns the bcrypt work factor used for new digests
func (h *BcryptHasher) Cost() int {
	return h.cost
}

// Hash generates a bcrypt digest; the random salt is part of the output
func (h *BcryptHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if len(plaintext) > MaxBcryptPasswordLen {
		return "", fmt.Errorf("%w: %w", ErrPasswordTooLong, bcrypt.ErrPasswordTooLong)
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: %w", ErrPasswordTooLong, err)
		}
		return "", fmt.Errorf("%w: %w", ErrHashing, err)
	}

	return string(digest), nil
}

// Verify compares plaintext against a bcrypt digest
func (h *BcryptHasher) Verify(ctx context.Context, plaintext, digest string) bool {
	if ctx.Err() != nil || digest == "" {
		return false
	}
	// CompareHashAndPassword сравнивает через subtle.ConstantTimeCompare
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
