package crypto

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrHashing is returned when the hashing primitive itself fails
	// (salt generation, unsupported cost).
	ErrHashing = errors.New("password hashing failed")

	// ErrPasswordTooLong is returned for input the algorithm cannot hash.
	// It is a client input problem, not an ErrHashing.
	ErrPasswordTooLong = errors.New("password is too long")
)

// Supported password hashing algorithms
const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"
)

// PasswordHasher hashes and verifies user passwords.
// Digests are self-describing: the salt and cost parameters are embedded,
// so nothing besides the digest string needs to be stored.
type PasswordHasher interface {
	// Hash produces a salted one-way digest of plaintext.
	// Errors wrap ErrHashing or ErrPasswordTooLong.
	Hash(ctx context.Context, plaintext string) (string, error)

	// Verify reports whether plaintext matches digest.
	// It never fails: malformed digests and mismatches both yield false.
	Verify(ctx context.Context, plaintext, digest string) bool
}

// NewHasher создает PasswordHasher по имени алгоритма
func NewHasher(algorithm string, bcryptCost int) (PasswordHasher, error) {
	switch algorithm {
	case "", AlgorithmBcrypt:
		return NewBcryptHasher(bcryptCost), nil
	case AlgorithmArgon2id:
		return NewArgon2idHasher(), nil
	default:
		return nil, fmt.Errorf("unsupported hash algorithm: %q", algorithm)
	}
}
