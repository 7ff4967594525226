package storage

import (
	"errors"
	"fmt"
)

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this username already exists
	ErrUserAlreadyExists = errors.New("user already exists")
)

// DuplicateKeyError is returned by CreateUser when a unique key is already taken.
// Engines translate their own constraint errors into it so callers never
// depend on driver-specific codes.
type DuplicateKeyError struct {
	Key   string // имя уникального ключа, например "username"
	Value string
}

// Error implements error
func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate %s %q", e.Key, e.Value)
}

// Is makes errors.Is(err, ErrUserAlreadyExists) true
func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrUserAlreadyExists
}
