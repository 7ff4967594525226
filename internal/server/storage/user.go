package storage

import (
	"context"

	"github.com/iudanet/noteful/internal/models"
)

// UserStorage defines interface for user data persistence
type UserStorage interface {
	// CreateUser creates a new user in the storage
	// Returns *DuplicateKeyError (matching ErrUserAlreadyExists) if username already exists.
	// Uniqueness is enforced atomically: of two concurrent creates with the same
	// username exactly one succeeds.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername retrieves user by username (exact, case-sensitive match)
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByID retrieves user by ID
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
}

// Pinger is implemented by storages that can report their health
type Pinger interface {
	Ping(ctx context.Context) error
}
