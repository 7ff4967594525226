package storage

import (
	"context"
	"time"
)

// AuthStorage defines interface for storing the login session on client.
// Only one session is kept; saving a new one replaces the previous.
type AuthStorage interface {
	// SaveAuth stores authentication data
	SaveAuth(ctx context.Context, auth *AuthData) error

	// GetAuth retrieves stored authentication data
	// Returns ErrAuthNotFound if no auth data exists
	GetAuth(ctx context.Context) (*AuthData, error)

	// DeleteAuth removes stored authentication data (logout)
	// Returns ErrAuthNotFound if there was nothing to delete
	DeleteAuth(ctx context.Context) error

	// IsAuthenticated checks if a session exists and its token is not expired
	IsAuthenticated(ctx context.Context) (bool, error)
}

// AuthData represents a saved login session
type AuthData struct {
	SavedAt   time.Time `json:"saved_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Username  string    `json:"username"`
	UserID    string    `json:"user_id"`
	FullName  string    `json:"full_name"`
	Token     string    `json:"token"`
}

// Expired reports whether the token expiry has passed at the given moment
func (a *AuthData) Expired(now time.Time) bool {
	return !a.ExpiresAt.IsZero() && !now.Before(a.ExpiresAt)
}
