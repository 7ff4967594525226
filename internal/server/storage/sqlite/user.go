package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/iudanet/noteful/internal/models"
	"github.com/iudanet/noteful/internal/server/storage"
)

// CreateUser creates a new user in the storage
func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, username, password_hash, full_name, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.FullName,
		user.CreatedAt.UTC(),
	)

	if err != nil {
		if dup := duplicateKeyError(err, user); dup != nil {
			return dup
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetUserByUsername retrieves user by username
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, full_name, created_at
		FROM users
		WHERE username = ?
	`

	return s.getUser(ctx, query, username)
}

// GetUserByID retrieves user by ID
func (s *Storage) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, full_name, created_at
		FROM users
		WHERE id = ?
	`

	return s.getUser(ctx, query, userID)
}

func (s *Storage) getUser(ctx context.Context, query string, arg string) (*models.User, error) {
	user := &models.User{}

	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.FullName,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// duplicateKeyError переводит нарушение UNIQUE/PRIMARY KEY в storage.DuplicateKeyError.
// Возвращает nil для остальных ошибок.
func duplicateKeyError(err error, user *models.User) error {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return nil
	}

	code := sqliteErr.Code()
	if code&0xff != sqlite3.SQLITE_CONSTRAINT {
		return nil
	}

	switch {
	case code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, strings.Contains(sqliteErr.Error(), "users.id"):
		return &storage.DuplicateKeyError{Key: "id", Value: user.ID}
	case code == sqlite3.SQLITE_CONSTRAINT_UNIQUE, strings.Contains(sqliteErr.Error(), "users.username"):
		return &storage.DuplicateKeyError{Key: "username", Value: user.Username}
	default:
		return nil
	}
}
