package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/noteful/internal/models"
	"github.com/iudanet/noteful/internal/server/storage"
)

// userRecord is the on-disk form of models.User.
// models.User hides the password hash from JSON, so it is stored explicitly here.
type userRecord struct {
	CreatedAt    time.Time `json:"created_at"`
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	FullName     string    `json:"full_name"`
}

// usernameKey строит ключ индекса usernames.
// Префикс нужен, т.к. bbolt не принимает пустой ключ, а пустой username допустим.
func usernameKey(username string) []byte {
	return []byte("u:" + username)
}

// CreateUser creates a new user in the storage.
// bbolt serializes write transactions, so the existence check and the write
// below cannot interleave with another CreateUser.
func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	if user.PasswordHash == "" {
		return fmt.Errorf("failed to insert user: password hash is empty")
	}

	data, err := json.Marshal(toRecord(user))
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		users := tx.Bucket(bucketUsers)
		usernames := tx.Bucket(bucketUsernames)
		if users == nil || usernames == nil {
			return fmt.Errorf("users bucket not found")
		}

		if usernames.Get(usernameKey(user.Username)) != nil {
			return &storage.DuplicateKeyError{Key: "username", Value: user.Username}
		}
		if users.Get([]byte(user.ID)) != nil {
			return &storage.DuplicateKeyError{Key: "id", Value: user.ID}
		}

		if err := users.Put([]byte(user.ID), data); err != nil {
			return fmt.Errorf("failed to save user: %w", err)
		}
		if err := usernames.Put(usernameKey(user.Username), []byte(user.ID)); err != nil {
			return fmt.Errorf("failed to save username index: %w", err)
		}

		return nil
	})
}

// GetUserByUsername retrieves user by username
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user *models.User

	err := s.db.View(func(tx *bbolt.Tx) error {
		id := tx.Bucket(bucketUsernames).Get(usernameKey(username))
		if id == nil {
			return storage.ErrUserNotFound
		}

		var err error
		user, err = getUser(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// GetUserByID retrieves user by ID
func (s *Storage) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user *models.User

	err := s.db.View(func(tx *bbolt.Tx) error {
		var err error
		user, err = getUser(tx, []byte(userID))
		return err
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func getUser(tx *bbolt.Tx, id []byte) (*models.User, error) {
	data := tx.Bucket(bucketUsers).Get(id)
	if data == nil {
		return nil, storage.ErrUserNotFound
	}

	// data валидна только внутри транзакции, Unmarshal копирует значения
	var rec userRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	return rec.toUser(), nil
}

func toRecord(user *models.User) *userRecord {
	return &userRecord{
		CreatedAt:    user.CreatedAt.UTC(),
		ID:           user.ID,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		FullName:     user.FullName,
	}
}

func (r *userRecord) toUser() *models.User {
	return &models.User{
		CreatedAt:    r.CreatedAt,
		ID:           r.ID,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		FullName:     r.FullName,
	}
}
