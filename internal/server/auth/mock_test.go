package auth

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/iudanet/noteful/internal/crypto"
	"github.com/iudanet/noteful/internal/models"
	"github.com/iudanet/noteful/internal/server/storage"
)

// mockUserStorage is a mock implementation of UserStorage for testing
type mockUserStorage struct {
	users        map[string]*models.User // username -> User
	createError  error
	getUserError error
	mu           sync.Mutex
}

func newMockUserStorage() *mockUserStorage {
	return &mockUserStorage{users: make(map[string]*models.User)}
}

func (m *mockUserStorage) CreateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.createError != nil {
		return m.createError
	}
	if _, exists := m.users[user.Username]; exists {
		return &storage.DuplicateKeyError{Key: "username", Value: user.Username}
	}
	m.users[user.Username] = user
	return nil
}

func (m *mockUserStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.getUserError != nil {
		return nil, m.getUserError
	}
	user, ok := m.users[username]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserStorage) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.getUserError != nil {
		return nil, m.getUserError
	}
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *mockUserStorage) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

// countingHasher wraps a real hasher and counts calls
type countingHasher struct {
	next     crypto.PasswordHasher
	hashErr  error
	hashes   atomic.Int32
	verifies atomic.Int32
}

func (h *countingHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	h.hashes.Add(1)
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return h.next.Hash(ctx, plaintext)
}

func (h *countingHasher) Verify(ctx context.Context, plaintext, digest string) bool {
	h.verifies.Add(1)
	return h.next.Verify(ctx, plaintext, digest)
}

func newCountingHasher() *countingHasher {
	return &countingHasher{next: crypto.NewBcryptHasher(4)}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var testJWTConfig = JWTConfig{
	Secret: []byte("test-secret"),
	TTL:    DefaultTokenTTL,
}
