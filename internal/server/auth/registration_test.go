package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/noteful/internal/crypto"
	"github.com/iudanet/noteful/internal/validation"
	"github.com/iudanet/noteful/pkg/api"
)

// notString - поле присутствует, но значение не строка (число, null, объект)
var notString = api.Field{Present: true}

func TestRegistrationService_Register_Success(t *testing.T) {
	users := newMockUserStorage()
	hasher := newCountingHasher()
	svc := NewRegistrationService(testLogger(), users, hasher)

	user, err := svc.Register(context.Background(), api.RegisterRequest{
		Username: api.String("testUser"),
		Password: api.String("testPass"),
		FullName: api.String("  Test User  "),
	})
	require.NoError(t, err)

	_, err = uuid.Parse(user.ID)
	assert.NoError(t, err, "id should be a UUID")
	assert.Equal(t, "testUser", user.Username)
	assert.Equal(t, "Test User", user.FullName)
	assert.False(t, user.CreatedAt.IsZero())

	// Пароль хранится только в виде хеша
	assert.NotEqual(t, "testPass", user.PasswordHash)
	assert.True(t, hasher.Verify(context.Background(), "testPass", user.PasswordHash))

	stored, err := users.GetUserByUsername(context.Background(), "testUser")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)
}

func TestRegistrationService_Register_OptionalFullName(t *testing.T) {
	svc := NewRegistrationService(testLogger(), newMockUserStorage(), newCountingHasher())

	user, err := svc.Register(context.Background(), api.RegisterRequest{
		Username: api.String("nofullname"),
		Password: api.String("secret"),
	})
	require.NoError(t, err)
	assert.Equal(t, "", user.FullName)
}

func TestRegistrationService_Register_UsernameNotNormalized(t *testing.T) {
	users := newMockUserStorage()
	svc := NewRegistrationService(testLogger(), users, newCountingHasher())
	ctx := context.Background()

	for _, name := range []string{"bob", "Bob", " bob "} {
		_, err := svc.Register(ctx, api.RegisterRequest{
			Username: api.String(name),
			Password: api.String("secret"),
		})
		require.NoError(t, err, name)
	}
	assert.Equal(t, 3, users.count())
}

func TestRegistrationService_Register_Validation(t *testing.T) {
	tests := []struct {
		name         string
		req          api.RegisterRequest
		wantKind     validation.Kind
		wantLocation string
	}{
		{
			name:         "empty body",
			req:          api.RegisterRequest{},
			wantKind:     validation.KindMissingField,
			wantLocation: "username",
		},
		{
			name:         "missing username",
			req:          api.RegisterRequest{Password: api.String("secret")},
			wantKind:     validation.KindMissingField,
			wantLocation: "username",
		},
		{
			name:         "missing password",
			req:          api.RegisterRequest{Username: api.String("bob")},
			wantKind:     validation.KindMissingField,
			wantLocation: "password",
		},
		{
			name: "missing wins over wrong type",
			req: api.RegisterRequest{
				Username: notString,
				FullName: notString,
			},
			wantKind:     validation.KindMissingField,
			wantLocation: "password",
		},
		{
			name: "non-string fullName checked first",
			req: api.RegisterRequest{
				Username: notString,
				Password: api.String("secret"),
				FullName: notString,
			},
			wantKind:     validation.KindInvalidType,
			wantLocation: "fullName",
		},
		{
			name: "non-string username",
			req: api.RegisterRequest{
				Username: notString,
				Password: api.String("secret"),
			},
			wantKind:     validation.KindInvalidType,
			wantLocation: "username",
		},
		{
			name: "non-string password",
			req: api.RegisterRequest{
				Username: api.String("bob"),
				Password: notString,
				FullName: api.String("Bob"),
			},
			wantKind:     validation.KindInvalidType,
			wantLocation: "password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := newMockUserStorage()
			hasher := newCountingHasher()
			svc := NewRegistrationService(testLogger(), users, hasher)

			_, err := svc.Register(context.Background(), tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, validation.ErrInvalidInput)

			var verr *validation.Error
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantKind, verr.Kind)
			assert.Equal(t, tt.wantLocation, verr.Location)

			// Ни хеширования, ни записи при невалидном вводе
			assert.Zero(t, hasher.hashes.Load())
			assert.Zero(t, users.count())
		})
	}
}

func TestRegistrationService_Register_Duplicate(t *testing.T) {
	users := newMockUserStorage()
	svc := NewRegistrationService(testLogger(), users, newCountingHasher())
	ctx := context.Background()

	req := api.RegisterRequest{Username: api.String("testUser"), Password: api.String("testPass")}

	first, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, api.RegisterRequest{Username: api.String("testUser"), Password: api.String("other")})
	require.ErrorIs(t, err, ErrUsernameTaken)
	assert.Equal(t, "The username already exists", err.Error())

	// Первая запись не изменилась
	stored, err := users.GetUserByUsername(ctx, "testUser")
	require.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, first.PasswordHash, stored.PasswordHash)
}

func TestRegistrationService_Register_ConcurrentSameUsername(t *testing.T) {
	users := newMockUserStorage()
	svc := NewRegistrationService(testLogger(), users, newCountingHasher())

	const attempts = 8
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Register(context.Background(), api.RegisterRequest{
				Username: api.String("race"),
				Password: api.String("secret"),
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrUsernameTaken)
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, users.count())
}

func TestRegistrationService_Register_PasswordTooLong(t *testing.T) {
	users := newMockUserStorage()
	svc := NewRegistrationService(testLogger(), users, crypto.NewBcryptHasher(4))

	_, err := svc.Register(context.Background(), api.RegisterRequest{
		Username: api.String("bob"),
		Password: api.String(strings.Repeat("a", 80)),
	})

	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, validation.KindTooLong, verr.Kind)
	assert.Equal(t, "password", verr.Location)
	assert.NotErrorIs(t, err, crypto.ErrHashing)
	assert.Zero(t, users.count())
}

func TestRegistrationService_Register_InfrastructureErrors(t *testing.T) {
	t.Run("hashing failure", func(t *testing.T) {
		users := newMockUserStorage()
		hasher := newCountingHasher()
		hasher.hashErr = crypto.ErrHashing
		svc := NewRegistrationService(testLogger(), users, hasher)

		_, err := svc.Register(context.Background(), api.RegisterRequest{
			Username: api.String("bob"),
			Password: api.String("secret"),
		})
		require.ErrorIs(t, err, crypto.ErrHashing)
		assert.NotErrorIs(t, err, ErrUsernameTaken)
		assert.NotErrorIs(t, err, validation.ErrInvalidInput)
		assert.Zero(t, users.count())
	})

	t.Run("storage failure", func(t *testing.T) {
		users := newMockUserStorage()
		users.createError = errors.New("disk full")
		svc := NewRegistrationService(testLogger(), users, newCountingHasher())

		_, err := svc.Register(context.Background(), api.RegisterRequest{
			Username: api.String("bob"),
			Password: api.String("secret"),
		})
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrUsernameTaken)
		assert.Contains(t, err.Error(), "disk full")
	})
}
