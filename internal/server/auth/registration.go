package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/noteful/internal/crypto"
	"github.com/iudanet/noteful/internal/models"
	"github.com/iudanet/noteful/internal/server/storage"
	"github.com/iudanet/noteful/internal/validation"
	"github.com/iudanet/noteful/pkg/api"
)

// RegistrationService creates new user accounts
type RegistrationService struct {
	logger *slog.Logger
	users  storage.UserStorage
	hasher crypto.PasswordHasher
}

// NewRegistrationService создает сервис регистрации
func NewRegistrationService(logger *slog.Logger, users storage.UserStorage, hasher crypto.PasswordHasher) *RegistrationService {
	return &RegistrationService{
		logger: logger,
		users:  users,
		hasher: hasher,
	}
}

// Register validates the request, hashes the password and stores the user.
//
// Errors:
//   - *validation.Error for missing or non-string fields (first offender only)
//     and for a password the hasher cannot accept;
//   - ErrUsernameTaken when the username is already registered;
//   - anything else (hashing, storage) is an infrastructure fault.
func (s *RegistrationService) Register(ctx context.Context, req api.RegisterRequest) (*models.User, error) {
	// Сначала наличие обязательных полей, потом типы
	if err := validation.Require(
		validation.Named{Name: "username", Field: req.Username},
		validation.Named{Name: "password", Field: req.Password},
	); err != nil {
		return nil, err
	}

	if err := validation.Strings(
		validation.Named{Name: "fullName", Field: req.FullName},
		validation.Named{Name: "username", Field: req.Username},
		validation.Named{Name: "password", Field: req.Password},
	); err != nil {
		return nil, err
	}

	// username не нормализуется, trim только для fullName
	fullName := strings.TrimSpace(req.FullName.Value)

	digest, err := s.hasher.Hash(ctx, req.Password.Value)
	if err != nil {
		if errors.Is(err, crypto.ErrPasswordTooLong) {
			return nil, &validation.Error{Kind: validation.KindTooLong, Location: "password"}
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     req.Username.Value,
		PasswordHash: digest,
		FullName:     fullName,
		CreatedAt:    time.Now(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.DebugContext(ctx, "user created",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username))

	return user, nil
}
