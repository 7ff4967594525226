package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/iudanet/noteful/internal/crypto"
	"github.com/iudanet/noteful/internal/models"
	"github.com/iudanet/noteful/internal/server/storage"
	"github.com/iudanet/noteful/internal/validation"
	"github.com/iudanet/noteful/pkg/api"
)

// LoginResult is a successful Login outcome
type LoginResult struct {
	User   *models.User
	Claims *Claims
	Token  string
}

// AuthService authenticates users and issues tokens
type AuthService struct {
	logger *slog.Logger
	users  storage.UserStorage
	hasher crypto.PasswordHasher
	// dummy is verified against when the username is unknown,
	// so both failure paths cost one hash verification.
	dummy     *dummyDigest
	jwtConfig JWTConfig
}

// dummyDigest lazily hashes a random password once.
// A failed attempt is not remembered: the next call tries again.
type dummyDigest struct {
	hasher crypto.PasswordHasher
	mu     sync.Mutex
	digest string
}

func (d *dummyDigest) get(ctx context.Context) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.digest != "" {
		return d.digest, nil
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	digest, err := d.hasher.Hash(ctx, hex.EncodeToString(buf))
	if err != nil {
		return "", err
	}

	d.digest = digest
	return digest, nil
}

// NewAuthService создает сервис аутентификации
func NewAuthService(logger *slog.Logger, users storage.UserStorage, hasher crypto.PasswordHasher, jwtConfig JWTConfig) *AuthService {
	return &AuthService{
		logger:    logger,
		users:     users,
		hasher:    hasher,
		jwtConfig: jwtConfig,
		dummy:     &dummyDigest{hasher: hasher},
	}
}

// Login checks the credentials and issues a token.
//
// Missing, empty or non-string credentials give a *validation.Error.
// Unknown username and wrong password both give ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req api.LoginRequest) (*LoginResult, error) {
	if err := validation.RequireStrings(
		validation.Named{Name: "username", Field: req.Username},
		validation.Named{Name: "password", Field: req.Password},
	); err != nil {
		return nil, err
	}
	// Пустые строки считаются отсутствующими учетными данными
	if req.Username.Value == "" {
		return nil, &validation.Error{Kind: validation.KindMissingField, Location: "username"}
	}
	if req.Password.Value == "" {
		return nil, &validation.Error{Kind: validation.KindMissingField, Location: "password"}
	}

	user, err := s.users.GetUserByUsername(ctx, req.Username.Value)
	if err != nil {
		if !errors.Is(err, storage.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to get user: %w", err)
		}
		s.burnVerification(ctx, req.Password.Value)
		return nil, ErrInvalidCredentials
	}

	if !s.hasher.Verify(ctx, req.Password.Value, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

// ValidateToken проверяет токен с конфигурацией сервиса
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	return ValidateToken(s.jwtConfig, tokenString)
}

// Refresh issues a new token for the user named by still-valid claims.
// The user is re-read from storage; a deleted user gets ErrInvalidToken.
func (s *AuthService) Refresh(ctx context.Context, claims *Claims) (*LoginResult, error) {
	if claims == nil || claims.User.ID == "" {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetUserByID(ctx, claims.User.ID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return s.issue(user)
}

func (s *AuthService) issue(user *models.User) (*LoginResult, error) {
	token, claims, err := GenerateToken(s.jwtConfig, user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResult{User: user, Claims: claims, Token: token}, nil
}

func (s *AuthService) burnVerification(ctx context.Context, password string) {
	digest, err := s.dummy.get(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to prepare dummy digest", slog.Any("error", err))
		return
	}
	s.hasher.Verify(ctx, password, digest)
}
