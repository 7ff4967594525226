package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iudanet/noteful/internal/client/storage"
	pkgapi "github.com/iudanet/noteful/pkg/api"
)

//go:generate moq -out apiclient_mock.go . APIClient

// APIClient - методы сервера, нужные сервису авторизации
type APIClient interface {
	Register(ctx context.Context, req pkgapi.RegisterRequest) (*pkgapi.UserResponse, error)
	Login(ctx context.Context, req pkgapi.LoginRequest) (*pkgapi.TokenResponse, error)
	Refresh(ctx context.Context, token string) (*pkgapi.TokenResponse, error)
	GetUser(ctx context.Context, token, id string) (*pkgapi.UserResponse, error)
}

// ErrNotLoggedIn is returned when there is no saved session
var ErrNotLoggedIn = errors.New("not logged in")

// Service предоставляет функции авторизации
type Service struct {
	apiClient APIClient
	authStore storage.AuthStorage
	now       func() time.Time
}

// NewService создает новый сервис авторизации
func NewService(apiClient APIClient, authStore storage.AuthStorage) *Service {
	return &Service{
		apiClient: apiClient,
		authStore: authStore,
		now:       time.Now,
	}
}

// Register регистрирует нового пользователя. Сессия не создается.
func (s *Service) Register(ctx context.Context, username, password, fullName string) (*pkgapi.UserResponse, error) {
	req := pkgapi.RegisterRequest{
		Username: pkgapi.String(username),
		Password: pkgapi.String(password),
	}
	if fullName != "" {
		req.FullName = pkgapi.String(fullName)
	}

	resp, err := s.apiClient.Register(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}
	return resp, nil
}

// Login выполняет аутентификацию и сохраняет сессию
func (s *Service) Login(ctx context.Context, username, password string) (*storage.AuthData, error) {
	resp, err := s.apiClient.Login(ctx, pkgapi.LoginRequest{
		Username: pkgapi.String(username),
		Password: pkgapi.String(password),
	})
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	return s.saveSession(ctx, resp.AuthToken)
}

func (s *Service) saveSession(ctx context.Context, token string) (*storage.AuthData, error) {
	data, err := sessionFromToken(token)
	if err != nil {
		return nil, err
	}
	data.SavedAt = s.now()

	if err := s.authStore.SaveAuth(ctx, data); err != nil {
		return nil, fmt.Errorf("failed to save auth data: %w", err)
	}

	return data, nil
}

// Refresh обменивает сохраненный токен на новый и обновляет сессию
func (s *Service) Refresh(ctx context.Context) (*storage.AuthData, error) {
	current, err := s.Status(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := s.apiClient.Refresh(ctx, current.Token)
	if err != nil {
		return nil, fmt.Errorf("refresh failed: %w", err)
	}

	return s.saveSession(ctx, resp.AuthToken)
}

// Profile загружает профиль текущего пользователя с сервера
func (s *Service) Profile(ctx context.Context) (*pkgapi.UserResponse, error) {
	current, err := s.Status(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.apiClient.GetUser(ctx, current.Token, current.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return user, nil
}

// Status возвращает сохраненную сессию или ErrNotLoggedIn
func (s *Service) Status(ctx context.Context) (*storage.AuthData, error) {
	data, err := s.authStore.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return nil, ErrNotLoggedIn
		}
		return nil, fmt.Errorf("failed to get auth data: %w", err)
	}
	return data, nil
}

// Logout удаляет локальную сессию. Сервер не уведомляется: токены не отзываются.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.authStore.DeleteAuth(ctx); err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return ErrNotLoggedIn
		}
		return fmt.Errorf("failed to delete auth data: %w", err)
	}
	return nil
}

// sessionClaims повторяет claims токена сервера
type sessionClaims struct {
	User struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		FullName string `json:"fullName"`
	} `json:"user"`
	jwt.RegisteredClaims
}

// sessionFromToken читает claims без проверки подписи: секрет есть только у сервера,
// данные используются лишь для отображения статуса.
func sessionFromToken(token string) (*storage.AuthData, error) {
	var claims sessionClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("failed to parse auth token: %w", err)
	}

	data := &storage.AuthData{
		Username: claims.User.Username,
		UserID:   claims.User.ID,
		FullName: claims.User.FullName,
		Token:    token,
	}
	if claims.ExpiresAt != nil {
		data.ExpiresAt = claims.ExpiresAt.Time
	}

	return data, nil
}
