package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/noteful/internal/models"
	"github.com/iudanet/noteful/internal/server/auth"
	"github.com/iudanet/noteful/internal/validation"
	"github.com/iudanet/noteful/pkg/api"
)

// Registrar регистрирует пользователей
type Registrar interface {
	Register(ctx context.Context, req api.RegisterRequest) (*models.User, error)
}

// Authenticator проверяет учетные данные и выпускает токены
type Authenticator interface {
	Login(ctx context.Context, req api.LoginRequest) (*auth.LoginResult, error)
	Refresh(ctx context.Context, claims *auth.Claims) (*auth.LoginResult, error)
}

// AuthHandler обрабатывает запросы регистрации и входа
type AuthHandler struct {
	logger        *slog.Logger
	registrar     Registrar
	authenticator Authenticator
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, registrar Registrar, authenticator Authenticator) *AuthHandler {
	return &AuthHandler{
		logger:        logger,
		registrar:     registrar,
		authenticator: authenticator,
	}
}

// Register обрабатывает POST /api/users
// Регистрация нового пользователя
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode register request", slog.Any("error", err))
		writeError(h.logger, w, r, err)
		return
	}

	user, err := h.registrar.Register(ctx, req)
	if err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			h.logger.WarnContext(ctx, "invalid register request",
				slog.String("location", verr.Location),
				slog.String("kind", string(verr.Kind)))
			sendValidationError(h.logger, w, verr)
			return
		}
		if errors.Is(err, auth.ErrUsernameTaken) {
			h.logger.WarnContext(ctx, "user already exists", slog.String("username", req.Username.Value))
		}
		writeError(h.logger, w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "user registered successfully",
		slog.String("username", user.Username),
		slog.String("user_id", user.ID))

	w.Header().Set("Location", "/api/users/"+user.ID)
	SendJSON(h.logger, w, toUserResponse(user.Public()), http.StatusCreated)
}

// Login обрабатывает POST /api/login
// Аутентификация пользователя
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode login request", slog.Any("error", err))
		writeError(h.logger, w, r, err)
		return
	}

	res, err := h.authenticator.Login(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, validation.ErrInvalidInput):
			// Отсутствующие учетные данные отличаются от неверных
			SendError(h.logger, w, "", http.StatusBadRequest)
		case errors.Is(err, auth.ErrInvalidCredentials):
			// Причина (нет пользователя или неверный пароль) не раскрывается
			h.logger.WarnContext(ctx, "login failed", slog.String("username", req.Username.Value))
			writeError(h.logger, w, r, err)
		default:
			writeError(h.logger, w, r, err)
		}
		return
	}

	h.logger.InfoContext(ctx, "user logged in successfully",
		slog.String("username", res.User.Username),
		slog.String("user_id", res.User.ID))

	SendJSON(h.logger, w, api.TokenResponse{AuthToken: res.Token}, http.StatusOK)
}

// Refresh обрабатывает POST /api/refresh
// Выпускает новый токен по еще действующему. Требует AuthMiddleware.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := GetClaims(ctx)
	if !ok {
		SendError(h.logger, w, "", http.StatusUnauthorized)
		return
	}

	res, err := h.authenticator.Refresh(ctx, claims)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			h.logger.WarnContext(ctx, "refresh rejected", slog.String("user_id", claims.User.ID))
		}
		writeError(h.logger, w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "token refreshed", slog.String("user_id", res.User.ID))

	SendJSON(h.logger, w, api.TokenResponse{AuthToken: res.Token}, http.StatusOK)
}

func toUserResponse(u models.PublicUser) api.UserResponse {
	return api.UserResponse{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
	}
}
