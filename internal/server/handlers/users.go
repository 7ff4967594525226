package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/noteful/internal/server/storage"
)

// UserHandler отдает публичные данные пользователей
type UserHandler struct {
	logger *slog.Logger
	users  storage.UserStorage
}

// NewUserHandler создает handler пользователей
func NewUserHandler(logger *slog.Logger, users storage.UserStorage) *UserHandler {
	return &UserHandler{
		logger: logger,
		users:  users,
	}
}

// GetUser обрабатывает GET /api/users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Извлекаем id из path parameter (Go 1.22+)
	id := r.PathValue("id")
	if id == "" {
		SendError(h.logger, w, "", http.StatusNotFound)
		return
	}

	user, err := h.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.DebugContext(ctx, "user not found", slog.String("user_id", id))
		}
		writeError(h.logger, w, r, err)
		return
	}

	SendJSON(h.logger, w, toUserResponse(user.Public()), http.StatusOK)
}
