package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/iudanet/noteful/internal/server/auth"
	"github.com/iudanet/noteful/internal/server/storage"
	"github.com/iudanet/noteful/internal/validation"
	"github.com/iudanet/noteful/pkg/api"
)

// maxBodySize ограничивает размер тела запроса
const maxBodySize = 1 << 20

// errBadRequestBody is returned by decodeJSON for bodies that are not valid JSON
var errBadRequestBody = errors.New("invalid request body")

// decodeJSON декодирует тело запроса. Пустое тело считается пустым объектом.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return errors.Join(errBadRequestBody, err)
	}
	return nil
}

// SendJSON отправляет JSON ответ
func SendJSON(logger *slog.Logger, w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// SendError отправляет {status, message}. Пустое сообщение заменяется на текст статуса.
func SendError(logger *slog.Logger, w http.ResponseWriter, message string, statusCode int) {
	if message == "" {
		message = http.StatusText(statusCode)
	}
	SendJSON(logger, w, api.ErrorResponse{Status: statusCode, Message: message}, statusCode)
}

func sendValidationError(logger *slog.Logger, w http.ResponseWriter, verr *validation.Error) {
	SendJSON(logger, w, api.ValidationErrorResponse{
		Code:     http.StatusUnprocessableEntity,
		Reason:   "ValidationError",
		Message:  verr.Message(),
		Location: verr.Location,
	}, http.StatusUnprocessableEntity)
}

// writeError maps a service error to an HTTP response.
// Validation errors are mapped by the caller because their status is route specific.
func writeError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, errBadRequestBody):
		SendError(logger, w, "", http.StatusBadRequest)
	case errors.Is(err, auth.ErrUsernameTaken):
		SendError(logger, w, auth.ErrUsernameTaken.Error(), http.StatusBadRequest)
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		SendError(logger, w, "", http.StatusUnauthorized)
	case errors.Is(err, storage.ErrUserNotFound):
		SendError(logger, w, "", http.StatusNotFound)
	default:
		// Детали не раскрываем клиенту
		logger.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
		SendError(logger, w, "", http.StatusInternalServerError)
	}
}
