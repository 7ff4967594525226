package api

// RegisterRequest представляет запрос на регистрацию нового пользователя
type RegisterRequest struct {
	Username Field `json:"username,omitzero"` // обязательное поле
	Password Field `json:"password,omitzero"` // обязательное поле
	FullName Field `json:"fullName,omitzero"` // опциональное, обрезается по краям
}

// UserResponse представляет пользователя в ответах API (без хеша пароля)
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
}

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Username Field `json:"username,omitzero"`
	Password Field `json:"password,omitzero"`
}

// TokenResponse представляет ответ с подписанным токеном
type TokenResponse struct {
	AuthToken string `json:"authToken"` // JWT, подписанный HS256
}

// ValidationErrorResponse представляет ответ на некорректный ввод (422)
type ValidationErrorResponse struct {
	Reason   string `json:"reason"`   // всегда "ValidationError"
	Message  string `json:"message"`  // "Missing Field" или "Incorrect field type: expected string"
	Location string `json:"location"` // имя первого некорректного поля
	Code     int    `json:"code"`     // HTTP статус
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
