package models

import "time"

// User представляет зарегистрированного пользователя
type User struct {
	CreatedAt    time.Time `json:"createdAt"` // время создания
	ID           string    `json:"id"`        // UUID пользователя
	Username     string    `json:"username"`  // уникальный username, регистр учитывается
	PasswordHash string    `json:"-"`         // bcrypt/argon2id digest, наружу не сериализуется
	FullName     string    `json:"fullName"`  // отображаемое имя, без пробелов по краям
}

// PublicUser is the representation of a user that may leave the service:
// HTTP responses and token claims. It never carries password material.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
}

// Public returns the outward representation of the user
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
	}
}
