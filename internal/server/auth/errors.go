package auth

import "errors"

var (
	// ErrUsernameTaken is returned by Register when the username already exists.
	// It replaces the storage error; the storage error is never passed through.
	ErrUsernameTaken = errors.New("The username already exists") //nolint:staticcheck // message is shown to clients as is

	// ErrInvalidCredentials is returned by Login both for an unknown username
	// and for a wrong password. The two cases must stay indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken indicates a token that is malformed, badly signed or expired
	ErrInvalidToken = errors.New("invalid token")
)
