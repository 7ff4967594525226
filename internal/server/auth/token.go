package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iudanet/noteful/internal/models"
)

// DefaultTokenTTL is used when JWTConfig.TTL is zero
const DefaultTokenTTL = 4 * time.Hour

// JWTConfig содержит конфигурацию для JWT.
// Заполняется один раз при старте и дальше только читается.
type JWTConfig struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

func (cfg JWTConfig) ttl() time.Duration {
	if cfg.TTL == 0 {
		return DefaultTokenTTL
	}
	return cfg.TTL
}

// Claims is the payload of an auth token: { "user": {id, username, fullName} }
// plus the registered sub/iat/exp claims. It never carries password material.
type Claims struct {
	User models.PublicUser `json:"user"`
	jwt.RegisteredClaims
}

// GenerateToken создает подписанный HS256 токен для пользователя
func GenerateToken(cfg JWTConfig, user *models.User) (string, *Claims, error) {
	if len(cfg.Secret) == 0 {
		return "", nil, errors.New("jwt secret is not configured")
	}

	now := time.Now()

	claims := &Claims{
		User: user.Public(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.ttl())),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(cfg.Secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, claims, nil
}

// ValidateToken проверяет подпись и срок действия токена и возвращает claims.
// Ошибки оборачивают ErrInvalidToken.
func ValidateToken(cfg JWTConfig, tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Проверяем что используется правильный алгоритм подписи
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return cfg.Secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.User.ID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
