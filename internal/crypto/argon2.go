package crypto

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Параметры Argon2id по умолчанию
const (
	// Argon2Time - количество итераций (time cost)
	Argon2Time = 1
	// Argon2Memory - объем памяти в KB (64MB = 64*1024 KB)
	Argon2Memory = 64 * 1024
	// Argon2Threads - количество параллельных потоков
	Argon2Threads = 4
	// Argon2KeyLen - длина выходного ключа в байтах
	Argon2KeyLen = 32
	// SaltSize - размер соли в байтах
	SaltSize = 16
)

// Argon2Params описывает стоимость вычисления Argon2id
type Argon2Params struct {
	Time    uint32
	Memory  uint32
	Threads uint8
	KeyLen  uint32
}

// DefaultArgon2Params returns the parameters used for new digests
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Time:    Argon2Time,
		Memory:  Argon2Memory,
		Threads: Argon2Threads,
		KeyLen:  Argon2KeyLen,
	}
}

// Argon2idHasher implements PasswordHasher using argon2id with PHC-encoded digests:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>
type Argon2idHasher struct {
	params Argon2Params
}

// NewArgon2idHasher creates a hasher with DefaultArgon2Params
func NewArgon2idHasher() *Argon2idHasher {
	return NewArgon2idHasherWithParams(DefaultArgon2Params())
}

// NewArgon2idHasherWithParams creates a hasher with explicit cost parameters
func NewArgon2idHasherWithParams(params Argon2Params) *Argon2idHasher {
	return &Argon2idHasher{params: params}
}

// GenerateSalt генерирует криптографически случайную соль
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// Hash derives an argon2id key from plaintext with a fresh random salt
func (h *Argon2idHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	salt, err := GenerateSalt()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHashing, err)
	}

	p := h.params
	key := argon2.IDKey([]byte(plaintext), salt, p.Time, p.Memory, p.Threads, p.KeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		p.Memory,
		p.Time,
		p.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify recomputes the key with the salt and parameters stored in digest
func (h *Argon2idHasher) Verify(ctx context.Context, plaintext, digest string) bool {
	if ctx.Err() != nil {
		return false
	}

	params, salt, expected, err := decodeArgon2Digest(digest)
	if err != nil {
		return false
	}

	computed := argon2.IDKey([]byte(plaintext), salt, params.Time, params.Memory, params.Threads, params.KeyLen)

	return subtle.ConstantTimeCompare(computed, expected) == 1
}

// decodeArgon2Digest разбирает PHC строку на параметры, соль и ключ
func decodeArgon2Digest(digest string) (Argon2Params, []byte, []byte, error) {
	var params Argon2Params

	parts := strings.Split(digest, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return params, nil, nil, fmt.Errorf("invalid argon2id digest format")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return params, nil, nil, fmt.Errorf("invalid argon2id version: %w", err)
	}
	if version != argon2.Version {
		return params, nil, nil, fmt.Errorf("unsupported argon2 version %d", version)
	}

	var threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.Memory, &params.Time, &threads); err != nil {
		return params, nil, nil, fmt.Errorf("invalid argon2id parameters: %w", err)
	}
	if threads == 0 || threads > 255 || params.Time == 0 {
		return params, nil, nil, fmt.Errorf("invalid argon2id parameters")
	}
	params.Threads = uint8(threads)

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return params, nil, nil, fmt.Errorf("failed to decode salt: %w", err)
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return params, nil, nil, fmt.Errorf("failed to decode key: %w", err)
	}
	if len(key) == 0 || len(key) > 1024 {
		return params, nil, nil, fmt.Errorf("invalid argon2id key length: %d", len(key))
	}
	params.KeyLen = uint32(len(key))

	return params, salt, key, nil
}
