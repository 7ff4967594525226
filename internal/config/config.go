// Package config загружает конфигурацию сервера из окружения и флагов.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

// Drivers хранилища
const (
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
)

// Config содержит настройки сервера.
// Приоритет: флаги командной строки > переменные окружения > значения по умолчанию.
type Config struct {
	Addr            string        `env:"NOTEFUL_ADDR"             envDefault:":8080"      validate:"required"`
	DBDriver        string        `env:"NOTEFUL_DB_DRIVER"        envDefault:"sqlite"     validate:"oneof=sqlite bolt"`
	DBPath          string        `env:"NOTEFUL_DB_PATH"          envDefault:"noteful.db" validate:"required"`
	JWTSecret       string        `env:"NOTEFUL_JWT_SECRET"                               validate:"required"`
	JWTIssuer       string        `env:"NOTEFUL_JWT_ISSUER"       envDefault:"noteful"`
	HashAlgorithm   string        `env:"NOTEFUL_HASH_ALGORITHM"   envDefault:"bcrypt"     validate:"oneof=bcrypt argon2id"`
	LogLevel        string        `env:"NOTEFUL_LOG_LEVEL"        envDefault:"info"       validate:"oneof=debug info warn error"`
	LogFormat       string        `env:"NOTEFUL_LOG_FORMAT"       envDefault:"text"       validate:"oneof=text json"`
	JWTExpiry       time.Duration `env:"NOTEFUL_JWT_EXPIRY"       envDefault:"4h"         validate:"gt=0"`
	ShutdownTimeout time.Duration `env:"NOTEFUL_SHUTDOWN_TIMEOUT" envDefault:"10s"        validate:"gt=0"`
	BcryptCost      int           `env:"NOTEFUL_BCRYPT_COST"      envDefault:"10"         validate:"min=4,max=31"`
	// 0 - по числу CPU
	HashConcurrency int  `env:"NOTEFUL_HASH_CONCURRENCY" envDefault:"0" validate:"gte=0"`
	ShowVersion     bool
}

// Load читает окружение, затем применяет флаги из args и валидирует результат.
// Возвращает flag.ErrHelp, если запрошена справка.
func Load(args []string, output io.Writer) (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("noteful-server", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	fs.StringVar(&cfg.DBDriver, "db-driver", cfg.DBDriver, "Storage driver: sqlite or bolt")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to database file")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.DurationVar(&cfg.JWTExpiry, "jwt-expiry", cfg.JWTExpiry, "Auth token lifetime")
	fs.StringVar(&cfg.HashAlgorithm, "hash", cfg.HashAlgorithm, "Password hash algorithm: bcrypt or argon2id")
	fs.IntVar(&cfg.BcryptCost, "bcrypt-cost", cfg.BcryptCost, "bcrypt cost factor (4-31)")
	fs.IntVar(&cfg.HashConcurrency, "hash-concurrency", cfg.HashConcurrency, "Max concurrent hash computations, 0 = number of CPUs")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: text or json")
	fs.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.ShowVersion {
		return &cfg, nil
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate проверяет значения по тегам validate
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q check", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// NewLogger создает slog логгер по настройкам конфигурации
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(c.LogLevel)}

	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
