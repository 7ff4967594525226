package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/noteful/internal/config"
	"github.com/iudanet/noteful/internal/crypto"
	"github.com/iudanet/noteful/internal/server"
	"github.com/iudanet/noteful/internal/server/auth"
	"github.com/iudanet/noteful/internal/server/storage"
	"github.com/iudanet/noteful/internal/server/storage/boltdb"
	"github.com/iudanet/noteful/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// userStore объединяет все, что сервер требует от хранилища
type userStore interface {
	storage.UserStorage
	storage.Pinger
	io.Closer
}

func main() {
	cfg, err := config.Load(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// Show version and exit if requested
	if cfg.ShowVersion {
		printVersion()
		os.Exit(0)
	}

	logger := cfg.NewLogger(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	store, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close storage", slog.Any("error", err))
		}
	}()

	baseHasher, err := crypto.NewHasher(cfg.HashAlgorithm, cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to create password hasher: %w", err)
	}
	hasher := crypto.NewLimitedHasher(baseHasher, cfg.HashConcurrency)

	jwtConfig := auth.JWTConfig{
		Secret: []byte(cfg.JWTSecret),
		Issuer: cfg.JWTIssuer,
		TTL:    cfg.JWTExpiry,
	}

	handler := server.NewRouter(server.Deps{
		Logger:       logger,
		Users:        store,
		Pinger:       store,
		Registration: auth.NewRegistrationService(logger, store, hasher),
		Auth:         auth.NewAuthService(logger, store, hasher, jwtConfig),
		Version:      Version,
	})

	logger.Info("Noteful server starting",
		slog.String("version", Version),
		slog.String("addr", cfg.Addr),
		slog.String("db_driver", cfg.DBDriver),
		slog.String("hash", cfg.HashAlgorithm))

	return server.Serve(ctx, logger, cfg.Addr, handler, cfg.ShutdownTimeout)
}

func openStorage(ctx context.Context, cfg *config.Config) (userStore, error) {
	switch cfg.DBDriver {
	case config.DriverBolt:
		s, err := boltdb.New(ctx, cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open bolt storage: %w", err)
		}
		return s, nil
	default:
		s, err := sqlite.New(ctx, cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite storage: %w", err)
		}
		return s, nil
	}
}

func printVersion() {
	fmt.Printf("Noteful Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
