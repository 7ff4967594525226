// Package server собирает HTTP маршруты и управляет жизненным циклом сервера.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/iudanet/noteful/internal/server/auth"
	"github.com/iudanet/noteful/internal/server/handlers"
	"github.com/iudanet/noteful/internal/server/middleware"
	"github.com/iudanet/noteful/internal/server/storage"
)

// DefaultShutdownTimeout используется, если таймаут не задан
const DefaultShutdownTimeout = 10 * time.Second

// Deps содержит зависимости HTTP слоя
type Deps struct {
	Logger       *slog.Logger
	Users        storage.UserStorage
	Pinger       storage.Pinger
	Registration *auth.RegistrationService
	Auth         *auth.AuthService
	Version      string
}

// NewRouter регистрирует маршруты API
func NewRouter(deps Deps) http.Handler {
	logger := deps.Logger

	authHandler := handlers.NewAuthHandler(logger, deps.Registration, deps.Auth)
	userHandler := handlers.NewUserHandler(logger, deps.Users)
	healthHandler := handlers.NewHealthHandler(logger, deps.Pinger, deps.Version)

	requireAuth := middleware.AuthMiddleware(logger, deps.Auth)

	mux := http.NewServeMux()

	// Публичные маршруты
	mux.HandleFunc("POST /api/users", authHandler.Register)
	mux.HandleFunc("POST /api/login", authHandler.Login)
	mux.HandleFunc("GET /api/health", healthHandler.Health)

	// Маршруты, требующие токен
	mux.Handle("POST /api/refresh", requireAuth(http.HandlerFunc(authHandler.Refresh)))
	mux.Handle("GET /api/users/{id}", requireAuth(http.HandlerFunc(userHandler.GetUser)))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		handlers.SendError(logger, w, "", http.StatusNotFound)
	})

	var h http.Handler = mux
	h = middleware.LoggingWithSkip(logger, []string{"/api/health"})(h)
	h = middleware.RecoveryMiddleware(logger)(h)

	return h
}

// Serve запускает HTTP сервер и останавливает его при отмене ctx.
// Возвращает nil после штатной остановки.
func Serve(ctx context.Context, logger *slog.Logger, addr string, handler http.Handler, shutdownTimeout time.Duration) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return serveListener(ctx, logger, ln, handler, shutdownTimeout)
}

func serveListener(ctx context.Context, logger *slog.Logger, ln net.Listener, handler http.Handler, shutdownTimeout time.Duration) error {
	if shutdownTimeout <= 0 {
		shutdownTimeout = DefaultShutdownTimeout
	}

	srv := &http.Server{
		Handler:           handler,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	log := logger.With(slog.String("server.addr", ln.Addr().String()))

	serveErr := make(chan error, 1)
	go func() {
		defer close(serveErr)
		log.Info("starting HTTP server")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("initiating shutdown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	log.Info("shutdown completed")

	// Serve уже вернул ErrServerClosed
	return <-serveErr
}
