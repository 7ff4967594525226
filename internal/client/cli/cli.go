// Package cli реализует команды консольного клиента.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/noteful/internal/client/iocli"
	"github.com/iudanet/noteful/internal/client/storage"
	pkgapi "github.com/iudanet/noteful/pkg/api"
)

// ErrUnknownCommand возвращается для неизвестной команды
var ErrUnknownCommand = errors.New("unknown command")

// AuthService - операции сессии, которые использует CLI
type AuthService interface {
	Register(ctx context.Context, username, password, fullName string) (*pkgapi.UserResponse, error)
	Login(ctx context.Context, username, password string) (*storage.AuthData, error)
	Refresh(ctx context.Context) (*storage.AuthData, error)
	Profile(ctx context.Context) (*pkgapi.UserResponse, error)
	Status(ctx context.Context) (*storage.AuthData, error)
	Logout(ctx context.Context) error
}

type Cli struct {
	io          iocli.IO
	authService AuthService
}

func New(io iocli.IO, authService AuthService) *Cli {
	return &Cli{
		io:          io,
		authService: authService,
	}
}

// Run выполняет команду
func (c *Cli) Run(ctx context.Context, command string) error {
	switch command {
	case "register":
		return c.runRegister(ctx)
	case "login":
		return c.runLogin(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "whoami":
		return c.runWhoami(ctx)
	case "refresh":
		return c.runRefresh(ctx)
	default:
		c.PrintUsage()
		return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
}

// PrintUsage выводит справку по командам
func (c *Cli) PrintUsage() {
	c.io.Println("Usage: noteful [flags] <command>")
	c.io.Println()
	c.io.Println("Commands:")
	c.io.Println("  register   Create a new account")
	c.io.Println("  login      Log in and save the session")
	c.io.Println("  logout     Remove the saved session")
	c.io.Println("  status     Show the saved session")
	c.io.Println("  whoami     Fetch your profile from the server")
	c.io.Println("  refresh    Exchange the saved token for a new one")
	c.io.Println()
	c.io.Println("Flags:")
	c.io.Println("  -server    Server URL (default http://localhost:8080)")
	c.io.Println("  -db        Path to local database")
	c.io.Println("  -version   Show version information")
}
