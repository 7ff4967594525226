package cli

import (
	"context"
	"errors"
	"time"

	"github.com/iudanet/noteful/internal/client/auth"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Authentication Status ===")
	c.io.Println()

	session, err := c.authService.Status(ctx)
	if err != nil {
		if errors.Is(err, auth.ErrNotLoggedIn) {
			c.io.Println("Status: Not authenticated")
			c.io.Println()
			c.io.Println("Run 'noteful login' to authenticate.")
			return nil
		}
		return err
	}

	c.io.Println("Status: Authenticated")
	c.io.Printf("Username: %s\n", session.Username)
	c.io.Printf("User ID: %s\n", session.UserID)

	if session.ExpiresAt.IsZero() {
		return nil
	}

	c.io.Printf("Token expires: %s\n", session.ExpiresAt.Format(time.RFC3339))
	if remaining := time.Until(session.ExpiresAt); remaining > 0 {
		c.io.Printf("Time remaining: %s\n", remaining.Round(time.Second))
	} else {
		c.io.Println("⚠️  Token has expired. Please login again.")
	}

	return nil
}

func (c *Cli) runWhoami(ctx context.Context) error {
	user, err := c.authService.Profile(ctx)
	if err != nil {
		return err
	}

	c.io.Printf("ID: %s\n", user.ID)
	c.io.Printf("Username: %s\n", user.Username)
	c.io.Printf("Full name: %s\n", user.FullName)
	return nil
}
