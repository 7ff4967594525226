package cli

import (
	"context"
	"fmt"
	"time"
)

func (c *Cli) runLogin(ctx context.Context) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	username, err := c.io.ReadInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	c.io.Println()
	c.io.Println("Authenticating...")

	session, err := c.authService.Login(ctx, username, password)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Login successful!")
	c.io.Printf("Logged in as: %s\n", session.Username)
	if !session.ExpiresAt.IsZero() {
		c.io.Printf("Token expires: %s\n", session.ExpiresAt.Format(time.RFC3339))
	}

	return nil
}

func (c *Cli) runRefresh(ctx context.Context) error {
	session, err := c.authService.Refresh(ctx)
	if err != nil {
		return err
	}

	c.io.Println("✓ Token refreshed")
	if !session.ExpiresAt.IsZero() {
		c.io.Printf("Token expires: %s\n", session.ExpiresAt.Format(time.RFC3339))
	}
	return nil
}
