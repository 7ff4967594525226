package cli

import (
	"context"
	"errors"
	"fmt"
)

var errPasswordMismatch = errors.New("passwords do not match")

func (c *Cli) runRegister(ctx context.Context) error {
	c.io.Println("=== Registration ===")
	c.io.Println()

	username, err := c.io.ReadInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}

	fullName, err := c.io.ReadInput("Full name (optional): ")
	if err != nil {
		return fmt.Errorf("failed to read full name: %w", err)
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	confirmPassword, err := c.io.ReadPassword("Confirm password: ")
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}

	if password != confirmPassword {
		return errPasswordMismatch
	}

	c.io.Println()
	c.io.Println("Registering user...")

	user, err := c.authService.Register(ctx, username, password, fullName)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Registration successful!")
	c.io.Printf("User ID: %s\n", user.ID)
	c.io.Printf("Username: %s\n", user.Username)
	if user.FullName != "" {
		c.io.Printf("Full name: %s\n", user.FullName)
	}
	c.io.Println()
	c.io.Println("Please run 'noteful login' to start using the service.")

	return nil
}
