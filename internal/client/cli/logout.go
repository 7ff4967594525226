package cli

import (
	"context"
	"errors"

	"github.com/iudanet/noteful/internal/client/auth"
)

func (c *Cli) runLogout(ctx context.Context) error {
	if err := c.authService.Logout(ctx); err != nil {
		if errors.Is(err, auth.ErrNotLoggedIn) {
			c.io.Println("Not logged in")
			return nil
		}
		return err
	}

	c.io.Println("✓ Logged out")
	return nil
}
