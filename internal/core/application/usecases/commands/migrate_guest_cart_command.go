package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrMigrateGuestCartCommandIsNotConstructed = errors.New(
	"MigrateGuestCartCommand must be created via NewMigrateGuestCartCommand constructor",
)

// MigrateGuestCartCommand represents a request to fold a guest session's
// cart into an authenticated user's cart after login.
type MigrateGuestCartCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID
	userID    kernel.UUID

	guard guard.ConstructorGuard
}

// NewMigrateGuestCartCommand creates a command to migrate a guest cart.
func NewMigrateGuestCartCommand(sessionID, userID kernel.UUID) (MigrateGuestCartCommand, error) {
	cmd := MigrateGuestCartCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSessionID(sessionID),
		cmd.setUserID(userID),
	); err != nil {
		return MigrateGuestCartCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MigrateGuestCartCommand) Validate() error {
	return c.guard.Validate(ErrMigrateGuestCartCommandIsNotConstructed)
}

// SessionID returns the guest session being retired.
func (c MigrateGuestCartCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// UserID returns the authenticated user receiving the lines.
func (c MigrateGuestCartCommand) UserID() kernel.UUID {
	return c.userID
}

func (c *MigrateGuestCartCommand) setSessionID(sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("sessionID", err)
	}

	c.sessionID = sessionID
	return nil
}

func (c *MigrateGuestCartCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("userID", err)
	}

	c.userID = userID
	return nil
}
