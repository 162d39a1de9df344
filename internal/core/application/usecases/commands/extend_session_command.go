package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/session"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrExtendSessionCommandIsNotConstructed = errors.New(
	"ExtendSessionCommand must be created via NewExtendSessionCommand constructor",
)

// ExtendSessionCommand represents a request to push a guest session's expiry
// forward. Extension is the only operation that refreshes the linked cart's
// TTL; ordinary cart writes leave expiry untouched so it stays predictable.
type ExtendSessionCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID
	hours     int

	guard guard.ConstructorGuard
}

// NewExtendSessionCommand creates a command to extend a guest session.
// Hours must be within the allowed extension window.
func NewExtendSessionCommand(sessionID kernel.UUID, hours int) (ExtendSessionCommand, error) {
	cmd := ExtendSessionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSessionID(sessionID),
		cmd.setHours(hours),
	); err != nil {
		return ExtendSessionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ExtendSessionCommand) Validate() error {
	return c.guard.Validate(ErrExtendSessionCommandIsNotConstructed)
}

// SessionID returns the session to extend.
func (c ExtendSessionCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// Hours returns the requested extension in hours.
func (c ExtendSessionCommand) Hours() int {
	return c.hours
}

func (c *ExtendSessionCommand) setSessionID(sessionID kernel.UUID) error {
	if err := sessionID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("sessionID", err)
	}

	c.sessionID = sessionID
	return nil
}

func (c *ExtendSessionCommand) setHours(hours int) error {
	if hours < session.MinExtensionHours || hours > session.MaxExtensionHours {
		return errs.NewValueIsOutOfRangeError("hours", hours,
			session.MinExtensionHours, session.MaxExtensionHours)
	}

	c.hours = hours
	return nil
}
