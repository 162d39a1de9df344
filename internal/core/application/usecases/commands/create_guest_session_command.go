package commands

import (
	"errors"

	"marketplace/internal/pkg/guard"
)

var ErrCreateGuestSessionCommandIsNotConstructed = errors.New(
	"CreateGuestSessionCommand must be created via NewCreateGuestSessionCommand constructor",
)

// CreateGuestSessionCommand represents a request to issue an anonymous
// session for an unauthenticated visitor. Carries request metadata recorded
// on the new session.
type CreateGuestSessionCommand struct { //nolint:recvcheck //using for validation
	userAgent  string
	remoteAddr string

	guard guard.ConstructorGuard
}

// NewCreateGuestSessionCommand creates a command to issue a guest session.
// Metadata fields may be empty; not every client sends them.
func NewCreateGuestSessionCommand(userAgent, remoteAddr string) (CreateGuestSessionCommand, error) {
	return CreateGuestSessionCommand{
		guard: guard.NewConstructorGuard(),

		userAgent:  userAgent,
		remoteAddr: remoteAddr,
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateGuestSessionCommand) Validate() error {
	return c.guard.Validate(ErrCreateGuestSessionCommandIsNotConstructed)
}

// UserAgent returns the client's reported user agent.
func (c CreateGuestSessionCommand) UserAgent() string {
	return c.userAgent
}

// RemoteAddr returns the client's remote address.
func (c CreateGuestSessionCommand) RemoteAddr() string {
	return c.remoteAddr
}
