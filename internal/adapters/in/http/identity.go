package http

import (
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Authenticated user identity and fulfillment actors arrive on headers set by
// the API gateway, which terminates account authentication upstream. Guest
// identity is the bearer credential issued at session bootstrap and verified
// here through the identity port.
const (
	headerUserID    = "X-User-ID"
	headerActorID   = "X-Actor-ID"
	headerActorRole = "X-Actor-Role"
)

// resolveOwner determines who the request acts for: an authenticated user
// when the gateway forwarded a user id, otherwise the guest session named by
// the bearer credential.
func (s *Server) resolveOwner(ctx echo.Context) (kernel.Owner, error) {
	if raw := ctx.Request().Header.Get(headerUserID); raw != "" {
		userID, err := kernel.UUIDFromString(raw)
		if err != nil {
			return kernel.Owner{}, errs.NewValueIsInvalidErrorWithCause("user id", err)
		}
		return kernel.NewUserOwner(userID)
	}

	sessionID, err := s.resolveGuestSession(ctx)
	if err != nil {
		return kernel.Owner{}, err
	}
	return kernel.NewGuestOwner(sessionID)
}

// resolveGuestSession extracts and verifies the bearer credential.
func (s *Server) resolveGuestSession(ctx echo.Context) (kernel.UUID, error) {
	credential := bearerToken(ctx)
	if credential == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError("credential")
	}
	return s.signer.Verify(credential)
}

// resolveActor builds the fulfillment actor from gateway headers.
func resolveActor(ctx echo.Context) (kernel.Actor, error) {
	actorID, err := kernel.UUIDFromString(ctx.Request().Header.Get(headerActorID))
	if err != nil {
		return kernel.Actor{}, errs.NewValueIsInvalidErrorWithCause("actor id", err)
	}

	role, err := kernel.RoleFromString(ctx.Request().Header.Get(headerActorRole))
	if err != nil {
		return kernel.Actor{}, err
	}

	return kernel.NewActor(actorID, role)
}

func bearerToken(ctx echo.Context) string {
	auth := ctx.Request().Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return strings.TrimPrefix(auth, prefix)
}
