// Package jwtcreds implements the guest credential port as HS256-signed JWTs.
// The credential carries the session id and expiry; the session row in the
// database stays the source of truth, so revocation is a delete, not a token
// blacklist.
package jwtcreds

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
)

const guestRole = "guest"

// Signer issues and verifies guest session credentials.
type Signer struct {
	secret []byte
}

// NewSigner creates a credential signer from a shared secret.
func NewSigner(secret string) (*Signer, error) {
	if secret == "" {
		return nil, errs.NewValueIsRequiredError("secret")
	}
	return &Signer{secret: []byte(secret)}, nil
}

// Sign issues a credential for the session, expiring with it.
func (s *Signer) Sign(sessionID kernel.UUID, expiresAt time.Time) (string, error) {
	if err := sessionID.Validate(); err != nil {
		return "", err
	}
	if expiresAt.IsZero() {
		return "", errs.NewValueIsRequiredError("expiresAt")
	}

	claims := jwt.MapClaims{
		"session_id": sessionID.String(),
		"role":       guestRole,
		"exp":        expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses a credential and returns the session id it was issued for.
// Expired or tampered credentials unwrap to the Expired sentinel so handlers
// can map them to a fresh-session response instead of a generic failure.
func (s *Signer) Verify(credential string) (kernel.UUID, error) {
	if credential == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError("credential")
	}

	parsed, err := jwt.Parse(credential, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return kernel.UUID{}, errs.NewExpiredErrorWithCause("credential", "", err)
		}
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("credential", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return kernel.UUID{}, errs.NewValueIsInvalidError("credential claims")
	}

	role, _ := claims["role"].(string)
	if role != guestRole {
		return kernel.UUID{}, errs.NewValueIsInvalidError("credential role")
	}

	rawID, _ := claims["session_id"].(string)
	sessionID, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("credential session id", err)
	}

	return sessionID, nil
}
