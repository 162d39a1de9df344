package ports

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
)

// CredentialSigner issues and verifies self-contained guest credentials.
// A credential encodes the session identifier and its expiry and is
// signature-checked before any registry lookup.
type CredentialSigner interface {
	// Sign produces a credential for the given session.
	Sign(sessionID kernel.UUID, expiresAt time.Time) (string, error)

	// Verify checks the credential's signature and expiry and extracts the
	// session identifier. Tampered, malformed or expired credentials return
	// an error.
	Verify(credential string) (kernel.UUID, error)
}
