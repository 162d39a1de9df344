package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/session"
)

// SessionRepository defines the persistence contract for guest sessions.
type SessionRepository interface {
	// Add persists a new session to storage.
	Add(ctx context.Context, aggregate *session.Session) error

	// Update persists changes to an existing session.
	Update(ctx context.Context, aggregate *session.Session) error

	// Get retrieves a session by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*session.Session, error)

	// FindExpired returns up to limit sessions that expired, were consumed,
	// or went inactive before the cutoff. Used by the cleanup sweeper.
	FindExpired(ctx context.Context, cutoff time.Time, limit int) ([]*session.Session, error)

	// Delete removes a session. Deleting an already removed session is not
	// an error, so concurrent sweeps stay idempotent.
	Delete(ctx context.Context, id kernel.UUID) error
}
