// Package sessionrepo implements guest session persistence on PostgreSQL.
package sessionrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/session"

	"github.com/google/uuid"
)

// SessionDTO represents the database structure for persisting guest sessions.
// Indexed on expires_at and last_active_at so the cleanup sweeper can find
// reapable rows without scanning the table.
type SessionDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserAgent    string
	RemoteAddr   string
	CreatedAt    time.Time
	LastActiveAt time.Time `gorm:"index"`
	ExpiresAt    time.Time `gorm:"index"`
	Consumed     bool
}

// TableName specifies the database table name for session entities.
func (SessionDTO) TableName() string {
	return "sessions"
}

// fromDomain converts a session aggregate to its database representation.
func fromDomain(aggregate *session.Session) SessionDTO {
	return SessionDTO{
		ID:           aggregate.ID().Bytes(),
		UserAgent:    aggregate.UserAgent(),
		RemoteAddr:   aggregate.RemoteAddr(),
		CreatedAt:    aggregate.CreatedAt(),
		LastActiveAt: aggregate.LastActiveAt(),
		ExpiresAt:    aggregate.ExpiresAt(),
		Consumed:     aggregate.IsConsumed(),
	}
}

// toDomain converts a database DTO back to a session aggregate.
func toDomain(dto SessionDTO) (*session.Session, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return session.RestoreSession(session.RestoreSessionParams{
		ID:           id,
		UserAgent:    dto.UserAgent,
		RemoteAddr:   dto.RemoteAddr,
		CreatedAt:    dto.CreatedAt,
		LastActiveAt: dto.LastActiveAt,
		ExpiresAt:    dto.ExpiresAt,
		Consumed:     dto.Consumed,
	})
}
