package session

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

const (
	// MinExtensionHours and MaxExtensionHours bound a single expiry extension.
	MinExtensionHours = 1
	MaxExtensionHours = 168
)

var ErrSessionIsNotConstructed = errs.NewValueIsRequiredErrorWithCause("session",
	guard.ErrDefaultConstructorGuard)

// Session is an anonymous identity with a sliding expiry. Each session is
// bound 1:1 to a guest cart; once migrated into an authenticated account the
// session is marked consumed and never reactivated.
type Session struct {
	guard.ConstructorGuard

	id           kernel.UUID
	userAgent    string
	remoteAddr   string
	createdAt    time.Time
	lastActiveAt time.Time
	expiresAt    time.Time
	consumed     bool
}

// Metadata carries request attributes recorded at creation time.
type Metadata struct {
	UserAgent  string
	RemoteAddr string
}

func NewSession(id kernel.UUID, meta Metadata, now time.Time, ttl time.Duration) (*Session, error) {
	if err := id.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("id", err)
	}
	if ttl <= 0 {
		return nil, errs.NewValueIsInvalidError("ttl must be positive")
	}

	return &Session{
		ConstructorGuard: guard.NewConstructorGuard(),

		id:           id,
		userAgent:    meta.UserAgent,
		remoteAddr:   meta.RemoteAddr,
		createdAt:    now,
		lastActiveAt: now,
		expiresAt:    now.Add(ttl),
	}, nil
}

// RestoreSessionParams rebuilds a Session from persistence.
type RestoreSessionParams struct {
	ID           kernel.UUID
	UserAgent    string
	RemoteAddr   string
	CreatedAt    time.Time
	LastActiveAt time.Time
	ExpiresAt    time.Time
	Consumed     bool
}

func RestoreSession(p RestoreSessionParams) (*Session, error) {
	if err := p.ID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("ID", err)
	}

	return &Session{
		ConstructorGuard: guard.NewConstructorGuard(),

		id:           p.ID,
		userAgent:    p.UserAgent,
		remoteAddr:   p.RemoteAddr,
		createdAt:    p.CreatedAt,
		lastActiveAt: p.LastActiveAt,
		expiresAt:    p.ExpiresAt,
		consumed:     p.Consumed,
	}, nil
}

func (s *Session) Validate() error {
	return s.ConstructorGuard.Validate(ErrSessionIsNotConstructed)
}

func (s *Session) ID() kernel.UUID { return s.id }

func (s *Session) UserAgent() string { return s.userAgent }

func (s *Session) RemoteAddr() string { return s.remoteAddr }

func (s *Session) CreatedAt() time.Time { return s.createdAt }

func (s *Session) LastActiveAt() time.Time { return s.lastActiveAt }

func (s *Session) ExpiresAt() time.Time { return s.expiresAt }

func (s *Session) IsConsumed() bool { return s.consumed }

// IsExpired is a time predicate, not a stored state.
func (s *Session) IsExpired(now time.Time) bool {
	return now.After(s.expiresAt)
}

// IsActive reports whether the session may still be used: not consumed and
// not past its expiry.
func (s *Session) IsActive(now time.Time) bool {
	return !s.consumed && !s.IsExpired(now)
}

// Owner returns the guest cart owner identity this session represents.
func (s *Session) Owner() (kernel.Owner, error) {
	return kernel.NewGuestOwner(s.id)
}

// Touch records activity without moving the expiry.
func (s *Session) Touch(now time.Time) {
	s.lastActiveAt = now
}

// Extend pushes the expiry forward by the given number of hours from now.
// Extending never shortens an expiry that is already further out.
func (s *Session) Extend(hours int, now time.Time) error {
	if s.consumed {
		return errs.NewExpiredError("session", s.id.String())
	}
	if s.IsExpired(now) {
		return errs.NewExpiredError("session", s.id.String())
	}
	if hours < MinExtensionHours || hours > MaxExtensionHours {
		return errs.NewValueIsOutOfRangeError("hours", hours, MinExtensionHours, MaxExtensionHours)
	}

	candidate := now.Add(time.Duration(hours) * time.Hour)
	if candidate.After(s.expiresAt) {
		s.expiresAt = candidate
	}
	s.lastActiveAt = now
	return nil
}

// MarkConsumed retires the session after its cart has been merged into an
// authenticated account. Idempotent.
func (s *Session) MarkConsumed(now time.Time) {
	s.consumed = true
	s.lastActiveAt = now
}
