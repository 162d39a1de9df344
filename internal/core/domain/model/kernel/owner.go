package kernel

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// ErrOwnerIsNotConstructed is returned when validating a zero-value Owner.
var ErrOwnerIsNotConstructed = errs.NewValueIsRequiredError(
	"Owner must be created via NewUserOwner or NewGuestOwner")

// OwnerKind discriminates the two identities that can own a cart or an order:
// an authenticated user or an anonymous guest session.
type OwnerKind int

const (
	// OwnerKindUnknown is the invalid zero value.
	OwnerKindUnknown OwnerKind = iota

	// OwnerKindUser marks ownership by an authenticated user id.
	OwnerKindUser

	// OwnerKindGuest marks ownership by an anonymous guest session id.
	OwnerKindGuest
)

// String returns the persistence/display name of the kind.
func (k OwnerKind) String() string {
	switch k {
	case OwnerKindUser:
		return "User"
	case OwnerKindGuest:
		return "Guest"
	default:
		return "Unknown"
	}
}

// OwnerKindFromString parses a persisted kind name.
func OwnerKindFromString(v string) (OwnerKind, error) {
	switch v {
	case "User":
		return OwnerKindUser, nil
	case "Guest":
		return OwnerKindGuest, nil
	default:
		return OwnerKindUnknown, errs.NewValueIsInvalidErrorWithCause("ownerKind",
			fmt.Errorf("%q is not a valid owner kind", v))
	}
}

// RestoreOwner rebuilds an Owner from its persisted kind and identity.
func RestoreOwner(kind OwnerKind, id UUID) (Owner, error) {
	switch kind {
	case OwnerKindUser:
		return NewUserOwner(id)
	case OwnerKindGuest:
		return NewGuestOwner(id)
	default:
		return Owner{}, ErrOwnerIsNotConstructed
	}
}

// Owner is a tagged union over {authenticated-user-id, guest-session-id}.
// Exactly one identity is set; carts and orders never carry both.
//
// Example:
//
//	owner, _ := kernel.NewGuestOwner(sessionID)
//	if owner.IsGuest() {
//	    // anonymous cart: TTL applies
//	}
type Owner struct {
	kind OwnerKind
	id   UUID
}

// NewUserOwner creates an Owner for an authenticated user id.
func NewUserOwner(userID UUID) (Owner, error) {
	if err := userID.Validate(); err != nil {
		return Owner{}, err
	}
	return Owner{kind: OwnerKindUser, id: userID}, nil
}

// NewGuestOwner creates an Owner for an anonymous guest session id.
func NewGuestOwner(sessionID UUID) (Owner, error) {
	if err := sessionID.Validate(); err != nil {
		return Owner{}, err
	}
	return Owner{kind: OwnerKindGuest, id: sessionID}, nil
}

// Kind returns the discriminator of the union.
func (o Owner) Kind() OwnerKind {
	return o.kind
}

// ID returns the owning identity: user id for user owners,
// session id for guest owners.
func (o Owner) ID() UUID {
	return o.id
}

// IsUser reports whether the owner is an authenticated user.
func (o Owner) IsUser() bool {
	return o.kind == OwnerKindUser
}

// IsGuest reports whether the owner is an anonymous guest session.
func (o Owner) IsGuest() bool {
	return o.kind == OwnerKindGuest
}

// IsEqual reports whether two owners name the same identity.
func (o Owner) IsEqual(other Owner) bool {
	return o.kind == other.kind && o.id.IsEqual(other.id)
}

// String renders the owner as "Kind:uuid" for logging.
func (o Owner) String() string {
	return fmt.Sprintf("%s:%s", o.kind, o.id)
}

// Validate returns ErrOwnerIsNotConstructed for a zero-value Owner.
func (o Owner) Validate() error {
	if o.kind != OwnerKindUser && o.kind != OwnerKindGuest {
		return ErrOwnerIsNotConstructed
	}
	return o.id.Validate()
}
