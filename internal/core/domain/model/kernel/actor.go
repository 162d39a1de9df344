package kernel

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// ErrActorIsNotConstructed is returned when validating a zero-value Actor.
var ErrActorIsNotConstructed = errs.NewValueIsRequiredError("Actor must be created via NewActor")

// Role identifies the capability level of an actor in the marketplace.
type Role int

const (
	// RoleUnknown is the invalid zero value.
	RoleUnknown Role = iota

	// RoleGuest is an anonymous session identity; it may hold cart state and
	// place attributed orders but never drives fulfillment transitions.
	RoleGuest

	// RoleCustomer is an authenticated buyer.
	RoleCustomer

	// RoleStore is a seller account acting on its own orders.
	RoleStore

	// RoleDriver is a delivery driver account.
	RoleDriver

	// RoleAdmin may perform any transition a role-specific actor could,
	// bypassing ownership checks but never the transition graph.
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "Unknown",
		RoleGuest:    "Guest",
		RoleCustomer: "Customer",
		RoleStore:    "Store",
		RoleDriver:   "Driver",
		RoleAdmin:    "Admin",
	}
}

// RoleFromString parses a role name as stored in credentials and persistence.
func RoleFromString(s string) (Role, error) {
	for role, name := range getRoleStrings() {
		if role != RoleUnknown && name == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a valid role", s))
}

// String returns the human-readable name of the role.
func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "Unknown"
}

// Validate checks that the role is one of the defined non-zero values.
func (r Role) Validate() error {
	if _, ok := getRoleStrings()[r]; !ok || r == RoleUnknown {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// Actor is a resolved identity with its role, as produced by the identity
// provider. Fulfillment operations authorize against the acting identity and
// role together: the role must match the transition's defining role and the
// identity must equal the order's corresponding party, unless the role is admin.
type Actor struct {
	id   UUID
	role Role
}

// NewActor creates an Actor from a validated identity and role.
func NewActor(id UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role}, nil
}

// ID returns the actor's identity.
func (a Actor) ID() UUID {
	return a.id
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// IsAdmin reports whether the actor bypasses ownership checks.
func (a Actor) IsAdmin() bool {
	return a.role == RoleAdmin
}

// Validate returns ErrActorIsNotConstructed for a zero-value Actor.
func (a Actor) Validate() error {
	if a.role == RoleUnknown {
		return ErrActorIsNotConstructed
	}
	return a.id.Validate()
}
