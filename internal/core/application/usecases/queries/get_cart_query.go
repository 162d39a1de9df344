// Package queries contains read-only operations in the CQRS architecture.
// Query handlers read the persistent store directly and return read models;
// they never mutate state.
package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrGetCartQueryIsNotConstructed = errors.New(
	"GetCartQuery must be created via NewGetCartQuery constructor",
)

// GetCartQuery retrieves the current contents of an owner's cart.
type GetCartQuery struct {
	owner kernel.Owner

	guard guard.ConstructorGuard
}

// NewGetCartQuery creates a query for an owner's cart.
func NewGetCartQuery(owner kernel.Owner) (GetCartQuery, error) {
	if err := owner.Validate(); err != nil {
		return GetCartQuery{}, errs.NewValueIsRequiredErrorWithCause("owner", err)
	}

	return GetCartQuery{
		guard: guard.NewConstructorGuard(),
		owner: owner,
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCartQuery) Validate() error {
	return q.guard.Validate(ErrGetCartQueryIsNotConstructed)
}

// Owner returns the cart owner identity.
func (q GetCartQuery) Owner() kernel.Owner {
	return q.owner
}

// GetCartQueryLineResponse is one line of the cart read model.
type GetCartQueryLineResponse struct {
	ProductID kernel.UUID
	StoreID   kernel.UUID
	CatalogID *kernel.UUID
	Quantity  int
	AddedAt   time.Time
}

// GetCartQueryResponse is the cart read model.
type GetCartQueryResponse struct {
	ID        kernel.UUID
	Lines     []GetCartQueryLineResponse
	UpdatedAt time.Time
	ExpiresAt *time.Time
}
