package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
	"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
)

// GetOrderHistoryQuery lists an owner's past and active orders. Guest orders
// stay attributed to their original session identity, so a migrated user
// queries their guest history with the guest owner.
type GetOrderHistoryQuery struct {
	owner kernel.Owner

	guard guard.ConstructorGuard
}

// NewGetOrderHistoryQuery creates a query for an owner's order history.
func NewGetOrderHistoryQuery(owner kernel.Owner) (GetOrderHistoryQuery, error) {
	if err := owner.Validate(); err != nil {
		return GetOrderHistoryQuery{}, errs.NewValueIsRequiredErrorWithCause("owner", err)
	}

	return GetOrderHistoryQuery{
		guard: guard.NewConstructorGuard(),
		owner: owner,
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

// Owner returns the identity whose orders are listed.
func (q GetOrderHistoryQuery) Owner() kernel.Owner {
	return q.owner
}

// GetOrderHistoryQueryResponse is one order of the history read model.
type GetOrderHistoryQueryResponse struct {
	ID          kernel.UUID
	StoreID     kernel.UUID
	Status      string
	AmountCents int64
	IsTakeout   bool
	IsActive    bool
	PlacedAt    time.Time
}
