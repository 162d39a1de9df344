package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrGetOrderProgressQueryIsNotConstructed = errors.New(
	"GetOrderProgressQuery must be created via NewGetOrderProgressQuery constructor",
)

// GetOrderProgressQuery derives stage completion for an order.
// Progress is always recomputed at read time; nothing persisted is trusted.
type GetOrderProgressQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderProgressQuery creates a query for an order's progress.
func NewGetOrderProgressQuery(orderID kernel.UUID) (GetOrderProgressQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderProgressQuery{}, errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}

	return GetOrderProgressQuery{
		guard:   guard.NewConstructorGuard(),
		orderID: orderID,
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderProgressQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderProgressQueryIsNotConstructed)
}

// OrderID returns the order to report on.
func (q GetOrderProgressQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderProgressQueryResponse is the derived progress read model.
type GetOrderProgressQueryResponse struct {
	OrderID  kernel.UUID
	Status   string
	Progress services.Progress
}
