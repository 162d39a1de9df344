package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrGetAvailableOrdersQueryIsNotConstructed = errors.New(
	"GetAvailableOrdersQuery must be created via NewGetAvailableOrdersQuery constructor",
)

// GetAvailableOrdersQuery lists prepared takeout orders a driver may claim.
// Orders the driver has declined never come back: the exclusion set filters
// them out permanently.
type GetAvailableOrdersQuery struct {
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAvailableOrdersQuery creates a query for a driver's offer pool.
func NewGetAvailableOrdersQuery(driverID kernel.UUID) (GetAvailableOrdersQuery, error) {
	if err := driverID.Validate(); err != nil {
		return GetAvailableOrdersQuery{}, errs.NewValueIsRequiredErrorWithCause("driverID", err)
	}

	return GetAvailableOrdersQuery{
		guard:    guard.NewConstructorGuard(),
		driverID: driverID,
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableOrdersQueryIsNotConstructed)
}

// DriverID returns the driver asking for offers.
func (q GetAvailableOrdersQuery) DriverID() kernel.UUID {
	return q.driverID
}

// GetAvailableOrdersQueryResponse is one claimable order.
type GetAvailableOrdersQueryResponse struct {
	ID          kernel.UUID
	StoreID     kernel.UUID
	AmountCents int64
	PlacedAt    time.Time
}
