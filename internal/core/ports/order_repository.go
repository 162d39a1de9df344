package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateWithExpectedStatus persists changes to an order only while its
	// stored status is still one of the expected statuses. Returns a Conflict
	// error when a concurrent mutation moved the order out of the expected
	// set, leaving storage untouched.
	UpdateWithExpectedStatus(ctx context.Context, aggregate *order.Order, expected []order.Status) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
