package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

// Product is a read model of a catalog entry at lookup time.
type Product struct {
	ID        kernel.UUID
	StoreID   kernel.UUID
	CatalogID *kernel.UUID
	Name      string
	Price     kernel.Money
	Stock     int
	Available bool
}

// ProductCatalog exposes the product data the placement flow depends on.
type ProductCatalog interface {
	// Lookup retrieves a product by its identifier. Returns an
	// ObjectNotFound error for unknown products.
	Lookup(ctx context.Context, id kernel.UUID) (Product, error)

	// DecrementStock atomically reduces a product's stock by amount.
	// Concurrent decrements must never drive stock negative: when the
	// remaining stock is insufficient or the product is unavailable, a
	// Conflict error is returned and nothing changes.
	DecrementStock(ctx context.Context, id kernel.UUID, amount int) error
}
