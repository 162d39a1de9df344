package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
)

// CartRepository defines the persistence contract for cart aggregates.
type CartRepository interface {
	// Add persists a new cart aggregate to storage.
	Add(ctx context.Context, aggregate *cart.Cart) error

	// Update persists changes to an existing cart aggregate.
	Update(ctx context.Context, aggregate *cart.Cart) error

	// Get retrieves a cart aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*cart.Cart, error)

	// GetByOwner retrieves the cart belonging to the given owner.
	// Returns an ObjectNotFound error when the owner has no cart yet.
	GetByOwner(ctx context.Context, owner kernel.Owner) (*cart.Cart, error)

	// Delete removes a cart. Deleting an already removed cart is not an
	// error, so concurrent sweeps stay idempotent.
	Delete(ctx context.Context, id kernel.UUID) error

	// FindOrphanedGuestCarts returns up to limit guest carts that expired
	// before the cutoff or whose session no longer exists.
	FindOrphanedGuestCarts(ctx context.Context, cutoff time.Time, limit int) ([]*cart.Cart, error)
}
