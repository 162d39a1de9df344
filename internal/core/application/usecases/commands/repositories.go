// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends on the narrowest interface covering the aggregates it
// touches.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// CartRepoFactory provides access to the cart repository within a transaction.
	CartRepoFactory interface {
		CartRepository() ports.CartRepository
	}

	// SessionRepoFactory provides access to the session repository within a transaction.
	SessionRepoFactory interface {
		SessionRepository() ports.SessionRepository
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CatalogFactory provides access to the product catalog within a transaction.
	CatalogFactory interface {
		ProductCatalog() ports.ProductCatalog
	}

	// CartUoW manages transactions for cart-only operations.
	CartUoW interface {
		TxManager
		CartRepoFactory
	}

	// CartUoWFactory creates new cart unit of work instances.
	CartUoWFactory interface {
		Create() CartUoW
	}

	// CartCatalogUoW manages transactions for cart mutations that validate
	// quantities against the product catalog.
	CartCatalogUoW interface {
		TxManager
		CartRepoFactory
		CatalogFactory
	}

	// CartCatalogUoWFactory creates new cart+catalog unit of work instances.
	CartCatalogUoWFactory interface {
		Create() CartCatalogUoW
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CartSessionUoW manages transactions spanning a session and its cart.
	// Used by session issuance, extension, guest migration and the sweeper.
	CartSessionUoW interface {
		TxManager
		CartRepoFactory
		SessionRepoFactory
	}

	// CartSessionUoWFactory creates new session+cart unit of work instances.
	CartSessionUoWFactory interface {
		Create() CartSessionUoW
	}

	// PlacementUoW manages the order placement transaction: cart trim, stock
	// decrement and order insert commit or roll back as one unit.
	PlacementUoW interface {
		TxManager
		CartRepoFactory
		OrderRepoFactory
		CatalogFactory
	}

	// PlacementUoWFactory creates new placement unit of work instances.
	PlacementUoWFactory interface {
		Create() PlacementUoW
	}
)
