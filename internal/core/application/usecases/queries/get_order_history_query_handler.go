package queries

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderHistoryQueryHandler lists an owner's orders, newest first.
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderHistoryQueryHandler creates a handler for order history reads.
func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle executes the history query.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetOrderHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			store_id,
			status,
			amount_cents,
			is_takeout,
			is_active,
			placed_at
		FROM orders
		WHERE customer_kind = ? AND customer_id = ?
		ORDER BY placed_at DESC
	`, query.Owner().Kind().String(), query.Owner().ID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id          uuid.UUID
			storeID     uuid.UUID
			status      string
			amountCents int64
			isTakeout   bool
			isActive    bool
			placedAt    time.Time
		)

		err = rows.Scan(&id, &storeID, &status, &amountCents, &isTakeout, &isActive, &placedAt)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		store, storeErr := kernel.UUIDFromBytes(storeID[:])
		if storeErr != nil {
			return nil, storeErr
		}

		orders = append(orders, GetOrderHistoryQueryResponse{
			ID:          orderID,
			StoreID:     store,
			Status:      status,
			AmountCents: amountCents,
			IsTakeout:   isTakeout,
			IsActive:    isActive,
			PlacedAt:    placedAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
