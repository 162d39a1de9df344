package queries

import (
	"context"
	"encoding/json"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAvailableOrdersQueryHandler retrieves the offer pool for a driver from
// the database. Only prepared takeout orders qualify, and the driver must not
// be in the order's exclusion set.
type GetAvailableOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableOrdersQueryHandler creates a handler for offer pool reads.
func NewGetAvailableOrdersQueryHandler(db *gorm.DB) GetAvailableOrdersQueryHandler {
	return GetAvailableOrdersQueryHandler{db: db}
}

// Handle executes the offer pool query, oldest order first.
func (h GetAvailableOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableOrdersQuery,
) ([]GetAvailableOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	// The exclusion set is stored as a JSONB array of driver ids.
	excluded, err := json.Marshal([]string{query.DriverID().String()})
	if err != nil {
		return nil, err
	}

	orders := make([]GetAvailableOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			store_id,
			amount_cents,
			placed_at
		FROM orders
		WHERE status = ?
		  AND is_takeout
		  AND NOT (excluded_drivers @> ?)
		ORDER BY placed_at
	`, order.Prepared.String(), string(excluded)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id          uuid.UUID
			storeID     uuid.UUID
			amountCents int64
			placedAt    time.Time
		)

		if err = rows.Scan(&id, &storeID, &amountCents, &placedAt); err != nil {
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

		orders = append(orders, GetAvailableOrdersQueryResponse{
			ID:          orderID,
			StoreID:     store,
			AmountCents: amountCents,
			PlacedAt:    placedAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
