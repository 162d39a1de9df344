package ports

import (
	"context"
	"time"
)

// OrderPlacedEvent notifies downstream systems of a freshly placed order.
type OrderPlacedEvent struct {
	OrderID     string    `json:"order_id"`
	StoreID     string    `json:"store_id"`
	OwnerKind   string    `json:"owner_kind"`
	OwnerID     string    `json:"owner_id"`
	AmountCents int64     `json:"amount_cents"`
	IsTakeout   bool      `json:"is_takeout"`
	PlacedAt    time.Time `json:"placed_at"`
}

// OrderStatusChangedEvent notifies downstream systems of a fulfillment
// transition.
type OrderStatusChangedEvent struct {
	OrderID    string    `json:"order_id"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	ActorRole  string    `json:"actor_role"`
	OccurredAt time.Time `json:"occurred_at"`
}

// GuestMigratedEvent notifies downstream systems that a guest cart was
// folded into an authenticated account.
type GuestMigratedEvent struct {
	SessionID  string    `json:"session_id"`
	UserID     string    `json:"user_id"`
	CartID     string    `json:"cart_id"`
	LineCount  int       `json:"line_count"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher delivers domain events to the notification sink.
// Publishing is fire-and-forget with respect to business flows: a publish
// failure is logged by the caller and never fails the operation.
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event OrderPlacedEvent) error
	PublishOrderStatusChanged(ctx context.Context, event OrderStatusChangedEvent) error
	PublishGuestMigrated(ctx context.Context, event GuestMigratedEvent) error
}
