package http

import "time"

type sessionResponse struct {
	SessionID  string    `json:"session_id"`
	CartID     string    `json:"cart_id"`
	Credential string    `json:"credential"`
	ExpiresAt  time.Time `json:"expires_at"`
}

type extendSessionRequest struct {
	Hours int `json:"hours"`
}

type extendSessionResponse struct {
	Credential string    `json:"credential"`
	ExpiresAt  time.Time `json:"expires_at"`
}

type migrationResponse struct {
	CartID      string `json:"cart_id"`
	MergedLines int    `json:"merged_lines"`
	AlreadyDone bool   `json:"already_done"`
}

type addCartLineRequest struct {
	ProductID string  `json:"product_id"`
	CatalogID *string `json:"catalog_id,omitempty"`
	Quantity  int     `json:"quantity"`
}

type updateCartLineRequest struct {
	CatalogID *string `json:"catalog_id,omitempty"`
	Quantity  int     `json:"quantity"`
}

type cartLineResponse struct {
	ProductID string    `json:"product_id"`
	StoreID   string    `json:"store_id"`
	CatalogID *string   `json:"catalog_id,omitempty"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

type cartResponse struct {
	ID        string             `json:"id"`
	Lines     []cartLineResponse `json:"lines"`
	UpdatedAt time.Time          `json:"updated_at"`
	ExpiresAt *time.Time         `json:"expires_at,omitempty"`
}

type placeOrderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type placeOrderRequest struct {
	StoreID   string                  `json:"store_id"`
	Items     []placeOrderItemRequest `json:"items"`
	IsTakeout bool                    `json:"is_takeout"`
}

type placeOrderResponse struct {
	OrderID     string `json:"order_id"`
	AmountCents int64  `json:"amount_cents"`
	Status      string `json:"status"`
}

type transitionRequest struct {
	Target string `json:"target"`
}

type adjustEstimateRequest struct {
	Stage string    `json:"stage"`
	At    time.Time `json:"at"`
}

type availableOrderResponse struct {
	OrderID     string    `json:"order_id"`
	StoreID     string    `json:"store_id"`
	AmountCents int64     `json:"amount_cents"`
	PlacedAt    time.Time `json:"placed_at"`
}

type stageProgressResponse struct {
	Percent     int `json:"percent"`
	MinutesLeft int `json:"minutes_left"`
}

type orderProgressResponse struct {
	OrderID     string                `json:"order_id"`
	Status      string                `json:"status"`
	Preparation stageProgressResponse `json:"preparation"`
	Pickup      stageProgressResponse `json:"pickup"`
	Delivery    stageProgressResponse `json:"delivery"`
}

type orderHistoryItemResponse struct {
	OrderID     string    `json:"order_id"`
	StoreID     string    `json:"store_id"`
	Status      string    `json:"status"`
	AmountCents int64     `json:"amount_cents"`
	IsTakeout   bool      `json:"is_takeout"`
	IsActive    bool      `json:"is_active"`
	PlacedAt    time.Time `json:"placed_at"`
}
