package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCartQueryHandler reads an owner's cart straight from the database.
type GetCartQueryHandler struct {
	db *gorm.DB
}

// NewGetCartQueryHandler creates a handler for cart reads.
func NewGetCartQueryHandler(db *gorm.DB) GetCartQueryHandler {
	return GetCartQueryHandler{db: db}
}

type cartLineRow struct {
	ProductID string    `json:"product_id"`
	StoreID   string    `json:"store_id"`
	CatalogID *string   `json:"catalog_id,omitempty"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

// Handle fetches the cart row for the owner and decodes its lines.
// Returns an ObjectNotFound error when the owner has no cart.
func (h GetCartQueryHandler) Handle(ctx context.Context, query GetCartQuery) (GetCartQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCartQueryResponse{}, err
	}

	var (
		id        uuid.UUID
		linesJSON []byte
		updatedAt time.Time
		expiresAt sql.NullTime
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			lines,
			updated_at,
			expires_at
		FROM carts
		WHERE owner_kind = ? AND owner_id = ?
	`, query.Owner().Kind().String(), query.Owner().ID().String()).Row()

	err := row.Scan(&id, &linesJSON, &updatedAt, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetCartQueryResponse{}, errs.NewObjectNotFoundError("cart", query.Owner().String())
		}
		return GetCartQueryResponse{}, err
	}

	cartID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetCartQueryResponse{}, err
	}

	var rows []cartLineRow
	if len(linesJSON) > 0 {
		if err = json.Unmarshal(linesJSON, &rows); err != nil {
			return GetCartQueryResponse{}, err
		}
	}

	lines := make([]GetCartQueryLineResponse, 0, len(rows))
	for _, r := range rows {
		line, lineErr := h.toLineResponse(r)
		if lineErr != nil {
			return GetCartQueryResponse{}, lineErr
		}
		lines = append(lines, line)
	}

	resp := GetCartQueryResponse{
		ID:        cartID,
		Lines:     lines,
		UpdatedAt: updatedAt,
	}
	if expiresAt.Valid {
		t := expiresAt.Time
		resp.ExpiresAt = &t
	}

	return resp, nil
}

func (h GetCartQueryHandler) toLineResponse(r cartLineRow) (GetCartQueryLineResponse, error) {
	productID, err := kernel.UUIDFromString(r.ProductID)
	if err != nil {
		return GetCartQueryLineResponse{}, err
	}

	storeID, err := kernel.UUIDFromString(r.StoreID)
	if err != nil {
		return GetCartQueryLineResponse{}, err
	}

	line := GetCartQueryLineResponse{
		ProductID: productID,
		StoreID:   storeID,
		Quantity:  r.Quantity,
		AddedAt:   r.AddedAt,
	}

	if r.CatalogID != nil {
		catalogID, catErr := kernel.UUIDFromString(*r.CatalogID)
		if catErr != nil {
			return GetCartQueryLineResponse{}, catErr
		}
		line.CatalogID = &catalogID
	}

	return line, nil
}
