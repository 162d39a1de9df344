// Package cartrepo implements cart persistence on PostgreSQL. Cart lines are
// stored as a jsonb document inside the cart row, keeping the aggregate in a
// single row and the write path to a single statement.
package cartrepo

import (
	"encoding/json"
	"time"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CartDTO represents the database structure for persisting cart aggregates.
// One cart per owner is enforced with a unique index on (owner_kind, owner_id).
type CartDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerKind string    `gorm:"uniqueIndex:idx_carts_owner"`
	OwnerID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_carts_owner"`
	Lines     []byte    `gorm:"type:jsonb"`
	CreatedAt time.Time
	UpdatedAt time.Time
	ExpiresAt *time.Time `gorm:"index"`
}

// TableName specifies the database table name for cart entities.
func (CartDTO) TableName() string {
	return "carts"
}

// lineRow is the jsonb shape of a single cart line. The get cart query reads
// the same document, so the field names here and there must stay in sync.
type lineRow struct {
	ProductID string    `json:"product_id"`
	StoreID   string    `json:"store_id"`
	CatalogID *string   `json:"catalog_id"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

// fromDomain converts a cart aggregate to its database representation.
func fromDomain(aggregate *cart.Cart) (CartDTO, error) {
	lines := aggregate.Lines()
	rows := make([]lineRow, 0, len(lines))
	for _, line := range lines {
		row := lineRow{
			ProductID: line.ProductID().String(),
			StoreID:   line.StoreID().String(),
			Quantity:  line.Quantity(),
			AddedAt:   line.AddedAt(),
		}
		if catalogID := line.CatalogID(); catalogID != nil {
			s := catalogID.String()
			row.CatalogID = &s
		}
		rows = append(rows, row)
	}

	raw, err := json.Marshal(rows)
	if err != nil {
		return CartDTO{}, err
	}

	return CartDTO{
		ID:        aggregate.ID().Bytes(),
		OwnerKind: aggregate.Owner().Kind().String(),
		OwnerID:   aggregate.Owner().ID().Bytes(),
		Lines:     raw,
		CreatedAt: aggregate.CreatedAt(),
		UpdatedAt: aggregate.UpdatedAt(),
		ExpiresAt: aggregate.ExpiresAt(),
	}, nil
}

// toDomain converts a database DTO back to a cart aggregate.
func toDomain(dto CartDTO) (*cart.Cart, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	ownerKind, err := kernel.OwnerKindFromString(dto.OwnerKind)
	if err != nil {
		return nil, err
	}

	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	owner, err := kernel.RestoreOwner(ownerKind, ownerID)
	if err != nil {
		return nil, err
	}

	var rows []lineRow
	if len(dto.Lines) > 0 {
		if err = json.Unmarshal(dto.Lines, &rows); err != nil {
			return nil, err
		}
	}

	lines := make([]cart.Line, 0, len(rows))
	for _, row := range rows {
		line, lineErr := toDomainLine(row)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return cart.RestoreCart(cart.RestoreCartParams{
		ID:        id,
		Owner:     owner,
		Lines:     lines,
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
		ExpiresAt: dto.ExpiresAt,
	})
}

func toDomainLine(row lineRow) (cart.Line, error) {
	productID, err := kernel.UUIDFromString(row.ProductID)
	if err != nil {
		return cart.Line{}, err
	}

	storeID, err := kernel.UUIDFromString(row.StoreID)
	if err != nil {
		return cart.Line{}, err
	}

	var catalogID *kernel.UUID
	if row.CatalogID != nil {
		cID, catalogErr := kernel.UUIDFromString(*row.CatalogID)
		if catalogErr != nil {
			return cart.Line{}, catalogErr
		}
		catalogID = &cID
	}

	return cart.NewLine(productID, storeID, catalogID, row.Quantity, row.AddedAt)
}
