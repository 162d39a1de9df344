package productrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormProductCatalog implements ProductCatalog using GORM.
type GormProductCatalog struct {
	db *gorm.DB
}

// NewGormProductCatalog creates a new GORM product catalog.
func NewGormProductCatalog(db *gorm.DB) *GormProductCatalog {
	return &GormProductCatalog{db: db}
}

// Lookup retrieves a product by ID.
func (r *GormProductCatalog) Lookup(ctx context.Context, id kernel.UUID) (ports.Product, error) {
	if err := id.Validate(); err != nil {
		return ports.Product{}, err
	}

	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Product{}, errs.NewObjectNotFoundError("product", id.String())
		}
		return ports.Product{}, err
	}

	return toPort(dto)
}

// DecrementStock atomically reduces a product's stock. The stock predicate
// rides on the UPDATE itself, so concurrent placements can never drive stock
// negative: the losing writer affects zero rows and reports a conflict.
func (r *GormProductCatalog) DecrementStock(ctx context.Context, id kernel.UUID, amount int) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if amount <= 0 {
		return errs.NewValueIsOutOfRangeError("amount", amount, 1, nil)
	}

	result := r.db.WithContext(ctx).Exec(
		"UPDATE products SET stock = stock - ?, updated_at = NOW() "+
			"WHERE id = ? AND available AND stock >= ?",
		amount, id.Bytes(), amount,
	)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConflictError("product stock " + id.String())
	}

	return nil
}

func toPort(dto ProductDTO) (ports.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.Product{}, err
	}

	storeID, err := kernel.UUIDFromBytes(dto.StoreID[:])
	if err != nil {
		return ports.Product{}, err
	}

	var catalogID *kernel.UUID
	if dto.CatalogID != nil {
		cID, catalogErr := kernel.UUIDFromBytes((*dto.CatalogID)[:])
		if catalogErr != nil {
			return ports.Product{}, catalogErr
		}
		catalogID = &cID
	}

	price, err := kernel.NewMoneyFromCents(dto.PriceCents)
	if err != nil {
		return ports.Product{}, err
	}

	return ports.Product{
		ID:        id,
		StoreID:   storeID,
		CatalogID: catalogID,
		Name:      dto.Name,
		Price:     price,
		Stock:     dto.Stock,
		Available: dto.Available,
	}, nil
}
