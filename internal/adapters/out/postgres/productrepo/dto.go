// Package productrepo implements the product catalog port on PostgreSQL.
// Products are a read model plus one atomic stock mutation, not a tracked
// aggregate, so the package has no mapper back into a domain type.
package productrepo

import (
	"time"

	"github.com/google/uuid"
)

// ProductDTO represents the database structure for catalog products.
type ProductDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	StoreID    uuid.UUID  `gorm:"type:uuid;index"`
	CatalogID  *uuid.UUID `gorm:"type:uuid;index"`
	Name       string
	PriceCents int64
	Stock      int
	Available  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}
