package cart

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrLineIsNotConstructed is returned when using an improperly initialized Line.
var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")

// maxLineQuantity bounds a single cart line.
const maxLineQuantity = 1000

// Line is one pending item in a cart: a product of a store, optionally
// scoped to a catalog, with the reserved quantity. The cart holds at most
// one line per (product, catalog) pair.
type Line struct {
	productID kernel.UUID
	storeID   kernel.UUID
	catalogID *kernel.UUID
	quantity  int
	addedAt   time.Time

	guard guard.ConstructorGuard
}

// NewLine creates a cart line. catalogID may be nil for products listed
// outside any catalog.
func NewLine(
	productID kernel.UUID,
	storeID kernel.UUID,
	catalogID *kernel.UUID,
	quantity int,
	addedAt time.Time,
) (Line, error) {
	line := Line{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		line.setProductID(productID),
		line.setStoreID(storeID),
		line.setCatalogID(catalogID),
		line.setQuantity(quantity),
		line.setAddedAt(addedAt),
	); err != nil {
		return Line{}, err
	}

	return line, nil
}

// Validate ensures the line was created through NewLine.
func (l Line) Validate() error {
	return l.guard.Validate(ErrLineIsNotConstructed)
}

// ProductID returns the product this line reserves.
func (l Line) ProductID() kernel.UUID { return l.productID }

// StoreID returns the store selling the product.
func (l Line) StoreID() kernel.UUID { return l.storeID }

// CatalogID returns the optional catalog scope, nil if unscoped.
func (l Line) CatalogID() *kernel.UUID { return l.catalogID }

// Quantity returns the reserved quantity.
func (l Line) Quantity() int { return l.quantity }

// AddedAt returns when the line first entered the cart.
func (l Line) AddedAt() time.Time { return l.addedAt }

// MatchesKey reports whether this line occupies the (product, catalog) slot.
func (l Line) MatchesKey(productID kernel.UUID, catalogID *kernel.UUID) bool {
	if !l.productID.IsEqual(productID) {
		return false
	}
	if l.catalogID == nil || catalogID == nil {
		return l.catalogID == nil && catalogID == nil
	}
	return l.catalogID.IsEqual(*catalogID)
}

func (l *Line) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	l.productID = productID
	return nil
}

func (l *Line) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}
	l.storeID = storeID
	return nil
}

func (l *Line) setCatalogID(catalogID *kernel.UUID) error {
	if catalogID == nil {
		return nil
	}
	if err := catalogID.Validate(); err != nil {
		return err
	}
	id := *catalogID
	l.catalogID = &id
	return nil
}

func (l *Line) setQuantity(quantity int) error {
	if quantity < 1 || quantity > maxLineQuantity {
		return errs.NewValueIsOutOfRangeError("line quantity", quantity, 1, maxLineQuantity)
	}
	l.quantity = quantity
	return nil
}

func (l *Line) setAddedAt(addedAt time.Time) error {
	if addedAt.IsZero() {
		return errs.NewValueIsRequiredError("addedAt")
	}
	l.addedAt = addedAt
	return nil
}
