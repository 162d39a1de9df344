package order

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when using an improperly initialized Item.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a line of an order, snapshotted at placement time. It copies the
// product's identity, display name, unit price, and the ordered quantity, so
// later catalog changes never retroactively alter order history.
type Item struct {
	productID kernel.UUID
	name      string
	price     kernel.Money
	quantity  int

	guard guard.ConstructorGuard
}

// NewItem creates an order line snapshot.
// Quantity must be at least 1; the price is the unit price at placement time.
func NewItem(productID kernel.UUID, name string, price kernel.Money, quantity int) (Item, error) {
	item := Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setProductID(productID),
		item.setName(name),
		item.setQuantity(quantity),
	); err != nil {
		return Item{}, err
	}

	item.price = price
	return item, nil
}

// Validate ensures the item was created through NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ProductID returns the snapshotted product identity.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// Name returns the snapshotted product display name.
func (i Item) Name() string {
	return i.name
}

// Price returns the snapshotted unit price.
func (i Item) Price() kernel.Money {
	return i.price
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// Subtotal returns price multiplied by quantity.
func (i Item) Subtotal() (kernel.Money, error) {
	return i.price.MulQuantity(i.quantity)
}

func (i *Item) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	i.productID = productID
	return nil
}

func (i *Item) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	i.name = name
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("item quantity", quantity, 1, maxItemQuantity)
	}
	if quantity > maxItemQuantity {
		return errs.NewValueIsOutOfRangeError("item quantity", quantity, 1, maxItemQuantity)
	}
	i.quantity = quantity
	return nil
}

// maxItemQuantity bounds a single order line.
const maxItemQuantity = 1000
