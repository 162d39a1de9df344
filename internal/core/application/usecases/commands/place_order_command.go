package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// RequestedItem is one product/quantity pair of a placement request.
type RequestedItem struct {
	ProductID kernel.UUID
	Quantity  int
}

// PlaceOrderCommand represents a request to turn reserved cart lines into an
// order against a single store. Every requested item must exactly match a
// line already in the owner's cart; placement never invents quantities the
// cart did not hold.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand(kernel.NewUUID(), owner, storeID, items, true)
//	if err != nil {
//	    return fmt.Errorf("invalid placement request: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrConflict) {
//	    // a concurrent placement took the last stock
//	}
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	owner     kernel.Owner
	storeID   kernel.UUID
	items     []RequestedItem
	isTakeout bool

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to place an order.
// The item list must be non-empty with positive quantities.
func NewPlaceOrderCommand(
	orderID kernel.UUID,
	owner kernel.Owner,
	storeID kernel.UUID,
	items []RequestedItem,
	isTakeout bool,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),

		isTakeout: isTakeout,
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOwner(owner),
		cmd.setStoreID(storeID),
		cmd.setItems(items),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will be created under.
func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Owner returns the identity placing the order.
func (c PlaceOrderCommand) Owner() kernel.Owner {
	return c.owner
}

// StoreID returns the store the order targets.
func (c PlaceOrderCommand) StoreID() kernel.UUID {
	return c.storeID
}

// Items returns the requested product/quantity pairs.
func (c PlaceOrderCommand) Items() []RequestedItem {
	return append([]RequestedItem(nil), c.items...)
}

// IsTakeout reports whether the order needs a driver.
func (c PlaceOrderCommand) IsTakeout() bool {
	return c.isTakeout
}

func (c *PlaceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}

	c.orderID = orderID
	return nil
}

func (c *PlaceOrderCommand) setOwner(owner kernel.Owner) error {
	if err := owner.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("owner", err)
	}

	c.owner = owner
	return nil
}

func (c *PlaceOrderCommand) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("storeID", err)
	}

	c.storeID = storeID
	return nil
}

func (c *PlaceOrderCommand) setItems(items []RequestedItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for _, item := range items {
		if err := item.ProductID.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause("items.productID", err)
		}
		if item.Quantity < 1 || item.Quantity > maxCartLineQuantity {
			return errs.NewValueIsOutOfRangeError("items.quantity", item.Quantity, 1, maxCartLineQuantity)
		}
	}

	c.items = append([]RequestedItem(nil), items...)
	return nil
}
