package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateCartLineCommandIsNotConstructed = errors.New(
	"UpdateCartLineCommand must be created via NewUpdateCartLineCommand constructor",
)

// UpdateCartLineCommand represents a request to set the quantity of an
// existing cart line. Removal goes through RemoveCartLineCommand; a quantity
// of zero is rejected rather than treated as an implicit delete.
type UpdateCartLineCommand struct { //nolint:recvcheck //using for validation
	owner     kernel.Owner
	productID kernel.UUID
	catalogID *kernel.UUID
	quantity  int

	guard guard.ConstructorGuard
}

// NewUpdateCartLineCommand creates a command to change a cart line quantity.
func NewUpdateCartLineCommand(
	owner kernel.Owner,
	productID kernel.UUID,
	catalogID *kernel.UUID,
	quantity int,
) (UpdateCartLineCommand, error) {
	cmd := UpdateCartLineCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOwner(owner),
		cmd.setProductID(productID),
		cmd.setCatalogID(catalogID),
		cmd.setQuantity(quantity),
	); err != nil {
		return UpdateCartLineCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateCartLineCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCartLineCommandIsNotConstructed)
}

// Owner returns the cart owner identity.
func (c UpdateCartLineCommand) Owner() kernel.Owner {
	return c.owner
}

// ProductID returns the product whose line is updated.
func (c UpdateCartLineCommand) ProductID() kernel.UUID {
	return c.productID
}

// CatalogID returns the optional catalog entry scope.
func (c UpdateCartLineCommand) CatalogID() *kernel.UUID {
	return c.catalogID
}

// Quantity returns the new quantity.
func (c UpdateCartLineCommand) Quantity() int {
	return c.quantity
}

func (c *UpdateCartLineCommand) setOwner(owner kernel.Owner) error {
	if err := owner.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("owner", err)
	}

	c.owner = owner
	return nil
}

func (c *UpdateCartLineCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("productID", err)
	}

	c.productID = productID
	return nil
}

func (c *UpdateCartLineCommand) setCatalogID(catalogID *kernel.UUID) error {
	if catalogID == nil {
		return nil
	}
	if err := catalogID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("catalogID", err)
	}

	id := *catalogID
	c.catalogID = &id
	return nil
}

func (c *UpdateCartLineCommand) setQuantity(quantity int) error {
	if quantity < 1 || quantity > maxCartLineQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, maxCartLineQuantity)
	}

	c.quantity = quantity
	return nil
}
