package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrAddCartLineCommandIsNotConstructed = errors.New(
	"AddCartLineCommand must be created via NewAddCartLineCommand constructor",
)

const maxCartLineQuantity = 1000

// AddCartLineCommand represents a request to add a product to an owner's
// cart. Adding a product already present on a matching (product, catalog)
// line increments that line instead of appending a duplicate.
type AddCartLineCommand struct { //nolint:recvcheck //using for validation
	owner     kernel.Owner
	productID kernel.UUID
	catalogID *kernel.UUID
	quantity  int

	guard guard.ConstructorGuard
}

// NewAddCartLineCommand creates a command to add a cart line.
// CatalogID is optional and scopes the line to a specific catalog entry.
func NewAddCartLineCommand(
	owner kernel.Owner,
	productID kernel.UUID,
	catalogID *kernel.UUID,
	quantity int,
) (AddCartLineCommand, error) {
	cmd := AddCartLineCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOwner(owner),
		cmd.setProductID(productID),
		cmd.setCatalogID(catalogID),
		cmd.setQuantity(quantity),
	); err != nil {
		return AddCartLineCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddCartLineCommand) Validate() error {
	return c.guard.Validate(ErrAddCartLineCommandIsNotConstructed)
}

// Owner returns the cart owner identity.
func (c AddCartLineCommand) Owner() kernel.Owner {
	return c.owner
}

// ProductID returns the product to add.
func (c AddCartLineCommand) ProductID() kernel.UUID {
	return c.productID
}

// CatalogID returns the optional catalog entry scope.
func (c AddCartLineCommand) CatalogID() *kernel.UUID {
	return c.catalogID
}

// Quantity returns the number of units to add.
func (c AddCartLineCommand) Quantity() int {
	return c.quantity
}

func (c *AddCartLineCommand) setOwner(owner kernel.Owner) error {
	if err := owner.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("owner", err)
	}

	c.owner = owner
	return nil
}

func (c *AddCartLineCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("productID", err)
	}

	c.productID = productID
	return nil
}

func (c *AddCartLineCommand) setCatalogID(catalogID *kernel.UUID) error {
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

func (c *AddCartLineCommand) setQuantity(quantity int) error {
	if quantity < 1 || quantity > maxCartLineQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, maxCartLineQuantity)
	}

	c.quantity = quantity
	return nil
}
