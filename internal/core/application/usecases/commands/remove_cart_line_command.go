package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrRemoveCartLineCommandIsNotConstructed = errors.New(
	"RemoveCartLineCommand must be created via NewRemoveCartLineCommand constructor",
)

// RemoveCartLineCommand represents a request to drop every line of a product
// from an owner's cart.
type RemoveCartLineCommand struct { //nolint:recvcheck //using for validation
	owner     kernel.Owner
	productID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemoveCartLineCommand creates a command to remove a product from a cart.
func NewRemoveCartLineCommand(owner kernel.Owner, productID kernel.UUID) (RemoveCartLineCommand, error) {
	cmd := RemoveCartLineCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOwner(owner),
		cmd.setProductID(productID),
	); err != nil {
		return RemoveCartLineCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveCartLineCommand) Validate() error {
	return c.guard.Validate(ErrRemoveCartLineCommandIsNotConstructed)
}

// Owner returns the cart owner identity.
func (c RemoveCartLineCommand) Owner() kernel.Owner {
	return c.owner
}

// ProductID returns the product to remove.
func (c RemoveCartLineCommand) ProductID() kernel.UUID {
	return c.productID
}

func (c *RemoveCartLineCommand) setOwner(owner kernel.Owner) error {
	if err := owner.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("owner", err)
	}

	c.owner = owner
	return nil
}

func (c *RemoveCartLineCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("productID", err)
	}

	c.productID = productID
	return nil
}
