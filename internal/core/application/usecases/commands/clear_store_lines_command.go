package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrClearStoreLinesCommandIsNotConstructed = errors.New(
	"ClearStoreLinesCommand must be created via NewClearStoreLinesCommand constructor",
)

// ClearStoreLinesCommand represents a request to drop every line of one
// store from an owner's cart, leaving lines for other stores untouched.
type ClearStoreLinesCommand struct { //nolint:recvcheck //using for validation
	owner   kernel.Owner
	storeID kernel.UUID

	guard guard.ConstructorGuard
}

// NewClearStoreLinesCommand creates a command to clear a store's cart lines.
func NewClearStoreLinesCommand(owner kernel.Owner, storeID kernel.UUID) (ClearStoreLinesCommand, error) {
	cmd := ClearStoreLinesCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOwner(owner),
		cmd.setStoreID(storeID),
	); err != nil {
		return ClearStoreLinesCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ClearStoreLinesCommand) Validate() error {
	return c.guard.Validate(ErrClearStoreLinesCommandIsNotConstructed)
}

// Owner returns the cart owner identity.
func (c ClearStoreLinesCommand) Owner() kernel.Owner {
	return c.owner
}

// StoreID returns the store whose lines are dropped.
func (c ClearStoreLinesCommand) StoreID() kernel.UUID {
	return c.storeID
}

func (c *ClearStoreLinesCommand) setOwner(owner kernel.Owner) error {
	if err := owner.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("owner", err)
	}

	c.owner = owner
	return nil
}

func (c *ClearStoreLinesCommand) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("storeID", err)
	}

	c.storeID = storeID
	return nil
}
