package commands

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/pkg/errs"
)

// ClearCartCommandHandler empties an owner's cart. Clearing a cart that does
// not exist is a no-op, so the operation stays idempotent.
type ClearCartCommandHandler struct {
	uowFactory CartUoWFactory
}

// NewClearCartCommandHandler creates a handler for cart clearing.
func NewClearCartCommandHandler(uowFactory CartUoWFactory) ClearCartCommandHandler {
	return ClearCartCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle empties the cart if one exists.
func (h *ClearCartCommandHandler) Handle(ctx context.Context, cmd ClearCartCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ownerCart, err := uow.CartRepository().GetByOwner(ctx, cmd.Owner())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil
		}
		return err
	}

	if err = ownerCart.Clear(now); err != nil {
		return err
	}

	if err = uow.CartRepository().Update(ctx, ownerCart); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
