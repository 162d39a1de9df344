package commands

import (
	"context"
	"time"
)

// RemoveCartLineCommandHandler drops a product from an owner's cart.
type RemoveCartLineCommandHandler struct {
	uowFactory CartUoWFactory
}

// NewRemoveCartLineCommandHandler creates a handler for cart line removal.
func NewRemoveCartLineCommandHandler(uowFactory CartUoWFactory) RemoveCartLineCommandHandler {
	return RemoveCartLineCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the owner's cart and removes the product's lines.
func (h *RemoveCartLineCommandHandler) Handle(ctx context.Context, cmd RemoveCartLineCommand) error {
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
		return err
	}

	if err = ownerCart.RemoveLine(cmd.ProductID(), now); err != nil {
		return err
	}

	if err = uow.CartRepository().Update(ctx, ownerCart); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
