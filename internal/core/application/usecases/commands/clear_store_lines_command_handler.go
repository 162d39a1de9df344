package commands

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/pkg/errs"
)

// ClearStoreLinesCommandHandler drops one store's lines from an owner's
// cart. Like clearing, a missing cart is a no-op so the operation stays
// idempotent.
type ClearStoreLinesCommandHandler struct {
	uowFactory CartUoWFactory
}

// NewClearStoreLinesCommandHandler creates a handler for per-store cart trims.
func NewClearStoreLinesCommandHandler(uowFactory CartUoWFactory) ClearStoreLinesCommandHandler {
	return ClearStoreLinesCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle removes the store's lines if a cart exists.
func (h *ClearStoreLinesCommandHandler) Handle(ctx context.Context, cmd ClearStoreLinesCommand) error {
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

	if err = ownerCart.RemoveLinesForStore(cmd.StoreID(), now); err != nil {
		return err
	}

	if err = uow.CartRepository().Update(ctx, ownerCart); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
