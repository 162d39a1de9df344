package commands

import (
	"context"
	"time"

	"marketplace/internal/pkg/errs"
)

// UpdateCartLineCommandHandler sets the quantity of an existing cart line.
// The new quantity is validated against the catalog the same way add-to-cart
// validates a merge.
type UpdateCartLineCommandHandler struct {
	uowFactory CartCatalogUoWFactory
}

// NewUpdateCartLineCommandHandler creates a handler for cart line updates.
func NewUpdateCartLineCommandHandler(uowFactory CartCatalogUoWFactory) UpdateCartLineCommandHandler {
	return UpdateCartLineCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the owner's cart and updates the matching line.
func (h *UpdateCartLineCommandHandler) Handle(ctx context.Context, cmd UpdateCartLineCommand) error {
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

	product, err := uow.ProductCatalog().Lookup(ctx, cmd.ProductID())
	if err != nil {
		return err
	}
	if !product.Available {
		return errs.NewValueIsInvalidError("product is not available")
	}
	if cmd.Quantity() > product.Stock {
		return errs.NewConflictError("product stock " + product.ID.String())
	}

	ownerCart, err := uow.CartRepository().GetByOwner(ctx, cmd.Owner())
	if err != nil {
		return err
	}

	if err = ownerCart.UpdateLineQuantity(cmd.ProductID(), cmd.CatalogID(), cmd.Quantity(), now); err != nil {
		return err
	}

	if err = uow.CartRepository().Update(ctx, ownerCart); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
