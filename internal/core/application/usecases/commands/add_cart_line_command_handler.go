package commands

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// AddCartLineCommandHandler adds a product to an owner's cart, creating the
// cart lazily on first add. The product is looked up in the catalog so an
// unknown or unavailable product is rejected before it ever reaches a cart.
type AddCartLineCommandHandler struct {
	uowFactory   CartCatalogUoWFactory
	guestCartTTL time.Duration
}

// NewAddCartLineCommandHandler creates a handler for add-to-cart operations.
// The guest cart TTL applies only when a guest cart must be created lazily,
// for example after the sweeper reclaimed one mid-session.
func NewAddCartLineCommandHandler(
	uowFactory CartCatalogUoWFactory,
	guestCartTTL time.Duration,
) AddCartLineCommandHandler {
	return AddCartLineCommandHandler{
		uowFactory:   uowFactory,
		guestCartTTL: guestCartTTL,
	}
}

// Handle looks up the product, loads or creates the owner's cart and merges
// the line in.
func (h *AddCartLineCommandHandler) Handle(ctx context.Context, cmd AddCartLineCommand) error {
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

	ownerCart, created, err := h.loadOrCreateCart(ctx, uow, cmd.Owner(), now)
	if err != nil {
		return err
	}

	if ownerCart.IsExpired(now) {
		return errs.NewExpiredError("cart", ownerCart.ID().String())
	}

	// The merged line quantity must stay within tracked stock; the same
	// bound is re-checked atomically at placement.
	resulting := ownerCart.QuantityOf(cmd.ProductID(), cmd.CatalogID()) + cmd.Quantity()
	if resulting > product.Stock {
		return errs.NewConflictError("product stock " + product.ID.String())
	}

	if err = ownerCart.AddLine(product.ID, product.StoreID, cmd.CatalogID(), cmd.Quantity(), now); err != nil {
		return err
	}

	if created {
		err = uow.CartRepository().Add(ctx, ownerCart)
	} else {
		err = uow.CartRepository().Update(ctx, ownerCart)
	}
	if err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *AddCartLineCommandHandler) loadOrCreateCart(
	ctx context.Context,
	uow CartCatalogUoW,
	owner kernel.Owner,
	now time.Time,
) (*cart.Cart, bool, error) {
	ownerCart, err := uow.CartRepository().GetByOwner(ctx, owner)
	if err == nil {
		return ownerCart, false, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, false, err
	}

	ttl := time.Duration(0)
	if owner.IsGuest() {
		ttl = h.guestCartTTL
	}

	ownerCart, err = cart.NewCart(kernel.NewUUID(), owner, now, ttl)
	if err != nil {
		return nil, false, err
	}

	return ownerCart, true, nil
}
