package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// PlaceOrderResult carries the identifiers of the freshly placed order.
type PlaceOrderResult struct {
	OrderID     kernel.UUID
	AmountCents int64
	Status      order.Status
}

// PlaceOrderCommandHandler turns reserved cart lines into an order.
//
// The whole placement is one transaction: stock decrement, order insert and
// cart trim commit together or not at all. Validation happens before any
// write, so a failed placement has zero side effects:
//   - every requested product must exist and be available,
//   - an identical (product, quantity, store) line must already be in the
//     cart, which blocks quantity inflation at checkout,
//   - every product must belong to the target store, which blocks
//     cross-store substitution.
//
// Stock decrements are conditional updates, so concurrent placements against
// the same product surface as Conflict instead of negative stock.
type PlaceOrderCommandHandler struct {
	uowFactory  PlacementUoWFactory
	publisher   ports.EventPublisher
	deliveryFee kernel.Money
	logger      *slog.Logger
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
// The delivery fee is charged on takeout orders only.
func NewPlaceOrderCommandHandler(
	uowFactory PlacementUoWFactory,
	publisher ports.EventPublisher,
	deliveryFee kernel.Money,
	logger *slog.Logger,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory:  uowFactory,
		publisher:   publisher,
		deliveryFee: deliveryFee,
		logger:      logger,
	}
}

// Handle validates the request against the owner's cart, decrements stock,
// creates the order snapshot and trims only the consumed cart lines.
func (h *PlaceOrderCommandHandler) Handle(
	ctx context.Context,
	cmd PlaceOrderCommand,
) (PlaceOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return PlaceOrderResult{}, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return PlaceOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ownerCart, err := uow.CartRepository().GetByOwner(ctx, cmd.Owner())
	if err != nil {
		return PlaceOrderResult{}, err
	}
	if ownerCart.IsExpired(now) {
		return PlaceOrderResult{}, errs.NewExpiredError("cart", ownerCart.ID().String())
	}

	consumed, items, err := h.validateItems(ctx, uow, cmd, ownerCart)
	if err != nil {
		return PlaceOrderResult{}, err
	}

	for _, req := range cmd.Items() {
		if err = uow.ProductCatalog().DecrementStock(ctx, req.ProductID, req.Quantity); err != nil {
			return PlaceOrderResult{}, err
		}
	}

	fee, err := kernel.NewMoneyFromCents(0)
	if err != nil {
		return PlaceOrderResult{}, err
	}
	if cmd.IsTakeout() {
		fee = h.deliveryFee
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(), cmd.Owner(), cmd.StoreID(), items, fee, cmd.IsTakeout(), now)
	if err != nil {
		return PlaceOrderResult{}, err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return PlaceOrderResult{}, err
	}

	// Only consumed lines leave the cart; lines for other stores survive.
	for _, line := range consumed {
		if err = ownerCart.RemoveLineByKey(line.ProductID(), line.CatalogID(), now); err != nil {
			return PlaceOrderResult{}, err
		}
	}

	if err = uow.CartRepository().Update(ctx, ownerCart); err != nil {
		return PlaceOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return PlaceOrderResult{}, err
	}

	h.publishPlaced(ctx, newOrder)

	return PlaceOrderResult{
		OrderID:     newOrder.ID(),
		AmountCents: newOrder.Amount().Cents(),
		Status:      newOrder.Status(),
	}, nil
}

func (h *PlaceOrderCommandHandler) validateItems(
	ctx context.Context,
	uow PlacementUoW,
	cmd PlaceOrderCommand,
	ownerCart *cart.Cart,
) ([]cart.Line, []order.Item, error) {
	consumed := make([]cart.Line, 0, len(cmd.Items()))
	items := make([]order.Item, 0, len(cmd.Items()))

	for _, req := range cmd.Items() {
		product, err := uow.ProductCatalog().Lookup(ctx, req.ProductID)
		if err != nil {
			return nil, nil, err
		}
		if !product.Available {
			return nil, nil, errs.NewValueIsInvalidError("product is not available")
		}
		if !product.StoreID.IsEqual(cmd.StoreID()) {
			return nil, nil, errs.NewValueIsInvalidError("product does not belong to the target store")
		}

		line, found := ownerCart.FindExactLine(req.ProductID, cmd.StoreID(), req.Quantity)
		if !found {
			return nil, nil, errs.NewValueIsInvalidError("no matching cart line for requested item")
		}

		item, err := order.NewItem(product.ID, product.Name, product.Price, req.Quantity)
		if err != nil {
			return nil, nil, err
		}

		consumed = append(consumed, line)
		items = append(items, item)
	}

	return consumed, items, nil
}

func (h *PlaceOrderCommandHandler) publishPlaced(ctx context.Context, o *order.Order) {
	ownerKind := "user"
	if o.Customer().IsGuest() {
		ownerKind = "guest"
	}

	err := h.publisher.PublishOrderPlaced(ctx, ports.OrderPlacedEvent{
		OrderID:     o.ID().String(),
		StoreID:     o.StoreID().String(),
		OwnerKind:   ownerKind,
		OwnerID:     o.Customer().ID().String(),
		AmountCents: o.Amount().Cents(),
		IsTakeout:   o.IsTakeout(),
		PlacedAt:    o.PlacedAt(),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "failed to publish order placed event",
			slog.String("order_id", o.ID().String()),
			slog.Any("error", err))
	}
}
