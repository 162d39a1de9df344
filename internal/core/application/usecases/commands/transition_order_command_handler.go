package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
)

// TransitionOrderCommandHandler applies a fulfillment transition to an order.
//
// The persist step is a conditional update gated on the status the order was
// loaded with. When two drivers race to claim the same prepared order exactly
// one wins; the loser gets a Conflict error and the order is untouched.
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewTransitionOrderCommandHandler creates a handler for order transitions.
func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle loads the order, applies the transition and persists conditionally
// on the observed status.
func (h *TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) error {
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

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	fromStatus := aggregate.Status()

	if err = aggregate.Transition(cmd.Actor(), cmd.Target(), now); err != nil {
		return err
	}

	err = uow.OrderRepository().UpdateWithExpectedStatus(ctx, aggregate, []order.Status{fromStatus})
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publishStatusChanged(ctx, cmd, fromStatus, now)

	return nil
}

func (h *TransitionOrderCommandHandler) publishStatusChanged(
	ctx context.Context,
	cmd TransitionOrderCommand,
	fromStatus order.Status,
	now time.Time,
) {
	err := h.publisher.PublishOrderStatusChanged(ctx, ports.OrderStatusChangedEvent{
		OrderID:    cmd.OrderID().String(),
		FromStatus: fromStatus.String(),
		ToStatus:   cmd.Target().String(),
		ActorRole:  cmd.Actor().Role().String(),
		OccurredAt: now,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "failed to publish order status changed event",
			slog.String("order_id", cmd.OrderID().String()),
			slog.Any("error", err))
	}
}
