package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/order"
)

// DeclineOrderCommandHandler records a driver's refusal of an order.
type DeclineOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewDeclineOrderCommandHandler creates a handler for driver declines.
func NewDeclineOrderCommandHandler(uowFactory OrderUoWFactory) DeclineOrderCommandHandler {
	return DeclineOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle adds the driver to the exclusion set and, if the driver had already
// claimed the order, returns it to the offer pool. The persist is gated on
// the loaded status so a decline racing a claim resolves cleanly.
func (h *DeclineOrderCommandHandler) Handle(ctx context.Context, cmd DeclineOrderCommand) error {
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

	if err = aggregate.Decline(cmd.DriverID(), now); err != nil {
		return err
	}

	err = uow.OrderRepository().UpdateWithExpectedStatus(ctx, aggregate, []order.Status{fromStatus})
	if err != nil {
		return err
	}

	return uow.Commit(ctx)
}
