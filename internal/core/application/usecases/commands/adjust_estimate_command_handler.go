package commands

import (
	"context"
	"time"
)

// AdjustEstimateCommandHandler moves a stage's estimated completion time.
type AdjustEstimateCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAdjustEstimateCommandHandler creates a handler for estimate adjustments.
func NewAdjustEstimateCommandHandler(uowFactory OrderUoWFactory) AdjustEstimateCommandHandler {
	return AdjustEstimateCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the order, applies the adjustment and persists it.
func (h *AdjustEstimateCommandHandler) Handle(ctx context.Context, cmd AdjustEstimateCommand) error {
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

	if err = aggregate.AdjustEstimate(cmd.Actor(), cmd.Stage(), cmd.At(), now); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
