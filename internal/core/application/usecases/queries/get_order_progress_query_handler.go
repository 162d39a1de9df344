package queries

import (
	"context"
	"time"

	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// GetOrderProgressQueryHandler loads the order aggregate and recomputes its
// stage progress. Unlike the other query handlers it goes through the order
// repository: progress is a pure function of the aggregate's timeline, not a
// stored projection.
type GetOrderProgressQueryHandler struct {
	orders     ports.OrderRepository
	calculator services.ProgressCalculator
}

// NewGetOrderProgressQueryHandler creates a handler for progress reads.
func NewGetOrderProgressQueryHandler(
	orders ports.OrderRepository,
	calculator services.ProgressCalculator,
) GetOrderProgressQueryHandler {
	return GetOrderProgressQueryHandler{
		orders:     orders,
		calculator: calculator,
	}
}

// Handle loads the order and derives per-stage percent and minutes left.
func (h GetOrderProgressQueryHandler) Handle(
	ctx context.Context,
	query GetOrderProgressQuery,
) (GetOrderProgressQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderProgressQueryResponse{}, err
	}

	aggregate, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return GetOrderProgressQueryResponse{}, err
	}

	progress, err := h.calculator.Calculate(aggregate, time.Now().UTC())
	if err != nil {
		return GetOrderProgressQueryResponse{}, err
	}

	return GetOrderProgressQueryResponse{
		OrderID:  aggregate.ID(),
		Status:   aggregate.Status().String(),
		Progress: progress,
	}, nil
}
