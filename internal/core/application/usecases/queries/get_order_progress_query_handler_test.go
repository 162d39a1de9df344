package queries_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateWithExpectedStatus(
	ctx context.Context,
	aggregate *order.Order,
	expected []order.Status,
) error {
	args := m.Called(ctx, aggregate, expected)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func newProgressTestOrder(t *testing.T, placedAt time.Time) *order.Order {
	t.Helper()

	customer, err := kernel.NewUserOwner(kernel.NewUUID())
	require.NoError(t, err)

	price, err := kernel.NewMoneyFromCents(1200)
	require.NoError(t, err)

	item, err := order.NewItem(kernel.NewUUID(), "Margherita", price, 1)
	require.NoError(t, err)

	fee, err := kernel.NewMoneyFromCents(300)
	require.NoError(t, err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), customer, kernel.NewUUID(),
		[]order.Item{item}, fee, true, placedAt,
	)
	require.NoError(t, err)
	return aggregate
}

func TestGetOrderProgressQueryHandler_Handle_PlacedOrder(t *testing.T) {
	aggregate := newProgressTestOrder(t, time.Now().UTC())

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()

	handler := queries.NewGetOrderProgressQueryHandler(repo, services.NewProgressCalculator())

	query, err := queries.NewGetOrderProgressQuery(aggregate.ID())
	require.NoError(t, err)

	result, err := handler.Handle(context.Background(), query)

	require.NoError(t, err)
	assert.Equal(t, aggregate.ID(), result.OrderID)
	assert.Equal(t, order.Placed.String(), result.Status)
	assert.Zero(t, result.Progress.Preparation.Percent)
	assert.Zero(t, result.Progress.Delivery.Percent)
	repo.AssertExpectations(t)
}

func TestGetOrderProgressQueryHandler_Handle_AcceptedOrderInterpolates(t *testing.T) {
	placedAt := time.Now().UTC().Add(-5 * time.Minute)
	aggregate := newProgressTestOrder(t, placedAt)

	store, err := kernel.NewActor(aggregate.StoreID(), kernel.RoleStore)
	require.NoError(t, err)
	require.NoError(t, aggregate.Transition(store, order.Accepted, time.Now().UTC().Add(-5*time.Minute)))

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()

	handler := queries.NewGetOrderProgressQueryHandler(repo, services.NewProgressCalculator())

	query, err := queries.NewGetOrderProgressQuery(aggregate.ID())
	require.NoError(t, err)

	result, err := handler.Handle(context.Background(), query)

	require.NoError(t, err)
	assert.Equal(t, order.Accepted.String(), result.Status)
	// Preparation started 5 minutes ago with a 10 minute estimate.
	assert.InDelta(t, 50, result.Progress.Preparation.Percent, 5)
	assert.InDelta(t, 5, result.Progress.Preparation.MinutesLeft, 1)
	assert.Zero(t, result.Progress.Delivery.Percent)
	repo.AssertExpectations(t)
}

func TestGetOrderProgressQueryHandler_Handle_OrderNotFound(t *testing.T) {
	orderID := kernel.NewUUID()

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, orderID).
		Return(nil, errs.NewObjectNotFoundError("order", orderID.String())).Once()

	handler := queries.NewGetOrderProgressQueryHandler(repo, services.NewProgressCalculator())

	query, err := queries.NewGetOrderProgressQuery(orderID)
	require.NoError(t, err)

	_, err = handler.Handle(context.Background(), query)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	repo.AssertExpectations(t)
}

func TestGetOrderProgressQueryHandler_Handle_InvalidQuery(t *testing.T) {
	repo := new(MockOrderRepository)
	handler := queries.NewGetOrderProgressQueryHandler(repo, services.NewProgressCalculator())

	_, err := handler.Handle(context.Background(), queries.GetOrderProgressQuery{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be created via NewGetOrderProgressQuery constructor")
	repo.AssertNotCalled(t, "Get")
}
