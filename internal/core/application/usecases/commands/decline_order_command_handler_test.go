package commands_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func preparedOrder(t *testing.T) *order.Order {
	t.Helper()

	o, store := placedOrder(t)
	now := time.Now().UTC()
	require.NoError(t, o.Transition(store, order.Accepted, now))
	require.NoError(t, o.Transition(store, order.Prepared, now))
	return o
}

func TestDeclineOrderCommandHandler_Handle_AddsDriverToExclusionSet(t *testing.T) {
	ctx := context.Background()
	o := preparedOrder(t)
	driverID := kernel.NewUUID()

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo)
	repo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	repo.On("UpdateWithExpectedStatus", mock.Anything, o, []order.Status{order.Prepared}).
		Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewDeclineOrderCommand(o.ID(), driverID)
	require.NoError(t, err)

	h := commands.NewDeclineOrderCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.True(t, o.IsExcluded(driverID))
	assert.Equal(t, order.Prepared, o.Status())
	repo.AssertExpectations(t)
}

func TestDeclineOrderCommandHandler_Handle_AssignedDriverBackingOut(t *testing.T) {
	ctx := context.Background()
	o := preparedOrder(t)
	driverID := kernel.NewUUID()

	driver, err := kernel.NewActor(driverID, kernel.RoleDriver)
	require.NoError(t, err)
	require.NoError(t, o.Transition(driver, order.AcceptedByDriver, time.Now().UTC()))

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo)
	repo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	repo.On("UpdateWithExpectedStatus", mock.Anything, o, []order.Status{order.AcceptedByDriver}).
		Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewDeclineOrderCommand(o.ID(), driverID)
	require.NoError(t, err)

	h := commands.NewDeclineOrderCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	// The order returns to the offer pool without the declining driver.
	assert.Equal(t, order.Prepared, o.Status())
	assert.Nil(t, o.AssignedDriver())
	assert.True(t, o.IsExcluded(driverID))
}

func TestDeclineOrderCommandHandler_Handle_WrongStatus(t *testing.T) {
	ctx := context.Background()
	o, _ := placedOrder(t)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo)
	repo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewDeclineOrderCommand(o.ID(), kernel.NewUUID())
	require.NoError(t, err)

	h := commands.NewDeclineOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
