package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type placementFixture struct {
	owner     kernel.Owner
	storeID   kernel.UUID
	productID kernel.UUID
	product   ports.Product
	cart      *cart.Cart

	cartRepo  *MockCartRepository
	orderRepo *MockOrderRepository
	catalog   *MockProductCatalog
	uow       *MockUoW
	factory   *MockPlacementUoWFactory
	publisher *MockEventPublisher
}

func newPlacementFixture(t *testing.T, cartQuantity int) *placementFixture {
	t.Helper()

	owner, err := kernel.NewUserOwner(kernel.NewUUID())
	require.NoError(t, err)

	storeID := kernel.NewUUID()
	productID := kernel.NewUUID()

	price, err := kernel.NewMoneyFromCents(750)
	require.NoError(t, err)

	ownerCart, err := cart.NewCart(kernel.NewUUID(), owner, time.Now().UTC(), 0)
	require.NoError(t, err)
	require.NoError(t, ownerCart.AddLine(productID, storeID, nil, cartQuantity, time.Now().UTC()))

	f := &placementFixture{
		owner:     owner,
		storeID:   storeID,
		productID: productID,
		product: ports.Product{
			ID:        productID,
			StoreID:   storeID,
			Name:      "flat white",
			Price:     price,
			Stock:     10,
			Available: true,
		},
		cart:      ownerCart,
		cartRepo:  new(MockCartRepository),
		orderRepo: new(MockOrderRepository),
		catalog:   new(MockProductCatalog),
		uow:       new(MockUoW),
		factory:   new(MockPlacementUoWFactory),
		publisher: new(MockEventPublisher),
	}

	f.uow.On("Begin", mock.Anything).Return(nil)
	f.uow.On("Rollback", mock.Anything).Return(nil)
	f.uow.On("CartRepository").Return(f.cartRepo)
	f.uow.On("OrderRepository").Return(f.orderRepo)
	f.uow.On("ProductCatalog").Return(f.catalog)
	f.factory.On("Create").Return(f.uow).Once()

	return f
}

func (f *placementFixture) handler() commands.PlaceOrderCommandHandler {
	fee, _ := kernel.NewMoneyFromCents(300)
	return commands.NewPlaceOrderCommandHandler(f.factory, f.publisher, fee, discardLogger())
}

func (f *placementFixture) command(t *testing.T, quantity int) commands.PlaceOrderCommand {
	t.Helper()
	cmd, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(),
		f.owner,
		f.storeID,
		[]commands.RequestedItem{{ProductID: f.productID, Quantity: quantity}},
		true,
	)
	require.NoError(t, err)
	return cmd
}

func TestPlaceOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()
	f := newPlacementFixture(t, 2)

	f.cartRepo.On("GetByOwner", mock.Anything, f.owner).Return(f.cart, nil).Once()
	f.catalog.On("Lookup", mock.Anything, f.productID).Return(f.product, nil).Once()
	f.catalog.On("DecrementStock", mock.Anything, f.productID, 2).Return(nil).Once()
	f.orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	f.cartRepo.On("Update", mock.Anything, f.cart).Return(nil).Once()
	f.uow.On("Commit", mock.Anything).Return(nil).Once()
	f.publisher.On("PublishOrderPlaced", mock.Anything,
		mock.AnythingOfType("ports.OrderPlacedEvent")).Return(nil).Once()

	h := f.handler()
	result, err := h.Handle(ctx, f.command(t, 2))

	require.NoError(t, err)
	assert.Equal(t, order.Placed, result.Status)
	// 2 x 750 subtotal plus 300 takeout delivery fee.
	assert.Equal(t, int64(1800), result.AmountCents)
	// The consumed line left the cart.
	assert.True(t, f.cart.IsEmpty())

	f.cartRepo.AssertExpectations(t)
	f.orderRepo.AssertExpectations(t)
	f.catalog.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_QuantityMismatch(t *testing.T) {
	ctx := context.Background()
	f := newPlacementFixture(t, 2)

	f.cartRepo.On("GetByOwner", mock.Anything, f.owner).Return(f.cart, nil).Once()
	f.catalog.On("Lookup", mock.Anything, f.productID).Return(f.product, nil).Once()

	h := f.handler()
	_, err := h.Handle(ctx, f.command(t, 3))

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	f.catalog.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything)
	f.orderRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestPlaceOrderCommandHandler_Handle_CrossStoreProduct(t *testing.T) {
	ctx := context.Background()
	f := newPlacementFixture(t, 2)

	foreign := f.product
	foreign.StoreID = kernel.NewUUID()

	f.cartRepo.On("GetByOwner", mock.Anything, f.owner).Return(f.cart, nil).Once()
	f.catalog.On("Lookup", mock.Anything, f.productID).Return(foreign, nil).Once()

	h := f.handler()
	_, err := h.Handle(ctx, f.command(t, 2))

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestPlaceOrderCommandHandler_Handle_UnavailableProduct(t *testing.T) {
	ctx := context.Background()
	f := newPlacementFixture(t, 2)

	unavailable := f.product
	unavailable.Available = false

	f.cartRepo.On("GetByOwner", mock.Anything, f.owner).Return(f.cart, nil).Once()
	f.catalog.On("Lookup", mock.Anything, f.productID).Return(unavailable, nil).Once()

	h := f.handler()
	_, err := h.Handle(ctx, f.command(t, 2))

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestPlaceOrderCommandHandler_Handle_StockConflict(t *testing.T) {
	ctx := context.Background()
	f := newPlacementFixture(t, 2)

	f.cartRepo.On("GetByOwner", mock.Anything, f.owner).Return(f.cart, nil).Once()
	f.catalog.On("Lookup", mock.Anything, f.productID).Return(f.product, nil).Once()
	f.catalog.On("DecrementStock", mock.Anything, f.productID, 2).
		Return(errs.NewConflictError("stock")).Once()

	h := f.handler()
	_, err := h.Handle(ctx, f.command(t, 2))

	require.ErrorIs(t, err, errs.ErrConflict)
	f.orderRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.publisher.AssertNotCalled(t, "PublishOrderPlaced", mock.Anything, mock.Anything)
}

func TestPlaceOrderCommandHandler_Handle_PublishFailureDoesNotFailPlacement(t *testing.T) {
	ctx := context.Background()
	f := newPlacementFixture(t, 1)

	f.cartRepo.On("GetByOwner", mock.Anything, f.owner).Return(f.cart, nil).Once()
	f.catalog.On("Lookup", mock.Anything, f.productID).Return(f.product, nil).Once()
	f.catalog.On("DecrementStock", mock.Anything, f.productID, 1).Return(nil).Once()
	f.orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	f.cartRepo.On("Update", mock.Anything, f.cart).Return(nil).Once()
	f.uow.On("Commit", mock.Anything).Return(nil).Once()
	f.publisher.On("PublishOrderPlaced", mock.Anything, mock.Anything).
		Return(errs.NewServiceUnavailableError("broker")).Once()

	h := f.handler()
	_, err := h.Handle(ctx, f.command(t, 1))

	require.NoError(t, err)
}

func TestPlaceOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	h := commands.NewPlaceOrderCommandHandler(
		new(MockPlacementUoWFactory), new(MockEventPublisher), kernel.Money{}, discardLogger())

	_, err := h.Handle(context.Background(), commands.PlaceOrderCommand{})

	require.Error(t, err)
}
