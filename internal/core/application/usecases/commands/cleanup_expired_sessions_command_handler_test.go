package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/session"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func expiredSession(t *testing.T) *session.Session {
	t.Helper()
	past := time.Now().UTC().Add(-48 * time.Hour)
	s, err := session.NewSession(kernel.NewUUID(), session.Metadata{}, past, time.Hour)
	require.NoError(t, err)
	return s
}

func sessionCart(t *testing.T, s *session.Session) *cart.Cart {
	t.Helper()
	owner, err := s.Owner()
	require.NoError(t, err)
	c, err := cart.NewCart(kernel.NewUUID(), owner, s.CreatedAt(), time.Hour)
	require.NoError(t, err)
	return c
}

func newSweepMocks() (*MockCartRepository, *MockSessionRepository, *MockUoW, *MockCartSessionUoWFactory) {
	cartRepo := new(MockCartRepository)
	sessRepo := new(MockSessionRepository)
	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("CartRepository").Return(cartRepo)
	uow.On("SessionRepository").Return(sessRepo)

	factory := new(MockCartSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	return cartRepo, sessRepo, uow, factory
}

func TestCleanupExpiredSessionsCommandHandler_Handle_ReapsSessionsAndCarts(t *testing.T) {
	ctx := context.Background()

	s1 := expiredSession(t)
	s2 := expiredSession(t)
	c1 := sessionCart(t, s1)
	owner1, _ := s1.Owner()
	owner2, _ := s2.Owner()

	cartRepo, sessRepo, uow, factory := newSweepMocks()

	sessRepo.On("FindExpired", mock.Anything, mock.AnythingOfType("time.Time"), 100).
		Return([]*session.Session{s1, s2}, nil).Once()
	cartRepo.On("GetByOwner", mock.Anything, owner1).Return(c1, nil).Once()
	cartRepo.On("Delete", mock.Anything, c1.ID()).Return(nil).Once()
	sessRepo.On("Delete", mock.Anything, s1.ID()).Return(nil).Once()
	// The second session's cart is already gone; deletion stays idempotent.
	cartRepo.On("GetByOwner", mock.Anything, owner2).
		Return(nil, errs.NewObjectNotFoundError("cart", "gone")).Once()
	sessRepo.On("Delete", mock.Anything, s2.ID()).Return(nil).Once()
	cartRepo.On("FindOrphanedGuestCarts", mock.Anything, mock.AnythingOfType("time.Time"), 100).
		Return([]*cart.Cart{}, nil).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()

	cmd, err := commands.NewCleanupExpiredSessionsCommand(100)
	require.NoError(t, err)

	h := commands.NewCleanupExpiredSessionsCommandHandler(factory, 72*time.Hour, discardLogger())
	removed, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	cartRepo.AssertExpectations(t)
	sessRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCleanupExpiredSessionsCommandHandler_Handle_SkipsFailedRecord(t *testing.T) {
	ctx := context.Background()

	s1 := expiredSession(t)
	s2 := expiredSession(t)
	owner1, _ := s1.Owner()
	owner2, _ := s2.Owner()

	cartRepo, sessRepo, uow, factory := newSweepMocks()

	sessRepo.On("FindExpired", mock.Anything, mock.AnythingOfType("time.Time"), 50).
		Return([]*session.Session{s1, s2}, nil).Once()
	cartRepo.On("GetByOwner", mock.Anything, owner1).
		Return(nil, errors.New("connection reset")).Once()
	cartRepo.On("GetByOwner", mock.Anything, owner2).
		Return(nil, errs.NewObjectNotFoundError("cart", "gone")).Once()
	sessRepo.On("Delete", mock.Anything, s2.ID()).Return(nil).Once()
	cartRepo.On("FindOrphanedGuestCarts", mock.Anything, mock.AnythingOfType("time.Time"), 50).
		Return([]*cart.Cart{}, nil).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()

	cmd, err := commands.NewCleanupExpiredSessionsCommand(50)
	require.NoError(t, err)

	h := commands.NewCleanupExpiredSessionsCommandHandler(factory, 72*time.Hour, discardLogger())
	removed, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	// The failed record is skipped, not fatal.
	assert.Equal(t, 1, removed)
	sessRepo.AssertNotCalled(t, "Delete", mock.Anything, s1.ID())
}

func TestCleanupExpiredSessionsCommandHandler_Handle_ReapsOrphanedCarts(t *testing.T) {
	ctx := context.Background()

	orphan := sessionCart(t, expiredSession(t))

	cartRepo, sessRepo, uow, factory := newSweepMocks()

	sessRepo.On("FindExpired", mock.Anything, mock.AnythingOfType("time.Time"), 10).
		Return([]*session.Session{}, nil).Once()
	cartRepo.On("FindOrphanedGuestCarts", mock.Anything, mock.AnythingOfType("time.Time"), 10).
		Return([]*cart.Cart{orphan}, nil).Once()
	cartRepo.On("Delete", mock.Anything, orphan.ID()).Return(nil).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()

	cmd, err := commands.NewCleanupExpiredSessionsCommand(10)
	require.NoError(t, err)

	h := commands.NewCleanupExpiredSessionsCommandHandler(factory, 72*time.Hour, discardLogger())
	_, err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	cartRepo.AssertExpectations(t)
}

func TestNewCleanupExpiredSessionsCommand_BatchSizeBounds(t *testing.T) {
	_, err := commands.NewCleanupExpiredSessionsCommand(0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = commands.NewCleanupExpiredSessionsCommand(10001)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
