package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateGuestSessionCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()

	cartRepo := new(MockCartRepository)
	sessRepo := new(MockSessionRepository)
	uow := new(MockUoW)
	signer := new(MockCredentialSigner)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.On("SessionRepository").Return(sessRepo).Once()
	sessRepo.On("Add", mock.Anything, mock.AnythingOfType("*session.Session")).Return(nil).Once()
	uow.On("CartRepository").Return(cartRepo).Once()
	cartRepo.On("Add", mock.Anything, mock.AnythingOfType("*cart.Cart")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	signer.On("Sign", mock.AnythingOfType("kernel.UUID"), mock.AnythingOfType("time.Time")).
		Return("signed-credential", nil).Once()

	factory := new(MockCartSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewCreateGuestSessionCommand("agent", "10.0.0.1")
	require.NoError(t, err)

	h := commands.NewCreateGuestSessionCommandHandler(factory, signer, 24*time.Hour)
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "signed-credential", result.Credential)
	assert.NoError(t, result.SessionID.Validate())
	assert.NoError(t, result.CartID.Validate())
	assert.WithinDuration(t, time.Now().UTC().Add(24*time.Hour), result.ExpiresAt, time.Minute)

	cartRepo.AssertExpectations(t)
	sessRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	signer.AssertExpectations(t)
}

func TestCreateGuestSessionCommandHandler_Handle_SignerFailureSkipsTransaction(t *testing.T) {
	ctx := context.Background()

	signer := new(MockCredentialSigner)
	signer.On("Sign", mock.Anything, mock.Anything).
		Return("", errors.New("signer failure")).Once()

	factory := new(MockCartSessionUoWFactory)

	cmd, err := commands.NewCreateGuestSessionCommand("", "")
	require.NoError(t, err)

	h := commands.NewCreateGuestSessionCommandHandler(factory, signer, time.Hour)
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateGuestSessionCommandHandler_Handle_ValidationError(t *testing.T) {
	h := commands.NewCreateGuestSessionCommandHandler(
		new(MockCartSessionUoWFactory), new(MockCredentialSigner), time.Hour)

	_, err := h.Handle(context.Background(), commands.CreateGuestSessionCommand{})

	require.Error(t, err)
}
