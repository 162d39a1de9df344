package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/session"
	"marketplace/internal/core/ports"
)

// CreateGuestSessionResult carries the issued identity back to the caller.
// The credential is self-verifying: clients present it on every request and
// the server checks the signature before any registry lookup.
type CreateGuestSessionResult struct {
	SessionID  kernel.UUID
	CartID     kernel.UUID
	Credential string
	ExpiresAt  time.Time
}

// CreateGuestSessionCommandHandler issues a guest session together with its
// empty cart. The session and cart share one transaction so a visitor never
// observes a session without a cart.
type CreateGuestSessionCommandHandler struct {
	uowFactory CartSessionUoWFactory
	signer     ports.CredentialSigner
	sessionTTL time.Duration
}

// NewCreateGuestSessionCommandHandler creates a handler for guest session issuance.
func NewCreateGuestSessionCommandHandler(
	uowFactory CartSessionUoWFactory,
	signer ports.CredentialSigner,
	sessionTTL time.Duration,
) CreateGuestSessionCommandHandler {
	return CreateGuestSessionCommandHandler{
		uowFactory: uowFactory,
		signer:     signer,
		sessionTTL: sessionTTL,
	}
}

// Handle creates the session, its empty cart and a signed credential.
func (h *CreateGuestSessionCommandHandler) Handle(
	ctx context.Context,
	cmd CreateGuestSessionCommand,
) (CreateGuestSessionResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateGuestSessionResult{}, err
	}

	now := time.Now().UTC()

	sess, err := session.NewSession(kernel.NewUUID(), session.Metadata{
		UserAgent:  cmd.UserAgent(),
		RemoteAddr: cmd.RemoteAddr(),
	}, now, h.sessionTTL)
	if err != nil {
		return CreateGuestSessionResult{}, err
	}

	owner, err := sess.Owner()
	if err != nil {
		return CreateGuestSessionResult{}, err
	}

	guestCart, err := cart.NewCart(kernel.NewUUID(), owner, now, h.sessionTTL)
	if err != nil {
		return CreateGuestSessionResult{}, err
	}

	credential, err := h.signer.Sign(sess.ID(), sess.ExpiresAt())
	if err != nil {
		return CreateGuestSessionResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return CreateGuestSessionResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.SessionRepository().Add(ctx, sess); err != nil {
		return CreateGuestSessionResult{}, err
	}

	if err = uow.CartRepository().Add(ctx, guestCart); err != nil {
		return CreateGuestSessionResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateGuestSessionResult{}, err
	}

	return CreateGuestSessionResult{
		SessionID:  sess.ID(),
		CartID:     guestCart.ID(),
		Credential: credential,
		ExpiresAt:  sess.ExpiresAt(),
	}, nil
}
