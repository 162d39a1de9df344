package commands

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// ExtendSessionResult carries the refreshed credential and expiry.
type ExtendSessionResult struct {
	Credential string
	ExpiresAt  time.Time
}

// ExtendSessionCommandHandler pushes a session's expiry forward, refreshes
// the linked guest cart's TTL to match and re-signs the credential.
type ExtendSessionCommandHandler struct {
	uowFactory CartSessionUoWFactory
	signer     ports.CredentialSigner
}

// NewExtendSessionCommandHandler creates a handler for session extension.
func NewExtendSessionCommandHandler(
	uowFactory CartSessionUoWFactory,
	signer ports.CredentialSigner,
) ExtendSessionCommandHandler {
	return ExtendSessionCommandHandler{
		uowFactory: uowFactory,
		signer:     signer,
	}
}

// Handle extends the session and its cart within one transaction.
func (h *ExtendSessionCommandHandler) Handle(
	ctx context.Context,
	cmd ExtendSessionCommand,
) (ExtendSessionResult, error) {
	if err := cmd.Validate(); err != nil {
		return ExtendSessionResult{}, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ExtendSessionResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sess, err := uow.SessionRepository().Get(ctx, cmd.SessionID())
	if err != nil {
		return ExtendSessionResult{}, err
	}

	if err = sess.Extend(cmd.Hours(), now); err != nil {
		return ExtendSessionResult{}, err
	}

	if err = uow.SessionRepository().Update(ctx, sess); err != nil {
		return ExtendSessionResult{}, err
	}

	owner, err := sess.Owner()
	if err != nil {
		return ExtendSessionResult{}, err
	}

	guestCart, err := uow.CartRepository().GetByOwner(ctx, owner)
	switch {
	case err == nil:
		if err = guestCart.ExtendExpiry(sess.ExpiresAt(), now); err != nil {
			return ExtendSessionResult{}, err
		}
		if err = uow.CartRepository().Update(ctx, guestCart); err != nil {
			return ExtendSessionResult{}, err
		}
	case errors.Is(err, errs.ErrObjectNotFound):
		// The sweeper may have reclaimed the cart; the session alone is
		// still worth extending.
	default:
		return ExtendSessionResult{}, err
	}

	credential, err := h.signer.Sign(sess.ID(), sess.ExpiresAt())
	if err != nil {
		return ExtendSessionResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ExtendSessionResult{}, err
	}

	return ExtendSessionResult{
		Credential: credential,
		ExpiresAt:  sess.ExpiresAt(),
	}, nil
}
