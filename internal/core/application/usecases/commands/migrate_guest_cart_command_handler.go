package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// MigrateGuestCartResult reports the cart the user ends up with.
type MigrateGuestCartResult struct {
	CartID      kernel.UUID
	MergedLines int
	AlreadyDone bool
}

// MigrateGuestCartCommandHandler folds a guest cart into a user's cart on
// login.
//
// The operation is idempotent: the session is marked consumed once its lines
// move, so a retried call finds a consumed session and returns the user's
// cart unchanged. Past guest orders keep their original session identity and
// are never rewritten.
type MigrateGuestCartCommandHandler struct {
	uowFactory CartSessionUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewMigrateGuestCartCommandHandler creates a handler for guest cart migration.
func NewMigrateGuestCartCommandHandler(
	uowFactory CartSessionUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) MigrateGuestCartCommandHandler {
	return MigrateGuestCartCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle merges the guest cart's lines into the user's cart, deletes the
// guest cart and marks the session consumed, all within one transaction.
func (h *MigrateGuestCartCommandHandler) Handle(
	ctx context.Context,
	cmd MigrateGuestCartCommand,
) (MigrateGuestCartResult, error) {
	if err := cmd.Validate(); err != nil {
		return MigrateGuestCartResult{}, err
	}

	now := time.Now().UTC()

	userOwner, err := kernel.NewUserOwner(cmd.UserID())
	if err != nil {
		return MigrateGuestCartResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return MigrateGuestCartResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sess, err := uow.SessionRepository().Get(ctx, cmd.SessionID())
	if err != nil {
		return MigrateGuestCartResult{}, err
	}

	userCart, userCartCreated, err := h.loadOrCreateUserCart(ctx, uow, userOwner, now)
	if err != nil {
		return MigrateGuestCartResult{}, err
	}

	// A consumed session means a previous migration already ran to
	// completion; return the user's cart as-is.
	if sess.IsConsumed() {
		return MigrateGuestCartResult{CartID: userCart.ID(), AlreadyDone: true}, nil
	}

	guestOwner, err := sess.Owner()
	if err != nil {
		return MigrateGuestCartResult{}, err
	}

	mergedLines := 0
	guestCart, err := uow.CartRepository().GetByOwner(ctx, guestOwner)
	switch {
	case err == nil:
		mergedLines = len(guestCart.Lines())
		if mergedLines > 0 {
			if err = userCart.AbsorbLines(guestCart.Lines(), now); err != nil {
				return MigrateGuestCartResult{}, err
			}
		}
		if err = uow.CartRepository().Delete(ctx, guestCart.ID()); err != nil {
			return MigrateGuestCartResult{}, err
		}
	case errors.Is(err, errs.ErrObjectNotFound):
		// Nothing to merge; still retire the session.
	default:
		return MigrateGuestCartResult{}, err
	}

	if userCartCreated {
		if err = uow.CartRepository().Add(ctx, userCart); err != nil {
			return MigrateGuestCartResult{}, err
		}
	} else if mergedLines > 0 {
		if err = uow.CartRepository().Update(ctx, userCart); err != nil {
			return MigrateGuestCartResult{}, err
		}
	}

	sess.MarkConsumed(now)
	if err = uow.SessionRepository().Update(ctx, sess); err != nil {
		return MigrateGuestCartResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return MigrateGuestCartResult{}, err
	}

	h.publishMigrated(ctx, cmd, userCart.ID(), mergedLines, now)

	return MigrateGuestCartResult{CartID: userCart.ID(), MergedLines: mergedLines}, nil
}

func (h *MigrateGuestCartCommandHandler) loadOrCreateUserCart(
	ctx context.Context,
	uow CartSessionUoW,
	owner kernel.Owner,
	now time.Time,
) (*cart.Cart, bool, error) {
	userCart, err := uow.CartRepository().GetByOwner(ctx, owner)
	if err == nil {
		return userCart, false, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, false, err
	}

	userCart, err = cart.NewCart(kernel.NewUUID(), owner, now, 0)
	if err != nil {
		return nil, false, err
	}

	return userCart, true, nil
}

func (h *MigrateGuestCartCommandHandler) publishMigrated(
	ctx context.Context,
	cmd MigrateGuestCartCommand,
	cartID kernel.UUID,
	lineCount int,
	now time.Time,
) {
	err := h.publisher.PublishGuestMigrated(ctx, ports.GuestMigratedEvent{
		SessionID:  cmd.SessionID().String(),
		UserID:     cmd.UserID().String(),
		CartID:     cartID.String(),
		LineCount:  lineCount,
		OccurredAt: now,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "failed to publish guest migrated event",
			slog.String("session_id", cmd.SessionID().String()),
			slog.Any("error", err))
	}
}
