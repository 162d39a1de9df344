package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/session"
	"marketplace/internal/pkg/errs"
)

// CleanupExpiredSessionsCommandHandler reaps expired guest sessions together
// with their carts, and guest carts whose session is already gone.
//
// A failure on one record is logged and skipped rather than aborting the
// run. Deletes are idempotent, so a record removed concurrently by another
// run or by normal traffic is not an error.
type CleanupExpiredSessionsCommandHandler struct {
	uowFactory          CartSessionUoWFactory
	inactivityThreshold time.Duration
	logger              *slog.Logger
}

// NewCleanupExpiredSessionsCommandHandler creates a handler for sweeper runs.
// Sessions inactive longer than the threshold are reclaimed even before
// their expiry passes.
func NewCleanupExpiredSessionsCommandHandler(
	uowFactory CartSessionUoWFactory,
	inactivityThreshold time.Duration,
	logger *slog.Logger,
) CleanupExpiredSessionsCommandHandler {
	return CleanupExpiredSessionsCommandHandler{
		uowFactory:          uowFactory,
		inactivityThreshold: inactivityThreshold,
		logger:              logger,
	}
}

// Handle executes one bounded sweep. Returns the number of sessions removed.
func (h *CleanupExpiredSessionsCommandHandler) Handle(
	ctx context.Context,
	cmd CleanupExpiredSessionsCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	cutoff := now.Add(-h.inactivityThreshold)

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sessions, err := uow.SessionRepository().FindExpired(ctx, cutoff, cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, sess := range sessions {
		if err = h.removeSession(ctx, uow, sess); err != nil {
			h.logger.WarnContext(ctx, "failed to reap session, skipping",
				slog.String("session_id", sess.ID().String()),
				slog.Any("error", err))
			continue
		}
		removed++
	}

	if err = h.removeOrphanedCarts(ctx, uow, cutoff, cmd.BatchSize()); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return removed, nil
}

func (h *CleanupExpiredSessionsCommandHandler) removeSession(
	ctx context.Context,
	uow CartSessionUoW,
	sess *session.Session,
) error {
	owner, err := sess.Owner()
	if err != nil {
		return err
	}

	guestCart, err := uow.CartRepository().GetByOwner(ctx, owner)
	switch {
	case err == nil:
		if err = uow.CartRepository().Delete(ctx, guestCart.ID()); err != nil {
			return err
		}
	case errors.Is(err, errs.ErrObjectNotFound):
		// Cart already gone.
	default:
		return err
	}

	return uow.SessionRepository().Delete(ctx, sess.ID())
}

func (h *CleanupExpiredSessionsCommandHandler) removeOrphanedCarts(
	ctx context.Context,
	uow CartSessionUoW,
	cutoff time.Time,
	limit int,
) error {
	orphans, err := uow.CartRepository().FindOrphanedGuestCarts(ctx, cutoff, limit)
	if err != nil {
		return err
	}

	for _, orphan := range orphans {
		if err = uow.CartRepository().Delete(ctx, orphan.ID()); err != nil {
			h.logger.WarnContext(ctx, "failed to reap orphaned cart, skipping",
				slog.String("cart_id", orphan.ID().String()),
				slog.Any("error", err))
		}
	}

	return nil
}
