package commands

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrAdjustEstimateCommandIsNotConstructed = errors.New(
	"AdjustEstimateCommand must be created via NewAdjustEstimateCommand constructor",
)

// AdjustEstimateCommand represents a request to move a stage's estimated
// completion time. Estimates are clamped so they never precede the current
// moment.
type AdjustEstimateCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor
	stage   order.Stage
	at      time.Time

	guard guard.ConstructorGuard
}

// NewAdjustEstimateCommand creates a command to adjust a stage estimate.
func NewAdjustEstimateCommand(
	orderID kernel.UUID,
	actor kernel.Actor,
	stage order.Stage,
	at time.Time,
) (AdjustEstimateCommand, error) {
	cmd := AdjustEstimateCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setStage(stage),
		cmd.setAt(at),
	); err != nil {
		return AdjustEstimateCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdjustEstimateCommand) Validate() error {
	return c.guard.Validate(ErrAdjustEstimateCommandIsNotConstructed)
}

// OrderID returns the order whose estimate moves.
func (c AdjustEstimateCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the identity requesting the adjustment.
func (c AdjustEstimateCommand) Actor() kernel.Actor {
	return c.actor
}

// Stage returns the stage whose estimate moves.
func (c AdjustEstimateCommand) Stage() order.Stage {
	return c.stage
}

// At returns the requested estimate time.
func (c AdjustEstimateCommand) At() time.Time {
	return c.at
}

func (c *AdjustEstimateCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}

	c.orderID = orderID
	return nil
}

func (c *AdjustEstimateCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actor", err)
	}

	c.actor = actor
	return nil
}

func (c *AdjustEstimateCommand) setStage(stage order.Stage) error {
	if err := stage.Validate(); err != nil {
		return err
	}

	c.stage = stage
	return nil
}

func (c *AdjustEstimateCommand) setAt(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("at")
	}

	c.at = at
	return nil
}
