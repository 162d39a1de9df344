package commands

import (
	"errors"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCleanupExpiredSessionsCommandIsNotConstructed = errors.New(
	"CleanupExpiredSessionsCommand must be created via NewCleanupExpiredSessionsCommand constructor",
)

const maxCleanupBatchSize = 10000

// CleanupExpiredSessionsCommand represents one sweep over expired guest
// sessions and orphaned guest carts.
type CleanupExpiredSessionsCommand struct { //nolint:recvcheck //using for validation
	batchSize int

	guard guard.ConstructorGuard
}

// NewCleanupExpiredSessionsCommand creates a command for one sweeper run.
// Batch size bounds how many records a single run may delete.
func NewCleanupExpiredSessionsCommand(batchSize int) (CleanupExpiredSessionsCommand, error) {
	cmd := CleanupExpiredSessionsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setBatchSize(batchSize); err != nil {
		return CleanupExpiredSessionsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CleanupExpiredSessionsCommand) Validate() error {
	return c.guard.Validate(ErrCleanupExpiredSessionsCommandIsNotConstructed)
}

// BatchSize returns the per-run deletion bound.
func (c CleanupExpiredSessionsCommand) BatchSize() int {
	return c.batchSize
}

func (c *CleanupExpiredSessionsCommand) setBatchSize(batchSize int) error {
	if batchSize < 1 || batchSize > maxCleanupBatchSize {
		return errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, maxCleanupBatchSize)
	}

	c.batchSize = batchSize
	return nil
}
