package commands

import (
	"errors"
	"time"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// DefaultSweepBatchSize bounds the bids closed by one sweep.
const DefaultSweepBatchSize = 500

var ErrSweepBidsCommandIsNotConstructed = errors.New(
	"SweepBidsCommand must be created via NewSweepBidsCommand constructor",
)

// SweepBidsCommand closes pending bids that can no longer win: those older than
// the bid time to live and those whose product has been sold.
type SweepBidsCommand struct {
	ttl       time.Duration
	batchSize int

	guard guard.ConstructorGuard
}

func NewSweepBidsCommand(ttl time.Duration, batchSize int) (SweepBidsCommand, error) {
	if ttl <= 0 {
		return SweepBidsCommand{}, errs.NewValueIsOutOfRangeError("ttl", ttl, "1ns", "unbounded")
	}
	if batchSize <= 0 {
		batchSize = DefaultSweepBatchSize
	}

	return SweepBidsCommand{
		ttl:       ttl,
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c SweepBidsCommand) Validate() error {
	return c.guard.Validate(ErrSweepBidsCommandIsNotConstructed)
}

func (c SweepBidsCommand) TTL() time.Duration {
	return c.ttl
}

func (c SweepBidsCommand) BatchSize() int {
	return c.batchSize
}
