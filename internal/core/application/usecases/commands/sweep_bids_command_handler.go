package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/bid"
	"marketplace/internal/core/domain/model/event"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// SweepBidsResult counts the bids closed by one sweep.
type SweepBidsResult struct {
	Expired  int
	Rejected int
}

// SweepBidsCommandHandler closes stale pending bids in one transaction per batch.
// A version conflict (a bid accepted while the sweep ran) rolls the batch back;
// the next scheduled run picks the remaining bids up again.
//
// Example:
//
//	handler := NewSweepBidsCommandHandler(uowFactory, notifier, kernel.SystemClock{})
//	cmd, _ := NewSweepBidsCommand(24*time.Hour, 0)
//	result, err := handler.Handle(ctx, cmd)
//	log.Printf("expired %d, rejected %d", result.Expired, result.Rejected)
type SweepBidsCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	clock      kernel.Clock
}

func NewSweepBidsCommandHandler(uowFactory UoWFactory, notifier ports.Notifier, clock kernel.Clock) SweepBidsCommandHandler {
	return SweepBidsCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      clock,
	}
}

func (h SweepBidsCommandHandler) Handle(ctx context.Context, command SweepBidsCommand) (SweepBidsResult, error) {
	if err := command.Validate(); err != nil {
		return SweepBidsResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return SweepBidsResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	bidRepo := uow.BidRepository()
	productRepo := uow.ProductRepository()

	pending, err := bidRepo.GetAllPending(ctx, command.BatchSize())
	if err != nil {
		return SweepBidsResult{}, err
	}

	now := h.clock.Now()
	products := make(map[kernel.UUID]*product.Product)
	closed := make([]*bid.Bid, 0)
	var result SweepBidsResult

	for _, b := range pending {
		switch {
		case b.IsExpiredAt(now, command.TTL()):
			if err = b.Expire(); err != nil {
				return SweepBidsResult{}, err
			}
			result.Expired++

		default:
			p, getErr := h.product(ctx, productRepo, products, b.ProductID())
			if getErr != nil {
				return SweepBidsResult{}, getErr
			}
			if p != nil && p.IsAvailable() {
				continue
			}
			if err = b.Reject(); err != nil {
				return SweepBidsResult{}, err
			}
			result.Rejected++
		}

		if err = bidRepo.Update(ctx, b); err != nil {
			return SweepBidsResult{}, err
		}
		closed = append(closed, b)
	}

	if err = uow.Commit(ctx); err != nil {
		return SweepBidsResult{}, err
	}

	for _, b := range closed {
		h.notifier.Publish(ctx, event.NewBidClosed(b, now))
	}

	return result, nil
}

// product memoizes lookups within one sweep. A missing product yields nil so
// its bids are rejected.
func (h SweepBidsCommandHandler) product(
	ctx context.Context,
	repo ports.ProductRepository,
	cache map[kernel.UUID]*product.Product,
	id kernel.UUID,
) (*product.Product, error) {
	if p, ok := cache[id]; ok {
		return p, nil
	}

	p, err := repo.Get(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		cache[id] = nil
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	cache[id] = p
	return p, nil
}
