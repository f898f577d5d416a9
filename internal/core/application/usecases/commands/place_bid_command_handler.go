package commands

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/bid"
	"marketplace/internal/core/domain/model/event"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

var (
	ErrProductSoldConcurrently = errs.NewRuleViolationError(
		errs.KindConflict,
		"product was sold to a concurrent bid, the bid stays pending",
	)
	ErrBidClosedConcurrently = errs.NewRuleViolationError(
		errs.KindConflict,
		"bid was closed while it was being accepted",
	)
)

// PlaceBidResult carries the stored bid and, when the bid met the ask, the new order.
type PlaceBidResult struct {
	Bid   *bid.Bid
	Order *order.Order
}

// PlaceBidCommandHandler files bids and auto-accepts those that meet the asking price.
//
// The pending bid is committed on its own first, so a bid that loses the race
// for the product is still on record. Acceptance then runs in a second
// transaction that writes the product conditionally on the version read while
// it was available; exactly one concurrent acceptor can win that write.
//
// Example:
//
//	handler := NewPlaceBidCommandHandler(uowFactory, engine, notifier, kernel.SystemClock{})
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, product.ErrProductUnavailable):
//	    // lot already sold
//	case errors.Is(err, ErrProductSoldConcurrently):
//	    // lost the race; result is empty, the bid stays pending
//	case errors.Is(err, ErrBidClosedConcurrently):
//	    // the sweep expired or rejected the bid meanwhile
//	case result.Order != nil:
//	    // auto-accepted
//	}
type PlaceBidCommandHandler struct {
	uowFactory UoWFactory
	engine     services.BidEngine
	notifier   ports.Notifier
	clock      kernel.Clock
}

func NewPlaceBidCommandHandler(
	uowFactory UoWFactory,
	engine services.BidEngine,
	notifier ports.Notifier,
	clock kernel.Clock,
) PlaceBidCommandHandler {
	return PlaceBidCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
		notifier:   notifier,
		clock:      clock,
	}
}

func (h PlaceBidCommandHandler) Handle(ctx context.Context, command PlaceBidCommand) (PlaceBidResult, error) {
	if err := command.Validate(); err != nil {
		return PlaceBidResult{}, err
	}

	now := h.clock.Now()

	p, b, err := h.file(ctx, command, now)
	if err != nil {
		return PlaceBidResult{}, err
	}

	filed := event.NewBidFiled(b, p, now)
	if !p.MeetsAsk(b.Price()) {
		h.notifier.Publish(ctx, filed)
		return PlaceBidResult{Bid: b}, nil
	}

	o, err := h.accept(ctx, p, b, now)
	if err != nil {
		h.notifier.Publish(ctx, filed)
		return PlaceBidResult{}, err
	}

	h.notifier.Publish(ctx, event.NewBidAutoAccepted(o, now))
	return PlaceBidResult{Bid: b, Order: o}, nil
}

// file stores a pending bid against an available product.
func (h PlaceBidCommandHandler) file(
	ctx context.Context,
	command PlaceBidCommand,
	now time.Time,
) (*product.Product, *bid.Bid, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	p, err := uow.ProductRepository().Get(ctx, command.ProductID())
	if err != nil {
		return nil, nil, err
	}
	if !p.IsAvailable() {
		return nil, nil, product.ErrProductUnavailable
	}

	b, err := bid.NewBid(kernel.NewUUID(), command.BuyerID(), p.ID(), command.BidPrice(), now)
	if err != nil {
		return nil, nil, err
	}

	if err = uow.BidRepository().Add(ctx, b); err != nil {
		return nil, nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}

	return p, b, nil
}

// accept sells p to b. The product update is the linearization point.
func (h PlaceBidCommandHandler) accept(
	ctx context.Context,
	p *product.Product,
	b *bid.Bid,
	now time.Time,
) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := h.engine.Accept(p, b, kernel.NewUUID(), now)
	if err != nil {
		return nil, err
	}

	if err = uow.ProductRepository().Update(ctx, p); err != nil {
		return nil, conflictAs(err, ErrProductSoldConcurrently)
	}

	// The sweep may have expired or rejected the bid since it was filed.
	if err = uow.BidRepository().Update(ctx, b); err != nil {
		return nil, conflictAs(err, ErrBidClosedConcurrently)
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, conflictAs(err, ErrBidClosedConcurrently)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

// conflictAs replaces a version conflict with the rule that explains it.
func conflictAs(err, rule error) error {
	if errors.Is(err, errs.ErrVersionIsInvalid) {
		return rule
	}
	return err
}
