package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/event"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// VerifyPickupCommandHandler checks a pickup code and ships the order on a match.
//
// Outcomes:
//   - match: the code is consumed, the order is shipped
//   - mismatch: services.ErrInvalidPickupCode, nothing is written
//   - expired: a fresh code is persisted and announced with pickup.codeReissued,
//     then services.ErrPickupCodeExpired is returned so the seller asks again
type VerifyPickupCommandHandler struct {
	uowFactory OrderUoWFactory
	codes      *services.PickupCodeManager
	notifier   ports.Notifier
	clock      kernel.Clock
}

func NewVerifyPickupCommandHandler(
	uowFactory OrderUoWFactory,
	codes *services.PickupCodeManager,
	notifier ports.Notifier,
	clock kernel.Clock,
) VerifyPickupCommandHandler {
	return VerifyPickupCommandHandler{
		uowFactory: uowFactory,
		codes:      codes,
		notifier:   notifier,
		clock:      clock,
	}
}

func (h VerifyPickupCommandHandler) Handle(ctx context.Context, command VerifyPickupCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	o, err := repo.Get(ctx, command.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, order.ErrPickupNotApplicable
	}
	if err != nil {
		return nil, err
	}

	if err = o.CheckAwaitingPickup(command.SellerID()); err != nil {
		return nil, err
	}

	now := h.clock.Now()

	verdict, err := h.codes.Validate(o, command.Code(), now)
	if err != nil {
		return nil, err
	}

	switch verdict {
	case services.PickupCodeInvalid:
		return nil, services.ErrInvalidPickupCode

	case services.PickupCodeExpired:
		if err = repo.Update(ctx, o); err != nil {
			return nil, err
		}
		if err = uow.Commit(ctx); err != nil {
			return nil, err
		}
		h.notifier.Publish(ctx, event.NewPickupCodeReissued(o, *o.PickupCode(), now))
		return nil, services.ErrPickupCodeExpired

	default:
		if err = o.CompletePickup(command.SellerID()); err != nil {
			return nil, err
		}
		if err = repo.Update(ctx, o); err != nil {
			return nil, err
		}
		if err = uow.Commit(ctx); err != nil {
			return nil, err
		}
		return o, nil
	}
}
