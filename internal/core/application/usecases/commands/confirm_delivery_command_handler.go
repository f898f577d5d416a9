package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/event"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// ConfirmDeliveryCommandHandler closes a shipped order and frees its agent in
// the same transaction. A repeated confirmation fails with
// order.ErrDeliveryAlreadyConfirmed before anything is written.
type ConfirmDeliveryCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	clock      kernel.Clock
}

func NewConfirmDeliveryCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	clock kernel.Clock,
) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      clock,
	}
}

func (h ConfirmDeliveryCommandHandler) Handle(ctx context.Context, command ConfirmDeliveryCommand) (*order.Order, error) {
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

	orderRepo := uow.OrderRepository()
	agentRepo := uow.AgentRepository()

	o, err := orderRepo.Get(ctx, command.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, order.ErrOrderNotOwned
	}
	if err != nil {
		return nil, err
	}

	if err = o.ConfirmDelivery(command.BuyerID()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if agentID := o.AgentID(); agentID != nil {
		a, getErr := agentRepo.Get(ctx, *agentID)
		if getErr != nil {
			return nil, getErr
		}

		a.Release()
		if err = agentRepo.Update(ctx, a); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.Publish(ctx, event.NewOrderDelivered(o, h.clock.Now()))
	return o, nil
}
