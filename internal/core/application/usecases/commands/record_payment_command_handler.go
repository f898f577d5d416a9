package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// RecordPaymentCommandHandler moves a buyer's pending order to paid.
// An order that is absent, owned by someone else or no longer pending is
// reported uniformly as not found.
type RecordPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewRecordPaymentCommandHandler(uowFactory OrderUoWFactory) RecordPaymentCommandHandler {
	return RecordPaymentCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h RecordPaymentCommandHandler) Handle(ctx context.Context, command RecordPaymentCommand) (*order.Order, error) {
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
		return nil, order.ErrPaymentNotApplicable
	}
	if err != nil {
		return nil, err
	}

	if err = o.RecordPayment(command.BuyerID(), command.PaymentMethod()); err != nil {
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
