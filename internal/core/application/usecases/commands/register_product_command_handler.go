package commands

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"
)

type RegisterProductCommandHandler struct {
	uowFactory ProductUoWFactory
	clock      kernel.Clock
}

func NewRegisterProductCommandHandler(uowFactory ProductUoWFactory, clock kernel.Clock) RegisterProductCommandHandler {
	return RegisterProductCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle creates an available product owned by the command's seller.
func (h RegisterProductCommandHandler) Handle(
	ctx context.Context,
	command RegisterProductCommand,
) (*product.Product, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	p, err := product.NewProduct(
		kernel.NewUUID(),
		command.SellerID(),
		command.ProductType(),
		command.Quantity(),
		command.AskPrice(),
		h.clock.Now(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ProductRepository().Add(ctx, p); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return p, nil
}
