package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrRegisterProductCommandIsNotConstructed = errors.New(
	"RegisterProductCommand must be created via NewRegisterProductCommand constructor",
)

// RegisterProductCommand lists a new lot for bidding. Field validation is left
// to product.NewProduct so the rules live in one place.
type RegisterProductCommand struct {
	sellerID    kernel.UUID
	productType string
	quantity    float64
	askPrice    kernel.Money

	guard guard.ConstructorGuard
}

func NewRegisterProductCommand(
	sellerID kernel.UUID,
	productType string,
	quantity float64,
	askPrice kernel.Money,
) (RegisterProductCommand, error) {
	if err := sellerID.Validate(); err != nil {
		return RegisterProductCommand{}, err
	}

	return RegisterProductCommand{
		sellerID:    sellerID,
		productType: productType,
		quantity:    quantity,
		askPrice:    askPrice,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterProductCommand) Validate() error {
	return c.guard.Validate(ErrRegisterProductCommandIsNotConstructed)
}

func (c RegisterProductCommand) SellerID() kernel.UUID {
	return c.sellerID
}

func (c RegisterProductCommand) ProductType() string {
	return c.productType
}

func (c RegisterProductCommand) Quantity() float64 {
	return c.quantity
}

func (c RegisterProductCommand) AskPrice() kernel.Money {
	return c.askPrice
}
