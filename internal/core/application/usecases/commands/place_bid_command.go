package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrPlaceBidCommandIsNotConstructed = errors.New(
	"PlaceBidCommand must be created via NewPlaceBidCommand constructor",
)

// PlaceBidCommand files a buyer's bid on a product.
//
// Example:
//
//	cmd, err := NewPlaceBidCommand(productID, buyerID, 12000)
//	if err != nil {
//	    return fmt.Errorf("invalid bid: %w", err)
//	}
//	result, err := handler.Handle(ctx, cmd)
type PlaceBidCommand struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	buyerID   kernel.UUID
	bidPrice  kernel.Money

	guard guard.ConstructorGuard
}

// NewPlaceBidCommand validates every argument and joins the failures.
func NewPlaceBidCommand(productID, buyerID kernel.UUID, bidPrice kernel.Money) (PlaceBidCommand, error) {
	cmd := PlaceBidCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setProductID(productID),
		cmd.setBuyerID(buyerID),
		cmd.setBidPrice(bidPrice),
	); err != nil {
		return PlaceBidCommand{}, err
	}

	return cmd, nil
}

func (c PlaceBidCommand) Validate() error {
	return c.guard.Validate(ErrPlaceBidCommandIsNotConstructed)
}

func (c PlaceBidCommand) ProductID() kernel.UUID {
	return c.productID
}

func (c PlaceBidCommand) BuyerID() kernel.UUID {
	return c.buyerID
}

func (c PlaceBidCommand) BidPrice() kernel.Money {
	return c.bidPrice
}

func (c *PlaceBidCommand) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.productID = id
	return nil
}

func (c *PlaceBidCommand) setBuyerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.buyerID = id
	return nil
}

func (c *PlaceBidCommand) setBidPrice(price kernel.Money) error {
	if !price.IsPositive() {
		return errs.NewValueIsOutOfRangeError("bidPrice", price, kernel.Money(1), "unbounded")
	}

	c.bidPrice = price
	return nil
}
