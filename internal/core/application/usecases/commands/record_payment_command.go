package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var ErrRecordPaymentCommandIsNotConstructed = errors.New(
	"RecordPaymentCommand must be created via NewRecordPaymentCommand constructor",
)

// RecordPaymentCommand marks a pending order as paid after an external gateway
// has settled it. The gateway itself is outside the marketplace.
type RecordPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	buyerID       kernel.UUID
	paymentMethod order.PaymentMethod

	guard guard.ConstructorGuard
}

// NewRecordPaymentCommand parses paymentMethod and rejects unknown methods.
func NewRecordPaymentCommand(orderID, buyerID kernel.UUID, paymentMethod string) (RecordPaymentCommand, error) {
	cmd := RecordPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setBuyerID(buyerID),
		cmd.setPaymentMethod(paymentMethod),
	); err != nil {
		return RecordPaymentCommand{}, err
	}

	return cmd, nil
}

func (c RecordPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRecordPaymentCommandIsNotConstructed)
}

func (c RecordPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c RecordPaymentCommand) BuyerID() kernel.UUID {
	return c.buyerID
}

func (c RecordPaymentCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

func (c *RecordPaymentCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.orderID = id
	return nil
}

func (c *RecordPaymentCommand) setBuyerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.buyerID = id
	return nil
}

func (c *RecordPaymentCommand) setPaymentMethod(method string) error {
	parsed, err := order.ParsePaymentMethod(method)
	if err != nil {
		return err
	}

	c.paymentMethod = parsed
	return nil
}
