package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrVerifyPickupCommandIsNotConstructed = errors.New(
	"VerifyPickupCommand must be created via NewVerifyPickupCommand constructor",
)

// VerifyPickupCommand is the seller presenting the code shown by the agent at handover.
type VerifyPickupCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	sellerID kernel.UUID
	code     string

	guard guard.ConstructorGuard
}

func NewVerifyPickupCommand(orderID, sellerID kernel.UUID, code string) (VerifyPickupCommand, error) {
	cmd := VerifyPickupCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setSellerID(sellerID),
		cmd.setCode(code),
	); err != nil {
		return VerifyPickupCommand{}, err
	}

	return cmd, nil
}

func (c VerifyPickupCommand) Validate() error {
	return c.guard.Validate(ErrVerifyPickupCommandIsNotConstructed)
}

func (c VerifyPickupCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c VerifyPickupCommand) SellerID() kernel.UUID {
	return c.sellerID
}

func (c VerifyPickupCommand) Code() string {
	return c.code
}

func (c *VerifyPickupCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.orderID = id
	return nil
}

func (c *VerifyPickupCommand) setSellerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.sellerID = id
	return nil
}

func (c *VerifyPickupCommand) setCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("otp")
	}

	c.code = code
	return nil
}
