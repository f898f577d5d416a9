package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrClaimOrderCommandIsNotConstructed = errors.New(
	"ClaimOrderCommand must be created via NewClaimOrderCommand constructor",
)

// ClaimOrderCommand is an agent accepting a paid order for delivery.
//
// Example:
//
//	cmd, err := NewClaimOrderCommand(agentID, orderID)
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
//	if errs.KindOf(err) == errs.KindConflict {
//	    // another agent was faster
//	}
type ClaimOrderCommand struct { //nolint:recvcheck //using for validation
	agentID kernel.UUID
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewClaimOrderCommand(agentID, orderID kernel.UUID) (ClaimOrderCommand, error) {
	cmd := ClaimOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		agentID.Validate(),
		orderID.Validate(),
	); err != nil {
		return ClaimOrderCommand{}, err
	}

	cmd.agentID = agentID
	cmd.orderID = orderID
	return cmd, nil
}

func (c ClaimOrderCommand) Validate() error {
	return c.guard.Validate(ErrClaimOrderCommandIsNotConstructed)
}

func (c ClaimOrderCommand) AgentID() kernel.UUID {
	return c.agentID
}

func (c ClaimOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
