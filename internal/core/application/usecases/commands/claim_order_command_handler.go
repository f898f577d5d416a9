package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/agent"
	"marketplace/internal/core/domain/model/event"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// ClaimOrderResult is what the agent needs to collect the goods.
type ClaimOrderResult struct {
	OrderID    kernel.UUID
	PickupCode *order.PickupCode
}

// ClaimOrderCommandHandler binds an available agent to a paid order.
//
// Both rows are written conditionally on the versions read, so of two agents
// racing for one order (or one agent racing for two orders) exactly one
// commits. The loser receives a conflict and keeps its previous state.
type ClaimOrderCommandHandler struct {
	uowFactory UoWFactory
	matcher    services.AgentMatcher
	notifier   ports.Notifier
	clock      kernel.Clock
}

func NewClaimOrderCommandHandler(
	uowFactory UoWFactory,
	matcher services.AgentMatcher,
	notifier ports.Notifier,
	clock kernel.Clock,
) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		uowFactory: uowFactory,
		matcher:    matcher,
		notifier:   notifier,
		clock:      clock,
	}
}

func (h ClaimOrderCommandHandler) Handle(ctx context.Context, command ClaimOrderCommand) (ClaimOrderResult, error) {
	if err := command.Validate(); err != nil {
		return ClaimOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ClaimOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	agentRepo := uow.AgentRepository()
	orderRepo := uow.OrderRepository()

	a, err := agentRepo.Get(ctx, command.AgentID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		// an agent that never reported in is not available
		return ClaimOrderResult{}, agent.ErrAgentUnavailable
	}
	if err != nil {
		return ClaimOrderResult{}, err
	}

	o, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return ClaimOrderResult{}, err
	}

	code, err := h.matcher.Claim(a, o)
	if err != nil {
		return ClaimOrderResult{}, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return ClaimOrderResult{}, err
	}

	if err = agentRepo.Update(ctx, a); err != nil {
		return ClaimOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ClaimOrderResult{}, err
	}

	h.notifier.Publish(ctx, event.NewOrderClaimed(o, a.ID(), h.clock.Now()))

	return ClaimOrderResult{
		OrderID:    o.ID(),
		PickupCode: code,
	}, nil
}
