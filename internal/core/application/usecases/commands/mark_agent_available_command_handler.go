package commands

import (
	"context"

	"marketplace/internal/core/domain/model/agent"
)

// MarkAgentAvailableCommandHandler sets isAvailable unconditionally. The write is
// still version-checked, so it cannot silently overwrite a concurrent claim.
type MarkAgentAvailableCommandHandler struct {
	uowFactory AgentUoWFactory
}

func NewMarkAgentAvailableCommandHandler(uowFactory AgentUoWFactory) MarkAgentAvailableCommandHandler {
	return MarkAgentAvailableCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h MarkAgentAvailableCommandHandler) Handle(
	ctx context.Context,
	command MarkAgentAvailableCommand,
) (*agent.Agent, error) {
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

	repo := uow.AgentRepository()

	a, err := repo.Get(ctx, command.AgentID())
	if err != nil {
		return nil, err
	}

	a.Release()

	if err = repo.Update(ctx, a); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return a, nil
}
