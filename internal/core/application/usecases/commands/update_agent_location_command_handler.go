package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/agent"
	"marketplace/internal/pkg/errs"
)

// UpdateAgentLocationCommandHandler upserts the agent: the first report registers
// an available agent, later reports move it. Authentication has already vouched
// for the identity.
type UpdateAgentLocationCommandHandler struct {
	uowFactory AgentUoWFactory
}

func NewUpdateAgentLocationCommandHandler(uowFactory AgentUoWFactory) UpdateAgentLocationCommandHandler {
	return UpdateAgentLocationCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h UpdateAgentLocationCommandHandler) Handle(
	ctx context.Context,
	command UpdateAgentLocationCommand,
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
	location := command.Location()

	a, err := repo.Get(ctx, command.AgentID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		if a, err = agent.NewAgent(command.AgentID(), &location); err != nil {
			return nil, err
		}
		if err = repo.Add(ctx, a); err != nil {
			return nil, err
		}

	case err != nil:
		return nil, err

	default:
		if err = a.UpdateLocation(location); err != nil {
			return nil, err
		}
		if err = repo.Update(ctx, a); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return a, nil
}
