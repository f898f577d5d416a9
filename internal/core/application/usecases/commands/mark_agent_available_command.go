package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrMarkAgentAvailableCommandIsNotConstructed = errors.New(
	"MarkAgentAvailableCommand must be created via NewMarkAgentAvailableCommand constructor",
)

// MarkAgentAvailableCommand resets an agent's availability by hand.
type MarkAgentAvailableCommand struct {
	agentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewMarkAgentAvailableCommand(agentID kernel.UUID) (MarkAgentAvailableCommand, error) {
	if err := agentID.Validate(); err != nil {
		return MarkAgentAvailableCommand{}, err
	}

	return MarkAgentAvailableCommand{
		agentID: agentID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c MarkAgentAvailableCommand) Validate() error {
	return c.guard.Validate(ErrMarkAgentAvailableCommandIsNotConstructed)
}

func (c MarkAgentAvailableCommand) AgentID() kernel.UUID {
	return c.agentID
}
