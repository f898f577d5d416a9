package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateAgentLocationCommandIsNotConstructed = errors.New(
	"UpdateAgentLocationCommand must be created via NewUpdateAgentLocationCommand constructor",
)

// UpdateAgentLocationCommand reports an agent's position as a [lng, lat] pair.
type UpdateAgentLocationCommand struct { //nolint:recvcheck //using for validation
	agentID  kernel.UUID
	location kernel.Location

	guard guard.ConstructorGuard
}

// NewUpdateAgentLocationCommand requires exactly two in-range coordinates.
func NewUpdateAgentLocationCommand(agentID kernel.UUID, coordinates []float64) (UpdateAgentLocationCommand, error) {
	cmd := UpdateAgentLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAgentID(agentID),
		cmd.setLocation(coordinates),
	); err != nil {
		return UpdateAgentLocationCommand{}, err
	}

	return cmd, nil
}

func (c UpdateAgentLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateAgentLocationCommandIsNotConstructed)
}

func (c UpdateAgentLocationCommand) AgentID() kernel.UUID {
	return c.agentID
}

func (c UpdateAgentLocationCommand) Location() kernel.Location {
	return c.location
}

func (c *UpdateAgentLocationCommand) setAgentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.agentID = id
	return nil
}

func (c *UpdateAgentLocationCommand) setLocation(coordinates []float64) error {
	location, err := kernel.NewLocationFromPair(coordinates)
	if err != nil {
		return err
	}

	c.location = location
	return nil
}
