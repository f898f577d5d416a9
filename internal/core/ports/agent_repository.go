package ports

import (
	"context"

	"marketplace/internal/core/domain/model/agent"
	"marketplace/internal/core/domain/model/kernel"
)

// AgentRepository defines the persistence contract for agent aggregates.
type AgentRepository interface {
	Add(ctx context.Context, aggregate *agent.Agent) error

	// Update is conditional on aggregate.Version().
	Update(ctx context.Context, aggregate *agent.Agent) error

	Get(ctx context.Context, id kernel.UUID) (*agent.Agent, error)
}
