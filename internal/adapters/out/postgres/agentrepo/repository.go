package agentrepo

import (
	"context"

	"marketplace/internal/adapters/out/postgres/versioned"
	"marketplace/internal/core/domain/model/agent"
	"marketplace/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

const entity = "agent"

type GormAgentRepository struct {
	db *gorm.DB
}

func NewGormAgentRepository(db *gorm.DB) *GormAgentRepository {
	return &GormAgentRepository{db: db}
}

// Add registers a new agent. Two concurrent first reports for the same agent
// collide on the primary key; the loser sees a version conflict.
func (r *GormAgentRepository) Add(ctx context.Context, aggregate *agent.Agent) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return versioned.Create(ctx, r.db, &dto, entity)
}

func (r *GormAgentRepository) Update(ctx context.Context, aggregate *agent.Agent) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version++
	if err := versioned.Update(ctx, r.db, &AgentDTO{}, &dto, dto.ID, aggregate.Version(), entity); err != nil {
		return err
	}

	aggregate.AdvanceVersion()
	return nil
}

func (r *GormAgentRepository) Get(ctx context.Context, id kernel.UUID) (*agent.Agent, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AgentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, versioned.NotFound(err, entity, id.String())
	}

	return toDomain(dto)
}
