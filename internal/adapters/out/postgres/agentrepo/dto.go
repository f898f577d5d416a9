package agentrepo

import (
	"marketplace/internal/core/domain/model/agent"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type AgentDTO struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Location    LocationDTO `gorm:"embedded;embeddedPrefix:location_"`
	IsAvailable bool
	Version     int64
}

func (AgentDTO) TableName() string {
	return "agents"
}

// LocationDTO columns are both NULL until the agent first reports a position.
type LocationDTO struct {
	Lng *float64
	Lat *float64
}

func fromDomain(a *agent.Agent) AgentDTO {
	dto := AgentDTO{
		ID:          a.ID().Bytes(),
		IsAvailable: a.IsAvailable(),
		Version:     a.Version(),
	}

	if loc := a.Location(); loc != nil {
		lng, lat := loc.Lng(), loc.Lat()
		dto.Location = LocationDTO{Lng: &lng, Lat: &lat}
	}

	return dto
}

func toDomain(dto AgentDTO) (*agent.Agent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var location *kernel.Location
	if dto.Location.Lng != nil && dto.Location.Lat != nil {
		loc, locErr := kernel.NewLocation(*dto.Location.Lng, *dto.Location.Lat)
		if locErr != nil {
			return nil, locErr
		}
		location = &loc
	}

	return agent.RestoreAgent(id, location, dto.IsAvailable, dto.Version)
}
