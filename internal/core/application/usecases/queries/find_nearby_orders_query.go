// Package queries contains read operations over marketplace state.
// Handlers return read models shaped for a single caller and never mutate aggregates.
package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrFindNearbyOrdersQueryIsNotConstructed = errors.New(
	"FindNearbyOrdersQuery must be created via NewFindNearbyOrdersQuery constructor",
)

// FindNearbyOrdersQuery lists claimable orders around an agent's stored location.
// A zero radius selects the configured default.
type FindNearbyOrdersQuery struct {
	agentID      kernel.UUID
	radiusMeters float64

	guard guard.ConstructorGuard
}

func NewFindNearbyOrdersQuery(agentID kernel.UUID, radiusMeters float64) (FindNearbyOrdersQuery, error) {
	if err := agentID.Validate(); err != nil {
		return FindNearbyOrdersQuery{}, err
	}

	return FindNearbyOrdersQuery{
		agentID:      agentID,
		radiusMeters: radiusMeters,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (q FindNearbyOrdersQuery) Validate() error {
	return q.guard.Validate(ErrFindNearbyOrdersQueryIsNotConstructed)
}

func (q FindNearbyOrdersQuery) AgentID() kernel.UUID {
	return q.agentID
}

func (q FindNearbyOrdersQuery) RadiusMeters() float64 {
	return q.radiusMeters
}

// NearbyOrder is a claimable order with the pickup point it will be collected from.
type NearbyOrder struct {
	OrderID        kernel.UUID
	SellerID       kernel.UUID
	ProductType    string
	Quantity       float64
	PickupLocation kernel.Location
	DistanceMeters float64
}
