package queries

import (
	"context"

	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// FindNearbySellersQueryHandler answers from the location store alone; radius
// bounds are shared with the agent search.
type FindNearbySellersQueryHandler struct {
	locations ports.LocationStore
	matcher   services.AgentMatcher
}

func NewFindNearbySellersQueryHandler(
	locations ports.LocationStore,
	matcher services.AgentMatcher,
) FindNearbySellersQueryHandler {
	return FindNearbySellersQueryHandler{locations: locations, matcher: matcher}
}

// Handle returns sellers nearest first. No sellers in range is an empty result.
func (h FindNearbySellersQueryHandler) Handle(
	ctx context.Context,
	query FindNearbySellersQuery,
) ([]NearbySeller, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	radius, err := h.matcher.SearchRadius(query.RadiusMeters())
	if err != nil {
		return nil, err
	}

	sites, err := h.locations.SearchSellers(ctx, query.Center(), radius)
	if err != nil {
		return nil, err
	}

	result := make([]NearbySeller, 0, len(sites))
	for _, site := range sites {
		result = append(result, NearbySeller(site))
	}
	return result, nil
}
