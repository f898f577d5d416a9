package queries

import (
	"cmp"
	"context"
	"errors"
	"iter"
	"slices"

	"marketplace/internal/core/domain/model/agent"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// FindNearbyOrdersQueryHandler joins the location store with the order store.
//
// Handle resolves the radius eagerly and returns a lazy sequence. Each range over
// the sequence reads the agent, the seller sites and the orders afresh, so a
// caller that ranges twice sees the state at the time of each range.
//
// Example:
//
//	seq, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	for nearby, err := range seq {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Printf("%s %.0fm\n", nearby.OrderID, nearby.DistanceMeters)
//	}
type FindNearbyOrdersQueryHandler struct {
	agents    ports.AgentRepository
	orders    ports.OrderRepository
	locations ports.LocationStore
	matcher   services.AgentMatcher
}

func NewFindNearbyOrdersQueryHandler(
	agents ports.AgentRepository,
	orders ports.OrderRepository,
	locations ports.LocationStore,
	matcher services.AgentMatcher,
) FindNearbyOrdersQueryHandler {
	return FindNearbyOrdersQueryHandler{
		agents:    agents,
		orders:    orders,
		locations: locations,
		matcher:   matcher,
	}
}

func (h FindNearbyOrdersQueryHandler) Handle(
	ctx context.Context,
	query FindNearbyOrdersQuery,
) (iter.Seq2[NearbyOrder, error], error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	radius, err := h.matcher.SearchRadius(query.RadiusMeters())
	if err != nil {
		return nil, err
	}

	return func(yield func(NearbyOrder, error) bool) {
		found, findErr := h.find(ctx, query.AgentID(), radius)
		if findErr != nil {
			yield(NearbyOrder{}, findErr)
			return
		}

		for _, nearby := range found {
			if !yield(nearby, nil) {
				return
			}
		}
	}, nil
}

func (h FindNearbyOrdersQueryHandler) find(
	ctx context.Context,
	agentID kernel.UUID,
	radius float64,
) ([]NearbyOrder, error) {
	a, err := h.agents.Get(ctx, agentID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		// agents are stored on their first location report
		return nil, agent.ErrLocationNotSet
	}
	if err != nil {
		return nil, err
	}

	center, err := a.RequireLocation()
	if err != nil {
		return nil, err
	}

	sites, err := h.locations.SearchSellers(ctx, center, radius)
	if err != nil {
		return nil, err
	}
	if len(sites) == 0 {
		return nil, nil
	}

	bySeller := make(map[kernel.UUID]ports.SellerSite, len(sites))
	sellerIDs := make([]kernel.UUID, 0, len(sites))
	for _, site := range sites {
		bySeller[site.SellerID] = site
		sellerIDs = append(sellerIDs, site.SellerID)
	}

	claimable, err := h.orders.GetAllClaimableBySellers(ctx, sellerIDs)
	if err != nil {
		return nil, err
	}

	result := make([]NearbyOrder, 0, len(claimable))
	for _, o := range claimable {
		site, ok := bySeller[o.SellerID()]
		if !ok {
			continue
		}
		result = append(result, NearbyOrder{
			OrderID:        o.ID(),
			SellerID:       o.SellerID(),
			ProductType:    o.ProductType(),
			Quantity:       o.Quantity(),
			PickupLocation: site.Location,
			DistanceMeters: site.DistanceMeters,
		})
	}

	slices.SortStableFunc(result, func(a, b NearbyOrder) int {
		return cmp.Compare(a.DistanceMeters, b.DistanceMeters)
	})

	return result, nil
}
