package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrFindNearbySellersQueryIsNotConstructed = errors.New(
	"FindNearbySellersQuery must be created via NewFindNearbySellersQuery constructor",
)

// FindNearbySellersQuery lists seller pickup points around a point the buyer
// supplies. A zero radius selects the configured default.
type FindNearbySellersQuery struct {
	center       kernel.Location
	radiusMeters float64

	guard guard.ConstructorGuard
}

func NewFindNearbySellersQuery(center kernel.Location, radiusMeters float64) (FindNearbySellersQuery, error) {
	if err := center.Validate(); err != nil {
		return FindNearbySellersQuery{}, err
	}

	return FindNearbySellersQuery{
		center:       center,
		radiusMeters: radiusMeters,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (q FindNearbySellersQuery) Validate() error {
	return q.guard.Validate(ErrFindNearbySellersQueryIsNotConstructed)
}

func (q FindNearbySellersQuery) Center() kernel.Location {
	return q.center
}

func (q FindNearbySellersQuery) RadiusMeters() float64 {
	return q.radiusMeters
}

type NearbySeller struct {
	SellerID       kernel.UUID
	Location       kernel.Location
	DistanceMeters float64
}
