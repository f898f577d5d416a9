package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

// SellerSite is a seller's pickup point found by a range query.
type SellerSite struct {
	SellerID       kernel.UUID
	Location       kernel.Location
	DistanceMeters float64
}

// LocationStore is the external geospatial index of seller pickup points.
type LocationStore interface {
	// SetSellerLocation records or moves a seller's pickup point.
	SetSellerLocation(ctx context.Context, sellerID kernel.UUID, location kernel.Location) error

	// SearchSellers returns sellers within radiusMeters of center, nearest first.
	SearchSellers(ctx context.Context, center kernel.Location, radiusMeters float64) ([]SellerSite, error)
}
