// Package redisgeo keeps seller pickup points in a Redis GEO set.
//
// Members are seller ids; GEOADD on an existing member moves it, so the set
// always holds one point per seller.
package redisgeo

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const DefaultKey = "marketplace:sellers:geo"

// Redis GEO cannot index points closer to the poles than this.
const maxLatitude = 85.05112878

type LocationStore struct {
	rdb *redis.Client
	key string
}

// NewLocationStore uses DefaultKey when key is empty.
func NewLocationStore(rdb *redis.Client, key string) *LocationStore {
	if key == "" {
		key = DefaultKey
	}
	return &LocationStore{rdb: rdb, key: key}
}

func (s *LocationStore) SetSellerLocation(ctx context.Context, sellerID kernel.UUID, location kernel.Location) error {
	if err := errors.Join(sellerID.Validate(), location.Validate()); err != nil {
		return err
	}
	if location.Lat() > maxLatitude || location.Lat() < -maxLatitude {
		return errs.NewValueIsOutOfRangeError("lat", location.Lat(), -maxLatitude, maxLatitude)
	}

	err := s.rdb.GeoAdd(ctx, s.key, &redis.GeoLocation{
		Name:      sellerID.String(),
		Longitude: location.Lng(),
		Latitude:  location.Lat(),
	}).Err()
	if err != nil {
		return fmt.Errorf("geoadd seller %s: %w", sellerID, err)
	}
	return nil
}

func (s *LocationStore) SearchSellers(
	ctx context.Context,
	center kernel.Location,
	radiusMeters float64,
) ([]ports.SellerSite, error) {
	if err := center.Validate(); err != nil {
		return nil, err
	}
	if radiusMeters <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("radius", radiusMeters, 0, nil)
	}

	found, err := s.rdb.GeoSearchLocation(ctx, s.key, &redis.GeoSearchLocationQuery{
		GeoSearchQuery: redis.GeoSearchQuery{
			Longitude:  center.Lng(),
			Latitude:   center.Lat(),
			Radius:     radiusMeters,
			RadiusUnit: "m",
			Sort:       "ASC",
		},
		WithCoord: true,
		WithDist:  true,
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("geosearch sellers: %w", err)
	}

	sites := make([]ports.SellerSite, 0, len(found))
	for _, member := range found {
		sellerID, parseErr := kernel.UUIDFromString(member.Name)
		if parseErr != nil {
			return nil, fmt.Errorf("seller member %q: %w", member.Name, parseErr)
		}
		location, locErr := kernel.NewLocation(member.Longitude, member.Latitude)
		if locErr != nil {
			return nil, locErr
		}
		sites = append(sites, ports.SellerSite{
			SellerID:       sellerID,
			Location:       location,
			DistanceMeters: member.Dist,
		})
	}

	return sites, nil
}

// Ping reports whether Redis answers.
func (s *LocationStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
