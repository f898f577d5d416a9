// Package memgeo is an in-process LocationStore for single-instance
// deployments and tests.
//
// Sites are kept in a B-tree ordered by latitude. A search walks only the
// latitude band that can contain points within the radius and filters that
// band by great-circle distance.
package memgeo

import (
	"cmp"
	"context"
	"errors"
	"math"
	"slices"
	"sync"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/google/btree"
)

const degree = 32

type site struct {
	lat      float64
	sellerID kernel.UUID
	location kernel.Location
}

func siteLess(a, b site) bool {
	if a.lat != b.lat {
		return a.lat < b.lat
	}
	return a.sellerID.String() < b.sellerID.String()
}

type LocationStore struct {
	mu       sync.RWMutex
	byLat    *btree.BTreeG[site]
	bySeller map[kernel.UUID]site
}

func NewLocationStore() *LocationStore {
	return &LocationStore{
		byLat:    btree.NewG[site](degree, siteLess),
		bySeller: make(map[kernel.UUID]site),
	}
}

func (s *LocationStore) SetSellerLocation(_ context.Context, sellerID kernel.UUID, location kernel.Location) error {
	if err := errors.Join(sellerID.Validate(), location.Validate()); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if previous, ok := s.bySeller[sellerID]; ok {
		s.byLat.Delete(previous)
	}

	entry := site{lat: location.Lat(), sellerID: sellerID, location: location}
	s.byLat.ReplaceOrInsert(entry)
	s.bySeller[sellerID] = entry
	return nil
}

func (s *LocationStore) SearchSellers(
	_ context.Context,
	center kernel.Location,
	radiusMeters float64,
) ([]ports.SellerSite, error) {
	if err := center.Validate(); err != nil {
		return nil, err
	}
	if radiusMeters <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("radius", radiusMeters, 0, nil)
	}

	band := radiusMeters / kernel.EarthRadiusMeters * 180 / math.Pi
	low := site{lat: center.Lat() - band}
	high := site{lat: math.Nextafter(center.Lat()+band, math.Inf(1))}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sites := make([]ports.SellerSite, 0)
	var distErr error
	s.byLat.AscendRange(low, high, func(entry site) bool {
		distance, err := center.DistanceTo(entry.location)
		if err != nil {
			distErr = err
			return false
		}
		if distance <= radiusMeters {
			sites = append(sites, ports.SellerSite{
				SellerID:       entry.sellerID,
				Location:       entry.location,
				DistanceMeters: distance,
			})
		}
		return true
	})
	if distErr != nil {
		return nil, distErr
	}

	slices.SortStableFunc(sites, func(a, b ports.SellerSite) int {
		return cmp.Compare(a.DistanceMeters, b.DistanceMeters)
	})

	return sites, nil
}

// Len is the number of sellers indexed.
func (s *LocationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bySeller)
}
