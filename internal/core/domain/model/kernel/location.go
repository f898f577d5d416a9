package kernel

import (
	"errors"
	"fmt"
	"math"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

const (
	LongitudeMin = -180.0
	LongitudeMax = 180.0
	LatitudeMin  = -90.0
	LatitudeMax  = 90.0

	// EarthRadiusMeters is the mean radius used for great-circle distances.
	EarthRadiusMeters = 6371008.8
)

var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation or NewLocationFromPair")

// Location is a WGS84 point. Coordinates travel as [lng, lat] pairs on the wire,
// the same order GeoJSON and Redis GEO commands use.
type Location struct { //nolint:recvcheck //using for validation
	lng   float64
	lat   float64
	guard guard.ConstructorGuard
}

// NewLocation builds a geographic point.
//
// Parameters:
//   - lng: longitude in degrees, within [-180, 180]
//   - lat: latitude in degrees, within [-90, 90]
//
// Returns:
//   - Location: the validated point
//   - error: ValueIsOutOfRange for each coordinate outside its range, joined
//
// Example:
//
//	farm, err := kernel.NewLocation(77.5946, 12.9716)
//	if err != nil {
//	    return err
//	}
func NewLocation(lng, lat float64) (Location, error) {
	loc := Location{guard: guard.NewConstructorGuard()}

	if err := errors.Join(loc.setLng(lng), loc.setLat(lat)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// NewLocationFromPair accepts exactly two numbers ordered [lng, lat].
func NewLocationFromPair(coordinates []float64) (Location, error) {
	if len(coordinates) != 2 {
		return Location{}, errs.NewValueIsInvalidErrorWithCause(
			"coordinates",
			fmt.Errorf("expected [lng, lat], got %d values", len(coordinates)),
		)
	}
	return NewLocation(coordinates[0], coordinates[1])
}

func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

func (l Location) Lng() float64 {
	return l.lng
}

func (l Location) Lat() float64 {
	return l.lat
}

// Pair returns the coordinates as [lng, lat].
func (l Location) Pair() [2]float64 {
	return [2]float64{l.lng, l.lat}
}

func (l Location) String() string {
	return fmt.Sprintf("Location(%.6f,%.6f)", l.lng, l.lat)
}

// DistanceTo returns the haversine distance in metres.
func (l Location) DistanceTo(other Location) (float64, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1 := toRadians(l.lat)
	lat2 := toRadians(other.lat)
	dLat := lat2 - lat1
	dLng := toRadians(other.lng - l.lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * EarthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h))), nil
}

func (l *Location) setLng(lng float64) error {
	if math.IsNaN(lng) || lng < LongitudeMin || lng > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("lng", lng, LongitudeMin, LongitudeMax)
	}
	l.lng = lng
	return nil
}

func (l *Location) setLat(lat float64) error {
	if math.IsNaN(lat) || lat < LatitudeMin || lat > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("lat", lat, LatitudeMin, LatitudeMax)
	}
	l.lat = lat
	return nil
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
