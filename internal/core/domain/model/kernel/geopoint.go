package kernel

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"printdelivery/internal/pkg/errs"
	"printdelivery/internal/pkg/guard"
)

const (
	// MinLatitude and MaxLatitude bound WGS84 latitudes in degrees.
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0

	// EarthRadiusKm is the mean earth radius used by the haversine formula.
	EarthRadiusKm = 6371.0
)

// ErrGeoPointIsNotConstructed is returned when a zero GeoPoint is used.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError("geo point must be created via NewGeoPoint")

// GeoPoint is a WGS84 coordinate. Accuracy (metres) and a human readable
// address are optional; neither takes part in distance calculations.
//
// Example:
//
//	shop, _ := kernel.NewGeoPoint(21.0285, 105.8542)
//	dest, _ := kernel.NewGeoPoint(21.0368, 105.8342)
//	dest = dest.WithAddress("Ba Dinh Square")
//
//	km, _ := shop.DistanceTo(dest) // ~2.3
type GeoPoint struct { //nolint:recvcheck //using for validation
	latitude    float64
	longitude   float64
	accuracy    float64
	hasAccuracy bool
	address     string
	guard       guard.ConstructorGuard
}

// NewGeoPoint validates latitude and longitude ranges and rejects NaN or infinite values.
// Both coordinate errors are reported together.
func NewGeoPoint(latitude, longitude float64) (GeoPoint, error) {
	p := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setLatitude(latitude), p.setLongitude(longitude)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// Validate reports whether the point was built by NewGeoPoint.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// Accuracy returns the reported horizontal accuracy in metres, if any.
func (p GeoPoint) Accuracy() (float64, bool) {
	return p.accuracy, p.hasAccuracy
}

func (p GeoPoint) Address() string {
	return p.address
}

// WithAccuracy returns a copy carrying the given accuracy in metres.
func (p GeoPoint) WithAccuracy(metres float64) (GeoPoint, error) {
	if math.IsNaN(metres) || math.IsInf(metres, 0) || metres < 0 {
		return GeoPoint{}, errs.NewValueIsInvalidErrorWithCause(
			"accuracy",
			fmt.Errorf("%v is not a non-negative number of metres", metres),
		)
	}
	p.accuracy = metres
	p.hasAccuracy = true
	return p, nil
}

// WithAddress returns a copy carrying a trimmed, human readable address.
func (p GeoPoint) WithAddress(address string) GeoPoint {
	p.address = strings.TrimSpace(address)
	return p
}

// String renders the coordinate with six decimals (about 10 cm).
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%.6f,%.6f)", p.latitude, p.longitude)
}

// IsEqual compares coordinates only.
func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p.latitude == other.latitude && p.longitude == other.longitude
}

// DistanceTo returns the great-circle distance in kilometres using the
// haversine formula on a sphere of radius EarthRadiusKm.
// The result is symmetric and zero for identical points.
func (p GeoPoint) DistanceTo(other GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	return Haversine(p.latitude, p.longitude, other.latitude, other.longitude), nil
}

// Haversine computes the great-circle distance in kilometres between two
// coordinates given in degrees.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := toRadians(lat1)
	phi2 := toRadians(lat2)
	dPhi := toRadians(lat2 - lat1)
	dLambda := toRadians(lng2 - lng1)

	sinPhi := math.Sin(dPhi / 2)
	sinLambda := math.Sin(dLambda / 2)
	a := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func (p *GeoPoint) setLatitude(latitude float64) error {
	if math.IsNaN(latitude) || latitude < MinLatitude || latitude > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, MinLatitude, MaxLatitude)
	}
	p.latitude = latitude
	return nil
}

func (p *GeoPoint) setLongitude(longitude float64) error {
	if math.IsNaN(longitude) || longitude < MinLongitude || longitude > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, MinLongitude, MaxLongitude)
	}
	p.longitude = longitude
	return nil
}
