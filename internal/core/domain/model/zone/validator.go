package zone

import (
	"fmt"

	"printdelivery/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Reason names why a point was rejected.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonOutsideRegion
	ReasonExcludedZone
	ReasonTooFar
)

func (r Reason) String() string {
	switch r {
	case ReasonOutsideRegion:
		return "outside region"
	case ReasonExcludedZone:
		return "excluded zone"
	case ReasonTooFar:
		return "too far"
	default:
		return ""
	}
}

func (r Reason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Validation is the outcome of checking one point.
// DistanceKm is always filled, rejected or not.
type Validation struct {
	Point      kernel.GeoPoint
	Valid      bool
	DistanceKm float64
	Fee        decimal.Decimal
	Reason     Reason
	Message    string
	ZoneLabel  string
}

type Validator struct {
	cfg Config
}

// NewValidator refuses a Config whose fee cap disagrees with its fee curve at the
// maximum distance, so that the cap and the distance limit cannot drift apart.
func NewValidator(cfg Config) (*Validator, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Validator{cfg: cfg}, nil
}

func (v *Validator) Config() Config {
	return v.cfg
}

func (v *Validator) Origin() kernel.GeoPoint {
	return v.cfg.Origin
}

// Validate runs the region, exclusion and distance checks in that order.
// It fails only for a point that was not built by kernel.NewGeoPoint.
func (v *Validator) Validate(p kernel.GeoPoint) (Validation, error) {
	km, err := v.cfg.Origin.DistanceTo(p)
	if err != nil {
		return Validation{}, err
	}

	res := Validation{Point: p, DistanceKm: km}

	if !v.cfg.Region.Contains(p) {
		res.Reason = ReasonOutsideRegion
		res.Message = "delivery point is outside the service region"
		return res, nil
	}

	for _, ex := range v.cfg.Exclusions {
		if ex.Contains(p) {
			res.Reason = ReasonExcludedZone
			res.Message = "delivery point is inside an area we do not serve"
			if ex.Name != "" {
				res.Message = fmt.Sprintf("delivery point is inside %s, which we do not serve", ex.Name)
			}
			return res, nil
		}
	}

	if km > v.cfg.MaxDistanceKm {
		res.Reason = ReasonTooFar
		res.Message = fmt.Sprintf("delivery point is %.1f km away, beyond the %g km limit", km, v.cfg.MaxDistanceKm)
		return res, nil
	}

	res.Valid = true
	res.Fee = v.FeeForDistance(km)
	res.ZoneLabel = v.cfg.labelFor(km)
	return res, nil
}

// FeeForDistance is the fee curve: non-decreasing in km and equal to the cap
// from the maximum distance on.
func (v *Validator) FeeForDistance(km float64) decimal.Decimal {
	if km < 0 {
		km = 0
	}
	fee := v.cfg.FeeAt(km)
	if fee.GreaterThan(v.cfg.FeeCap) {
		return v.cfg.FeeCap
	}
	return fee
}

// ZoneLabel returns the band label for a distance, or "" when no band covers it.
func (v *Validator) ZoneLabel(km float64) string {
	return v.cfg.labelFor(km)
}
