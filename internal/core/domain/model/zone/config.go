package zone

import (
	"errors"
	"fmt"
	"sort"

	"printdelivery/internal/core/domain/model/kernel"
	"printdelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// BoundingBox approximates the serviceable administrative region.
type BoundingBox struct {
	MinLatitude  float64
	MaxLatitude  float64
	MinLongitude float64
	MaxLongitude float64
}

func (b BoundingBox) Contains(p kernel.GeoPoint) bool {
	return p.Latitude() >= b.MinLatitude && p.Latitude() <= b.MaxLatitude &&
		p.Longitude() >= b.MinLongitude && p.Longitude() <= b.MaxLongitude
}

func (b BoundingBox) validate() error {
	if b.MinLatitude >= b.MaxLatitude || b.MinLongitude >= b.MaxLongitude {
		return errs.NewValueIsInvalidErrorWithCause("region", fmt.Errorf("empty bounding box %+v", b))
	}
	return nil
}

// Exclusion is a circle inside the region that is not served.
type Exclusion struct {
	Name     string
	Center   kernel.GeoPoint
	RadiusKm float64
}

// Contains reports whether p lies within the circle, boundary included.
func (e Exclusion) Contains(p kernel.GeoPoint) bool {
	return kernel.Haversine(e.Center.Latitude(), e.Center.Longitude(), p.Latitude(), p.Longitude()) <= e.RadiusKm
}

// Band labels deliveries up to MaxKm from the origin.
type Band struct {
	Label string
	MaxKm float64
}

// Config holds every tunable of the validator. Nothing in this package hard-codes
// a region.
type Config struct {
	Origin        kernel.GeoPoint
	Region        BoundingBox
	Exclusions    []Exclusion
	MaxDistanceKm float64
	BaseFare      decimal.Decimal
	PerKm         decimal.Decimal
	FeeCap        decimal.Decimal
	// FeePlaces is the number of decimal places fees are rounded to; 0 for VND.
	FeePlaces int32
	Bands     []Band
}

// FeeAt is the uncapped, rounded fee curve: BaseFare + km * PerKm.
func (c Config) FeeAt(km float64) decimal.Decimal {
	return c.BaseFare.Add(decimal.NewFromFloat(km).Mul(c.PerKm)).Round(c.FeePlaces)
}

func (c Config) validate() error {
	var problems []error

	if err := c.Origin.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("origin", err))
	}
	problems = append(problems, c.Region.validate())
	if c.Origin.Validate() == nil && !c.Region.Contains(c.Origin) {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("origin", errors.New("origin lies outside the region")))
	}

	for i, ex := range c.Exclusions {
		if err := ex.Center.Validate(); err != nil {
			problems = append(problems, errs.NewValueIsRequiredErrorWithCause(fmt.Sprintf("exclusion %d center", i), err))
			continue
		}
		if ex.RadiusKm <= 0 {
			problems = append(problems, errs.NewValueIsOutOfRangeError(fmt.Sprintf("exclusion %d radius", i), ex.RadiusKm, 0, "+inf"))
		}
		if c.Origin.Validate() == nil && ex.Contains(c.Origin) {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("origin", fmt.Errorf("origin lies inside exclusion %q", ex.Name)))
		}
	}

	if c.MaxDistanceKm <= 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("max distance", c.MaxDistanceKm, 0, "+inf"))
	}
	if c.BaseFare.IsNegative() {
		problems = append(problems, errs.NewValueIsOutOfRangeError("base fare", c.BaseFare, 0, "+inf"))
	}
	if c.PerKm.IsNegative() {
		problems = append(problems, errs.NewValueIsOutOfRangeError("per km rate", c.PerKm, 0, "+inf"))
	}
	if c.FeePlaces < 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("fee places", c.FeePlaces, 0, "+inf"))
	}
	if expected := c.FeeAt(c.MaxDistanceKm); !c.FeeCap.Equal(expected) {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("fee cap",
			fmt.Errorf("cap %s must equal base fare + max distance * per km rate = %s", c.FeeCap, expected)))
	}

	if len(c.Bands) > 0 {
		if !sort.SliceIsSorted(c.Bands, func(i, j int) bool { return c.Bands[i].MaxKm < c.Bands[j].MaxKm }) {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("bands", errors.New("bands must be ordered by distance")))
		}
		if last := c.Bands[len(c.Bands)-1]; last.MaxKm < c.MaxDistanceKm {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("bands",
				fmt.Errorf("last band ends at %g km, before the max distance %g km", last.MaxKm, c.MaxDistanceKm)))
		}
	}

	return errors.Join(problems...)
}

func (c Config) labelFor(km float64) string {
	for _, b := range c.Bands {
		if km <= b.MaxKm {
			return b.Label
		}
	}
	return ""
}
