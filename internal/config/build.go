package config

import (
	"errors"
	"fmt"

	"printdelivery/internal/core/domain/model/kernel"
	"printdelivery/internal/core/domain/model/location"
	"printdelivery/internal/core/domain/model/pricing"
	"printdelivery/internal/core/domain/model/zone"

	"github.com/shopspring/decimal"
)

// Domain is the set of read-only domain services built from the settings.
type Domain struct {
	Calculator *pricing.Calculator
	Validator  *zone.Validator
	Locations  *location.Index
}

// Build turns the settings into domain services. Any inconsistency (broken tier
// ladder, fee cap that disagrees with the fee curve, location outside the
// zone) fails the whole build.
func (s Settings) Build() (Domain, error) {
	card, err := s.RateCard()
	if err != nil {
		return Domain{}, fmt.Errorf("pricing: %w", err)
	}

	zoneCfg, err := s.ZoneConfig()
	if err != nil {
		return Domain{}, fmt.Errorf("zone: %w", err)
	}
	validator, err := zone.NewValidator(zoneCfg)
	if err != nil {
		return Domain{}, fmt.Errorf("zone: %w", err)
	}

	locs, err := s.FixedLocations()
	if err != nil {
		return Domain{}, fmt.Errorf("locations: %w", err)
	}
	index, err := location.NewIndex(validator, locs)
	if err != nil {
		return Domain{}, fmt.Errorf("locations: %w", err)
	}

	return Domain{
		Calculator: pricing.NewCalculator(card),
		Validator:  validator,
		Locations:  index,
	}, nil
}

func (s Settings) RateCard() (pricing.RateCard, error) {
	p := s.Pricing
	spec := pricing.RateCardSpec{
		Currency:           p.Currency,
		MonochromeDiscount: p.MonochromeDiscount,
		Plain:              make(map[pricing.Size]map[pricing.PrintMode][]pricing.Tier, len(p.Plain)),
		Specialty:          make(map[pricing.Size]map[pricing.Paper][]pricing.Tier, len(p.Specialty)),
		LargeFormat:        make(map[pricing.Size]decimal.Decimal, len(p.LargeFormat)),
	}

	var problems []error
	for sizeName, modes := range p.Plain {
		size, err := pricing.ParseSize(sizeName)
		if err != nil {
			problems = append(problems, err)
			continue
		}
		spec.Plain[size] = make(map[pricing.PrintMode][]pricing.Tier, len(modes))
		for modeName, ladder := range modes {
			mode, err := pricing.ParsePrintMode(modeName)
			if err != nil {
				problems = append(problems, err)
				continue
			}
			spec.Plain[size][mode] = tiers(ladder)
		}
	}

	for sizeName, papers := range p.Specialty {
		size, err := pricing.ParseSize(sizeName)
		if err != nil {
			problems = append(problems, err)
			continue
		}
		spec.Specialty[size] = make(map[pricing.Paper][]pricing.Tier, len(papers))
		for paperName, ladder := range papers {
			paper, err := pricing.ParsePaper(paperName)
			if err != nil {
				problems = append(problems, err)
				continue
			}
			spec.Specialty[size][paper] = tiers(ladder)
		}
	}

	for sizeName, rate := range p.LargeFormat {
		size, err := pricing.ParseSize(sizeName)
		if err != nil {
			problems = append(problems, err)
			continue
		}
		spec.LargeFormat[size] = rate
	}

	if err := errors.Join(problems...); err != nil {
		return pricing.RateCard{}, err
	}
	return pricing.NewRateCard(spec)
}

func (s Settings) ZoneConfig() (zone.Config, error) {
	z := s.Zone

	origin, err := z.Origin.point()
	if err != nil {
		return zone.Config{}, fmt.Errorf("origin: %w", err)
	}

	exclusions := make([]zone.Exclusion, 0, len(z.Exclusions))
	for _, e := range z.Exclusions {
		center, err := e.Center.point()
		if err != nil {
			return zone.Config{}, fmt.Errorf("exclusion %q: %w", e.Name, err)
		}
		exclusions = append(exclusions, zone.Exclusion{Name: e.Name, Center: center, RadiusKm: e.RadiusKm})
	}

	bands := make([]zone.Band, 0, len(z.Bands))
	for _, b := range z.Bands {
		bands = append(bands, zone.Band{Label: b.Label, MaxKm: b.MaxKm})
	}

	return zone.Config{
		Origin: origin,
		Region: zone.BoundingBox{
			MinLatitude:  z.Region.MinLatitude,
			MaxLatitude:  z.Region.MaxLatitude,
			MinLongitude: z.Region.MinLongitude,
			MaxLongitude: z.Region.MaxLongitude,
		},
		Exclusions:    exclusions,
		MaxDistanceKm: z.MaxDistanceKm,
		BaseFare:      z.BaseFare,
		PerKm:         z.PerKm,
		FeeCap:        z.FeeCap,
		FeePlaces:     z.FeePlaces,
		Bands:         bands,
	}, nil
}

// FixedLocations returns the configured points in file order, which is also
// the tie-break order of searches.
func (s Settings) FixedLocations() ([]location.FixedLocation, error) {
	out := make([]location.FixedLocation, 0, len(s.Locations))
	for _, l := range s.Locations {
		p, err := kernel.NewGeoPoint(l.Latitude, l.Longitude)
		if err != nil {
			return nil, fmt.Errorf("location %q: %w", l.ID, err)
		}
		out = append(out, location.FixedLocation{
			ID:      l.ID,
			Name:    l.Name,
			Point:   p.WithAddress(l.Name),
			Popular: l.Popular,
		})
	}
	return out, nil
}

func (p PointSettings) point() (kernel.GeoPoint, error) {
	gp, err := kernel.NewGeoPoint(p.Latitude, p.Longitude)
	if err != nil {
		return kernel.GeoPoint{}, err
	}
	return gp.WithAddress(p.Address), nil
}

func tiers(ladder []TierSettings) []pricing.Tier {
	out := make([]pricing.Tier, 0, len(ladder))
	for _, t := range ladder {
		out = append(out, pricing.Tier{MinPages: t.MinPages, MaxPages: t.MaxPages, Rate: t.Rate})
	}
	return out
}
