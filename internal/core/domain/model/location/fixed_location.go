package location

import (
	"strings"

	"printdelivery/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// FixedLocation is a named delivery point. Fee and ZoneLabel are filled by NewIndex
// from the zone validator and ignored on input.
type FixedLocation struct {
	ID        string
	Name      string
	Point     kernel.GeoPoint
	Popular   bool
	Fee       decimal.Decimal
	ZoneLabel string
}

func (l FixedLocation) IsEqual(other FixedLocation) bool {
	return l.ID == other.ID
}

func (l FixedLocation) String() string {
	return strings.TrimSpace(l.Name) + " (" + l.ID + ")"
}
