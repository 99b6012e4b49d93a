package location

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"printdelivery/internal/core/domain/model/kernel"
	"printdelivery/internal/core/domain/model/zone"
	"printdelivery/internal/pkg/errs"
)

const (
	DefaultLimit = 10
	MaxLimit     = 50
)

// SortKey selects the ordering of search results.
type SortKey int

const (
	SortByDistance SortKey = iota
	SortByPopular
	SortByFee
)

func ParseSortKey(name string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "distance":
		return SortByDistance, nil
	case "popular":
		return SortByPopular, nil
	case "fee":
		return SortByFee, nil
	default:
		return SortByDistance, errs.NewValueIsInvalidErrorWithCause("sort", fmt.Errorf("%q is not a sort key", name))
	}
}

func (k SortKey) String() string {
	switch k {
	case SortByPopular:
		return "popular"
	case SortByFee:
		return "fee"
	default:
		return "distance"
	}
}

// FeeAnnotator prices a point; *zone.Validator satisfies it.
type FeeAnnotator interface {
	Validate(p kernel.GeoPoint) (zone.Validation, error)
}

// SearchQuery filters by Text and ranks by Sort. Without an Origin, SortByDistance
// keeps insertion order.
type SearchQuery struct {
	Text   string
	Origin *kernel.GeoPoint
	Limit  int
	Sort   SortKey
}

// Candidate is a search hit. DistanceKm is meaningful only when HasDistance is set.
type Candidate struct {
	Location    FixedLocation
	DistanceKm  float64
	HasDistance bool
	Recent      bool
}

type entry struct {
	loc    FixedLocation
	folded string
	order  int
}

// Index is the read-only registry of fixed delivery points.
type Index struct {
	entries []entry
	byID    map[string]int
}

// NewIndex annotates every location with its zone fee and label. A location the
// zone rejects, a duplicate id or a blank name fails the whole load.
func NewIndex(annotator FeeAnnotator, locations []FixedLocation) (*Index, error) {
	idx := &Index{
		entries: make([]entry, 0, len(locations)),
		byID:    make(map[string]int, len(locations)),
	}

	var problems []error
	for i, loc := range locations {
		loc.ID = strings.TrimSpace(loc.ID)
		if loc.ID == "" {
			problems = append(problems, errs.NewValueIsRequiredError(fmt.Sprintf("location %d id", i)))
			continue
		}
		if strings.TrimSpace(loc.Name) == "" {
			problems = append(problems, errs.NewValueIsRequiredError(fmt.Sprintf("location %s name", loc.ID)))
			continue
		}
		if _, dup := idx.byID[loc.ID]; dup {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("location id", fmt.Errorf("duplicate id %q", loc.ID)))
			continue
		}

		v, err := annotator.Validate(loc.Point)
		if err != nil {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("location %s point", loc.ID), err))
			continue
		}
		if !v.Valid {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("location %s", loc.ID), fmt.Errorf("%s: %s", v.Reason, v.Message)))
			continue
		}

		loc.Fee = v.Fee
		loc.ZoneLabel = v.ZoneLabel
		idx.byID[loc.ID] = len(idx.entries)
		idx.entries = append(idx.entries, entry{loc: loc, folded: fold(loc.Name), order: len(idx.entries)})
	}

	if err := errors.Join(problems...); err != nil {
		return nil, err
	}
	return idx, nil
}

func (x *Index) Len() int {
	return len(x.entries)
}

func (x *Index) Get(id string) (FixedLocation, bool) {
	i, ok := x.byID[id]
	if !ok {
		return FixedLocation{}, false
	}
	return x.entries[i].loc, true
}

// All returns the locations in insertion order.
func (x *Index) All() []FixedLocation {
	out := make([]FixedLocation, len(x.entries))
	for i, e := range x.entries {
		out[i] = e.loc
	}
	return out
}

// Choose records id as the session's most recent pick.
func (x *Index) Choose(session *Session, id string) (FixedLocation, error) {
	loc, ok := x.Get(id)
	if !ok {
		return FixedLocation{}, errs.NewObjectNotFoundError("locationID", id)
	}
	if session != nil {
		session.Remember(id)
	}
	return loc, nil
}

// Search returns name matches ranked by q.Sort with ties in insertion order.
// Matches the session picked recently come first, most recent first.
// session may be nil.
func (x *Index) Search(q SearchQuery, session *Session) []Candidate {
	needle := fold(q.Text)

	hits := make([]Candidate, 0, len(x.entries))
	order := make(map[string]int, len(x.entries))
	for _, e := range x.entries {
		if needle != "" && !strings.Contains(e.folded, needle) {
			continue
		}
		hits = append(hits, x.candidate(e, q.Origin))
		order[e.loc.ID] = e.order
	}

	slices.SortStableFunc(hits, func(a, b Candidate) int {
		if c := compareBy(q.Sort, a, b); c != 0 {
			return c
		}
		return order[a.Location.ID] - order[b.Location.ID]
	})

	hits = preferRecent(hits, session.Recent())
	return truncate(hits, q.Limit)
}

// NearestPopular lists popular locations closest first.
func (x *Index) NearestPopular(origin kernel.GeoPoint, limit int) []Candidate {
	hits := make([]Candidate, 0, len(x.entries))
	for _, e := range x.entries {
		if e.loc.Popular {
			hits = append(hits, x.candidate(e, &origin))
		}
	}
	slices.SortStableFunc(hits, func(a, b Candidate) int {
		return compareBy(SortByDistance, a, b)
	})
	return truncate(hits, limit)
}

func (x *Index) candidate(e entry, origin *kernel.GeoPoint) Candidate {
	c := Candidate{Location: e.loc}
	if origin != nil {
		if km, err := origin.DistanceTo(e.loc.Point); err == nil {
			c.DistanceKm = km
			c.HasDistance = true
		}
	}
	return c
}

func compareBy(key SortKey, a, b Candidate) int {
	switch key {
	case SortByPopular:
		switch {
		case a.Location.Popular == b.Location.Popular:
			return 0
		case a.Location.Popular:
			return -1
		default:
			return 1
		}
	case SortByFee:
		return a.Location.Fee.Cmp(b.Location.Fee)
	default:
		if !a.HasDistance || !b.HasDistance {
			return 0
		}
		switch {
		case a.DistanceKm < b.DistanceKm:
			return -1
		case a.DistanceKm > b.DistanceKm:
			return 1
		default:
			return 0
		}
	}
}

func preferRecent(hits []Candidate, recent []string) []Candidate {
	if len(recent) == 0 {
		return hits
	}

	front := make([]Candidate, 0, len(recent))
	rest := make([]Candidate, 0, len(hits))
	for _, id := range recent {
		for _, h := range hits {
			if h.Location.ID == id {
				h.Recent = true
				front = append(front, h)
				break
			}
		}
	}
	for _, h := range hits {
		if !slices.Contains(recent, h.Location.ID) {
			rest = append(rest, h)
		}
	}
	return append(front, rest...)
}

func truncate(hits []Candidate, limit int) []Candidate {
	switch {
	case limit <= 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	if len(hits) > limit {
		return hits[:limit]
	}
	return hits
}
