package queries

import (
	"context"
	"errors"

	"printdelivery/internal/core/domain/model/kernel"
	"printdelivery/internal/core/domain/model/location"
	"printdelivery/internal/core/ports"
	"printdelivery/internal/pkg/errs"
	"printdelivery/internal/pkg/guard"
)

var ErrSearchLocationsQueryIsNotConstructed = errors.New(
	"SearchLocationsQuery must be created via NewSearchLocationsQuery constructor",
)

// SearchLocationsQuery looks fixed delivery points up by name. The session id
// is optional; with one, the caller's recent picks are listed first.
//
// Example:
//
//	origin, _ := kernel.NewGeoPoint(21.03, 105.85)
//	query, err := NewSearchLocationsQuery(sessionID, "ho", &origin, 5, location.SortByDistance)
//	if err != nil {
//	    return err
//	}
//	hits, _ := handler.Handle(ctx, query)
type SearchLocationsQuery struct {
	sessionID string
	text      string
	origin    *kernel.GeoPoint
	limit     int
	sort      location.SortKey

	guard guard.ConstructorGuard
}

// NewSearchLocationsQuery clamps limit to [1, location.MaxLimit]; zero means
// location.DefaultLimit.
func NewSearchLocationsQuery(
	sessionID, text string,
	origin *kernel.GeoPoint,
	limit int,
	sort location.SortKey,
) (SearchLocationsQuery, error) {
	if limit < 0 {
		return SearchLocationsQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 0, location.MaxLimit)
	}
	if origin != nil {
		if err := origin.Validate(); err != nil {
			return SearchLocationsQuery{}, err
		}
		o := *origin
		origin = &o
	}

	return SearchLocationsQuery{
		sessionID: sessionID,
		text:      text,
		origin:    origin,
		limit:     clampLimit(limit),
		sort:      sort,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q SearchLocationsQuery) Validate() error {
	return q.guard.Validate(ErrSearchLocationsQueryIsNotConstructed)
}

func (q SearchLocationsQuery) SessionID() string {
	return q.sessionID
}

func (q SearchLocationsQuery) Search() location.SearchQuery {
	return location.SearchQuery{
		Text:   q.text,
		Origin: q.origin,
		Limit:  q.limit,
		Sort:   q.sort,
	}
}

type SearchLocationsQueryHandler struct {
	index    *location.Index
	sessions ports.SessionStore
}

func NewSearchLocationsQueryHandler(index *location.Index, sessions ports.SessionStore) SearchLocationsQueryHandler {
	return SearchLocationsQueryHandler{index: index, sessions: sessions}
}

func (h SearchLocationsQueryHandler) Handle(_ context.Context, query SearchLocationsQuery) ([]location.Candidate, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var session *location.Session
	if query.SessionID() != "" {
		session = h.sessions.Session(query.SessionID())
	}
	return h.index.Search(query.Search(), session), nil
}

func clampLimit(limit int) int {
	switch {
	case limit == 0:
		return location.DefaultLimit
	case limit > location.MaxLimit:
		return location.MaxLimit
	default:
		return limit
	}
}
