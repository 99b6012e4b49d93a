package queries

import (
	"context"
	"errors"

	"printdelivery/internal/core/domain/model/kernel"
	"printdelivery/internal/core/domain/model/location"
	"printdelivery/internal/pkg/errs"
	"printdelivery/internal/pkg/guard"
)

var ErrNearestPopularQueryIsNotConstructed = errors.New(
	"NearestPopularQuery must be created via NewNearestPopularQuery constructor",
)

// NearestPopularQuery suggests popular delivery points close to the caller.
type NearestPopularQuery struct {
	origin kernel.GeoPoint
	limit  int

	guard guard.ConstructorGuard
}

func NewNearestPopularQuery(origin kernel.GeoPoint, limit int) (NearestPopularQuery, error) {
	if err := origin.Validate(); err != nil {
		return NearestPopularQuery{}, err
	}
	if limit < 0 {
		return NearestPopularQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 0, location.MaxLimit)
	}
	return NearestPopularQuery{
		origin: origin,
		limit:  clampLimit(limit),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q NearestPopularQuery) Validate() error {
	return q.guard.Validate(ErrNearestPopularQueryIsNotConstructed)
}

func (q NearestPopularQuery) Origin() kernel.GeoPoint {
	return q.origin
}

func (q NearestPopularQuery) Limit() int {
	return q.limit
}

type NearestPopularQueryHandler struct {
	index *location.Index
}

func NewNearestPopularQueryHandler(index *location.Index) NearestPopularQueryHandler {
	return NearestPopularQueryHandler{index: index}
}

func (h NearestPopularQueryHandler) Handle(_ context.Context, query NearestPopularQuery) ([]location.Candidate, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.index.NearestPopular(query.Origin(), query.Limit()), nil
}
