package queries

import (
	"context"
	"errors"

	"printdelivery/internal/core/domain/model/kernel"
	"printdelivery/internal/core/domain/model/zone"
	"printdelivery/internal/pkg/guard"
)

var ErrValidateDeliveryQueryIsNotConstructed = errors.New(
	"ValidateDeliveryQuery must be created via NewValidateDeliveryQuery constructor",
)

// ValidateDeliveryQuery checks whether a point can be delivered to and at
// what fee.
type ValidateDeliveryQuery struct {
	point kernel.GeoPoint

	guard guard.ConstructorGuard
}

func NewValidateDeliveryQuery(point kernel.GeoPoint) (ValidateDeliveryQuery, error) {
	if err := point.Validate(); err != nil {
		return ValidateDeliveryQuery{}, err
	}
	return ValidateDeliveryQuery{point: point, guard: guard.NewConstructorGuard()}, nil
}

func (q ValidateDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrValidateDeliveryQueryIsNotConstructed)
}

func (q ValidateDeliveryQuery) Point() kernel.GeoPoint {
	return q.point
}

type ValidateDeliveryQueryHandler struct {
	validator *zone.Validator
}

func NewValidateDeliveryQueryHandler(validator *zone.Validator) ValidateDeliveryQueryHandler {
	return ValidateDeliveryQueryHandler{validator: validator}
}

// Handle reports rejections in the returned Validation, never as an error.
func (h ValidateDeliveryQueryHandler) Handle(_ context.Context, query ValidateDeliveryQuery) (zone.Validation, error) {
	if err := query.Validate(); err != nil {
		return zone.Validation{}, err
	}
	return h.validator.Validate(query.Point())
}
