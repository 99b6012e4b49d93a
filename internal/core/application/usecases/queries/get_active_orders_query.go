package queries

import (
	"errors"

	"printdelivery/internal/core/domain/model/order"
	"printdelivery/internal/pkg/guard"
)

var (
	ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
		"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
	)
)

// GetActiveOrdersQuery lists the orders staff still have to work on.
// Without statuses it returns every order that is not delivered or cancelled.
//
// Example:
//
//	query, err := NewGetActiveOrdersQuery(order.StatusReadyDelivery)
//	if err != nil {
//	    return err
//	}
//	waiting, err := handler.Handle(ctx, query)
//	fmt.Printf("%d orders wait for a driver\n", len(waiting))
type GetActiveOrdersQuery struct {
	statuses []order.Status

	guard guard.ConstructorGuard
}

func NewGetActiveOrdersQuery(statuses ...order.Status) (GetActiveOrdersQuery, error) {
	for _, s := range statuses {
		if err := s.Validate(); err != nil {
			return GetActiveOrdersQuery{}, err
		}
	}

	if len(statuses) == 0 {
		for _, s := range order.AllStatuses() {
			if !s.IsTerminal() {
				statuses = append(statuses, s)
			}
		}
	}

	return GetActiveOrdersQuery{
		statuses: statuses,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

func (q GetActiveOrdersQuery) Statuses() []order.Status {
	return q.statuses
}
