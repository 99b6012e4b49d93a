// Package ports defines the contracts between the order core and its collaborators:
// persistence, event fan-out, driver positions and search sessions.
package ports

import (
	"context"

	"printdelivery/internal/core/domain/model/kernel"
	"printdelivery/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates with their status timeline.
type OrderRepository interface {
	// Add persists a new order. The order must be valid and not already stored.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the current status, driver and any new timeline entries.
	// Existing timeline entries are never rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns the order or an errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInStatus returns every order currently in one of the given statuses,
	// oldest first.
	//
	// Example:
	//   active, err := repo.GetAllInStatus(ctx, order.StatusOutForDelivery)
	//   if err != nil {
	//       return fmt.Errorf("failed to load orders on the road: %w", err)
	//   }
	GetAllInStatus(ctx context.Context, statuses ...order.Status) ([]*order.Order, error)
}
