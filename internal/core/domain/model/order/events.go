package order

import (
	"time"

	"printdelivery/internal/core/domain/model/kernel"
)

// StatusChanged is recorded by the aggregate for every accepted transition and
// drained by the unit of work once the change is committed.
type StatusChanged struct {
	OrderID    kernel.UUID
	Transition Transition
	OccurredAt time.Time
	// DriverID is set when the order has an assigned driver.
	DriverID *kernel.UUID
}
