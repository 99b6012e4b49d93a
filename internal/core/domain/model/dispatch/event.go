package dispatch

import (
	"errors"
	"time"

	"printdelivery/internal/core/domain/model/kernel"
	"printdelivery/internal/core/domain/model/order"
	"printdelivery/internal/pkg/errs"
)

type EventKind int

const (
	KindUnknown EventKind = iota
	KindStatusChanged
	KindLocationUpdated
)

func (k EventKind) String() string {
	switch k {
	case KindStatusChanged:
		return "status_changed"
	case KindLocationUpdated:
		return "location_updated"
	default:
		return "unknown"
	}
}

func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Event is a status change (From, Status) or a driver location update (Point,
// DriverID). The broadcaster keeps no history of them.
type Event struct {
	Kind       EventKind
	OrderID    kernel.UUID
	OccurredAt time.Time
	From       order.Status
	Status     order.Status
	Point      *kernel.GeoPoint
	DriverID   *kernel.UUID
}

// StatusChangedEvent converts a committed aggregate event.
func StatusChangedEvent(sc order.StatusChanged) Event {
	return Event{
		Kind:       KindStatusChanged,
		OrderID:    sc.OrderID,
		OccurredAt: sc.OccurredAt,
		From:       sc.Transition.From,
		Status:     sc.Transition.To,
		DriverID:   sc.DriverID,
	}
}

// LocationUpdatedEvent reports where the driver of orderID currently is.
func LocationUpdatedEvent(orderID, driverID kernel.UUID, point kernel.GeoPoint, at time.Time) (Event, error) {
	if err := errors.Join(orderID.Validate(), driverID.Validate(), point.Validate()); err != nil {
		return Event{}, err
	}
	if at.IsZero() {
		return Event{}, errs.NewValueIsRequiredError("occurredAt")
	}
	return Event{
		Kind:       KindLocationUpdated,
		OrderID:    orderID,
		OccurredAt: at,
		Point:      &point,
		DriverID:   &driverID,
	}, nil
}

func (e Event) IsStatusChange() bool {
	return e.Kind == KindStatusChanged
}

func (e Event) IsLocationUpdate() bool {
	return e.Kind == KindLocationUpdated
}
