package eventrelay

import (
	"encoding/json"
	"fmt"
	"time"

	"printdelivery/internal/core/domain/model/dispatch"
	"printdelivery/internal/core/domain/model/kernel"
	"printdelivery/internal/core/domain/model/order"
	"printdelivery/internal/pkg/errs"
)

// maxPayloadBytes is the NOTIFY payload limit of a default PostgreSQL build.
const maxPayloadBytes = 8000

type pointMessage struct {
	Latitude  float64  `json:"lat"`
	Longitude float64  `json:"lng"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
	Address   string   `json:"address,omitempty"`
}

type message struct {
	Kind       string        `json:"kind"`
	OrderID    kernel.UUID   `json:"orderId"`
	OccurredAt time.Time     `json:"occurredAt"`
	From       *order.Status `json:"from,omitempty"`
	Status     *order.Status `json:"status,omitempty"`
	Point      *pointMessage `json:"point,omitempty"`
	DriverID   *kernel.UUID  `json:"driverId,omitempty"`
}

// Encode renders an event as a NOTIFY payload.
func Encode(ev dispatch.Event) ([]byte, error) {
	m := message{
		Kind:       ev.Kind.String(),
		OrderID:    ev.OrderID,
		OccurredAt: ev.OccurredAt.UTC(),
		DriverID:   ev.DriverID,
	}

	switch ev.Kind {
	case dispatch.KindStatusChanged:
		from, status := ev.From, ev.Status
		if ev.From != order.StatusUnknown {
			m.From = &from
		}
		m.Status = &status
	case dispatch.KindLocationUpdated:
		if ev.Point == nil {
			return nil, errs.NewValueIsRequiredError("point")
		}
		p := &pointMessage{
			Latitude:  ev.Point.Latitude(),
			Longitude: ev.Point.Longitude(),
			Address:   ev.Point.Address(),
		}
		if acc, ok := ev.Point.Accuracy(); ok {
			p.Accuracy = &acc
		}
		m.Point = p
	default:
		return nil, errs.NewValueIsInvalidError("kind")
	}

	payload, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	if len(payload) > maxPayloadBytes {
		return nil, errs.NewValueIsOutOfRangeError("payload", len(payload), 0, maxPayloadBytes)
	}
	return payload, nil
}

// Decode parses a payload produced by Encode.
func Decode(payload []byte) (dispatch.Event, error) {
	var m message
	if err := json.Unmarshal(payload, &m); err != nil {
		return dispatch.Event{}, fmt.Errorf("decode relay payload: %w", err)
	}
	if err := m.OrderID.Validate(); err != nil {
		return dispatch.Event{}, err
	}

	switch m.Kind {
	case dispatch.KindStatusChanged.String():
		if m.Status == nil {
			return dispatch.Event{}, errs.NewValueIsRequiredError("status")
		}
		ev := dispatch.Event{
			Kind:       dispatch.KindStatusChanged,
			OrderID:    m.OrderID,
			OccurredAt: m.OccurredAt,
			Status:     *m.Status,
			DriverID:   m.DriverID,
		}
		if m.From != nil {
			ev.From = *m.From
		}
		return ev, nil

	case dispatch.KindLocationUpdated.String():
		if m.Point == nil || m.DriverID == nil {
			return dispatch.Event{}, errs.NewValueIsRequiredError("point")
		}
		point, err := kernel.NewGeoPoint(m.Point.Latitude, m.Point.Longitude)
		if err != nil {
			return dispatch.Event{}, err
		}
		if m.Point.Accuracy != nil {
			if point, err = point.WithAccuracy(*m.Point.Accuracy); err != nil {
				return dispatch.Event{}, err
			}
		}
		point = point.WithAddress(m.Point.Address)
		return dispatch.LocationUpdatedEvent(m.OrderID, *m.DriverID, point, m.OccurredAt)

	default:
		return dispatch.Event{}, errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("unknown event kind %q", m.Kind))
	}
}
