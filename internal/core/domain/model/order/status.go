package order

import (
	"fmt"
	"slices"

	"printdelivery/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
//	new ─> staff_received ─> printing ─┬─> ready_pickup ──────────────────────────────┬─> delivered
//	                                   └─> ready_delivery ─> driver_assigned ─> out_for_delivery ┘
//
// Every non-terminal state may also move to cancelled.
type Status int

const (
	// StatusUnknown (0) catches uninitialized values; it is never valid.
	StatusUnknown Status = iota
	StatusNew
	StatusStaffReceived
	StatusPrinting
	StatusReadyPickup
	StatusReadyDelivery
	StatusDriverAssigned
	StatusOutForDelivery
	StatusDelivered
	StatusCancelled
)

var statusNames = map[Status]string{
	StatusNew:            "new",
	StatusStaffReceived:  "staff_received",
	StatusPrinting:       "printing",
	StatusReadyPickup:    "ready_pickup",
	StatusReadyDelivery:  "ready_delivery",
	StatusDriverAssigned: "driver_assigned",
	StatusOutForDelivery: "out_for_delivery",
	StatusDelivered:      "delivered",
	StatusCancelled:      "cancelled",
}

// transitions maps each status to the set of statuses it may move to.
var transitions = map[Status]map[Status]struct{}{
	StatusNew:            {StatusStaffReceived: {}, StatusCancelled: {}},
	StatusStaffReceived:  {StatusPrinting: {}, StatusCancelled: {}},
	StatusPrinting:       {StatusReadyPickup: {}, StatusReadyDelivery: {}, StatusCancelled: {}},
	StatusReadyPickup:    {StatusDelivered: {}, StatusCancelled: {}},
	StatusReadyDelivery:  {StatusDriverAssigned: {}, StatusCancelled: {}},
	StatusDriverAssigned: {StatusOutForDelivery: {}, StatusCancelled: {}},
	StatusOutForDelivery: {StatusDelivered: {}, StatusCancelled: {}},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

// AllStatuses returns every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{
		StatusNew,
		StatusStaffReceived,
		StatusPrinting,
		StatusReadyPickup,
		StatusReadyDelivery,
		StatusDriverAssigned,
		StatusOutForDelivery,
		StatusDelivered,
		StatusCancelled,
	}
}

// ParseStatus resolves the wire name of a status ("ready_delivery", ...).
func ParseStatus(name string) (Status, error) {
	for s, n := range statusNames {
		if n == name {
			return s, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a known status", name),
	)
}

// Validate rejects StatusUnknown and values outside the enum.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name, or "unknown" for invalid values.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// CanTransitionTo reports whether target is in the allowed set of s.
func (s Status) CanTransitionTo(target Status) bool {
	_, ok := transitions[s][target]
	return ok
}

// AllowedTransitions lists the statuses reachable from s in lifecycle order.
func (s Status) AllowedTransitions() []Status {
	allowed := make([]Status, 0, len(transitions[s]))
	for target := range transitions[s] {
		allowed = append(allowed, target)
	}
	slices.Sort(allowed)
	return allowed
}

// MarshalText encodes the wire name.
func (s Status) MarshalText() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes the wire name.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
