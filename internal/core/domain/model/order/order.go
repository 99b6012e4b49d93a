package order

import (
	"errors"
	"fmt"
	"maps"
	"time"

	"printdelivery/internal/core/domain/model/kernel"
	"printdelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrDriverRequired is returned when driver_assigned is requested without a driver.
	// Use AssignDriver instead.
	ErrDriverRequired = errors.New("driver_assigned requires a driver, use AssignDriver")

	// ErrDeliveryMethodMismatch is returned when an order is made ready for the
	// other delivery method (a pickup order cannot become ready_delivery).
	ErrDeliveryMethodMismatch = errors.New("ready status does not match the delivery method")
)

// Order is the aggregate root of a print job's lifecycle.
//
// Order follows these invariants:
//   - status is always a member of the Status enum
//   - status only changes along the transition table
//   - the timeline holds one timestamp per visited status and never loses an entry
//   - a driver is present exactly while a delivery is assigned or in progress
//     (and stays recorded after delivered or cancelled)
//   - only delivery orders carry a destination and a delivery fee
type Order struct {
	id             kernel.UUID
	status         Status
	deliveryMethod DeliveryMethod
	driverID       *kernel.UUID
	destination    *kernel.GeoPoint
	deliveryFee    decimal.Decimal
	timeline       map[Status]time.Time

	// pending holds transitions not yet handed to the unit of work
	pending []StatusChanged

	isConstructed bool
}

// NewOrder creates an order in StatusNew stamped with createdAt.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), order.DeliveryMethodDelivery, time.Now())
//	if err != nil {
//	    return err
//	}
//	err = o.AttachDestination(point, validation.Fee)
func NewOrder(id kernel.UUID, method DeliveryMethod, createdAt time.Time) (*Order, error) {
	o := &Order{
		status:        StatusNew,
		timeline:      make(map[Status]time.Time, len(statusNames)),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setDeliveryMethod(method),
		requireTime(createdAt),
	); err != nil {
		return nil, err
	}

	o.timeline[StatusNew] = createdAt
	return o, nil
}

// RestoreOrder rebuilds an order from persisted state without recording events.
// It re-checks the invariants so that corrupted rows are rejected.
func RestoreOrder(
	id kernel.UUID,
	status Status,
	method DeliveryMethod,
	driverID *kernel.UUID,
	destination *kernel.GeoPoint,
	deliveryFee decimal.Decimal,
	timeline map[Status]time.Time,
) (*Order, error) {
	o := &Order{
		status:        status,
		deliveryFee:   deliveryFee,
		timeline:      make(map[Status]time.Time, len(timeline)),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setDeliveryMethod(method),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	for s, at := range timeline {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		o.timeline[s] = at
	}
	if _, ok := o.timeline[status]; !ok {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"timeline is invalid",
			fmt.Errorf("no timestamp recorded for current status %s", status),
		)
	}

	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return nil, err
		}
		driver := *driverID
		o.driverID = &driver
	}
	if err := o.validateDriver(); err != nil {
		return nil, err
	}

	if destination != nil {
		if err := o.setDestination(*destination, deliveryFee); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// Validate reports whether the order was built by a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) DeliveryMethod() DeliveryMethod {
	return o.deliveryMethod
}

// Driver returns the assigned driver, or nil.
func (o *Order) Driver() *kernel.UUID {
	return o.driverID
}

// Destination returns the delivery point of a delivery order, or nil.
func (o *Order) Destination() *kernel.GeoPoint {
	return o.destination
}

func (o *Order) DeliveryFee() decimal.Decimal {
	return o.deliveryFee
}

// Timeline returns a copy of the per-status timestamps.
func (o *Order) Timeline() map[Status]time.Time {
	return maps.Clone(o.timeline)
}

// TimestampOf returns when the order entered s.
func (o *Order) TimestampOf(s Status) (time.Time, bool) {
	at, ok := o.timeline[s]
	return at, ok
}

// AttachDestination stores the delivery point and the quoted fee. Only delivery
// orders that have not been received by staff yet accept a destination.
func (o *Order) AttachDestination(point kernel.GeoPoint, fee decimal.Decimal) error {
	if o.status != StatusNew {
		return errs.NewValueIsInvalidErrorWithCause(
			"destination is invalid",
			fmt.Errorf("destination cannot change in status %s", o.status),
		)
	}
	return o.setDestination(point, fee)
}

// TransitionTo moves the order to target at the given time.
//
// The transition table is consulted first, so an unreachable target always
// fails with *InvalidTransitionError. On top of the table:
//   - StatusDriverAssigned must go through AssignDriver (ErrDriverRequired)
//   - the ready state must match the delivery method (ErrDeliveryMethodMismatch)
func (o *Order) TransitionTo(target Status, at time.Time) error {
	if err := errors.Join(o.Validate(), target.Validate(), requireTime(at)); err != nil {
		return err
	}

	tr, err := RequestTransition(o.status, target)
	if err != nil {
		return err
	}

	if target == StatusDriverAssigned {
		return ErrDriverRequired
	}
	if (target == StatusReadyPickup || target == StatusReadyDelivery) && target != o.deliveryMethod.readyStatus() {
		return fmt.Errorf("%w: %s order cannot become %s", ErrDeliveryMethodMismatch, o.deliveryMethod, target)
	}

	o.record(tr, at)
	return nil
}

// AssignDriver is the single first-accept assignment: it moves a ready_delivery
// order to driver_assigned. A second assignment fails with *InvalidTransitionError
// because driver_assigned is no longer reachable.
func (o *Order) AssignDriver(driverID kernel.UUID, at time.Time) error {
	if err := errors.Join(o.Validate(), driverID.Validate(), requireTime(at)); err != nil {
		return err
	}

	tr, err := RequestTransition(o.status, StatusDriverAssigned)
	if err != nil {
		return err
	}

	o.driverID = &driverID
	o.record(tr, at)
	return nil
}

// DomainEvents returns the transitions recorded since the last ClearDomainEvents.
func (o *Order) DomainEvents() []StatusChanged {
	events := make([]StatusChanged, len(o.pending))
	copy(events, o.pending)
	return events
}

// ClearDomainEvents drops recorded transitions once they were dispatched.
func (o *Order) ClearDomainEvents() {
	o.pending = nil
}

func (o *Order) record(tr Transition, at time.Time) {
	if _, exists := o.timeline[tr.To]; !exists {
		o.timeline[tr.To] = at
	}
	o.status = tr.To

	var driver *kernel.UUID
	if o.driverID != nil {
		id := *o.driverID
		driver = &id
	}
	o.pending = append(o.pending, StatusChanged{
		OrderID:    o.id,
		Transition: tr,
		OccurredAt: at,
		DriverID:   driver,
	})
}

func (o *Order) validateDriver() error {
	needsDriver := o.status == StatusDriverAssigned || o.status == StatusOutForDelivery ||
		(o.status == StatusDelivered && o.deliveryMethod == DeliveryMethodDelivery)
	if needsDriver && o.driverID == nil {
		return errs.NewValueIsInvalidErrorWithCause(
			"driver is invalid",
			fmt.Errorf("%s is not a valid status to have no driver", o.status),
		)
	}
	if o.driverID != nil && o.deliveryMethod == DeliveryMethodPickup {
		return errs.NewValueIsInvalidErrorWithCause(
			"driver is invalid",
			errors.New("pickup orders cannot have a driver"),
		)
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setDeliveryMethod(method DeliveryMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.deliveryMethod = method
	return nil
}

func (o *Order) setDestination(point kernel.GeoPoint, fee decimal.Decimal) error {
	if o.deliveryMethod != DeliveryMethodDelivery {
		return errs.NewValueIsInvalidErrorWithCause(
			"destination is invalid",
			fmt.Errorf("%s orders have no destination", o.deliveryMethod),
		)
	}
	if err := point.Validate(); err != nil {
		return err
	}
	if fee.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("delivery fee is invalid", fmt.Errorf("%s is negative", fee))
	}
	o.destination = &point
	o.deliveryFee = fee
	return nil
}

func requireTime(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("timestamp")
	}
	return nil
}
