package order_test

import (
	"testing"
	"time"

	"printdelivery/internal/core/domain/model/kernel"
	"printdelivery/internal/core/domain/model/order"
	"printdelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func at(minutes int) time.Time {
	return t0.Add(time.Duration(minutes) * time.Minute)
}

func newDeliveryOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), order.DeliveryMethodDelivery, t0)
	require.NoError(t, err)
	return o
}

func walk(t *testing.T, o *order.Order, statuses ...order.Status) {
	t.Helper()
	for i, s := range statuses {
		require.NoError(t, o.TransitionTo(s, at(i+1)), "transition to %s", s)
	}
}

func TestNewOrder(t *testing.T) {
	t.Run("should start in new with a timeline entry", func(t *testing.T) {
		id := kernel.NewUUID()

		o, err := order.NewOrder(id, order.DeliveryMethodPickup, t0)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, order.StatusNew, o.Status())
		assert.Equal(t, order.DeliveryMethodPickup, o.DeliveryMethod())
		assert.Nil(t, o.Driver())
		assert.Nil(t, o.Destination())
		created, ok := o.TimestampOf(order.StatusNew)
		assert.True(t, ok)
		assert.Equal(t, t0, created)
		assert.Empty(t, o.DomainEvents())
	})

	t.Run("should report every invalid argument", func(t *testing.T) {
		o, err := order.NewOrder(kernel.UUID{}, order.DeliveryMethodUnknown, time.Time{})

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "delivery method is invalid")
		assert.Contains(t, err.Error(), "timestamp")
	})

	t.Run("nil order does not validate", func(t *testing.T) {
		var o *order.Order

		assert.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())
	})
}

func TestOrder_TransitionTo(t *testing.T) {
	t.Run("should walk the pickup lifecycle and record each step", func(t *testing.T) {
		o, _ := order.NewOrder(kernel.NewUUID(), order.DeliveryMethodPickup, t0)

		walk(t, o, order.StatusStaffReceived, order.StatusPrinting, order.StatusReadyPickup, order.StatusDelivered)

		assert.Equal(t, order.StatusDelivered, o.Status())
		assert.Len(t, o.Timeline(), 5)
		events := o.DomainEvents()
		require.Len(t, events, 4)
		assert.Equal(t, order.Transition{From: order.StatusReadyPickup, To: order.StatusDelivered}, events[3].Transition)
		assert.Equal(t, at(4), events[3].OccurredAt)
		assert.True(t, events[3].OrderID.IsEqual(o.ID()))
	})

	t.Run("should reject transitions outside the table", func(t *testing.T) {
		o := newDeliveryOrder(t)

		err := o.TransitionTo(order.StatusPrinting, at(1))

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.StatusNew, o.Status())
		assert.Empty(t, o.DomainEvents())
	})

	t.Run("should refuse driver_assigned without a driver", func(t *testing.T) {
		o := newDeliveryOrder(t)
		walk(t, o, order.StatusStaffReceived, order.StatusPrinting, order.StatusReadyDelivery)

		err := o.TransitionTo(order.StatusDriverAssigned, at(9))

		require.ErrorIs(t, err, order.ErrDriverRequired)
		assert.Equal(t, order.StatusReadyDelivery, o.Status())
	})

	t.Run("should refuse the ready state of the other method", func(t *testing.T) {
		o := newDeliveryOrder(t)
		walk(t, o, order.StatusStaffReceived, order.StatusPrinting)

		err := o.TransitionTo(order.StatusReadyPickup, at(9))

		require.ErrorIs(t, err, order.ErrDeliveryMethodMismatch)
		assert.Equal(t, order.StatusPrinting, o.Status())
	})

	t.Run("invalid transition wins over method mismatch", func(t *testing.T) {
		o := newDeliveryOrder(t)

		err := o.TransitionTo(order.StatusReadyPickup, at(1))

		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("should cancel from any non terminal state and stay cancelled", func(t *testing.T) {
		o := newDeliveryOrder(t)
		walk(t, o, order.StatusStaffReceived, order.StatusCancelled)

		err := o.TransitionTo(order.StatusNew, at(5))

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.StatusCancelled, o.Status())
		_, ok := o.TimestampOf(order.StatusCancelled)
		assert.True(t, ok)
	})

	t.Run("should require a timestamp", func(t *testing.T) {
		o := newDeliveryOrder(t)

		err := o.TransitionTo(order.StatusStaffReceived, time.Time{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestOrder_AssignDriver(t *testing.T) {
	ready := func(t *testing.T) *order.Order {
		o := newDeliveryOrder(t)
		walk(t, o, order.StatusStaffReceived, order.StatusPrinting, order.StatusReadyDelivery)
		return o
	}

	t.Run("first accept wins", func(t *testing.T) {
		o := ready(t)
		first := kernel.NewUUID()

		require.NoError(t, o.AssignDriver(first, at(10)))
		err := o.AssignDriver(kernel.NewUUID(), at(11))

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.True(t, o.Driver().IsEqual(first))
		assert.Equal(t, order.StatusDriverAssigned, o.Status())
	})

	t.Run("events carry the driver", func(t *testing.T) {
		o := ready(t)
		driver := kernel.NewUUID()
		o.ClearDomainEvents()

		require.NoError(t, o.AssignDriver(driver, at(10)))
		require.NoError(t, o.TransitionTo(order.StatusOutForDelivery, at(12)))

		events := o.DomainEvents()
		require.Len(t, events, 2)
		for _, ev := range events {
			require.NotNil(t, ev.DriverID)
			assert.True(t, ev.DriverID.IsEqual(driver))
		}
	})

	t.Run("cannot assign before the order is ready", func(t *testing.T) {
		o := newDeliveryOrder(t)

		err := o.AssignDriver(kernel.NewUUID(), at(1))

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Nil(t, o.Driver())
	})

	t.Run("rejects a zero driver id", func(t *testing.T) {
		o := ready(t)

		err := o.AssignDriver(kernel.UUID{}, at(10))

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestOrder_TimelineIsAppendOnly(t *testing.T) {
	o := newDeliveryOrder(t)
	walk(t, o, order.StatusStaffReceived, order.StatusPrinting)

	snapshot := o.Timeline()
	snapshot[order.StatusNew] = t0.Add(time.Hour)
	delete(snapshot, order.StatusPrinting)

	created, _ := o.TimestampOf(order.StatusNew)
	assert.Equal(t, t0, created)
	_, ok := o.TimestampOf(order.StatusPrinting)
	assert.True(t, ok)
}

func TestOrder_AttachDestination(t *testing.T) {
	point, _ := kernel.NewGeoPoint(21.03, 105.85)
	fee := decimal.NewFromInt(25000)

	t.Run("delivery orders accept a destination while new", func(t *testing.T) {
		o := newDeliveryOrder(t)

		require.NoError(t, o.AttachDestination(point, fee))
		assert.True(t, o.Destination().IsEqual(point))
		assert.True(t, fee.Equal(o.DeliveryFee()))
	})

	t.Run("pickup orders have no destination", func(t *testing.T) {
		o, _ := order.NewOrder(kernel.NewUUID(), order.DeliveryMethodPickup, t0)

		err := o.AttachDestination(point, fee)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("destination is fixed once staff received the order", func(t *testing.T) {
		o := newDeliveryOrder(t)
		walk(t, o, order.StatusStaffReceived)

		err := o.AttachDestination(point, fee)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("negative fee is rejected", func(t *testing.T) {
		o := newDeliveryOrder(t)

		err := o.AttachDestination(point, decimal.NewFromInt(-1))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRestoreOrder(t *testing.T) {
	driver := kernel.NewUUID()

	t.Run("should restore a consistent order without events", func(t *testing.T) {
		timeline := map[order.Status]time.Time{
			order.StatusNew:            at(0),
			order.StatusStaffReceived:  at(1),
			order.StatusPrinting:       at(2),
			order.StatusReadyDelivery:  at(3),
			order.StatusDriverAssigned: at(4),
		}

		o, err := order.RestoreOrder(kernel.NewUUID(), order.StatusDriverAssigned, order.DeliveryMethodDelivery,
			&driver, nil, decimal.Zero, timeline)

		require.NoError(t, err)
		assert.Equal(t, order.StatusDriverAssigned, o.Status())
		assert.True(t, o.Driver().IsEqual(driver))
		assert.Empty(t, o.DomainEvents())
	})

	t.Run("should reject a driver state without driver", func(t *testing.T) {
		timeline := map[order.Status]time.Time{order.StatusOutForDelivery: at(0)}

		_, err := order.RestoreOrder(kernel.NewUUID(), order.StatusOutForDelivery, order.DeliveryMethodDelivery,
			nil, nil, decimal.Zero, timeline)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "no driver")
	})

	t.Run("should reject a pickup order with a driver", func(t *testing.T) {
		timeline := map[order.Status]time.Time{order.StatusReadyPickup: at(0)}

		_, err := order.RestoreOrder(kernel.NewUUID(), order.StatusReadyPickup, order.DeliveryMethodPickup,
			&driver, nil, decimal.Zero, timeline)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject a timeline missing the current status", func(t *testing.T) {
		timeline := map[order.Status]time.Time{order.StatusNew: at(0)}

		_, err := order.RestoreOrder(kernel.NewUUID(), order.StatusPrinting, order.DeliveryMethodPickup,
			nil, nil, decimal.Zero, timeline)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "timeline is invalid")
	})

	t.Run("should reject an unknown status", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.NewUUID(), order.StatusUnknown, order.DeliveryMethodPickup,
			nil, nil, decimal.Zero, map[order.Status]time.Time{})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestParseDeliveryMethod(t *testing.T) {
	m, err := order.ParseDeliveryMethod("delivery")
	require.NoError(t, err)
	assert.Equal(t, order.DeliveryMethodDelivery, m)

	m, err = order.ParseDeliveryMethod("pickup")
	require.NoError(t, err)
	assert.Equal(t, "pickup", m.String())

	_, err = order.ParseDeliveryMethod("drone")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
