package commands

import (
	"errors"
	"time"

	"printdelivery/internal/core/domain/model/kernel"
	"printdelivery/internal/core/domain/model/order"
	"printdelivery/internal/pkg/errs"
	"printdelivery/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrDestinationIsRequired = errors.New("delivery orders need a destination")
	ErrDestinationNotAllowed = errors.New("pickup orders take no destination")
)

// CreateOrderCommand registers a new print order in status new.
// Delivery orders carry the destination the customer picked; pickup orders carry none.
//
// Example:
//
//	dest, _ := kernel.NewGeoPoint(21.0285, 105.8542)
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), order.DeliveryMethodDelivery, &dest, time.Now())
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, zoneValidator)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	method      order.DeliveryMethod
	destination *kernel.GeoPoint
	createdAt   time.Time

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the identifier, the delivery method and the
// presence of a destination exactly when the method is delivery.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	method order.DeliveryMethod,
	destination *kernel.GeoPoint,
	createdAt time.Time,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setMethod(method, destination),
		cmd.setCreatedAt(createdAt),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) DeliveryMethod() order.DeliveryMethod {
	return c.method
}

// Destination is nil for pickup orders.
func (c CreateOrderCommand) Destination() *kernel.GeoPoint {
	return c.destination
}

func (c CreateOrderCommand) CreatedAt() time.Time {
	return c.createdAt
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setMethod(method order.DeliveryMethod, destination *kernel.GeoPoint) error {
	if err := method.Validate(); err != nil {
		return err
	}

	switch {
	case method == order.DeliveryMethodDelivery && destination == nil:
		return ErrDestinationIsRequired
	case method == order.DeliveryMethodPickup && destination != nil:
		return ErrDestinationNotAllowed
	}

	if destination != nil {
		if err := destination.Validate(); err != nil {
			return err
		}
		dest := *destination
		c.destination = &dest
	}

	c.method = method
	return nil
}

func (c *CreateOrderCommand) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}

	c.createdAt = createdAt
	return nil
}
