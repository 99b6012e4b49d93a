package commands

import (
	"errors"
	"time"

	"printdelivery/internal/core/domain/model/kernel"
	"printdelivery/internal/pkg/errs"
	"printdelivery/internal/pkg/guard"
)

var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
)

// AssignDriverCommand is a driver accepting a delivery offered on the driver feed.
// The first driver to accept wins; later attempts fail with an invalid transition.
//
// Example:
//
//	cmd, err := NewAssignDriverCommand(orderID, driverID, time.Now())
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
//	if errors.Is(err, order.ErrInvalidTransition) {
//	    fmt.Println("another driver took this order")
//	}
type AssignDriverCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	driverID kernel.UUID
	at       time.Time

	guard guard.ConstructorGuard
}

func NewAssignDriverCommand(orderID, driverID kernel.UUID, at time.Time) (AssignDriverCommand, error) {
	cmd := AssignDriverCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		driverID.Validate(),
	); err != nil {
		return AssignDriverCommand{}, err
	}
	if at.IsZero() {
		return AssignDriverCommand{}, errs.NewValueIsRequiredError("at")
	}

	cmd.orderID = orderID
	cmd.driverID = driverID
	cmd.at = at
	return cmd, nil
}

func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

func (c AssignDriverCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AssignDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c AssignDriverCommand) At() time.Time {
	return c.at
}
