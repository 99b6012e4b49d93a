package commands

import (
	"context"
	"errors"
	"fmt"

	"printdelivery/internal/core/domain/model/order"
	"printdelivery/internal/core/domain/model/zone"
)

// ErrDestinationRejected is the sentinel behind DestinationRejectedError.
var ErrDestinationRejected = errors.New("destination is outside the delivery zone")

// DestinationRejectedError carries the zone verdict for a refused destination so
// that callers can show its reason and message.
type DestinationRejectedError struct {
	Validation zone.Validation
}

func (e *DestinationRejectedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrDestinationRejected, e.Validation.Message)
}

func (e *DestinationRejectedError) Unwrap() error {
	return ErrDestinationRejected
}

// CreateOrderCommandHandler creates orders. Delivery destinations are checked
// against the zone and the order is stamped with the resulting fee.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, zoneValidator)
//	err := handler.Handle(ctx, cmd)
//	var rejected *DestinationRejectedError
//	if errors.As(err, &rejected) {
//	    fmt.Println(rejected.Validation.Reason) // "too far"
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	zone       DestinationValidator
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, zone DestinationValidator) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		zone:       zone,
	}
}

// Handle validates the destination before opening a transaction, so a rejected
// order never touches the database.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.DeliveryMethod(), cmd.CreatedAt())
	if err != nil {
		return err
	}

	if dest := cmd.Destination(); dest != nil {
		verdict, vErr := h.zone.Validate(*dest)
		if vErr != nil {
			return vErr
		}
		if !verdict.Valid {
			return &DestinationRejectedError{Validation: verdict}
		}
		if err = o.AttachDestination(*dest, verdict.Fee); err != nil {
			return err
		}
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
