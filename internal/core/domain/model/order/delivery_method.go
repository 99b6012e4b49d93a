package order

import (
	"fmt"

	"printdelivery/internal/pkg/errs"
)

// DeliveryMethod selects how a finished print job reaches the customer.
type DeliveryMethod int

const (
	DeliveryMethodUnknown DeliveryMethod = iota
	DeliveryMethodPickup
	DeliveryMethodDelivery
)

// ParseDeliveryMethod resolves "pickup" or "delivery".
func ParseDeliveryMethod(name string) (DeliveryMethod, error) {
	switch name {
	case "pickup":
		return DeliveryMethodPickup, nil
	case "delivery":
		return DeliveryMethodDelivery, nil
	default:
		return DeliveryMethodUnknown, errs.NewValueIsInvalidErrorWithCause(
			"delivery method is invalid",
			fmt.Errorf("%q is not pickup or delivery", name),
		)
	}
}

func (m DeliveryMethod) Validate() error {
	if m != DeliveryMethodPickup && m != DeliveryMethodDelivery {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivery method is invalid",
			fmt.Errorf("%d is not a valid delivery method", m),
		)
	}
	return nil
}

func (m DeliveryMethod) String() string {
	switch m {
	case DeliveryMethodPickup:
		return "pickup"
	case DeliveryMethodDelivery:
		return "delivery"
	default:
		return "unknown"
	}
}

// readyStatus is the only ready state an order with this method may enter.
func (m DeliveryMethod) readyStatus() Status {
	if m == DeliveryMethodDelivery {
		return StatusReadyDelivery
	}
	return StatusReadyPickup
}
