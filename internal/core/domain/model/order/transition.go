package order

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is the sentinel behind every InvalidTransitionError.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError reports a target status that is not reachable from the
// current one. It is always recoverable: the caller re-reads the order and retries
// or surfaces the message.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Transition is an accepted status change.
type Transition struct {
	From Status
	To   Status
}

func (t Transition) String() string {
	return fmt.Sprintf("%s -> %s", t.From, t.To)
}

// RequestTransition decides whether an order in current may move to target.
// It is a single lookup in the transition table and has no side effects; the
// caller persists the accepted transition and notifies observers.
//
// Example:
//
//	tr, err := order.RequestTransition(order.StatusPrinting, order.StatusReadyPickup)
//	if errors.Is(err, order.ErrInvalidTransition) {
//	    // re-read the order and retry, or report to the user
//	}
//	// persist tr.To with a timestamp, then publish
func RequestTransition(current, target Status) (Transition, error) {
	if !current.CanTransitionTo(target) {
		return Transition{}, NewInvalidTransitionError(current, target)
	}
	return Transition{From: current, To: target}, nil
}
