// Package order provides the Order aggregate and the order status state machine
// of the print-and-delivery core.
//
// The package includes:
//   - Status: the fixed set of lifecycle states and the transition table
//   - RequestTransition: the pure decision function over (current, target)
//   - Order: the aggregate root holding status, delivery method, driver and timeline
//
// Key business rules:
//   - Orders start in StatusNew and only move along the transition table
//   - StatusCancelled is reachable from every non-terminal state
//   - StatusDelivered and StatusCancelled are terminal
//   - The per-status timeline is append-only
//   - A driver is set once, by the single first-accept assignment
//
// The state machine performs no I/O. Persisting an accepted transition and
// notifying observers belong to the caller.
package order
