// Package tracking acquires driver positions and turns them into location
// events for orders on the road.
//
// Locate is a single timeout-bounded read. Watch repeats it on an interval
// until the caller cancels. Both report ports.ErrPermissionDenied,
// ports.ErrPositionUnavailable and ports.ErrTimeout as distinct failures.
package tracking
