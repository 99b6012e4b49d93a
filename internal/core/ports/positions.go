package ports

import (
	"context"
	"errors"
	"time"

	"printdelivery/internal/core/domain/model/kernel"
)

// Geolocation failures. Each calls for a different remedy: ask for permission
// again, check the device GPS, or retry.
var (
	ErrPermissionDenied    = errors.New("location permission denied")
	ErrPositionUnavailable = errors.New("position unavailable")
	ErrTimeout             = errors.New("position request timed out")
)

// PositionSource reads a driver's current position. It blocks until a fresh
// position is available or ctx is done, and fails with ErrPermissionDenied,
// ErrPositionUnavailable or ErrTimeout.
type PositionSource interface {
	CurrentPosition(ctx context.Context, driverID kernel.UUID) (kernel.GeoPoint, error)
}

// PositionRecorder accepts reports from a driver's device.
type PositionRecorder interface {
	Record(driverID kernel.UUID, point kernel.GeoPoint, at time.Time) error
	// Revoke marks the driver as having withdrawn location permission until the
	// next Record.
	Revoke(driverID kernel.UUID)
}

// DriverResumer restarts tracking that stopped on a permission denial.
type DriverResumer interface {
	DriverResumed(driverID kernel.UUID)
}
