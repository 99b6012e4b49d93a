package tracking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"printdelivery/internal/core/domain/model/kernel"
	"printdelivery/internal/core/ports"
	"printdelivery/internal/pkg/errs"
)

var (
	ErrPermissionDenied    = ports.ErrPermissionDenied
	ErrPositionUnavailable = ports.ErrPositionUnavailable
	ErrTimeout             = ports.ErrTimeout
)

// Locate reads the driver's position, giving up after timeout.
// A cancelled ctx returns ctx.Err() so that abandoning the call is not
// mistaken for a timeout.
func Locate(ctx context.Context, src ports.PositionSource, driverID kernel.UUID, timeout time.Duration) (kernel.GeoPoint, error) {
	if src == nil {
		return kernel.GeoPoint{}, errs.NewValueIsRequiredError("position source")
	}
	if err := driverID.Validate(); err != nil {
		return kernel.GeoPoint{}, err
	}
	if timeout <= 0 {
		return kernel.GeoPoint{}, errs.NewValueIsOutOfRangeError("timeout", timeout, "1ns", "+inf")
	}

	lctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	p, err := src.CurrentPosition(lctx, driverID)
	if err == nil {
		return p, nil
	}
	return kernel.GeoPoint{}, classify(ctx, err, timeout)
}

func classify(parent context.Context, err error, timeout time.Duration) error {
	switch {
	case errors.Is(err, ErrPermissionDenied), errors.Is(err, ErrPositionUnavailable), errors.Is(err, ErrTimeout):
		return err
	case parent.Err() != nil:
		return parent.Err()
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w after %s", ErrTimeout, timeout)
	default:
		return fmt.Errorf("%w: %w", ErrPositionUnavailable, err)
	}
}
