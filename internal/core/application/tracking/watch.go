package tracking

import (
	"context"
	"errors"
	"time"

	"printdelivery/internal/core/domain/model/kernel"
	"printdelivery/internal/core/ports"
	"printdelivery/internal/pkg/errs"
)

// Update is one Watch result: a position or the failure of one attempt.
type Update struct {
	Point kernel.GeoPoint
	At    time.Time
	Err   error
}

// Watch polls the driver's position every interval, each attempt bounded by
// timeout, until ctx is cancelled. The channel is closed when the watch ends.
// A permission denial ends the watch after it is delivered, since polling again
// cannot succeed until the driver grants access.
func Watch(
	ctx context.Context,
	src ports.PositionSource,
	driverID kernel.UUID,
	interval, timeout time.Duration,
) (<-chan Update, error) {
	if src == nil {
		return nil, errs.NewValueIsRequiredError("position source")
	}
	if err := driverID.Validate(); err != nil {
		return nil, err
	}
	if interval <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("interval", interval, "1ns", "+inf")
	}
	if timeout <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("timeout", timeout, "1ns", "+inf")
	}

	updates := make(chan Update, 1)
	go func() {
		defer close(updates)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			p, err := Locate(ctx, src, driverID, timeout)
			if ctx.Err() != nil {
				return
			}

			select {
			case updates <- Update{Point: p, At: time.Now(), Err: err}:
			case <-ctx.Done():
				return
			}
			if errors.Is(err, ErrPermissionDenied) {
				return
			}

			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()

	return updates, nil
}
