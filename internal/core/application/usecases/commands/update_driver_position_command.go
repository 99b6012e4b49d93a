package commands

import (
	"errors"
	"time"

	"printdelivery/internal/core/domain/model/kernel"
	"printdelivery/internal/pkg/errs"
	"printdelivery/internal/pkg/guard"
)

var ErrUpdateDriverPositionCommandIsNotConstructed = errors.New(
	"UpdateDriverPositionCommand must be created via NewUpdateDriverPositionCommand constructor",
)

// UpdateDriverPositionCommand is one report from a driver's device.
type UpdateDriverPositionCommand struct { //nolint:recvcheck //using for validation
	driverID   kernel.UUID
	point      kernel.GeoPoint
	reportedAt time.Time

	guard guard.ConstructorGuard
}

func NewUpdateDriverPositionCommand(
	driverID kernel.UUID,
	point kernel.GeoPoint,
	reportedAt time.Time,
) (UpdateDriverPositionCommand, error) {
	if err := errors.Join(driverID.Validate(), point.Validate()); err != nil {
		return UpdateDriverPositionCommand{}, err
	}
	if reportedAt.IsZero() {
		return UpdateDriverPositionCommand{}, errs.NewValueIsRequiredError("reportedAt")
	}

	return UpdateDriverPositionCommand{
		driverID:   driverID,
		point:      point,
		reportedAt: reportedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateDriverPositionCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDriverPositionCommandIsNotConstructed)
}

func (c UpdateDriverPositionCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c UpdateDriverPositionCommand) Point() kernel.GeoPoint {
	return c.point
}

func (c UpdateDriverPositionCommand) ReportedAt() time.Time {
	return c.reportedAt
}
