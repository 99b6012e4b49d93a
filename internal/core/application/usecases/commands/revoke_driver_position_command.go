package commands

import (
	"errors"

	"printdelivery/internal/core/domain/model/kernel"
	"printdelivery/internal/pkg/guard"
)

var ErrRevokeDriverPositionCommandIsNotConstructed = errors.New(
	"RevokeDriverPositionCommand must be created via NewRevokeDriverPositionCommand constructor",
)

// RevokeDriverPositionCommand records that a driver withdrew location
// permission. Reads of the driver's position fail with ports.ErrPermissionDenied
// until the device reports again.
type RevokeDriverPositionCommand struct {
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRevokeDriverPositionCommand(driverID kernel.UUID) (RevokeDriverPositionCommand, error) {
	if err := driverID.Validate(); err != nil {
		return RevokeDriverPositionCommand{}, err
	}
	return RevokeDriverPositionCommand{
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c RevokeDriverPositionCommand) Validate() error {
	return c.guard.Validate(ErrRevokeDriverPositionCommandIsNotConstructed)
}

func (c RevokeDriverPositionCommand) DriverID() kernel.UUID {
	return c.driverID
}
