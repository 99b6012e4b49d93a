package commands

import (
	"context"

	"printdelivery/internal/core/ports"
)

// UpdateDriverPositionCommandHandler stores device reports. A report after a
// revocation also restarts tracking of the driver's orders through resumer.
type UpdateDriverPositionCommandHandler struct {
	recorder ports.PositionRecorder
	resumer  ports.DriverResumer
}

// NewUpdateDriverPositionCommandHandler accepts a nil resumer.
func NewUpdateDriverPositionCommandHandler(
	recorder ports.PositionRecorder,
	resumer ports.DriverResumer,
) UpdateDriverPositionCommandHandler {
	return UpdateDriverPositionCommandHandler{recorder: recorder, resumer: resumer}
}

func (h UpdateDriverPositionCommandHandler) Handle(_ context.Context, cmd UpdateDriverPositionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.recorder.Record(cmd.DriverID(), cmd.Point(), cmd.ReportedAt()); err != nil {
		return err
	}
	if h.resumer != nil {
		h.resumer.DriverResumed(cmd.DriverID())
	}
	return nil
}
