package commands

import (
	"context"

	"printdelivery/internal/core/ports"
)

type RevokeDriverPositionCommandHandler struct {
	recorder ports.PositionRecorder
}

func NewRevokeDriverPositionCommandHandler(recorder ports.PositionRecorder) RevokeDriverPositionCommandHandler {
	return RevokeDriverPositionCommandHandler{recorder: recorder}
}

func (h RevokeDriverPositionCommandHandler) Handle(_ context.Context, cmd RevokeDriverPositionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	h.recorder.Revoke(cmd.DriverID())
	return nil
}
