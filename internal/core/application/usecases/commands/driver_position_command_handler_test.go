package commands_test

import (
	"errors"
	"testing"
	"time"

	"printdelivery/internal/core/application/usecases/commands"
	"printdelivery/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateDriverPositionCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	driverID := kernel.NewUUID()
	p := geoPoint(t, 21.02, 105.84)
	at := time.Now()

	t.Run("should record the report", func(t *testing.T) {
		recorder := new(MockPositionRecorder)
		recorder.On("Record", driverID, p, at).Return(nil).Once()

		cmd, err := commands.NewUpdateDriverPositionCommand(driverID, p, at)
		require.NoError(t, err)

		h := commands.NewUpdateDriverPositionCommandHandler(recorder, nil)
		require.NoError(t, h.Handle(ctx, cmd))
		recorder.AssertExpectations(t)
	})

	t.Run("should resume tracking after the report is recorded", func(t *testing.T) {
		recorder := new(MockPositionRecorder)
		resumer := new(MockDriverResumer)
		mock.InOrder(
			recorder.On("Record", driverID, p, at).Return(nil).Once(),
			resumer.On("DriverResumed", driverID).Return().Once(),
		)

		cmd, err := commands.NewUpdateDriverPositionCommand(driverID, p, at)
		require.NoError(t, err)

		h := commands.NewUpdateDriverPositionCommandHandler(recorder, resumer)
		require.NoError(t, h.Handle(ctx, cmd))
		recorder.AssertExpectations(t)
		resumer.AssertExpectations(t)
	})

	t.Run("should surface recorder errors", func(t *testing.T) {
		recorder := new(MockPositionRecorder)
		recorder.On("Record", driverID, p, at).Return(errors.New("report from the future")).Once()

		cmd, err := commands.NewUpdateDriverPositionCommand(driverID, p, at)
		require.NoError(t, err)

		resumer := new(MockDriverResumer)

		h := commands.NewUpdateDriverPositionCommandHandler(recorder, resumer)
		assert.Error(t, h.Handle(ctx, cmd))
		resumer.AssertNotCalled(t, "DriverResumed", driverID)
	})

	t.Run("should reject an incomplete report", func(t *testing.T) {
		_, err := commands.NewUpdateDriverPositionCommand(driverID, kernel.GeoPoint{}, time.Time{})
		assert.Error(t, err)

		h := commands.NewUpdateDriverPositionCommandHandler(new(MockPositionRecorder), nil)
		assert.ErrorIs(t, h.Handle(ctx, commands.UpdateDriverPositionCommand{}),
			commands.ErrUpdateDriverPositionCommandIsNotConstructed)
	})
}

func TestRevokeDriverPositionCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	driverID := kernel.NewUUID()

	recorder := new(MockPositionRecorder)
	recorder.On("Revoke", driverID).Return().Once()

	cmd, err := commands.NewRevokeDriverPositionCommand(driverID)
	require.NoError(t, err)

	h := commands.NewRevokeDriverPositionCommandHandler(recorder)
	require.NoError(t, h.Handle(ctx, cmd))
	recorder.AssertExpectations(t)

	_, err = commands.NewRevokeDriverPositionCommand(kernel.UUID{})
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}
