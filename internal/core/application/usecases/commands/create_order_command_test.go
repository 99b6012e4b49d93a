package commands_test

import (
	"testing"
	"time"

	"printdelivery/internal/core/application/usecases/commands"
	"printdelivery/internal/core/domain/model/kernel"
	"printdelivery/internal/core/domain/model/order"
	"printdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geoPoint(t *testing.T, lat, lng float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return p
}

func TestNewCreateOrderCommand_ValidDelivery(t *testing.T) {
	id := kernel.NewUUID()
	dest := geoPoint(t, 21.03, 105.85)
	now := time.Now()

	cmd, err := commands.NewCreateOrderCommand(id, order.DeliveryMethodDelivery, &dest, now)
	require.NoError(t, err)
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, order.DeliveryMethodDelivery, cmd.DeliveryMethod())
	require.NotNil(t, cmd.Destination())
	assert.True(t, cmd.Destination().IsEqual(dest))
	assert.Equal(t, now, cmd.CreatedAt())
	assert.NoError(t, cmd.Validate())
}

func TestNewCreateOrderCommand_ValidPickup(t *testing.T) {
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), order.DeliveryMethodPickup, nil, time.Now())
	require.NoError(t, err)
	assert.Nil(t, cmd.Destination())
}

func TestNewCreateOrderCommand_DestinationRules(t *testing.T) {
	dest := geoPoint(t, 21.03, 105.85)

	t.Run("should require a destination for delivery", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), order.DeliveryMethodDelivery, nil, time.Now())
		assert.ErrorIs(t, err, commands.ErrDestinationIsRequired)
	})

	t.Run("should refuse a destination for pickup", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), order.DeliveryMethodPickup, &dest, time.Now())
		assert.ErrorIs(t, err, commands.ErrDestinationNotAllowed)
	})

	t.Run("should refuse an unconstructed destination", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), order.DeliveryMethodDelivery, &kernel.GeoPoint{}, time.Now())
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestNewCreateOrderCommand_InvalidInput(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.UUID{}, order.DeliveryMethodUnknown, nil, time.Time{})
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestCreateOrderCommand_ZeroValueIsNotConstructed(t *testing.T) {
	var cmd commands.CreateOrderCommand
	assert.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
