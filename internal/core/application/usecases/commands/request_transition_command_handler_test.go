package commands_test

import (
	"testing"
	"time"

	"printdelivery/internal/core/application/usecases/commands"
	"printdelivery/internal/core/domain/model/kernel"
	"printdelivery/internal/core/domain/model/order"
	"printdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func orderIn(t *testing.T, method order.DeliveryMethod, path ...order.Status) *order.Order {
	t.Helper()
	at := time.Now().Add(-time.Hour)
	o, err := order.NewOrder(kernel.NewUUID(), method, at)
	require.NoError(t, err)
	for _, s := range path {
		at = at.Add(time.Minute)
		require.NoError(t, o.TransitionTo(s, at))
	}
	o.ClearDomainEvents()
	return o
}

func transactionFor(ctx any, repo *MockOrderRepository) (*MockOrderUoW, *MockOrderUoWFactory) {
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	return uow, factory
}

func TestNewRequestTransitionCommand(t *testing.T) {
	t.Run("should build a valid command", func(t *testing.T) {
		id := kernel.NewUUID()
		now := time.Now()
		cmd, err := commands.NewRequestTransitionCommand(id, order.StatusPrinting, now)
		require.NoError(t, err)
		assert.Equal(t, id, cmd.OrderID())
		assert.Equal(t, order.StatusPrinting, cmd.Target())
		assert.Equal(t, now, cmd.At())
	})

	t.Run("should report every invalid field", func(t *testing.T) {
		_, err := commands.NewRequestTransitionCommand(kernel.UUID{}, order.StatusUnknown, time.Time{})
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestRequestTransitionCommandHandler_Handle_Accepted(t *testing.T) {
	ctx := t.Context()
	o := orderIn(t, order.DeliveryMethodPickup, order.StatusStaffReceived)
	cmd, err := commands.NewRequestTransitionCommand(o.ID(), order.StatusPrinting, time.Now())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	repo.On("Update", ctx, o).Return(nil).Once()
	uow, factory := transactionFor(ctx, repo)
	uow.On("Commit", ctx).Return(nil).Once()

	h := commands.NewRequestTransitionCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.StatusPrinting, o.Status())
	events := o.DomainEvents()
	require.Len(t, events, 1, "the unit of work publishes the recorded change on commit")
	assert.Equal(t, order.StatusStaffReceived, events[0].Transition.From)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRequestTransitionCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()
	o := orderIn(t, order.DeliveryMethodPickup, order.StatusCancelled)
	cmd, err := commands.NewRequestTransitionCommand(o.ID(), order.StatusPrinting, time.Now())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	uow, factory := transactionFor(ctx, repo)

	h := commands.NewRequestTransitionCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	var invalid *order.InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, order.StatusCancelled, invalid.From)
	assert.Equal(t, order.StatusPrinting, invalid.To)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestRequestTransitionCommandHandler_Handle_DriverAssignedNeedsAssignment(t *testing.T) {
	ctx := t.Context()
	o := orderIn(t, order.DeliveryMethodDelivery,
		order.StatusStaffReceived, order.StatusPrinting, order.StatusReadyDelivery)
	cmd, err := commands.NewRequestTransitionCommand(o.ID(), order.StatusDriverAssigned, time.Now())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	_, factory := transactionFor(ctx, repo)

	h := commands.NewRequestTransitionCommandHandler(factory)
	assert.ErrorIs(t, h.Handle(ctx, cmd), order.ErrDriverRequired)
}

func TestRequestTransitionCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewRequestTransitionCommand(id, order.StatusStaffReceived, time.Now())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once()
	_, factory := transactionFor(ctx, repo)

	h := commands.NewRequestTransitionCommandHandler(factory)
	assert.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrObjectNotFound)
}
