package commands_test

import (
	"context"
	"time"

	"printdelivery/internal/core/application/usecases/commands"
	"printdelivery/internal/core/domain/model/kernel"
	"printdelivery/internal/core/domain/model/order"
	"printdelivery/internal/core/domain/model/zone"
	"printdelivery/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetAllInStatus(ctx context.Context, statuses ...order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, statuses)
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockDestinationValidator struct{ mock.Mock }

func (m *MockDestinationValidator) Validate(p kernel.GeoPoint) (zone.Validation, error) {
	args := m.Called(p)
	return args.Get(0).(zone.Validation), args.Error(1)
}

type MockPositionRecorder struct{ mock.Mock }

func (m *MockPositionRecorder) Record(driverID kernel.UUID, point kernel.GeoPoint, at time.Time) error {
	args := m.Called(driverID, point, at)
	return args.Error(0)
}

func (m *MockPositionRecorder) Revoke(driverID kernel.UUID) {
	m.Called(driverID)
}

type MockDriverResumer struct{ mock.Mock }

func (m *MockDriverResumer) DriverResumed(driverID kernel.UUID) {
	m.Called(driverID)
}
