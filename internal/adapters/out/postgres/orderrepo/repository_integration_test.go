package orderrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"printdelivery/internal/adapters/out/postgres/orderrepo"
	"printdelivery/internal/core/domain/model/kernel"
	"printdelivery/internal/core/domain/model/order"
	"printdelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite runs the repository against a real
// PostgreSQL container.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
	clock      time.Time
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.StatusTimestampDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_status_timestamps").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
	suite.clock = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) tick() time.Time {
	suite.clock = suite.clock.Add(time.Minute)
	return suite.clock
}

func (suite *OrderRepositoryIntegrationTestSuite) newDeliveryOrder() *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), order.DeliveryMethodDelivery, suite.tick())
	suite.Require().NoError(err)

	p, err := kernel.NewGeoPoint(21.0368, 105.8342)
	suite.Require().NoError(err)
	suite.Require().NoError(o.AttachDestination(p.WithAddress("Ba Dinh Square"), decimal.NewFromInt(26370)))
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) advance(o *order.Order, statuses ...order.Status) {
	for _, s := range statuses {
		suite.Require().NoError(o.TransitionTo(s, suite.tick()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_NewOrder_TracksAggregate() {
	ctx := context.Background()
	tracker := new(MockAggregateTracker)
	repo := orderrepo.NewGormOrderRepository(suite.db, tracker)
	o := suite.newDeliveryOrder()
	tracker.On("TrackAggregate", o.ID(), o).Once()

	suite.Require().NoError(repo.Add(ctx, o))

	suite.assertOrderCount(1)
	tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_UnconstructedOrder_Fails() {
	err := suite.repository.Add(context.Background(), &order.Order{})

	suite.Require().ErrorIs(err, order.ErrOrderIsNotConstructed)
	suite.assertOrderCount(0)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_RestoresEveryField() {
	ctx := context.Background()
	o := suite.newDeliveryOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	got, err := suite.repository.Get(ctx, o.ID())

	suite.Require().NoError(err)
	suite.Equal(o.ID(), got.ID())
	suite.Equal(order.StatusNew, got.Status())
	suite.Equal(order.DeliveryMethodDelivery, got.DeliveryMethod())
	suite.Nil(got.Driver())
	suite.Require().NotNil(got.Destination())
	suite.InDelta(21.0368, got.Destination().Latitude(), 1e-9)
	suite.Equal("Ba Dinh Square", got.Destination().Address())
	suite.True(decimal.NewFromInt(26370).Equal(got.DeliveryFee()))
	created, ok := got.TimestampOf(order.StatusNew)
	suite.True(ok)
	suite.True(created.Equal(suite.clock))
	suite.Empty(got.DomainEvents())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_FullDelivery_AppendsTimeline() {
	ctx := context.Background()
	o := suite.newDeliveryOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	steps := []order.Status{order.StatusStaffReceived, order.StatusPrinting, order.StatusReadyDelivery}
	for _, s := range steps {
		suite.advance(o, s)
		suite.Require().NoError(suite.repository.Update(ctx, o))
	}
	driver := kernel.NewUUID()
	suite.Require().NoError(o.AssignDriver(driver, suite.tick()))
	suite.Require().NoError(suite.repository.Update(ctx, o))
	suite.advance(o, order.StatusOutForDelivery, order.StatusDelivered)
	suite.Require().NoError(suite.repository.Update(ctx, o))

	got, err := suite.repository.Get(ctx, o.ID())

	suite.Require().NoError(err)
	suite.Equal(order.StatusDelivered, got.Status())
	suite.Require().NotNil(got.Driver())
	suite.Equal(driver, *got.Driver())
	suite.Len(got.Timeline(), 7)
	for s, at := range o.Timeline() {
		stored, ok := got.TimestampOf(s)
		suite.True(ok, s.String())
		suite.True(at.Equal(stored), s.String())
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NeverRewritesStoredTimestamps() {
	ctx := context.Background()
	o := suite.newDeliveryOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))
	original, _ := o.TimestampOf(order.StatusNew)

	suite.Require().NoError(suite.db.Exec(
		"UPDATE order_status_timestamps SET occurred_at = ? WHERE order_id = ?",
		original.Add(-time.Hour), o.ID().Bytes(),
	).Error)
	suite.advance(o, order.StatusStaffReceived)
	suite.Require().NoError(suite.repository.Update(ctx, o))

	got, err := suite.repository.Get(ctx, o.ID())

	suite.Require().NoError(err)
	stored, _ := got.TimestampOf(order.StatusNew)
	suite.True(stored.Equal(original.Add(-time.Hour)), "update must not overwrite existing timeline rows")
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsNotFoundError() {
	o := suite.newDeliveryOrder()

	err := suite.repository.Update(context.Background(), o)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllInStatus_FiltersAndOrdersByCreation() {
	ctx := context.Background()
	first := suite.newDeliveryOrder()
	second := suite.newDeliveryOrder()
	other := suite.newDeliveryOrder()
	for _, o := range []*order.Order{first, second, other} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}
	suite.advance(other, order.StatusCancelled)
	suite.Require().NoError(suite.repository.Update(ctx, other))

	got, err := suite.repository.GetAllInStatus(ctx, order.StatusNew, order.StatusPrinting)

	suite.Require().NoError(err)
	suite.Require().Len(got, 2)
	suite.Equal(first.ID(), got[0].ID())
	suite.Equal(second.ID(), got[1].ID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllInStatus_NoStatuses_ReturnsEmptySlice() {
	got, err := suite.repository.GetAllInStatus(context.Background())

	suite.Require().NoError(err)
	suite.NotNil(got)
	suite.Empty(got)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestRepository_ConcurrentAdds() {
	ctx := context.Background()
	orders := make([]*order.Order, 10)
	for i := range orders {
		orders[i] = suite.newDeliveryOrder()
	}

	var wg sync.WaitGroup
	errCh := make(chan error, len(orders))
	for _, o := range orders {
		wg.Add(1)
		go func(o *order.Order) {
			defer wg.Done()
			errCh <- suite.repository.Add(ctx, o)
		}(o)
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		suite.NoError(err)
	}
	suite.assertOrderCount(len(orders))
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
