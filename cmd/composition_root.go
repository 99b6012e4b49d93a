package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpadapter "printdelivery/internal/adapters/in/http"
	"printdelivery/internal/adapters/out/broadcast"
	"printdelivery/internal/adapters/out/devicefeed"
	"printdelivery/internal/adapters/out/postgres"
	"printdelivery/internal/adapters/out/postgres/eventrelay"
	"printdelivery/internal/adapters/out/sessionstore"
	"printdelivery/internal/config"
	"printdelivery/internal/core/application/tracking"
	"printdelivery/internal/core/application/usecases/commands"
	"printdelivery/internal/core/application/usecases/queries"
	"printdelivery/internal/core/domain/model/dispatch"
	"printdelivery/internal/core/domain/model/kernel"
	"printdelivery/internal/core/domain/model/order"
	"printdelivery/internal/core/ports"
	"printdelivery/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

// CompositionRoot owns every long-lived collaborator of the service.
type CompositionRoot struct {
	configs  Config
	settings config.Settings
	domain   config.Domain
	gormDB   *gorm.DB
	logger   *slog.Logger

	registry    *prometheus.Registry
	broadcaster *broadcast.Broadcaster
	publisher   ports.EventPublisher
	uowFactory  *postgres.GormUnitOfWorkFactory
	positions   *devicefeed.Store
	sessions    *sessionstore.Store
	tracker     *tracking.Tracker
	jobs        *jobs.JobManager

	trackerToken kernel.UUID
}

func NewCompositionRoot(configs Config, settings config.Settings, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	if gormDB == nil {
		return nil, errNoDatabase
	}
	domain, err := settings.Build()
	if err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	c := &CompositionRoot{
		configs:  configs,
		settings: settings,
		domain:   domain,
		gormDB:   gormDB,
		logger:   logger,
		registry: registry,
		broadcaster: broadcast.NewBroadcaster(
			broadcast.WithMailboxSize(settings.Broadcast.MailboxSize),
			broadcast.WithLogger(logger),
			broadcast.WithRegisterer(registry),
		),
		positions: devicefeed.NewStore(devicefeed.WithMaxAge(settings.Tracking.PositionMaxAge)),
		sessions: sessionstore.NewStore(settings.Sessions.RecentSize,
			sessionstore.WithMaxSessions(settings.Sessions.MaxSessions)),
	}

	// In relay mode every instance, this one included, receives events
	// through the listener; publishing locally as well would deliver twice.
	c.publisher = c.broadcaster
	if configs.EventRelay == EventRelayPostgres {
		c.publisher = eventrelay.NewNotifier(gormDB, configs.RelayChannel, logger)
	}

	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, c.publisher)
	c.tracker = tracking.NewTracker(c.positions, c.publisher,
		settings.Tracking.Interval, settings.Tracking.Timeout, logger)
	c.jobs = jobs.NewJobManager(c.sessions, c.positions, settings, logger)
	return c, nil
}

// Start subscribes the tracker, resumes tracking of orders already on the
// road, starts the jobs and, in relay mode, the listener. Everything started
// here stops when ctx is cancelled or Close is called.
func (c *CompositionRoot) Start(ctx context.Context) error {
	adminFeed, err := dispatch.RoleTopic(dispatch.RoleAdmin)
	if err != nil {
		return err
	}
	if c.trackerToken, err = c.broadcaster.Subscribe(adminFeed, c.tracker); err != nil {
		return fmt.Errorf("failed to subscribe tracker: %w", err)
	}

	onTheRoad, err := c.uowFactory.Create().OrderRepository().GetAllInStatus(ctx, order.StatusOutForDelivery)
	if err != nil {
		return fmt.Errorf("failed to load orders out for delivery: %w", err)
	}
	c.tracker.Resume(onTheRoad)
	c.logger.InfoContext(ctx, "Tracking resumed", "orders", len(onTheRoad))

	if c.configs.EventRelay == EventRelayPostgres {
		listener, err := eventrelay.NewListener(c.configs.DSN(), c.configs.RelayChannel, c.broadcaster, c.logger)
		if err != nil {
			return err
		}
		go listener.Run(ctx)
	}

	return c.jobs.StartAll()
}

// Close stops background work. Open event streams see their subscriptions
// end.
func (c *CompositionRoot) Close() {
	c.jobs.StopAll()
	if !c.trackerToken.IsZero() {
		c.broadcaster.Unsubscribe(c.trackerToken)
	}
	c.tracker.Close()
	c.broadcaster.Close()
	c.broadcaster.Wait()
}

func (c *CompositionRoot) Domain() config.Domain {
	return c.domain
}

// Router builds the HTTP router over every handler.
func (c *CompositionRoot) Router() (*echo.Echo, error) {
	server := httpadapter.NewServer(c.Handlers(), c.broadcaster, c.positions,
		httpadapter.WithPositionTimeout(c.settings.Tracking.Timeout),
		httpadapter.WithLogger(c.logger),
	)
	return httpadapter.NewRouter(server, c.registry, c.logger)
}

func (c *CompositionRoot) Handlers() httpadapter.Handlers {
	return httpadapter.Handlers{
		CreateOrder:          c.CreateCreateOrderCommandHandler(),
		RequestTransition:    c.CreateRequestTransitionCommandHandler(),
		AssignDriver:         c.CreateAssignDriverCommandHandler(),
		UpdateDriverPosition: commands.NewUpdateDriverPositionCommandHandler(c.positions, c.tracker),
		RevokeDriverPosition: commands.NewRevokeDriverPositionCommandHandler(c.positions),
		ChooseLocation:       commands.NewChooseLocationCommandHandler(c.domain.Locations, c.sessions),
		Quote:                queries.NewQuoteQueryHandler(c.domain.Calculator),
		ValidateDelivery:     queries.NewValidateDeliveryQueryHandler(c.domain.Validator),
		SearchLocations:      queries.NewSearchLocationsQueryHandler(c.domain.Locations, c.sessions),
		NearestPopular:       queries.NewNearestPopularQueryHandler(c.domain.Locations),
		GetOrder:             queries.NewGetOrderQueryHandler(c.gormDB),
		GetActiveOrders:      queries.NewGetActiveOrdersQueryHandler(c.gormDB),
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.domain.Validator)
}

func (c *CompositionRoot) CreateRequestTransitionCommandHandler() commands.RequestTransitionCommandHandler {
	return commands.NewRequestTransitionCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	return commands.NewAssignDriverCommandHandler(c.orderUoWFactory())
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

var errNoDatabase = errors.New("database connection is required")
