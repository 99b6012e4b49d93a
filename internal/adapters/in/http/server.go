package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"printdelivery/internal/core/application/tracking"
	"printdelivery/internal/core/application/usecases/commands"
	"printdelivery/internal/core/application/usecases/queries"
	"printdelivery/internal/core/domain/model/kernel"
	"printdelivery/internal/core/domain/model/location"
	"printdelivery/internal/core/domain/model/order"
	"printdelivery/internal/core/domain/model/pricing"
	"printdelivery/internal/core/ports"
	"printdelivery/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

var _ servers.ServerInterface = (*Server)(nil)

// Handlers groups the use cases the HTTP API drives.
type Handlers struct {
	CreateOrder          commands.CreateOrderCommandHandler
	RequestTransition    commands.RequestTransitionCommandHandler
	AssignDriver         commands.AssignDriverCommandHandler
	UpdateDriverPosition commands.UpdateDriverPositionCommandHandler
	RevokeDriverPosition commands.RevokeDriverPositionCommandHandler
	ChooseLocation       commands.ChooseLocationCommandHandler

	Quote            queries.QuoteQueryHandler
	ValidateDelivery queries.ValidateDeliveryQueryHandler
	SearchLocations  queries.SearchLocationsQueryHandler
	NearestPopular   queries.NearestPopularQueryHandler
	GetOrder         queries.GetOrderQueryHandler
	GetActiveOrders  queries.GetActiveOrdersQueryHandler
}

// Server implements servers.ServerInterface on top of the application use
// cases, the event subscriber for the SSE streams and the device position
// source.
type Server struct {
	handlers        Handlers
	subscriber      ports.EventSubscriber
	positions       ports.PositionSource
	positionTimeout time.Duration
	heartbeat       time.Duration
	clock           func() time.Time
	logger          *slog.Logger
}

type Option func(*Server)

// WithClock replaces time.Now for order timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *Server) {
		s.clock = clock
	}
}

// WithHeartbeat sets how often idle SSE streams send a comment frame.
func WithHeartbeat(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.heartbeat = d
		}
	}
}

// WithPositionTimeout bounds GET /drivers/{id}/position.
func WithPositionTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.positionTimeout = d
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

func NewServer(
	handlers Handlers,
	subscriber ports.EventSubscriber,
	positions ports.PositionSource,
	opts ...Option,
) *Server {
	s := &Server{
		handlers:        handlers,
		subscriber:      subscriber,
		positions:       positions,
		positionTimeout: 10 * time.Second,
		heartbeat:       15 * time.Second,
		clock:           time.Now,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "http_server")
	return s
}

// CreateQuote handles POST /api/v1/quotes.
func (s *Server) CreateQuote(ctx echo.Context) error {
	var body servers.QuoteRequest
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	req, err := quoteRequest(body)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewQuoteQuery(req)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.Quote.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, quoteResponse(result))
}

// ValidateDelivery handles POST /api/v1/delivery/validate.
func (s *Server) ValidateDelivery(ctx echo.Context) error {
	var body servers.Point
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	point, err := geoPoint(body)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewValidateDeliveryQuery(point)
	if err != nil {
		return s.fail(ctx, err)
	}

	verdict, err := s.handlers.ValidateDelivery.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, validationResponse(verdict))
}

// SearchLocations handles GET /api/v1/locations.
func (s *Server) SearchLocations(ctx echo.Context, params servers.SearchLocationsParams) error {
	var origin *kernel.GeoPoint
	if params.Lat != nil || params.Lng != nil {
		if params.Lat == nil || params.Lng == nil {
			return s.badRequest(ctx, "lat and lng must be given together")
		}
		p, err := kernel.NewGeoPoint(*params.Lat, *params.Lng)
		if err != nil {
			return s.fail(ctx, err)
		}
		origin = &p
	}

	sort := location.SortByDistance
	if params.Sort != nil {
		var err error
		if sort, err = location.ParseSortKey(string(*params.Sort)); err != nil {
			return s.fail(ctx, err)
		}
	}

	query, err := queries.NewSearchLocationsQuery(
		deref(params.XSessionID), deref(params.Q), origin, deref(params.Limit), sort,
	)
	if err != nil {
		return s.fail(ctx, err)
	}

	hits, err := s.handlers.SearchLocations.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, candidatesResponse(hits))
}

// GetPopularLocations handles GET /api/v1/locations/popular.
func (s *Server) GetPopularLocations(ctx echo.Context, params servers.GetPopularLocationsParams) error {
	origin, err := kernel.NewGeoPoint(params.Lat, params.Lng)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewNearestPopularQuery(origin, deref(params.Limit))
	if err != nil {
		return s.fail(ctx, err)
	}

	hits, err := s.handlers.NearestPopular.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, candidatesResponse(hits))
}

// ChooseLocation handles POST /api/v1/locations/{locationId}/choose.
func (s *Server) ChooseLocation(ctx echo.Context, locationID string, params servers.ChooseLocationParams) error {
	cmd, err := commands.NewChooseLocationCommand(params.XSessionID, locationID)
	if err != nil {
		return s.fail(ctx, err)
	}

	loc, err := s.handlers.ChooseLocation.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, locationResponse(location.Candidate{Location: loc}))
}

// GetOrders handles GET /api/v1/orders.
func (s *Server) GetOrders(ctx echo.Context, params servers.GetOrdersParams) error {
	var statuses []order.Status
	if params.Status != nil {
		for _, name := range *params.Status {
			st, err := order.ParseStatus(name)
			if err != nil {
				return s.fail(ctx, err)
			}
			statuses = append(statuses, st)
		}
	}

	query, err := queries.NewGetActiveOrdersQuery(statuses...)
	if err != nil {
		return s.fail(ctx, err)
	}

	orders, err := s.handlers.GetActiveOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]servers.Order, len(orders))
	for i, o := range orders {
		response[i] = orderResponse(o)
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.NewOrder
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	method, err := order.ParseDeliveryMethod(string(body.DeliveryMethod))
	if err != nil {
		return s.fail(ctx, err)
	}
	var destination *kernel.GeoPoint
	if body.Destination != nil {
		p, pErr := geoPoint(*body.Destination)
		if pErr != nil {
			return s.fail(ctx, pErr)
		}
		destination = &p
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, method, destination, s.clock())
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, servers.CreatedOrder{Id: orderID.Bytes()})
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderID servers.OrderId) error {
	id, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	res, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderDetailsResponse(res))
}

// RequestTransition handles POST /api/v1/orders/{orderId}/transitions.
func (s *Server) RequestTransition(ctx echo.Context, orderID servers.OrderId) error {
	var body servers.TransitionRequest
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	id, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return s.fail(ctx, err)
	}
	target, err := order.ParseStatus(body.Status)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewRequestTransitionCommand(id, target, s.clock())
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.RequestTransition.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// AssignDriver handles POST /api/v1/orders/{orderId}/driver. A second
// acceptance gets 409.
func (s *Server) AssignDriver(ctx echo.Context, orderID servers.OrderId) error {
	var body servers.DriverAcceptance
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	id, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return s.fail(ctx, err)
	}
	driverID, err := kernel.UUIDFromBytes(body.DriverId[:])
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewAssignDriverCommand(id, driverID, s.clock())
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.AssignDriver.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetDriverPosition handles GET /api/v1/drivers/{driverId}/position.
func (s *Server) GetDriverPosition(ctx echo.Context, driverID servers.DriverId) error {
	id, err := kernel.UUIDFromBytes(driverID[:])
	if err != nil {
		return s.fail(ctx, err)
	}

	p, err := tracking.Locate(ctx.Request().Context(), s.positions, id, s.positionTimeout)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, pointResponse(p))
}

// UpdateDriverPosition handles PUT /api/v1/drivers/{driverId}/position.
func (s *Server) UpdateDriverPosition(ctx echo.Context, driverID servers.DriverId) error {
	var body servers.PositionReport
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	id, err := kernel.UUIDFromBytes(driverID[:])
	if err != nil {
		return s.fail(ctx, err)
	}
	p, err := kernel.NewGeoPoint(body.Lat, body.Lng)
	if err != nil {
		return s.fail(ctx, err)
	}
	if body.Accuracy != nil {
		if p, err = p.WithAccuracy(*body.Accuracy); err != nil {
			return s.fail(ctx, err)
		}
	}
	reportedAt := s.clock()
	if body.ReportedAt != nil {
		reportedAt = *body.ReportedAt
	}

	cmd, err := commands.NewUpdateDriverPositionCommand(id, p, reportedAt)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.handlers.UpdateDriverPosition.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RevokeDriverPosition handles DELETE /api/v1/drivers/{driverId}/position.
func (s *Server) RevokeDriverPosition(ctx echo.Context, driverID servers.DriverId) error {
	id, err := kernel.UUIDFromBytes(driverID[:])
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewRevokeDriverPositionCommand(id)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.handlers.RevokeDriverPosition.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func quoteRequest(body servers.QuoteRequest) (pricing.Request, error) {
	size, sizeErr := pricing.ParseSize(body.Size)
	paper, paperErr := pricing.ParsePaper(body.Paper)
	mode, modeErr := pricing.ParsePrintMode(body.Mode)
	if err := errors.Join(sizeErr, paperErr, modeErr); err != nil {
		return pricing.Request{}, err
	}
	return pricing.NewRequest(size, paper, mode, body.Pages, deref(body.Monochrome))
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
