// Package servers holds the HTTP contract of the service: the OpenAPI document,
// its models, and the echo binding that decodes path, query and header
// parameters before calling a ServerInterface.
package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Check a destination against the delivery zone
	// (POST /api/v1/delivery/validate)
	ValidateDelivery(ctx echo.Context) error
	// Search fixed delivery points by name
	// (GET /api/v1/locations)
	SearchLocations(ctx echo.Context, params SearchLocationsParams) error
	// Popular points closest to the caller
	// (GET /api/v1/locations/popular)
	GetPopularLocations(ctx echo.Context, params GetPopularLocationsParams) error
	// Remember a point as the caller's latest pick
	// (POST /api/v1/locations/{locationId}/choose)
	ChooseLocation(ctx echo.Context, locationId string, params ChooseLocationParams) error
	// Orders still in progress
	// (GET /api/v1/orders)
	GetOrders(ctx echo.Context, params GetOrdersParams) error
	// Register a new order
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// One order with its status timeline
	// (GET /api/v1/orders/{orderId})
	GetOrder(ctx echo.Context, orderId OrderId) error
	// Accept a delivery job; the first driver wins
	// (POST /api/v1/orders/{orderId}/driver)
	AssignDriver(ctx echo.Context, orderId OrderId) error
	// Server-sent events of one order
	// (GET /api/v1/orders/{orderId}/events)
	StreamOrderEvents(ctx echo.Context, orderId OrderId) error
	// Move an order to another status
	// (POST /api/v1/orders/{orderId}/transitions)
	RequestTransition(ctx echo.Context, orderId OrderId) error
	// Server-sent events of a role-wide feed
	// (GET /api/v1/feeds/{role}/events)
	StreamRoleEvents(ctx echo.Context, role string) error
	// Price a print job
	// (POST /api/v1/quotes)
	CreateQuote(ctx echo.Context) error
	// Stop sharing the driver's position
	// (DELETE /api/v1/drivers/{driverId}/position)
	RevokeDriverPosition(ctx echo.Context, driverId DriverId) error
	// Current position reported by the driver's device
	// (GET /api/v1/drivers/{driverId}/position)
	GetDriverPosition(ctx echo.Context, driverId DriverId) error
	// Report the driver's position
	// (PUT /api/v1/drivers/{driverId}/position)
	UpdateDriverPosition(ctx echo.Context, driverId DriverId) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// ValidateDelivery converts echo context to params.
func (w *ServerInterfaceWrapper) ValidateDelivery(ctx echo.Context) error {
	return w.Handler.ValidateDelivery(ctx)
}

// SearchLocations converts echo context to params.
func (w *ServerInterfaceWrapper) SearchLocations(ctx echo.Context) error {
	var err error

	var params SearchLocationsParams

	err = runtime.BindQueryParameter("form", true, false, "q", ctx.QueryParams(), &params.Q)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter q: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "lat", ctx.QueryParams(), &params.Lat)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter lat: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "lng", ctx.QueryParams(), &params.Lng)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter lng: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "sort", ctx.QueryParams(), &params.Sort)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter sort: %s", err))
	}

	headers := ctx.Request().Header
	if valueList, found := headers[http.CanonicalHeaderKey("X-Session-ID")]; found {
		var XSessionID string
		n := len(valueList)
		if n != 1 {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Expected one value for X-Session-ID, got %d", n))
		}

		err = runtime.BindStyledParameterWithOptions("simple", "X-Session-ID", valueList[0], &XSessionID, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: false})
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter X-Session-ID: %s", err))
		}

		params.XSessionID = &XSessionID
	}

	return w.Handler.SearchLocations(ctx, params)
}

// GetPopularLocations converts echo context to params.
func (w *ServerInterfaceWrapper) GetPopularLocations(ctx echo.Context) error {
	var err error

	var params GetPopularLocationsParams

	err = runtime.BindQueryParameter("form", true, true, "lat", ctx.QueryParams(), &params.Lat)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter lat: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, true, "lng", ctx.QueryParams(), &params.Lng)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter lng: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}

	return w.Handler.GetPopularLocations(ctx, params)
}

// ChooseLocation converts echo context to params.
func (w *ServerInterfaceWrapper) ChooseLocation(ctx echo.Context) error {
	var err error

	var locationId string

	err = runtime.BindStyledParameterWithOptions("simple", "locationId", ctx.Param("locationId"), &locationId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter locationId: %s", err))
	}

	var params ChooseLocationParams

	headers := ctx.Request().Header
	valueList, found := headers[http.CanonicalHeaderKey("X-Session-ID")]
	if !found {
		return echo.NewHTTPError(http.StatusBadRequest, "Header parameter X-Session-ID is required, but not found")
	}
	if n := len(valueList); n != 1 {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Expected one value for X-Session-ID, got %d", n))
	}

	err = runtime.BindStyledParameterWithOptions("simple", "X-Session-ID", valueList[0], &params.XSessionID, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter X-Session-ID: %s", err))
	}

	return w.Handler.ChooseLocation(ctx, locationId, params)
}

// GetOrders converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrders(ctx echo.Context) error {
	var params GetOrdersParams

	err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}

	return w.Handler.GetOrders(ctx, params)
}

// CreateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderId, err := bindUUIDPath(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderId)
}

// AssignDriver converts echo context to params.
func (w *ServerInterfaceWrapper) AssignDriver(ctx echo.Context) error {
	orderId, err := bindUUIDPath(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.AssignDriver(ctx, orderId)
}

// StreamOrderEvents converts echo context to params.
func (w *ServerInterfaceWrapper) StreamOrderEvents(ctx echo.Context) error {
	orderId, err := bindUUIDPath(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.StreamOrderEvents(ctx, orderId)
}

// RequestTransition converts echo context to params.
func (w *ServerInterfaceWrapper) RequestTransition(ctx echo.Context) error {
	orderId, err := bindUUIDPath(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.RequestTransition(ctx, orderId)
}

// StreamRoleEvents converts echo context to params.
func (w *ServerInterfaceWrapper) StreamRoleEvents(ctx echo.Context) error {
	var role string

	err := runtime.BindStyledParameterWithOptions("simple", "role", ctx.Param("role"), &role, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter role: %s", err))
	}

	return w.Handler.StreamRoleEvents(ctx, role)
}

// CreateQuote converts echo context to params.
func (w *ServerInterfaceWrapper) CreateQuote(ctx echo.Context) error {
	return w.Handler.CreateQuote(ctx)
}

// RevokeDriverPosition converts echo context to params.
func (w *ServerInterfaceWrapper) RevokeDriverPosition(ctx echo.Context) error {
	driverId, err := bindUUIDPath(ctx, "driverId")
	if err != nil {
		return err
	}
	return w.Handler.RevokeDriverPosition(ctx, driverId)
}

// GetDriverPosition converts echo context to params.
func (w *ServerInterfaceWrapper) GetDriverPosition(ctx echo.Context) error {
	driverId, err := bindUUIDPath(ctx, "driverId")
	if err != nil {
		return err
	}
	return w.Handler.GetDriverPosition(ctx, driverId)
}

// UpdateDriverPosition converts echo context to params.
func (w *ServerInterfaceWrapper) UpdateDriverPosition(ctx echo.Context) error {
	driverId, err := bindUUIDPath(ctx, "driverId")
	if err != nil {
		return err
	}
	return w.Handler.UpdateDriverPosition(ctx, driverId)
}

func bindUUIDPath(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID

	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

// EchoRouter is the subset of echo.Echo and echo.Group used for registration.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, and prepends BaseURL to the
// paths, so that the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/api/v1/delivery/validate", wrapper.ValidateDelivery)
	router.GET(baseURL+"/api/v1/drivers/:driverId/position", wrapper.GetDriverPosition)
	router.PUT(baseURL+"/api/v1/drivers/:driverId/position", wrapper.UpdateDriverPosition)
	router.DELETE(baseURL+"/api/v1/drivers/:driverId/position", wrapper.RevokeDriverPosition)
	router.GET(baseURL+"/api/v1/feeds/:role/events", wrapper.StreamRoleEvents)
	router.GET(baseURL+"/api/v1/locations", wrapper.SearchLocations)
	router.GET(baseURL+"/api/v1/locations/popular", wrapper.GetPopularLocations)
	router.POST(baseURL+"/api/v1/locations/:locationId/choose", wrapper.ChooseLocation)
	router.GET(baseURL+"/api/v1/orders", wrapper.GetOrders)
	router.POST(baseURL+"/api/v1/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/api/v1/orders/:orderId", wrapper.GetOrder)
	router.POST(baseURL+"/api/v1/orders/:orderId/driver", wrapper.AssignDriver)
	router.GET(baseURL+"/api/v1/orders/:orderId/events", wrapper.StreamOrderEvents)
	router.POST(baseURL+"/api/v1/orders/:orderId/transitions", wrapper.RequestTransition)
	router.POST(baseURL+"/api/v1/quotes", wrapper.CreateQuote)
}
