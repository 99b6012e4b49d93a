package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Defines values for DeliveryValidationReason.
const (
	ExcludedZone  DeliveryValidationReason = "excluded zone"
	OutsideRegion DeliveryValidationReason = "outside region"
	TooFar        DeliveryValidationReason = "too far"
)

// Defines values for EventKind.
const (
	LocationUpdated EventKind = "location_updated"
	StatusChanged   EventKind = "status_changed"
)

// Defines values for NewOrderDeliveryMethod.
const (
	Delivery NewOrderDeliveryMethod = "delivery"
	Pickup   NewOrderDeliveryMethod = "pickup"
)

// Defines values for SearchLocationsParamsSort.
const (
	Distance SearchLocationsParamsSort = "distance"
	Fee      SearchLocationsParamsSort = "fee"
	Popular  SearchLocationsParamsSort = "popular"
)

// CreatedOrder defines model for CreatedOrder.
type CreatedOrder struct {
	Id openapi_types.UUID `json:"id"`
}

// DeliveryValidation defines model for DeliveryValidation.
type DeliveryValidation struct {
	DistanceKm float64                   `json:"distanceKm"`
	Fee        string                    `json:"fee"`
	Message    *string                   `json:"message,omitempty"`
	Reason     *DeliveryValidationReason `json:"reason,omitempty"`
	Valid      bool                      `json:"valid"`
	Zone       *string                   `json:"zone,omitempty"`
}

// DeliveryValidationReason defines model for DeliveryValidation.Reason.
type DeliveryValidationReason string

// DriverAcceptance defines model for DriverAcceptance.
type DriverAcceptance struct {
	DriverId openapi_types.UUID `json:"driverId"`
}

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Event defines model for Event.
type Event struct {
	DriverId   *openapi_types.UUID `json:"driverId,omitempty"`
	From       *string             `json:"from,omitempty"`
	Kind       EventKind           `json:"kind"`
	OccurredAt time.Time           `json:"occurredAt"`
	OrderId    openapi_types.UUID  `json:"orderId"`
	Point      *Point              `json:"point,omitempty"`
	Status     *string             `json:"status,omitempty"`
}

// EventKind defines model for Event.Kind.
type EventKind string

// Location defines model for Location.
type Location struct {
	DistanceKm *float64 `json:"distanceKm,omitempty"`
	Fee        string   `json:"fee"`
	Id         string   `json:"id"`
	Name       string   `json:"name"`
	Point      Point    `json:"point"`
	Popular    bool     `json:"popular"`
	Recent     *bool    `json:"recent,omitempty"`
	Zone       string   `json:"zone"`
}

// NewOrder defines model for NewOrder.
type NewOrder struct {
	DeliveryMethod NewOrderDeliveryMethod `json:"deliveryMethod"`
	Destination    *Point                 `json:"destination,omitempty"`
}

// NewOrderDeliveryMethod defines model for NewOrder.DeliveryMethod.
type NewOrderDeliveryMethod string

// Order defines model for Order.
type Order struct {
	AllowedTransitions *[]string           `json:"allowedTransitions,omitempty"`
	CreatedAt          time.Time           `json:"createdAt"`
	DeliveryFee        string              `json:"deliveryFee"`
	DeliveryMethod     string              `json:"deliveryMethod"`
	Destination        *Point              `json:"destination,omitempty"`
	DriverId           *openapi_types.UUID `json:"driverId,omitempty"`
	Id                 openapi_types.UUID  `json:"id"`
	Status             string              `json:"status"`
	Timeline           *[]TimelineEntry    `json:"timeline,omitempty"`
}

// Point defines model for Point.
type Point struct {
	Accuracy *float64 `json:"accuracy,omitempty"`
	Address  *string  `json:"address,omitempty"`
	Lat      float64  `json:"lat"`
	Lng      float64  `json:"lng"`
}

// PositionReport defines model for PositionReport.
type PositionReport struct {
	Accuracy   *float64   `json:"accuracy,omitempty"`
	Lat        float64    `json:"lat"`
	Lng        float64    `json:"lng"`
	ReportedAt *time.Time `json:"reportedAt,omitempty"`
}

// Quote defines model for Quote.
type Quote struct {
	Currency    string `json:"currency"`
	Discount    string `json:"discount"`
	LargeFormat bool   `json:"largeFormat"`
	Mode        string `json:"mode"`
	Monochrome  bool   `json:"monochrome"`
	Pages       int    `json:"pages"`
	Paper       string `json:"paper"`
	Size        string `json:"size"`
	Subtotal    string `json:"subtotal"`
	Tier        string `json:"tier"`
	Total       string `json:"total"`
	UnitPrice   string `json:"unitPrice"`
}

// QuoteRequest defines model for QuoteRequest.
type QuoteRequest struct {
	Mode       string `json:"mode"`
	Monochrome *bool  `json:"monochrome,omitempty"`
	Pages      int    `json:"pages"`
	Paper      string `json:"paper"`
	Size       string `json:"size"`
}

// Subscription defines model for Subscription.
type Subscription struct {
	Token openapi_types.UUID `json:"token"`
	Topic string             `json:"topic"`
}

// TimelineEntry defines model for TimelineEntry.
type TimelineEntry struct {
	OccurredAt time.Time `json:"occurredAt"`
	Status     string    `json:"status"`
}

// TransitionRequest defines model for TransitionRequest.
type TransitionRequest struct {
	Status string `json:"status"`
}

// OrderId defines model for OrderId.
type OrderId = openapi_types.UUID

// DriverId defines model for DriverId.
type DriverId = openapi_types.UUID

// SearchLocationsParams defines parameters for SearchLocations.
type SearchLocationsParams struct {
	Q          *string                    `form:"q,omitempty" json:"q,omitempty"`
	Lat        *float64                   `form:"lat,omitempty" json:"lat,omitempty"`
	Lng        *float64                   `form:"lng,omitempty" json:"lng,omitempty"`
	Limit      *int                       `form:"limit,omitempty" json:"limit,omitempty"`
	Sort       *SearchLocationsParamsSort `form:"sort,omitempty" json:"sort,omitempty"`
	XSessionID *string                    `json:"X-Session-ID,omitempty"`
}

// SearchLocationsParamsSort defines parameters for SearchLocations.
type SearchLocationsParamsSort string

// GetPopularLocationsParams defines parameters for GetPopularLocations.
type GetPopularLocationsParams struct {
	Lat   float64 `form:"lat" json:"lat"`
	Lng   float64 `form:"lng" json:"lng"`
	Limit *int    `form:"limit,omitempty" json:"limit,omitempty"`
}

// ChooseLocationParams defines parameters for ChooseLocation.
type ChooseLocationParams struct {
	XSessionID string `json:"X-Session-ID"`
}

// GetOrdersParams defines parameters for GetOrders.
type GetOrdersParams struct {
	Status *[]string `form:"status,omitempty" json:"status,omitempty"`
}

// CreateQuoteJSONRequestBody defines body for CreateQuote for application/json ContentType.
type CreateQuoteJSONRequestBody = QuoteRequest

// ValidateDeliveryJSONRequestBody defines body for ValidateDelivery for application/json ContentType.
type ValidateDeliveryJSONRequestBody = Point

// CreateOrderJSONRequestBody defines body for CreateOrder for application/json ContentType.
type CreateOrderJSONRequestBody = NewOrder

// RequestTransitionJSONRequestBody defines body for RequestTransition for application/json ContentType.
type RequestTransitionJSONRequestBody = TransitionRequest

// AssignDriverJSONRequestBody defines body for AssignDriver for application/json ContentType.
type AssignDriverJSONRequestBody = DriverAcceptance

// UpdateDriverPositionJSONRequestBody defines body for UpdateDriverPosition for application/json ContentType.
type UpdateDriverPositionJSONRequestBody = PositionReport
