package http

import (
	"context"
	"errors"
	"net/http"

	"printdelivery/internal/core/application/usecases/commands"
	"printdelivery/internal/core/domain/model/order"
	"printdelivery/internal/core/domain/model/pricing"
	"printdelivery/internal/core/ports"
	"printdelivery/internal/generated/servers"
	"printdelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFor maps domain and application errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrDeliveryMethodMismatch):
		return http.StatusConflict
	case errors.Is(err, pricing.ErrConfiguration),
		errors.Is(err, commands.ErrDestinationRejected):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ports.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound),
		errors.Is(err, ports.ErrPositionUnavailable):
		return http.StatusNotFound
	case errors.Is(err, ports.ErrTimeout),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, order.ErrDriverRequired),
		errors.Is(err, commands.ErrDestinationIsRequired),
		errors.Is(err, commands.ErrDestinationNotAllowed):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(ctx echo.Context, err error) error {
	code := statusFor(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "Request failed",
			"method", ctx.Request().Method, "path", ctx.Path(), "error", err)
		message = http.StatusText(code)
	}
	return ctx.JSON(code, servers.Error{Code: code, Message: message})
}

func (s *Server) badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{Code: http.StatusBadRequest, Message: message})
}

// errorHandler renders echo errors, such as parameter binding failures and
// unknown routes, in the API error shape.
func errorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	}

	if ctx.Request().Method == http.MethodHead {
		err = ctx.NoContent(code)
	} else {
		err = ctx.JSON(code, servers.Error{Code: code, Message: message})
	}
	if err != nil {
		ctx.Logger().Error(err)
	}
}
