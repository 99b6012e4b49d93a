package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"printdelivery/internal/adapters/out/broadcast"
	"printdelivery/internal/core/domain/model/dispatch"
	"printdelivery/internal/core/domain/model/kernel"
	"printdelivery/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

var errStreamClosed = errors.New("event stream closed by client")

// StreamOrderEvents handles GET /api/v1/orders/{orderId}/events.
func (s *Server) StreamOrderEvents(ctx echo.Context, orderID servers.OrderId) error {
	id, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return s.fail(ctx, err)
	}
	topic, err := dispatch.OrderTopic(id)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.stream(ctx, topic)
}

// StreamRoleEvents handles GET /api/v1/feeds/{role}/events. Customers have no
// role-wide feed and get 400.
func (s *Server) StreamRoleEvents(ctx echo.Context, role string) error {
	r, err := dispatch.ParseRole(role)
	if err != nil {
		return s.fail(ctx, err)
	}
	topic, err := dispatch.RoleTopic(r)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.stream(ctx, topic)
}

// stream relays the topic as server-sent events until the client goes away.
// The first frame is a "subscribed" event with the subscription token.
func (s *Server) stream(ctx echo.Context, topic dispatch.Topic) error {
	reqCtx := ctx.Request().Context()
	events := make(chan dispatch.Event)

	observer := broadcast.FuncObserver{
		ID: "sse-" + kernel.NewUUID().String(),
		Fn: func(ev dispatch.Event) error {
			select {
			case events <- ev:
				return nil
			case <-reqCtx.Done():
				return errStreamClosed
			}
		},
	}

	token, err := s.subscriber.Subscribe(topic, observer)
	if err != nil {
		return s.fail(ctx, err)
	}
	defer s.subscriber.Unsubscribe(token)

	logger := s.logger.With("topic", topic.String(), "token", token.String())
	logger.DebugContext(reqCtx, "Event stream opened")
	defer logger.DebugContext(reqCtx, "Event stream closed")

	res := ctx.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.Header().Set("X-Accel-Buffering", "no")
	res.WriteHeader(http.StatusOK)

	if err = writeFrame(res, "subscribed", servers.Subscription{Token: token.Bytes(), Topic: topic.String()}); err != nil {
		return nil
	}

	heartbeat := time.NewTicker(s.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-reqCtx.Done():
			return nil
		case ev := <-events:
			if err = writeFrame(res, ev.Kind.String(), eventResponse(ev)); err != nil {
				logger.DebugContext(reqCtx, "Event stream write failed", "error", err)
				return nil
			}
		case <-heartbeat.C:
			if _, err = fmt.Fprint(res, ": keepalive\n\n"); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}

func writeFrame(res *echo.Response, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err = fmt.Fprintf(res, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	res.Flush()
	return nil
}
