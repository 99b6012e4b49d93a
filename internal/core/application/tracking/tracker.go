package tracking

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"printdelivery/internal/core/domain/model/dispatch"
	"printdelivery/internal/core/domain/model/kernel"
	"printdelivery/internal/core/domain/model/order"
	"printdelivery/internal/core/ports"
)

const (
	DefaultInterval = 5 * time.Second
	DefaultTimeout  = 10 * time.Second
)

var (
	_ ports.Observer      = (*Tracker)(nil)
	_ ports.DriverResumer = (*Tracker)(nil)
)

// Tracker follows drivers of orders that are out for delivery and publishes
// their positions as location events. It listens on the admin feed: a change
// to out_for_delivery starts a watch, delivered or cancelled stops it.
//
// A watch ended by a permission denial is paused rather than dropped. The
// order resumes once DriverResumed reports that its driver shares again.
type Tracker struct {
	source    ports.PositionSource
	publisher ports.EventPublisher
	interval  time.Duration
	timeout   time.Duration
	logger    *slog.Logger

	mu      sync.Mutex
	base    context.Context
	stopAll context.CancelFunc
	watches map[kernel.UUID]context.CancelFunc
	paused  map[kernel.UUID]kernel.UUID // order id -> driver id
	wg      sync.WaitGroup
}

func NewTracker(
	source ports.PositionSource,
	publisher ports.EventPublisher,
	interval, timeout time.Duration,
	logger *slog.Logger,
) *Tracker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	base, stop := context.WithCancel(context.Background())
	return &Tracker{
		source:    source,
		publisher: publisher,
		interval:  interval,
		timeout:   timeout,
		logger:    logger.With("component", "tracker"),
		base:      base,
		stopAll:   stop,
		watches:   make(map[kernel.UUID]context.CancelFunc),
		paused:    make(map[kernel.UUID]kernel.UUID),
	}
}

func (t *Tracker) ObserverID() string {
	return "tracker"
}

// Deliver never fails, so the tracker's subscription lives as long as the
// broadcaster.
func (t *Tracker) Deliver(ev dispatch.Event) error {
	if !ev.IsStatusChange() {
		return nil
	}
	switch ev.Status {
	case order.StatusOutForDelivery:
		if ev.DriverID == nil {
			t.logger.Warn("order out for delivery without a driver", "order_id", ev.OrderID.String())
			return nil
		}
		t.Track(ev.OrderID, *ev.DriverID)
	case order.StatusDelivered, order.StatusCancelled:
		t.Stop(ev.OrderID)
	default:
	}
	return nil
}

// Resume starts tracking for orders already on the road, typically at startup.
func (t *Tracker) Resume(orders []*order.Order) {
	for _, o := range orders {
		if o.Status() != order.StatusOutForDelivery || o.Driver() == nil {
			continue
		}
		t.Track(o.ID(), *o.Driver())
	}
}

// Track starts watching driverID for orderID. It is a no-op when the order is
// already tracked.
func (t *Tracker) Track(orderID, driverID kernel.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.watches[orderID]; ok || t.base.Err() != nil {
		return
	}

	ctx, cancel := context.WithCancel(t.base)
	updates, err := Watch(ctx, t.source, driverID, t.interval, t.timeout)
	if err != nil {
		cancel()
		t.logger.Error("failed to start watch", "order_id", orderID.String(), "error", err)
		return
	}
	t.watches[orderID] = cancel
	delete(t.paused, orderID)

	t.wg.Add(1)
	go t.forward(ctx, orderID, driverID, updates)
	t.logger.Info("tracking started", "order_id", orderID.String(), "driver_id", driverID.String())
}

// Stop ends tracking of orderID. It reports whether a watch was running.
func (t *Tracker) Stop(orderID kernel.UUID) bool {
	t.mu.Lock()
	cancel, ok := t.watches[orderID]
	delete(t.watches, orderID)
	delete(t.paused, orderID)
	t.mu.Unlock()

	if ok {
		cancel()
		t.logger.Info("tracking stopped", "order_id", orderID.String())
	}
	return ok
}

func (t *Tracker) Tracking(orderID kernel.UUID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.watches[orderID]
	return ok
}

// DriverResumed restarts the paused watches of driverID. Callers invoke it
// once the driver reports a position again after revoking permission.
func (t *Tracker) DriverResumed(driverID kernel.UUID) {
	t.mu.Lock()
	var orders []kernel.UUID
	for orderID, d := range t.paused {
		if d == driverID {
			orders = append(orders, orderID)
		}
	}
	t.mu.Unlock()

	for _, orderID := range orders {
		t.Track(orderID, driverID)
	}
}

// Close stops every watch and waits for the forwarding goroutines.
func (t *Tracker) Close() {
	t.mu.Lock()
	t.stopAll()
	t.watches = make(map[kernel.UUID]context.CancelFunc)
	t.paused = make(map[kernel.UUID]kernel.UUID)
	t.mu.Unlock()
	t.wg.Wait()
}

func (t *Tracker) forward(ctx context.Context, orderID, driverID kernel.UUID, updates <-chan Update) {
	defer t.wg.Done()

	for u := range updates {
		if u.Err != nil {
			t.failed(ctx, orderID, driverID, u.Err)
			continue
		}

		ev, err := dispatch.LocationUpdatedEvent(orderID, driverID, u.Point, u.At)
		if err != nil {
			t.logger.Error("failed to build location event", "order_id", orderID.String(), "error", err)
			continue
		}
		t.publisher.Publish(orderID, ev)
	}
}

// failed logs a failed read. Missing or late positions are routine when the
// driver's reports land on another instance, so they stay at debug level.
func (t *Tracker) failed(ctx context.Context, orderID, driverID kernel.UUID, err error) {
	attrs := []any{"order_id", orderID.String(), "driver_id", driverID.String(), "error", err}
	switch {
	case errors.Is(err, ErrPermissionDenied):
		if t.pause(ctx, orderID, driverID) {
			t.logger.Info("tracking paused", attrs...)
		}
	case errors.Is(err, ErrPositionUnavailable), errors.Is(err, ErrTimeout):
		t.logger.Debug("position not available", attrs...)
	default:
		t.logger.Warn("position not available", attrs...)
	}
}

// pause moves a watch that ended on its own from the registry to the paused
// set, so that DriverResumed or a later Track can start it again.
func (t *Tracker) pause(ctx context.Context, orderID, driverID kernel.UUID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	cancel, ok := t.watches[orderID]
	if !ok || ctx.Err() != nil {
		return false
	}
	cancel()
	delete(t.watches, orderID)
	t.paused[orderID] = driverID
	return true
}
