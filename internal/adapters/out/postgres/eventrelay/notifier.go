package eventrelay

import (
	"context"
	"log/slog"
	"time"

	"printdelivery/internal/core/domain/model/dispatch"
	"printdelivery/internal/core/domain/model/kernel"
	"printdelivery/internal/core/ports"

	"gorm.io/gorm"
)

// DefaultChannel is the NOTIFY channel shared by all instances.
const DefaultChannel = "dispatch_events"

// notifyTimeout bounds a single pg_notify round trip.
const notifyTimeout = 2 * time.Second

var _ ports.EventPublisher = (*Notifier)(nil)

// Notifier publishes events with pg_notify.
type Notifier struct {
	db      *gorm.DB
	channel string
	logger  *slog.Logger
}

func NewNotifier(db *gorm.DB, channel string, logger *slog.Logger) *Notifier {
	if channel == "" {
		channel = DefaultChannel
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		db:      db,
		channel: channel,
		logger:  logger.With("component", "event-relay", "channel", channel),
	}
}

// Publish sends the event and logs failures. Publishers never see an error,
// as with the in-process broadcaster.
func (n *Notifier) Publish(orderID kernel.UUID, ev dispatch.Event) {
	if err := n.Notify(context.Background(), orderID, ev); err != nil {
		n.logger.Error("failed to relay event",
			"order_id", orderID.String(),
			"kind", ev.Kind.String(),
			"error", err)
	}
}

// Notify is Publish with the error returned.
func (n *Notifier) Notify(ctx context.Context, orderID kernel.UUID, ev dispatch.Event) error {
	ev.OrderID = orderID
	payload, err := Encode(ev)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()

	return n.db.WithContext(ctx).Exec("SELECT pg_notify(?, ?)", n.channel, string(payload)).Error
}
