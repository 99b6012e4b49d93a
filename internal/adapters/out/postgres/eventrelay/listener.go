package eventrelay

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"printdelivery/internal/core/ports"

	"github.com/lib/pq"
)

const (
	minReconnectInterval = 10 * time.Second
	maxReconnectInterval = time.Minute
	pingInterval         = 90 * time.Second
)

// Listener republishes relayed events into a local publisher.
type Listener struct {
	listener  *pq.Listener
	publisher ports.EventPublisher
	logger    *slog.Logger
}

// NewListener opens a dedicated connection and subscribes to channel.
// dsn is a lib/pq connection string or URL.
func NewListener(dsn, channel string, publisher ports.EventPublisher, logger *slog.Logger) (*Listener, error) {
	if channel == "" {
		channel = DefaultChannel
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "event-relay", "channel", channel)

	l := pq.NewListener(dsn, minReconnectInterval, maxReconnectInterval, func(ev pq.ListenerEventType, err error) {
		switch ev {
		case pq.ListenerEventConnectionAttemptFailed:
			logger.Warn("relay connection attempt failed", "error", err)
		case pq.ListenerEventDisconnected:
			logger.Warn("relay connection lost", "error", err)
		case pq.ListenerEventReconnected:
			logger.Info("relay connection restored")
		}
	})
	if err := l.Listen(channel); err != nil {
		_ = l.Close()
		return nil, fmt.Errorf("listen on %s: %w", channel, err)
	}

	return &Listener{
		listener:  l,
		publisher: publisher,
		logger:    logger,
	}, nil
}

// Run forwards notifications until ctx is done, then closes the connection.
func (l *Listener) Run(ctx context.Context) {
	defer func() {
		if err := l.listener.Close(); err != nil {
			l.logger.Warn("failed to close relay listener", "error", err)
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-l.listener.Notify:
			if !ok {
				return
			}
			// nil after a reconnect; anything sent meanwhile is lost
			if n == nil {
				continue
			}
			l.forward(n)
		case <-ticker.C:
			if err := l.listener.Ping(); err != nil {
				l.logger.Warn("relay ping failed", "error", err)
			}
		}
	}
}

func (l *Listener) forward(n *pq.Notification) {
	ev, err := Decode([]byte(n.Extra))
	if err != nil {
		l.logger.Error("dropping malformed relay payload", "error", err)
		return
	}
	l.publisher.Publish(ev.OrderID, ev)
}
