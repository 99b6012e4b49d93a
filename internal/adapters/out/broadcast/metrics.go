package broadcast

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	removedUnsubscribed = "unsubscribed"
	removedFailed       = "delivery_failed"
	removedClosed       = "closed"
)

type metrics struct {
	published     *prometheus.CounterVec
	enqueued      prometheus.Counter
	dropped       prometheus.Counter
	removed       *prometheus.CounterVec
	subscriptions prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		published: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dispatch_events_published_total",
				Help: "Total number of events published, by kind",
			},
			[]string{"kind"},
		),
		enqueued: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "dispatch_events_enqueued_total",
				Help: "Total number of events handed to subscriber mailboxes",
			},
		),
		dropped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "dispatch_events_dropped_total",
				Help: "Total number of events dropped from full subscriber mailboxes",
			},
		),
		removed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dispatch_subscriptions_removed_total",
				Help: "Total number of subscriptions removed, by reason",
			},
			[]string{"reason"},
		),
		subscriptions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "dispatch_subscriptions_active",
				Help: "Number of active subscriptions",
			},
		),
	}

	if reg != nil {
		reg.MustRegister(m.published, m.enqueued, m.dropped, m.removed, m.subscriptions)
	}
	return m
}
