// Package metrics registers the prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "catalogue",
		Subsystem: "relay",
		Name:      "events_published_total",
		Help:      "Events accepted by the relay, by event type.",
	}, []string{"type"})

	RelayQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "catalogue",
		Subsystem: "relay",
		Name:      "queue_depth",
		Help:      "Events enqueued but not yet dispatched to the hub.",
	})

	HubSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "catalogue",
		Subsystem: "hub",
		Name:      "subscribers",
		Help:      "Live downstream subscribers on the broadcast hub.",
	})
)
