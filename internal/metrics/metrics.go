// Package metrics exposes Prometheus counters/histograms for resolve calls,
// adapted from the bounded-cardinality metric set in the teacher's
// internal/api/observability.go — the game-tick/render/particle gauges are
// replaced with resolve-call and event-log counters, and every label set
// stays bounded (action type, event type) to avoid the same per-entity
// cardinality blowup the teacher's comments warn about.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ResolveDuration times one engine.Resolve call end to end.
	ResolveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gridbowl_resolve_duration_seconds",
		Help:    "Time spent in one resolve call",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	})

	// ResolveTotal counts resolve calls by action type (bounded: the
	// actions.Type enum is closed).
	ResolveTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gridbowl_resolve_total",
		Help: "Total resolve calls by action type",
	}, []string{"action"})

	// EventsEmitted counts events by type (bounded: the events.Type enum
	// is closed, per spec §6).
	EventsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gridbowl_events_total",
		Help: "Total events emitted by type",
	}, []string{"type"})

	// TurnoversTotal counts how many resolve calls ended in a turnover.
	TurnoversTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gridbowl_turnovers_total",
		Help: "Total turnovers triggered",
	})

	// TouchdownsTotal counts scored touchdowns.
	TouchdownsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gridbowl_touchdowns_total",
		Help: "Total touchdowns scored",
	})

	// ConnectionsRejected mirrors the teacher's bounded DoS-detection
	// counter, reused here for the httpapi rate limiter and WebSocket hub.
	ConnectionsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gridbowl_connections_rejected_total",
		Help: "Connections rejected by rate limiter or origin check",
	}, []string{"reason"})

	// WSConnectionsActive tracks the current spectator count.
	WSConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gridbowl_websocket_connections_active",
		Help: "Currently active spectator WebSocket connections",
	})
)

// RecordConnectionRejected increments the bounded rejection counter for a
// known reason ("rate_limit", "origin", "ws_total_limit", "ws_ip_limit").
func RecordConnectionRejected(reason string) {
	ConnectionsRejected.WithLabelValues(reason).Inc()
}

// RecordResolve updates ResolveDuration/ResolveTotal/TurnoversTotal/
// TouchdownsTotal/EventsEmitted for one completed resolve call.
func RecordResolve(action string, seconds float64, turnover, touchdown bool, eventTypes []string) {
	ResolveDuration.Observe(seconds)
	ResolveTotal.WithLabelValues(action).Inc()
	if turnover {
		TurnoversTotal.Inc()
	}
	if touchdown {
		TouchdownsTotal.Inc()
	}
	for _, t := range eventTypes {
		EventsEmitted.WithLabelValues(t).Inc()
	}
}
