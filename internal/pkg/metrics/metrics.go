// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	bookings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pandalens_bookings_total",
			Help: "Booking submissions by result",
		},
		[]string{"result"},
	)

	followToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pandalens_follow_toggles_total",
			Help: "Follow toggles by resulting action",
		},
		[]string{"action"},
	)

	availabilityQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pandalens_availability_queries_total",
			Help: "Availability week queries by source",
		},
		[]string{"source"},
	)

	slotHoldWait = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pandalens_booking_write_seconds",
			Help:    "Time spent holding a slot while the booking is written",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 10),
		},
	)

	wsConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pandalens_websocket_connections",
			Help: "Open session-event websocket connections on this instance",
		},
	)

	wsEventsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pandalens_websocket_events_dropped_total",
			Help: "Events dropped because a client send buffer was full",
		},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pandalens_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// Booking results.
const (
	BookingCreated     = "created"
	BookingRejected    = "rejected"
	BookingUnavailable = "unavailable"
	BookingFailed      = "failed"
)

func BookingResult(result string)      { bookings.WithLabelValues(result).Inc() }
func FollowToggled(action string)      { followToggles.WithLabelValues(action).Inc() }
func AvailabilityServed(source string) { availabilityQueries.WithLabelValues(source).Inc() }
func BookingWrite(d time.Duration)     { slotHoldWait.Observe(d.Seconds()) }
func WebsocketConnected()              { wsConnections.Inc() }
func WebsocketDisconnected()           { wsConnections.Dec() }
func WebsocketEventDropped()           { wsEventsDropped.Inc() }

// ObserveHTTP records one request. route should be the router pattern, not the raw path.
func ObserveHTTP(method, route string, status int, d time.Duration) {
	httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
