package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "server_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "server_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	// Chat metrics
	ConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "server_chat_connections_active",
			Help: "Live chat connections",
		},
	)

	HandshakesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "server_chat_handshakes_total",
			Help: "Total WebSocket handshake attempts",
		},
		[]string{"outcome"}, // "accepted", "bad_origin", "rate_limited", "failed"
	)

	MessagesBroadcast = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "server_chat_messages_broadcast_total",
			Help: "Total messages accepted and broadcast",
		},
	)

	MessagesRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "server_chat_messages_rejected_total",
			Help: "Total messages rejected by the policy",
		},
		[]string{"reason"},
	)

	ConnectionsSwept = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "server_chat_connections_swept_total",
			Help: "Total idle connections force-closed by the pre-connect sweep",
		},
	)

	LedgerSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "server_chat_ledger_size",
			Help: "Messages currently buffered in the ledger",
		},
	)
)
