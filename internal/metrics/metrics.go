// Canvasync - Real-Time Business Model Canvas Collaboration
// Copyright 2026 M. Keller (mkeller0x)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkeller0x/canvasync

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - WebSocket connections and board events
// - Broadcast fan-out and slow-client drops
// - AI suggestion requests and latency
// - Circuit breaker state for the generation service
// - HTTP endpoint latency and throughput

var (
	// WebSocket / board metrics
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "canvasync_active_connections",
			Help: "Current number of connected WebSocket clients",
		},
	)

	JoinedParticipants = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "canvasync_joined_participants",
			Help: "Current number of participants that completed the join handshake",
		},
	)

	BoardEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "canvasync_board_events_total",
			Help: "Total number of inbound board events processed by the hub",
		},
		[]string{"event", "outcome"}, // outcome: "ok", "rejected", "ignored"
	)

	BroadcastsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "canvasync_broadcasts_total",
			Help: "Total number of events fanned out to all clients",
		},
		[]string{"event"},
	)

	SlowClientsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "canvasync_slow_clients_dropped_total",
			Help: "Total number of clients dropped because their send queue was full",
		},
	)

	BoardNotes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "canvasync_board_notes",
			Help: "Current number of live notes on the board",
		},
	)

	BoardSupplements = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "canvasync_board_supplements",
			Help: "Current number of supplement items on the board",
		},
	)

	// AI suggestion metrics
	SuggestionRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "canvasync_suggestion_requests_total",
			Help: "Total number of AI suggestion requests",
		},
		[]string{"section", "outcome"}, // outcome: "success", "error", "invalid_section"
	)

	SuggestionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "canvasync_suggestion_duration_seconds",
			Help:    "Latency of AI suggestion generation in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	// Circuit breaker metrics for the generation service
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "canvasync_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"breaker"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "canvasync_circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"breaker", "from", "to"},
	)

	// HTTP endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "canvasync_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "canvasync_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "endpoint"},
	)
)

// RecordBoardEvent records one processed inbound event.
func RecordBoardEvent(event, outcome string) {
	BoardEventsTotal.WithLabelValues(event, outcome).Inc()
}

// RecordBroadcast records one fan-out of an outbound event.
func RecordBroadcast(event string) {
	BroadcastsTotal.WithLabelValues(event).Inc()
}

// RecordSuggestion records the outcome and latency of one suggestion request.
func RecordSuggestion(section, outcome string, duration time.Duration) {
	SuggestionRequestsTotal.WithLabelValues(section, outcome).Inc()
	if outcome == "success" {
		SuggestionDuration.Observe(duration.Seconds())
	}
}

// RecordAPIRequest records one HTTP request.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}
