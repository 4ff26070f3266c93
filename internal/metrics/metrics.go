// Package metrics holds the Prometheus collectors for the bot.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// resolutionsTotal counts lookups by entity type and outcome.
	// Labels: entity_type, outcome (exact, single_candidate, selected, no_selection, not_found, error)
	resolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "zen",
		Subsystem: "lookup",
		Name:      "resolutions_total",
		Help:      "Total entity lookups by entity type and outcome",
	}, []string{"entity_type", "outcome"})

	// sessionsTotal counts finished disambiguation sessions by final state.
	sessionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "zen",
		Subsystem: "disambiguation",
		Name:      "sessions_total",
		Help:      "Total disambiguation sessions by final state",
	}, []string{"state"})

	// sessionDurationSeconds measures how long sessions stay pending.
	sessionDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "zen",
		Subsystem: "disambiguation",
		Name:      "session_duration_seconds",
		Help:      "Time from prompt to session close",
		Buckets:   []float64{1, 2, 5, 10, 20, 30, 60, 120},
	}, []string{"state"})

	// storeQueriesTotal counts compendium queries by driver, operation and result.
	// Labels: driver (postgres, sqlite), op (exact, fuzzy, upsert), result (ok, not_found, error)
	storeQueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "zen",
		Subsystem: "store",
		Name:      "queries_total",
		Help:      "Total compendium store queries",
	}, []string{"driver", "op", "result"})

	storeQuerySeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "zen",
		Subsystem: "store",
		Name:      "query_seconds",
		Help:      "Compendium store query latency",
		Buckets:   prometheus.DefBuckets,
	}, []string{"driver", "op"})

	// breakerState is 0 closed, 1 half-open, 2 open.
	breakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "zen",
		Subsystem: "store",
		Name:      "breaker_state",
		Help:      "Circuit breaker state (0 closed, 1 half-open, 2 open)",
	}, []string{"name"})

	commandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "zen",
		Subsystem: "commands",
		Name:      "invocations_total",
		Help:      "Total command invocations by command and result",
	}, []string{"command", "result"})

	gatewayConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "zen",
		Subsystem: "gateway",
		Name:      "connections",
		Help:      "Open gateway connections",
	})
)

// RecordResolution records one lookup outcome
func RecordResolution(entityType, outcome string) {
	resolutionsTotal.WithLabelValues(entityType, outcome).Inc()
}

// RecordSession records a closed disambiguation session
func RecordSession(state string, pending time.Duration) {
	sessionsTotal.WithLabelValues(state).Inc()
	sessionDurationSeconds.WithLabelValues(state).Observe(pending.Seconds())
}

// RecordStoreQuery records a compendium query and its latency
func RecordStoreQuery(driver, op, result string, took time.Duration) {
	storeQueriesTotal.WithLabelValues(driver, op, result).Inc()
	storeQuerySeconds.WithLabelValues(driver, op).Observe(took.Seconds())
}

// SetBreakerState publishes the breaker state
func SetBreakerState(name string, state float64) {
	breakerState.WithLabelValues(name).Set(state)
}

// RecordCommand records a command invocation
func RecordCommand(command, result string) {
	commandsTotal.WithLabelValues(command, result).Inc()
}

// GatewayConnected adjusts the open connection gauge
func GatewayConnected(delta float64) {
	gatewayConnections.Add(delta)
}
