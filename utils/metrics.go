package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_operation_duration_seconds",
			Help:    "Duration of database operations",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation", "collection"},
	)

	// Task Metrics
	TaskOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_operations_total",
			Help: "Total number of task operations",
		},
		[]string{"operation"}, // create, update, delete, complete, uncomplete
	)

	// Reset Metrics
	ResetsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "day_resets_total",
			Help: "Total number of day reset attempts by outcome",
		},
		[]string{"outcome"}, // resolved, failed, not_needed
	)

	// Board Metrics
	BoardTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "board_transitions_total",
			Help: "Total number of board transitions by outcome",
		},
		[]string{"outcome"}, // confirmed, rolled_back, rejected, noop
	)

	ActiveBoards = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_boards_total",
			Help: "Current number of in-memory user boards",
		},
	)

	// Authentication Metrics
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"status", "type"}, // success/failure, register/login/logout
	)

	// Error Metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "errors_total",
			Help: "Total number of errors by type and cause",
		},
		[]string{"type", "cause"},
	)

	// System Metrics
	SystemCPUUsage = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "system_cpu_usage_percent",
			Help: "Current CPU usage percentage",
		},
	)

	SystemMemoryUsage = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "system_memory_usage_percent",
			Help: "Current virtual memory usage percentage",
		},
	)
)

// TrackDBOperation tracks database operation duration
func TrackDBOperation(operation, collection string) *prometheus.Timer {
	return prometheus.NewTimer(DBOperationDuration.WithLabelValues(operation, collection))
}

// TrackTaskOperation increments the task operation counter
func TrackTaskOperation(operation string) {
	TaskOperationsTotal.WithLabelValues(operation).Inc()
}

// TrackReset records a reset attempt outcome
func TrackReset(outcome string) {
	ResetsTotal.WithLabelValues(outcome).Inc()
}

// TrackBoardTransition records a board transition outcome
func TrackBoardTransition(outcome string) {
	BoardTransitionsTotal.WithLabelValues(outcome).Inc()
}

// TrackAuthAttempt records authentication attempts
func TrackAuthAttempt(status, authType string) {
	AuthAttempts.WithLabelValues(status, authType).Inc()
}

// TrackError increments the error counter by type
func TrackError(errorType, cause string) {
	ErrorsTotal.WithLabelValues(errorType, cause).Inc()
}
