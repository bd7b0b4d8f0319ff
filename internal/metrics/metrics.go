// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for the practice server:
// - API endpoint latency and throughput
// - WebSocket connections and broadcast volume
// - Event bus publishes and deliveries
// - Dataset sizes and churn (notifications, users, products, files)
// - Live feed emission
//
// Everything carries the palaestra_ prefix so scrapes from a shared test
// bench stay distinguishable.

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "palaestra_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "palaestra_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "palaestra_api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "palaestra_api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Simulated latency injected via the ?delay= parameter. Tracked apart
	// from request duration so real latency regressions stay visible.
	APISimulatedDelay = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "palaestra_api_simulated_delay_seconds",
			Help:    "Artificial delay injected into responses via the delay parameter",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
	)

	// WebSocket Metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "palaestra_websocket_connections",
			Help: "Current number of active WebSocket connections",
		},
	)

	WSMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "palaestra_websocket_messages_sent_total",
			Help: "Total number of WebSocket messages sent",
		},
	)

	WSMessagesReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "palaestra_websocket_messages_received_total",
			Help: "Total number of WebSocket messages received",
		},
	)

	WSClientsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "palaestra_websocket_clients_dropped_total",
			Help: "Total number of clients disconnected because their send buffer filled",
		},
	)

	WSErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "palaestra_websocket_errors_total",
			Help: "Total number of WebSocket errors",
		},
		[]string{"error_type"},
	)

	// Event Bus Metrics
	BusEventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "palaestra_bus_events_published_total",
			Help: "Total number of events published to the in-process bus",
		},
		[]string{"topic"},
	)

	BusEventsDelivered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "palaestra_bus_events_delivered_total",
			Help: "Total number of bus events delivered to subscribers",
		},
		[]string{"topic"},
	)

	BusPublishErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "palaestra_bus_publish_errors_total",
			Help: "Total number of failed bus publishes",
		},
		[]string{"topic"},
	)

	BusPublishDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "palaestra_bus_publish_duration_seconds",
			Help:    "Duration of bus publish calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "palaestra_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "palaestra_circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "palaestra_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Dataset Metrics
	DatasetItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "palaestra_dataset_items",
			Help: "Current number of items held per in-memory dataset",
		},
		[]string{"dataset"}, // "notifications", "users", "products", "files"
	)

	NotificationsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "palaestra_notifications_created_total",
			Help: "Total number of notifications created",
		},
		[]string{"type"},
	)

	NotificationsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "palaestra_notifications_dropped_total",
			Help: "Total number of notifications evicted by the retention cap",
		},
	)

	// Auth Metrics
	AuthLogins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "palaestra_auth_logins_total",
			Help: "Total number of login attempts",
		},
		[]string{"result"}, // "success", "invalid_credentials", "rate_limited"
	)

	AuthzDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "palaestra_authz_decisions_total",
			Help: "Total number of authorization decisions by object, action, and outcome",
		},
		[]string{"object", "action", "decision"}, // decision: "allow", "deny"
	)

	AuthRegistrations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "palaestra_auth_registrations_total",
			Help: "Total number of self-service registrations",
		},
	)

	// Feed Metrics
	FeedSamples = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "palaestra_feed_samples_total",
			Help: "Total number of synthetic feed samples emitted",
		},
		[]string{"channel"},
	)

	FeedRunning = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "palaestra_feed_running",
			Help: "Whether the live feed generator is emitting (1) or paused (0)",
		},
	)

	// Upload Metrics
	UploadsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "palaestra_uploads_total",
			Help: "Total number of accepted file uploads",
		},
	)

	UploadBytes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "palaestra_upload_bytes_total",
			Help: "Total bytes accepted across file uploads",
		},
	)

	UploadsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "palaestra_uploads_rejected_total",
			Help: "Total number of rejected file uploads",
		},
		[]string{"reason"}, // "too_large", "store_full", "bad_request"
	)

	// Test Data Metrics
	TestDataResets = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "palaestra_testdata_resets_total",
			Help: "Total number of full test-data resets",
		},
	)

	TestDataSeeds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "palaestra_testdata_seeds_total",
			Help: "Total number of test-data seed operations",
		},
		[]string{"dataset"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "palaestra_app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "palaestra_app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a rejected request on a rate-limited endpoint
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordSimulatedDelay records artificial latency injected into a response
func RecordSimulatedDelay(d time.Duration) {
	APISimulatedDelay.Observe(d.Seconds())
}

// RecordBusPublish records a bus publish and its outcome
func RecordBusPublish(topic string, duration time.Duration, err error) {
	BusPublishDuration.Observe(duration.Seconds())
	if err != nil {
		BusPublishErrors.WithLabelValues(topic).Inc()
		return
	}
	BusEventsPublished.WithLabelValues(topic).Inc()
}

// RecordBusDelivery records a bus event handed to a subscriber
func RecordBusDelivery(topic string) {
	BusEventsDelivered.WithLabelValues(topic).Inc()
}

// RecordLogin records a login attempt outcome
func RecordLogin(result string) {
	AuthLogins.WithLabelValues(result).Inc()
}

// RecordAuthzDecision records an authorization decision outcome
func RecordAuthzDecision(object, action string, allowed bool) {
	decision := "deny"
	if allowed {
		decision = "allow"
	}
	AuthzDecisions.WithLabelValues(object, action, decision).Inc()
}

// SetDatasetSize updates the item-count gauge for one dataset
func SetDatasetSize(dataset string, n int) {
	DatasetItems.WithLabelValues(dataset).Set(float64(n))
}

// RecordNotificationCreated records a created notification by type
func RecordNotificationCreated(notificationType string) {
	NotificationsCreated.WithLabelValues(notificationType).Inc()
}

// RecordNotificationsDropped records notifications evicted by the retention cap
func RecordNotificationsDropped(n int) {
	NotificationsDropped.Add(float64(n))
}

// RecordFeedSample records one emitted feed sample
func RecordFeedSample(channel string) {
	FeedSamples.WithLabelValues(channel).Inc()
}

// SetFeedRunning flips the feed-running gauge
func SetFeedRunning(running bool) {
	if running {
		FeedRunning.Set(1)
	} else {
		FeedRunning.Set(0)
	}
}

// RecordUpload records an accepted upload
func RecordUpload(sizeBytes int64) {
	UploadsTotal.Inc()
	UploadBytes.Add(float64(sizeBytes))
}

// RecordUploadRejected records a rejected upload by reason
func RecordUploadRejected(reason string) {
	UploadsRejected.WithLabelValues(reason).Inc()
}

// RecordTestDataReset records a full test-data reset
func RecordTestDataReset() {
	TestDataResets.Inc()
}

// RecordTestDataSeed records a seed operation for one dataset
func RecordTestDataSeed(dataset string) {
	TestDataSeeds.WithLabelValues(dataset).Inc()
}

// SetAppInfo publishes the build version labels
func SetAppInfo(version string) {
	AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
}
