// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestRecordAPIRequest tests API request metric recording
func TestRecordAPIRequest(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		endpoint   string
		statusCode string
		duration   time.Duration
	}{
		{
			name:       "successful GET",
			method:     "GET",
			endpoint:   "/api/v1/notifications",
			statusCode: "200",
			duration:   10 * time.Millisecond,
		},
		{
			name:       "created POST",
			method:     "POST",
			endpoint:   "/api/v1/notifications",
			statusCode: "201",
			duration:   25 * time.Millisecond,
		},
		{
			name:       "not found",
			method:     "GET",
			endpoint:   "/api/v1/users/{id}",
			statusCode: "404",
			duration:   2 * time.Millisecond,
		},
		{
			name:       "slow delayed response",
			method:     "GET",
			endpoint:   "/api/v1/products",
			statusCode: "200",
			duration:   5 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode))

			RecordAPIRequest(tt.method, tt.endpoint, tt.statusCode, tt.duration)

			after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode))
			if after != before+1 {
				t.Errorf("APIRequestsTotal = %v, want %v", after, before+1)
			}
		})
	}
}

// TestTrackActiveRequest verifies the in-flight gauge moves both directions
func TestTrackActiveRequest(t *testing.T) {
	start := testutil.ToFloat64(APIActiveRequests)

	for i := 0; i < 10; i++ {
		TrackActiveRequest(true)
	}
	if got := testutil.ToFloat64(APIActiveRequests); got != start+10 {
		t.Errorf("APIActiveRequests = %v, want %v", got, start+10)
	}

	for i := 0; i < 10; i++ {
		TrackActiveRequest(false)
	}
	if got := testutil.ToFloat64(APIActiveRequests); got != start {
		t.Errorf("APIActiveRequests = %v, want %v after balanced inc/dec", got, start)
	}
}

// TestRecordBusPublish verifies success and error paths hit different counters
func TestRecordBusPublish(t *testing.T) {
	topic := "test_publish_topic"

	okBefore := testutil.ToFloat64(BusEventsPublished.WithLabelValues(topic))
	errBefore := testutil.ToFloat64(BusPublishErrors.WithLabelValues(topic))

	RecordBusPublish(topic, time.Millisecond, nil)
	RecordBusPublish(topic, time.Millisecond, errors.New("breaker open"))

	if got := testutil.ToFloat64(BusEventsPublished.WithLabelValues(topic)); got != okBefore+1 {
		t.Errorf("BusEventsPublished = %v, want %v", got, okBefore+1)
	}
	if got := testutil.ToFloat64(BusPublishErrors.WithLabelValues(topic)); got != errBefore+1 {
		t.Errorf("BusPublishErrors = %v, want %v", got, errBefore+1)
	}
}

// TestSetFeedRunning verifies the gauge flips between 0 and 1
func TestSetFeedRunning(t *testing.T) {
	SetFeedRunning(true)
	if got := testutil.ToFloat64(FeedRunning); got != 1 {
		t.Errorf("FeedRunning = %v, want 1", got)
	}

	SetFeedRunning(false)
	if got := testutil.ToFloat64(FeedRunning); got != 0 {
		t.Errorf("FeedRunning = %v, want 0", got)
	}
}

// TestSetDatasetSize verifies the per-dataset gauge tracks the latest value
func TestSetDatasetSize(t *testing.T) {
	SetDatasetSize("notifications", 42)
	if got := testutil.ToFloat64(DatasetItems.WithLabelValues("notifications")); got != 42 {
		t.Errorf("DatasetItems[notifications] = %v, want 42", got)
	}

	SetDatasetSize("notifications", 0)
	if got := testutil.ToFloat64(DatasetItems.WithLabelValues("notifications")); got != 0 {
		t.Errorf("DatasetItems[notifications] = %v, want 0 after reset", got)
	}
}

// TestRecordUpload verifies both the count and byte counters move
func TestRecordUpload(t *testing.T) {
	countBefore := testutil.ToFloat64(UploadsTotal)
	bytesBefore := testutil.ToFloat64(UploadBytes)

	RecordUpload(1024)
	RecordUpload(2048)

	if got := testutil.ToFloat64(UploadsTotal); got != countBefore+2 {
		t.Errorf("UploadsTotal = %v, want %v", got, countBefore+2)
	}
	if got := testutil.ToFloat64(UploadBytes); got != bytesBefore+3072 {
		t.Errorf("UploadBytes = %v, want %v", got, bytesBefore+3072)
	}
}

// TestRecordLogin exercises every label the dashboards group by
func TestRecordLogin(t *testing.T) {
	for _, result := range []string{"success", "invalid_credentials", "rate_limited"} {
		before := testutil.ToFloat64(AuthLogins.WithLabelValues(result))
		RecordLogin(result)
		if got := testutil.ToFloat64(AuthLogins.WithLabelValues(result)); got != before+1 {
			t.Errorf("AuthLogins[%s] = %v, want %v", result, got, before+1)
		}
	}
}

// TestRecordNotificationsDropped verifies batch eviction counts accumulate
func TestRecordNotificationsDropped(t *testing.T) {
	before := testutil.ToFloat64(NotificationsDropped)
	RecordNotificationsDropped(3)
	RecordNotificationsDropped(1)
	if got := testutil.ToFloat64(NotificationsDropped); got != before+4 {
		t.Errorf("NotificationsDropped = %v, want %v", got, before+4)
	}
}

// TestConcurrentMetricRecording verifies helpers are safe under contention
func TestConcurrentMetricRecording(t *testing.T) {
	var wg sync.WaitGroup
	numGoroutines := 100
	operationsPerGoroutine := 50

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < operationsPerGoroutine; j++ {
				RecordAPIRequest("GET", "/api/v1/test", "200", time.Duration(j)*time.Millisecond)
			}
		}()
	}

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < operationsPerGoroutine; j++ {
				TrackActiveRequest(true)
				TrackActiveRequest(false)
			}
		}()
	}

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < operationsPerGoroutine; j++ {
				RecordBusPublish("notifications", time.Millisecond, nil)
				RecordFeedSample("cpu_load")
			}
		}()
	}

	wg.Wait()
}

// TestMetricsRegistration verifies all metrics are properly registered
func TestMetricsRegistration(t *testing.T) {
	metrics := []prometheus.Collector{
		APIRequestsTotal,
		APIRequestDuration,
		APIActiveRequests,
		APIRateLimitHits,
		APISimulatedDelay,
		WSConnections,
		WSMessagesSent,
		WSMessagesReceived,
		WSClientsDropped,
		WSErrors,
		BusEventsPublished,
		BusEventsDelivered,
		BusPublishErrors,
		BusPublishDuration,
		CircuitBreakerState,
		CircuitBreakerRequests,
		CircuitBreakerTransitions,
		DatasetItems,
		NotificationsCreated,
		NotificationsDropped,
		AuthLogins,
		AuthzDecisions,
		AuthRegistrations,
		FeedSamples,
		FeedRunning,
		UploadsTotal,
		UploadBytes,
		UploadsRejected,
		TestDataResets,
		TestDataSeeds,
		AppInfo,
		AppUptime,
	}

	// Verify each metric can be described
	for _, m := range metrics {
		ch := make(chan *prometheus.Desc, 10)
		m.Describe(ch)
		close(ch)

		count := 0
		for range ch {
			count++
		}
		if count == 0 {
			t.Errorf("Metric has no descriptors")
		}
	}
}

// TestMetricGathering tests that metrics can be gathered using testutil
func TestMetricGathering(t *testing.T) {
	RecordAPIRequest("GET", "/test", "200", time.Millisecond)
	RecordTestDataReset()
	RecordTestDataSeed("users")

	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Logf("Lint errors (may be expected): %v", err)
	}
	for _, p := range problems {
		t.Logf("Metric lint problem: %s", p.Text)
	}
}

// Benchmark tests for metrics performance

func BenchmarkRecordAPIRequest(b *testing.B) {
	for i := 0; i < b.N; i++ {
		RecordAPIRequest("GET", "/api/v1/notifications", "200", 25*time.Millisecond)
	}
}

func BenchmarkRecordBusPublish(b *testing.B) {
	for i := 0; i < b.N; i++ {
		RecordBusPublish("notifications", time.Millisecond, nil)
	}
}

func BenchmarkTrackActiveRequest(b *testing.B) {
	for i := 0; i < b.N; i++ {
		TrackActiveRequest(true)
		TrackActiveRequest(false)
	}
}
