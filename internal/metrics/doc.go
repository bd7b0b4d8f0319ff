// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

/*
Package metrics provides Prometheus metrics collection and export for observability.

This package instruments the practice server with the Prometheus client library.
Metric values are incidental in a throwaway fixture; what matters is that the
/metrics endpoint itself is a stable target for scrape-pipeline and dashboard
tests, so the metric families below are part of the server's public contract.

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:3001/metrics

# Available Metrics

API:
  - palaestra_api_requests_total (counter): method, endpoint, status_code
  - palaestra_api_request_duration_seconds (histogram): method, endpoint
  - palaestra_api_active_requests (gauge)
  - palaestra_api_rate_limit_hits_total (counter): endpoint
  - palaestra_api_simulated_delay_seconds (histogram)

WebSocket:
  - palaestra_websocket_connections (gauge)
  - palaestra_websocket_messages_sent_total (counter)
  - palaestra_websocket_messages_received_total (counter)
  - palaestra_websocket_clients_dropped_total (counter)
  - palaestra_websocket_errors_total (counter): error_type

Event bus:
  - palaestra_bus_events_published_total (counter): topic
  - palaestra_bus_events_delivered_total (counter): topic
  - palaestra_bus_publish_errors_total (counter): topic
  - palaestra_bus_publish_duration_seconds (histogram)
  - palaestra_circuit_breaker_state (gauge): name
  - palaestra_circuit_breaker_requests_total (counter): name, result
  - palaestra_circuit_breaker_state_transitions_total (counter): name, from_state, to_state

Datasets:
  - palaestra_dataset_items (gauge): dataset
  - palaestra_notifications_created_total (counter): type
  - palaestra_notifications_dropped_total (counter)
  - palaestra_uploads_total, palaestra_upload_bytes_total (counters)
  - palaestra_uploads_rejected_total (counter): reason

Auth, feed, and test data:
  - palaestra_auth_logins_total (counter): result
  - palaestra_auth_registrations_total (counter)
  - palaestra_authz_decisions_total (counter): object, action, decision
  - palaestra_feed_samples_total (counter): channel
  - palaestra_feed_running (gauge)
  - palaestra_testdata_resets_total (counter)
  - palaestra_testdata_seeds_total (counter): dataset

System:
  - palaestra_app_info (gauge): version, go_version
  - palaestra_app_uptime_seconds (gauge)

# Usage

Metrics are registered at package init via promauto and recorded through
helper functions:

	metrics.RecordAPIRequest("GET", "/api/v1/notifications", "200", elapsed)
	metrics.RecordLogin("success")
	metrics.SetDatasetSize("notifications", store.Len())

All helpers are safe for concurrent use.
*/
package metrics
