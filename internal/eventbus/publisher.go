// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

package eventbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/palaestra/internal/logging"
	"github.com/tomtom215/palaestra/internal/metrics"
)

const breakerName = "event-bus"

// Publisher wraps bus publishes with circuit breaker protection. Broadcast is
// best-effort: when the bus is down the breaker opens and callers keep
// serving REST traffic, the only loss is live WebSocket updates.
type Publisher struct {
	bus    *Bus
	cb     *gobreaker.CircuitBreaker[interface{}]
	logger watermill.LoggerAdapter
}

// NewPublisher creates a publisher for the given bus.
//
// Breaker tuning: the gochannel transport only fails when the bus is closed
// or a subscriber wedges, so the breaker trips fast (5 consecutive failures)
// and retries fast (10s timeout).
func NewPublisher(bus *Bus, logger watermill.LoggerAdapter) *Publisher {
	if logger == nil {
		logger = watermill.NewStdLogger(false, false)
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Warn().Str("from", fromStr).Str("to", toStr).Msg("Event bus circuit breaker state transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &Publisher{
		bus:    bus,
		cb:     cb,
		logger: logger,
	}
}

// Publish serializes and publishes an event to its topic with circuit breaker
// protection. The context is accepted for interface symmetry with networked
// transports; gochannel publishes do not block on I/O.
func (p *Publisher) Publish(_ context.Context, event Event) error {
	msg, err := event.Message()
	if err != nil {
		return fmt.Errorf("build message: %w", err)
	}

	topic := event.Topic()
	start := time.Now()

	_, err = p.cb.Execute(func() (interface{}, error) {
		return nil, p.bus.Publish(topic, msg)
	})

	metrics.RecordBusPublish(topic, time.Since(start), err)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected").Inc()
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "failure").Inc()
		}
		p.logger.Error("Event publish failed", err, watermill.LogFields{
			"topic":      topic,
			"event_type": event.Type,
		})
		return fmt.Errorf("publish %s to %s: %w", event.Type, topic, err)
	}

	metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
	return nil
}

// State returns the breaker state as a string for health reporting.
func (p *Publisher) State() string {
	return stateToString(p.cb.State())
}

// stateToFloat converts circuit breaker state to the gauge encoding.
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to a string for logging.
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
