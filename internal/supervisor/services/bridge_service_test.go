// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

// mockForwarder is a test double for TopicForwarder interface.
type mockForwarder struct {
	runErr   error
	runCount atomic.Int32
}

func (m *mockForwarder) Run(ctx context.Context) error {
	m.runCount.Add(1)
	if m.runErr != nil {
		return m.runErr
	}
	<-ctx.Done()
	return ctx.Err()
}

func (m *mockForwarder) RunCount() int {
	return int(m.runCount.Load())
}

func TestBridgeService_Interface(t *testing.T) {
	// Verify BridgeService implements suture.Service
	var _ suture.Service = (*BridgeService)(nil)
}

func TestNewBridgeService(t *testing.T) {
	bridge := &mockForwarder{}
	svc := NewBridgeService(bridge)

	if svc == nil {
		t.Fatal("NewBridgeService returned nil")
	}
	if svc.bridge != bridge {
		t.Error("bridge not assigned correctly")
	}
	if svc.name != "event-bridge" {
		t.Errorf("expected name 'event-bridge', got %q", svc.name)
	}
}

func TestBridgeService_Serve(t *testing.T) {
	t.Run("returns context error on cancellation", func(t *testing.T) {
		bridge := &mockForwarder{}
		svc := NewBridgeService(bridge)

		ctx, cancel := context.WithCancel(context.Background())

		errCh := make(chan error, 1)
		go func() {
			errCh <- svc.Serve(ctx)
		}()

		time.Sleep(20 * time.Millisecond)
		cancel()

		select {
		case err := <-errCh:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("expected context.Canceled, got %v", err)
			}
		case <-time.After(time.Second):
			t.Error("Serve did not return after context cancellation")
		}

		if bridge.RunCount() != 1 {
			t.Errorf("expected 1 run, got %d", bridge.RunCount())
		}
	})

	t.Run("propagates subscription errors", func(t *testing.T) {
		expectedErr := errors.New("subscribe to notifications: bus closed")
		bridge := &mockForwarder{runErr: expectedErr}
		svc := NewBridgeService(bridge)

		err := svc.Serve(context.Background())
		if !errors.Is(err, expectedErr) {
			t.Errorf("expected %v, got %v", expectedErr, err)
		}
	})
}

func TestBridgeService_String(t *testing.T) {
	bridge := &mockForwarder{}
	svc := NewBridgeService(bridge)

	if svc.String() != "event-bridge" {
		t.Errorf("expected 'event-bridge', got %q", svc.String())
	}
}

func TestBridgeService_RestartedAfterFailure(t *testing.T) {
	// A bridge that fails its subscription should be restarted by the
	// supervisor, not abandoned.
	bridge := &mockForwarder{runErr: errors.New("transient subscribe failure")}
	svc := NewBridgeService(bridge)

	sup := suture.New("test-sup", suture.Spec{
		FailureThreshold: 10,
		FailureBackoff:   10 * time.Millisecond,
		Timeout:          100 * time.Millisecond,
	})
	sup.Add(svc)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	errCh := sup.ServeBackground(ctx)

	time.Sleep(150 * time.Millisecond)
	cancel()
	<-errCh

	if bridge.RunCount() < 2 {
		t.Errorf("expected at least 2 runs after failure, got %d", bridge.RunCount())
	}
}
