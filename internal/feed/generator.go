// Palaestra - UI Automation Practice Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/palaestra

package feed

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tomtom215/palaestra/internal/config"
	"github.com/tomtom215/palaestra/internal/eventbus"
	"github.com/tomtom215/palaestra/internal/logging"
	"github.com/tomtom215/palaestra/internal/metrics"
	"github.com/tomtom215/palaestra/internal/models"
)

// stepFraction is the largest per-tick move, as a share of a channel's range.
// Small enough that charts drift rather than jump.
const stepFraction = 0.05

// Publisher is the event sink for emitted samples. *eventbus.Publisher
// satisfies it; tests substitute a capture.
type Publisher interface {
	Publish(ctx context.Context, event eventbus.Event) error
}

// channelState tracks one channel's walk between ticks.
type channelState struct {
	cfg   config.ChannelConfig
	value float64
	seq   uint64
}

// Generator emits synthetic samples on every configured channel at a fixed
// interval using a clamped random walk. Each sample is published to the
// feed topic, where the bridge fans it out to WebSocket clients.
//
// With a non-zero seed the walk is fully deterministic, so a UI test can
// assert exact values across runs.
type Generator struct {
	publisher Publisher
	interval  time.Duration
	rng       *rand.Rand

	// Runtime state
	mu       sync.RWMutex
	running  bool
	paused   bool
	stopChan chan struct{}
	wg       sync.WaitGroup

	states  map[string]*channelState
	order   []string // channel names in config order, for deterministic emission
	samples map[string]models.FeedSample

	samplesEmitted atomic.Int64
}

// NewGenerator creates a generator from the feed configuration.
// A zero or negative interval falls back to two seconds.
func NewGenerator(cfg config.FeedConfig, publisher Publisher) *Generator {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 2 * time.Second
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := &Generator{
		publisher: publisher,
		interval:  interval,
		rng:       rand.New(rand.NewSource(seed)), //nolint:gosec // synthetic demo data, not security material
		stopChan:  make(chan struct{}),
		states:    make(map[string]*channelState),
		samples:   make(map[string]models.FeedSample),
	}

	for _, ch := range cfg.EffectiveChannels() {
		g.states[ch.Name] = &channelState{
			cfg:   ch,
			value: (ch.Min + ch.Max) / 2,
		}
		g.order = append(g.order, ch.Name)
	}

	return g
}

// Start begins the emission loop.
func (g *Generator) Start(ctx context.Context) error {
	g.mu.Lock()
	if g.running {
		g.mu.Unlock()
		return nil
	}
	g.running = true
	g.stopChan = make(chan struct{})
	g.mu.Unlock()

	metrics.SetFeedRunning(true)
	logging.Info().Dur("interval", g.interval).Int("channels", len(g.order)).Msg("[feed] Starting generator")

	g.wg.Add(1)
	go g.emitLoop(ctx)

	return nil
}

// Serve implements suture.Service for supervisor integration.
func (g *Generator) Serve(ctx context.Context) error {
	if err := g.Start(ctx); err != nil {
		return err
	}

	// Wait for context cancellation
	<-ctx.Done()

	// Stop the generator
	g.Stop()

	return ctx.Err()
}

// Stop gracefully stops the emission loop.
func (g *Generator) Stop() {
	g.mu.Lock()
	if !g.running {
		g.mu.Unlock()
		return
	}
	g.running = false
	close(g.stopChan)
	g.mu.Unlock()

	g.wg.Wait()
	metrics.SetFeedRunning(false)
	logging.Info().Msg("[feed] Generator stopped")
}

// IsRunning returns whether the emission loop is active.
func (g *Generator) IsRunning() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.running
}

// Pause freezes emission without stopping the loop. Idempotent. Sequence
// numbers survive a pause, so a widget can detect the gap-free resume.
func (g *Generator) Pause() {
	g.mu.Lock()
	already := g.paused
	g.paused = true
	g.mu.Unlock()

	if !already {
		metrics.SetFeedRunning(false)
		logging.Info().Msg("[feed] Paused")
	}
}

// Resume restarts emission after a pause. Idempotent.
func (g *Generator) Resume() {
	g.mu.Lock()
	already := !g.paused
	g.paused = false
	running := g.running
	g.mu.Unlock()

	if !already {
		metrics.SetFeedRunning(running)
		logging.Info().Msg("[feed] Resumed")
	}
}

// IsPaused returns whether emission is currently frozen.
func (g *Generator) IsPaused() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.paused
}

// Channels returns the channel descriptors in configuration order.
func (g *Generator) Channels() []models.FeedChannel {
	g.mu.RLock()
	defer g.mu.RUnlock()

	channels := make([]models.FeedChannel, 0, len(g.order))
	for _, name := range g.order {
		st := g.states[name]
		channels = append(channels, models.FeedChannel{
			Name: st.cfg.Name,
			Unit: st.cfg.Unit,
			Min:  st.cfg.Min,
			Max:  st.cfg.Max,
		})
	}
	return channels
}

// Snapshot returns the latest sample per channel, sorted by channel name.
// Channels that have not emitted since the last reset are omitted.
func (g *Generator) Snapshot() []models.FeedSample {
	g.mu.RLock()
	defer g.mu.RUnlock()

	samples := make([]models.FeedSample, 0, len(g.samples))
	for _, s := range g.samples {
		samples = append(samples, s)
	}
	sort.Slice(samples, func(i, j int) bool {
		return samples[i].Channel < samples[j].Channel
	})
	return samples
}

// ResetSequences rewinds every channel to its pristine state: sequence zero,
// value back at the range midpoint, snapshot cleared. Called by the
// test-data reset endpoint so each test run sees the same stream shape.
func (g *Generator) ResetSequences() {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, st := range g.states {
		st.seq = 0
		st.value = (st.cfg.Min + st.cfg.Max) / 2
	}
	g.samples = make(map[string]models.FeedSample)
}

// emitLoop is the main emission loop.
func (g *Generator) emitLoop(ctx context.Context) {
	defer g.wg.Done()

	// Emit an initial round immediately so dashboards are not blank for
	// a full interval after boot
	g.emit(ctx)

	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Info().Msg("[feed] Context canceled, stopping")
			return
		case <-g.stopChan:
			logging.Info().Msg("[feed] Stop signal received")
			return
		case <-ticker.C:
			g.emit(ctx)
		}
	}
}

// emit produces one sample per channel and publishes each to the feed topic.
func (g *Generator) emit(ctx context.Context) {
	g.mu.Lock()
	if g.paused {
		g.mu.Unlock()
		return
	}

	now := time.Now().UTC()
	batch := make([]models.FeedSample, 0, len(g.order))
	for _, name := range g.order {
		st := g.states[name]
		sample := g.step(st, now)
		g.samples[name] = sample
		batch = append(batch, sample)
	}
	g.mu.Unlock()

	// Publish outside the lock; the breaker or a closed bus must not
	// stall Snapshot and Pause callers.
	for _, sample := range batch {
		event, err := eventbus.NewFeedSample(sample)
		if err != nil {
			logging.Error().Err(err).Str("channel", sample.Channel).Msg("Failed to build feed event")
			continue
		}
		if err := g.publisher.Publish(ctx, event); err != nil {
			logging.Warn().Err(err).Str("channel", sample.Channel).Msg("Feed sample not published")
			continue
		}
		metrics.RecordFeedSample(sample.Channel)
		g.samplesEmitted.Add(1)
	}
}

// step advances one channel's walk and returns the resulting sample.
// The caller holds g.mu.
func (g *Generator) step(st *channelState, now time.Time) models.FeedSample {
	span := st.cfg.Max - st.cfg.Min
	move := (g.rng.Float64()*2 - 1) * span * stepFraction

	next := st.value + move
	if next < st.cfg.Min {
		next = st.cfg.Min
	}
	if next > st.cfg.Max {
		next = st.cfg.Max
	}

	delta := next - st.value
	st.value = next
	st.seq++

	return models.FeedSample{
		Channel:   st.cfg.Name,
		Value:     next,
		Delta:     delta,
		Seq:       st.seq,
		Timestamp: now,
	}
}

// Stats returns current generator statistics.
func (g *Generator) Stats() GeneratorStats {
	g.mu.RLock()
	running := g.running
	paused := g.paused
	channels := len(g.order)
	g.mu.RUnlock()

	return GeneratorStats{
		Running:        running,
		Paused:         paused,
		Channels:       channels,
		Interval:       g.interval,
		SamplesEmitted: g.samplesEmitted.Load(),
	}
}

// GeneratorStats holds runtime statistics.
type GeneratorStats struct {
	Running        bool
	Paused         bool
	Channels       int
	Interval       time.Duration
	SamplesEmitted int64
}
