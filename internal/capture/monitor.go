package capture

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/JaimeStill/beadreader/pkg/guard"
	"github.com/JaimeStill/beadreader/pkg/lifecycle"
)

// Cycle runs one analysis cycle for a captured frame. An error wrapping
// guard.ErrBusy means a previous cycle is still running and the tick is skipped.
type Cycle func(ctx context.Context, frame Frame) error

// Status is a snapshot of monitor activity.
type Status struct {
	Enabled     bool       `json:"enabled"`
	Running     bool       `json:"running"`
	Source      string     `json:"source"`
	Interval    string     `json:"interval"`
	Ticks       uint64     `json:"ticks"`
	Analyzed    uint64     `json:"analyzed"`
	Skipped     uint64     `json:"skipped"`
	Failed      uint64     `json:"failed"`
	LastCapture *time.Time `json:"last_capture,omitempty"`
}

// Monitor captures from a source on a fixed interval while running and
// enabled. Ticks are handled sequentially; a tick that arrives while a cycle
// is still in flight is dropped.
type Monitor struct {
	source   Source
	interval time.Duration
	cycle    Cycle
	logger   *slog.Logger

	enabled  atomic.Bool
	running  atomic.Bool
	ticks    atomic.Uint64
	analyzed atomic.Uint64
	skipped  atomic.Uint64
	failed   atomic.Uint64

	mu   sync.Mutex
	last time.Time
}

// NewMonitor creates a disabled monitor.
func NewMonitor(source Source, interval time.Duration, cycle Cycle, logger *slog.Logger) *Monitor {
	return &Monitor{
		source:   source,
		interval: interval,
		cycle:    cycle,
		logger:   logger.With("system", "monitor", "source", source.Name()),
	}
}

// SetEnabled toggles automatic analysis without stopping the ticker.
func (m *Monitor) SetEnabled(enabled bool) {
	m.enabled.Store(enabled)
	m.logger.Info("monitor toggled", "enabled", enabled)
}

// Enabled reports whether ticks trigger analysis.
func (m *Monitor) Enabled() bool {
	return m.enabled.Load()
}

// Run ticks until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) {
	m.running.Store(true)
	defer m.running.Store(false)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.logger.Info("monitor running", "interval", m.interval)

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("monitor stopped")
			return
		case <-ticker.C:
			m.Tick(ctx)
		}
	}
}

// Tick performs a single capture and analysis when enabled.
func (m *Monitor) Tick(ctx context.Context) {
	m.ticks.Add(1)
	if !m.Enabled() {
		return
	}

	frame, err := m.source.Capture(ctx)
	if err != nil {
		m.failed.Add(1)
		m.logger.WarnContext(ctx, "capture failed", "error", err)
		return
	}

	m.mu.Lock()
	m.last = frame.CapturedAt
	m.mu.Unlock()

	err = m.cycle(ctx, frame)
	switch {
	case errors.Is(err, guard.ErrBusy):
		m.skipped.Add(1)
		m.logger.DebugContext(ctx, "tick skipped, analysis in flight")
	case err != nil:
		m.failed.Add(1)
		m.logger.WarnContext(ctx, "analysis cycle failed", "error", err)
	default:
		m.analyzed.Add(1)
	}
}

// Start runs the monitor in the background for the lifetime of lc. Ticking
// begins once every startup hook has completed.
func (m *Monitor) Start(lc *lifecycle.Coordinator) error {
	lc.OnReady(m.Run)
	return nil
}

// Status returns current monitor counters.
func (m *Monitor) Status() Status {
	s := Status{
		Enabled:  m.Enabled(),
		Running:  m.running.Load(),
		Source:   m.source.Name(),
		Interval: m.interval.String(),
		Ticks:    m.ticks.Load(),
		Analyzed: m.analyzed.Load(),
		Skipped:  m.skipped.Load(),
		Failed:   m.failed.Load(),
	}

	m.mu.Lock()
	if !m.last.IsZero() {
		last := m.last
		s.LastCapture = &last
	}
	m.mu.Unlock()

	return s
}
