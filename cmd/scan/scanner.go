package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/JaimeStill/beadreader/internal/capture"
	"github.com/JaimeStill/beadreader/internal/interpret"
	"github.com/JaimeStill/beadreader/internal/workflow"
	"github.com/JaimeStill/beadreader/pkg/guard"
)

// scanner runs analysis cycles against a model and prints each outcome. It
// keeps the displayed strip locally; an empty sequence leaves it unchanged.
type scanner struct {
	rt     *workflow.Runtime
	guard  guard.System
	out    io.Writer
	logger *slog.Logger

	mu      sync.Mutex
	history []interpret.Color
}

func newScanner(model workflow.Model, out io.Writer, logger *slog.Logger) *scanner {
	return &scanner{
		rt:      &workflow.Runtime{Model: model, Logger: logger},
		guard:   guard.NewMemory(),
		out:     out,
		logger:  logger,
		history: []interpret.Color{},
	}
}

// cycle analyzes one frame. It satisfies capture.Cycle so the monitor can
// drive it; overlapping cycles are rejected with guard.ErrBusy.
func (s *scanner) cycle(ctx context.Context, frame capture.Frame) error {
	release, err := s.guard.Acquire(ctx, "scan")
	if err != nil {
		return err
	}
	defer release()

	outcome := s.analyze(ctx, frame)
	s.render(frame, outcome)
	return nil
}

func (s *scanner) analyze(ctx context.Context, frame capture.Frame) interpret.Outcome {
	result, err := workflow.Execute(ctx, s.rt, frame.Image())
	if err != nil {
		s.logger.ErrorContext(ctx, "workflow failed", "source", frame.Source, "error", err)
		return interpret.Failure()
	}

	s.logger.DebugContext(ctx, "workflow complete",
		"source", frame.Source,
		"status", result.Outcome.Status,
		"failed", result.Failed,
	)
	return result.Outcome
}

func (s *scanner) render(frame capture.Frame, outcome interpret.Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if outcome.Replaces() {
		s.history = outcome.Sequence
	}

	fmt.Fprintf(s.out, "[%s] %s\n", frame.CapturedAt.Format("15:04:05"), interpret.Strip(s.history))
	fmt.Fprintf(s.out, "  %s (%s)\n", outcome.Advisory, outcome.Status)
}

// History returns the strip currently displayed.
func (s *scanner) History() []interpret.Color {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history
}
