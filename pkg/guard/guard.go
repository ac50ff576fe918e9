// Package guard serializes analysis cycles per key. A key with a cycle in
// flight rejects further acquisitions until the holder releases it.
package guard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/beadreader/pkg/lifecycle"
)

// ErrBusy indicates a cycle is already in flight for the key.
var ErrBusy = errors.New("analysis already in flight")

// Release frees a held key. Calling it more than once is a no-op.
type Release func()

// System hands out per-key in-flight slots.
type System interface {
	// Acquire claims key or returns ErrBusy when it is already held.
	Acquire(ctx context.Context, key string) (Release, error)
	// Start registers startup and shutdown hooks with the lifecycle coordinator.
	Start(lc *lifecycle.Coordinator) error
}

// New creates the guard backend selected by cfg.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	switch cfg.Backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendRedis:
		return newRedis(cfg, logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
