package guard

import (
	"context"
	"sync"

	"github.com/JaimeStill/beadreader/pkg/lifecycle"
)

type memory struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewMemory creates a process-local guard.
func NewMemory() System {
	return &memory{
		held: make(map[string]struct{}),
	}
}

func (m *memory) Acquire(_ context.Context, key string) (Release, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.held[key]; ok {
		return nil, ErrBusy
	}
	m.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.held, key)
			m.mu.Unlock()
		})
	}, nil
}

func (m *memory) Start(*lifecycle.Coordinator) error {
	return nil
}
