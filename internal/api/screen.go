package api

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/JaimeStill/beadreader/internal/analyses"
	"github.com/JaimeStill/beadreader/internal/capture"
	"github.com/JaimeStill/beadreader/internal/sessions"
)

// screenSession feeds monitor frames into a single screen session, opened
// on the first captured frame and reopened if it is closed through the API.
type screenSession struct {
	sessions sessions.System
	analyses analyses.System

	mu sync.Mutex
	id uuid.UUID
}

func newScreenSession(sess sessions.System, an analyses.System) *screenSession {
	return &screenSession{
		sessions: sess,
		analyses: an,
	}
}

func (s *screenSession) cycle(ctx context.Context, frame capture.Frame) error {
	id, err := s.current(ctx)
	if err != nil {
		return err
	}

	_, err = s.analyses.Analyze(ctx, analyses.AnalyzeCommand{
		SessionID: id,
		Frame:     frame,
	})
	return err
}

func (s *screenSession) current(ctx context.Context) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.id != uuid.Nil {
		_, err := s.sessions.Find(ctx, s.id)
		if err == nil {
			return s.id, nil
		}
		if !errors.Is(err, sessions.ErrNotFound) {
			return uuid.Nil, err
		}
	}

	created, err := s.sessions.Create(ctx, sessions.CreateCommand{Source: sessions.SourceScreen})
	if err != nil {
		return uuid.Nil, err
	}

	s.id = created.ID
	return s.id, nil
}
