// Package sessions implements capture sessions. A session scopes one run of a
// capture source: its visible history strip, its analyses, and its archived
// frames. Closing a session erases all of them.
package sessions

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/beadreader/internal/interpret"
)

// Source names the capture adapter feeding a session.
type Source string

// Supported capture sources.
const (
	SourceCamera Source = "camera"
	SourceUpload Source = "upload"
	SourceScreen Source = "screen"
)

var sources = []Source{SourceCamera, SourceUpload, SourceScreen}

// Valid reports whether s is a supported source.
func (s Source) Valid() bool {
	return slices.Contains(sources, s)
}

// Session is a capture session and its current history strip.
type Session struct {
	ID        uuid.UUID         `json:"id"`
	Source    Source            `json:"source"`
	History   []interpret.Color `json:"history"`
	Strip     string            `json:"strip"`
	Advisory  string            `json:"advisory"`
	Status    interpret.Status  `json:"status"`
	Analyses  int               `json:"analyses"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// Apply records an outcome against the session. The history strip is only
// replaced by a non-empty sequence; the advisory always reflects the latest outcome.
func (s *Session) Apply(o interpret.Outcome) {
	if o.Replaces() {
		s.History = slices.Clone(o.Sequence)
	}
	s.Strip = interpret.Strip(s.History)
	s.Advisory = o.Advisory
	s.Status = o.Status
	s.Analyses++
}

// CreateCommand carries the data needed to open a session.
type CreateCommand struct {
	Source Source `json:"source"`
}

// FramePrefix returns the storage prefix holding every frame of a session.
func FramePrefix(id uuid.UUID) string {
	return fmt.Sprintf("sessions/%s/", id)
}
