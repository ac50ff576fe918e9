package sessions

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/beadreader/internal/interpret"
)

// System defines the public contract for session domain operations.
type System interface {
	Handler() *Handler

	Create(ctx context.Context, cmd CreateCommand) (*Session, error)
	Find(ctx context.Context, id uuid.UUID) (*Session, error)
	// Record applies an analysis outcome to the session history.
	Record(ctx context.Context, id uuid.UUID, o interpret.Outcome) (*Session, error)
	// Close deletes the session with all of its analyses and frames.
	Close(ctx context.Context, id uuid.UUID) error
}
