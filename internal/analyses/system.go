package analyses

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/JaimeStill/beadreader/pkg/pagination"
)

// System defines the public contract for analysis operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	// Analyze runs one cycle for a frame. It returns guard.ErrBusy when a
	// cycle for the same session is still in flight.
	Analyze(ctx context.Context, cmd AnalyzeCommand) (*Analysis, error)

	List(
		ctx context.Context,
		sessionID uuid.UUID,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Analysis], error)

	Find(ctx context.Context, sessionID, id uuid.UUID) (*Analysis, error)

	// Frame streams the archived frame of an analysis. The caller must close the reader.
	Frame(ctx context.Context, sessionID, id uuid.UUID) (io.ReadCloser, string, error)
}
