package analyses

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/beadreader/internal/capture"
	"github.com/JaimeStill/beadreader/internal/sessions"
	"github.com/JaimeStill/beadreader/pkg/guard"
	"github.com/JaimeStill/beadreader/pkg/storage"
)

// Domain errors for analysis operations.
var (
	ErrNotFound  = errors.New("analysis not found")
	ErrDuplicate = errors.New("analysis already exists")
	ErrInvalidID = errors.New("invalid id")
	ErrBadForm   = errors.New("expected a multipart form")
)

// MapHTTPStatus maps analysis, session, guard, capture, and storage errors to
// HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, sessions.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, guard.ErrBusy), errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidID):
		return http.StatusBadRequest
	}
	if code := capture.MapHTTPStatus(err); code != http.StatusInternalServerError {
		return code
	}
	return storage.MapHTTPStatus(err)
}
