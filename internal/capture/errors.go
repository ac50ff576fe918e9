package capture

import (
	"errors"
	"net/http"
)

// Capture errors.
var (
	ErrEmptyFrame    = errors.New("captured frame is empty")
	ErrNotImage      = errors.New("frame is not a supported image")
	ErrFrameTooLarge = errors.New("frame exceeds maximum size")
	ErrSourceStatus  = errors.New("capture source returned an error status")
)

// MapHTTPStatus maps capture errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrFrameTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrEmptyFrame), errors.Is(err, ErrNotImage):
		return http.StatusBadRequest
	case errors.Is(err, ErrSourceStatus):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
