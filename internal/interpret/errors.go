package interpret

import "errors"

// ErrUnknownColor is returned when decoding a color outside the closed set.
var ErrUnknownColor = errors.New("unknown color class")
