package guard

import "errors"

// ErrUnknownBackend indicates an unsupported guard backend name.
var ErrUnknownBackend = errors.New("unknown guard backend")
