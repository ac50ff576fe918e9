package database

import "errors"

// ErrNotReady indicates the database is unreachable or was never reached
// during startup.
var ErrNotReady = errors.New("database not ready")
