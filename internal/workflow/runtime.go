package workflow

import "log/slog"

// Runtime bundles the dependencies that workflow nodes require.
// It is constructed by higher-level composition code from Infrastructure and Domain systems.
type Runtime struct {
	Model  Model
	Logger *slog.Logger
}
