// Package workflow implements the analysis workflow: one vision call for a
// captured image followed by interpretation of the reply. It runs as a
// two-node state graph (infer → interpret).
package workflow

import "errors"

// Sentinel errors for workflow operations.
var (
	ErrEmptyImage  = errors.New("image payload is empty")
	ErrEncodeImage = errors.New("failed to encode image")
	ErrInferFailed = errors.New("inference failed")
	ErrMissingKey  = errors.New("missing workflow state")
)
