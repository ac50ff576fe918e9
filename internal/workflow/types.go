package workflow

import (
	"time"

	"github.com/JaimeStill/beadreader/internal/interpret"
)

const (
	KeyImage    = "image"
	KeyResponse = "response"
	KeyFailed   = "failed"
	KeyOutcome  = "outcome"
)

// Image is a captured payload handed over by a capture source.
type Image struct {
	Data        []byte `json:"-"`
	ContentType string `json:"content_type"`
}

// Result is the final output of one workflow execution. Response holds the
// raw model reply and is empty when the call failed.
type Result struct {
	Outcome     interpret.Outcome `json:"outcome"`
	Response    string            `json:"response"`
	Failed      bool              `json:"failed"`
	CompletedAt time.Time         `json:"completed_at"`
}
