// Package analyses runs and records analysis cycles. One cycle takes a
// captured frame through the vision workflow and the interpreter, archives
// the frame under its session, and folds the outcome into the session history.
package analyses

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/beadreader/internal/capture"
	"github.com/JaimeStill/beadreader/internal/interpret"
)

// Analysis is the stored record of one cycle.
type Analysis struct {
	ID           uuid.UUID         `json:"id"`
	SessionID    uuid.UUID         `json:"session_id"`
	Sequence     []interpret.Color `json:"sequence"`
	Strip        string            `json:"strip"`
	Advisory     string            `json:"advisory"`
	Status       interpret.Status  `json:"status"`
	Response     string            `json:"response,omitempty"`
	FrameKey     string            `json:"frame_key"`
	ContentType  string            `json:"content_type"`
	SizeBytes    int64             `json:"size_bytes"`
	ModelName    string            `json:"model_name"`
	ProviderName string            `json:"provider_name"`
	CreatedAt    time.Time         `json:"created_at"`
}

// Outcome returns the interpreter result recorded by the analysis.
func (a Analysis) Outcome() interpret.Outcome {
	return interpret.Outcome{
		Sequence: a.Sequence,
		Advisory: a.Advisory,
		Status:   a.Status,
	}
}

// AnalyzeCommand carries one captured frame for a session.
type AnalyzeCommand struct {
	SessionID uuid.UUID
	Frame     capture.Frame
}
