package interpret

// Status identifies which branch of interpretation produced an Outcome.
type Status string

// Interpretation branches.
const (
	StatusOK              Status = "ok"
	StatusShortResponse   Status = "short_response"
	StatusUpstreamFailure Status = "upstream_failure"
	StatusUnstableSignal  Status = "unstable_signal"
)

// Outcome is the result of one interpretation cycle. Sequence holds at most
// MaxSequence entries, most recent last. Advisory is never empty.
type Outcome struct {
	Sequence []Color `json:"sequence"`
	Advisory string  `json:"advisory"`
	Status   Status  `json:"status"`
}

// Strip renders the outcome's sequence as a history strip.
func (o Outcome) Strip() string {
	return Strip(o.Sequence)
}

// Replaces reports whether o should replace a displayed history strip.
// An empty sequence leaves the previous strip in place.
func (o Outcome) Replaces() bool {
	return len(o.Sequence) > 0
}

// Failure returns the outcome for an inference call that could not complete.
// It is distinct from the short-response outcome by advisory and status.
func Failure() Outcome {
	return Outcome{
		Sequence: []Color{},
		Advisory: AdvisoryEngineFailure,
		Status:   StatusUpstreamFailure,
	}
}

func shortResponse() Outcome {
	return Outcome{
		Sequence: []Color{},
		Advisory: AdvisoryEmptyResponse,
		Status:   StatusShortResponse,
	}
}
