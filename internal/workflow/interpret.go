package workflow

import (
	"context"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/beadreader/internal/interpret"
)

// InterpretNode returns a state node that parses the model reply into an
// Outcome. A failed inference maps to interpret.Failure.
func InterpretNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		outcome := interpret.Failure()
		if !failed(s) {
			outcome = interpret.Interpret(response(s))
		}

		rt.Logger.InfoContext(
			ctx, "interpret node complete",
			"status", outcome.Status,
			"sequence_length", len(outcome.Sequence),
		)

		s = s.Set(KeyOutcome, outcome)
		return s, nil
	})
}

func failed(s state.State) bool {
	val, ok := s.Get(KeyFailed)
	if !ok {
		return true
	}
	f, ok := val.(bool)
	return !ok || f
}

func response(s state.State) string {
	val, ok := s.Get(KeyResponse)
	if !ok {
		return ""
	}
	text, _ := val.(string)
	return text
}
