package workflow

import (
	"context"
	"fmt"
	"time"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/beadreader/internal/interpret"
)

// Execute runs the analysis workflow for a single image: one inference call
// followed by interpretation. Inference failures are folded into the
// Result as the engine-failure outcome; an error is returned only when the
// graph itself cannot run.
func Execute(ctx context.Context, rt *Runtime, img Image) (*Result, error) {
	graph, err := buildGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initialState := state.New(nil)
	initialState = initialState.Set(KeyImage, img)

	finalState, err := graph.Execute(ctx, initialState)
	if err != nil {
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	return extractResult(finalState)
}

func buildGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("beadreader-analyze")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("infer", InferNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("interpret", InterpretNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("infer", "interpret", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("infer"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("interpret"); err != nil {
		return nil, err
	}

	return graph, nil
}

func extractResult(s state.State) (*Result, error) {
	val, ok := s.Get(KeyOutcome)
	if !ok {
		return nil, fmt.Errorf("%w: %s in final state", ErrMissingKey, KeyOutcome)
	}

	outcome, ok := val.(interpret.Outcome)
	if !ok {
		return nil, fmt.Errorf("%s is not interpret.Outcome", KeyOutcome)
	}

	return &Result{
		Outcome:     outcome,
		Response:    response(s),
		Failed:      failed(s),
		CompletedAt: time.Now(),
	}, nil
}
