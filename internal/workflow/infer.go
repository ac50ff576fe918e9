package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/beadreader/internal/prompts"
)

// InferNode returns a state node that issues exactly one vision request for
// the captured image. A failed call is recorded in state rather than
// returned, so the interpret node can turn it into the engine-failure
// outcome. Only missing state aborts the graph.
func InferNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		img, err := extractImage(s)
		if err != nil {
			return s, fmt.Errorf("infer: %w", err)
		}

		text, err := infer(ctx, rt, img)
		if err != nil {
			rt.Logger.WarnContext(
				ctx, "inference failed",
				"model", rt.Model.Name(),
				"error", err,
			)
			s = s.Set(KeyFailed, true)
			return s, nil
		}

		rt.Logger.InfoContext(
			ctx, "infer node complete",
			"model", rt.Model.Name(),
			"response_length", len(text),
		)

		s = s.Set(KeyFailed, false)
		s = s.Set(KeyResponse, text)
		return s, nil
	})
}

func infer(ctx context.Context, rt *Runtime, img Image) (string, error) {
	dataURI, err := EncodeImage(img)
	if err != nil {
		return "", err
	}

	text, err := rt.Model.Infer(ctx, prompts.System(), prompts.Request, []string{dataURI})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInferFailed, err)
	}

	return text, nil
}

func extractImage(s state.State) (Image, error) {
	val, ok := s.Get(KeyImage)
	if !ok {
		return Image{}, fmt.Errorf("%w: %s", ErrMissingKey, KeyImage)
	}

	img, ok := val.(Image)
	if !ok {
		return Image{}, fmt.Errorf("%w: %s is not Image", ErrMissingKey, KeyImage)
	}

	return img, nil
}
