package prompts_test

import (
	"strings"
	"testing"

	"github.com/JaimeStill/beadreader/internal/interpret"
	"github.com/JaimeStill/beadreader/internal/prompts"
)

func TestSystem(t *testing.T) {
	got := prompts.System()

	t.Run("instructions then format", func(t *testing.T) {
		instrIdx := strings.Index(got, prompts.Instructions())
		formatIdx := strings.Index(got, prompts.Format())

		if instrIdx < 0 || formatIdx < 0 {
			t.Fatal("system prompt missing a part")
		}
		if instrIdx >= formatIdx {
			t.Error("instructions should appear before format")
		}
	})

	t.Run("excludes the literal request", func(t *testing.T) {
		if strings.Contains(got, prompts.Request) {
			t.Error("request belongs to the user message")
		}
	})

	t.Run("format uses the interpreter markers", func(t *testing.T) {
		for _, marker := range []string{interpret.MatrixStart, interpret.Prediction} {
			if !strings.Contains(prompts.Format(), marker) {
				t.Errorf("format missing marker %q", marker)
			}
		}
	})

	t.Run("is stable across calls", func(t *testing.T) {
		if prompts.System() != got {
			t.Error("System should be deterministic")
		}
	})
}
