package interpret_test

import (
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/JaimeStill/beadreader/internal/interpret"
)

const fullReply = `[DATA_STATUS]: VALIDATED
[MATRIX_VALUES]: BLUE, RED, GREEN
[PREDICTION_MODEL]:
- TARGET: BLUE
- LOGIC: alternating pairs
- PROBABILITY: 97%
- SAFETY: cover the tie`

func TestInterpretMarkerExtraction(t *testing.T) {
	input := "... [MATRIX_VALUES]: BLUE, RED, GREEN [PREDICTION_MODEL]: TARGET: BLUE LOGIC: x PROBABILITY: 97% SAFETY: y"
	got := interpret.Interpret(input)

	want := []interpret.Color{interpret.Primary, interpret.Secondary, interpret.Neutral}
	if !slices.Equal(got.Sequence, want) {
		t.Errorf("Sequence = %v, want %v", got.Sequence, want)
	}

	for _, raw := range []string{"TARGET:", "LOGIC:", "PROBABILITY:", "SAFETY:"} {
		if strings.Contains(got.Advisory, raw) {
			t.Errorf("advisory leaks raw label %q: %q", raw, got.Advisory)
		}
	}

	for _, label := range []string{"🚀 ENTRY:", "🔥 PATTERN:", "🎯 CONFIDENCE:", "🛡 COVER:"} {
		if !strings.Contains(got.Advisory, label) {
			t.Errorf("advisory missing label %q: %q", label, got.Advisory)
		}
	}

	if got.Status != interpret.StatusOK {
		t.Errorf("Status = %s, want %s", got.Status, interpret.StatusOK)
	}
}

func TestInterpretAdvisoryFormat(t *testing.T) {
	got := interpret.Interpret(fullReply)

	if !strings.HasPrefix(got.Advisory, interpret.Header+"\n\n") {
		t.Errorf("advisory missing header: %q", got.Advisory)
	}
	if strings.Contains(got.Advisory, interpret.Prediction) {
		t.Errorf("advisory leaks prediction marker: %q", got.Advisory)
	}
	if !strings.HasSuffix(got.Advisory, "🛡 COVER: cover the tie") {
		t.Errorf("advisory not trimmed: %q", got.Advisory)
	}
}

func TestInterpretSynonyms(t *testing.T) {
	t.Run("primary synonyms", func(t *testing.T) {
		for _, tok := range []string{"AZUL", "BLUE", "A", "PLAYER"} {
			got := interpret.Interpret("[MATRIX_VALUES]: " + tok + " [PREDICTION_MODEL]: TARGET: x")
			if !slices.Equal(got.Sequence, []interpret.Color{interpret.Primary}) {
				t.Errorf("%s: Sequence = %v, want [PRIMARY]", tok, got.Sequence)
			}
		}
	})

	t.Run("mixed language keeps positional order", func(t *testing.T) {
		got := interpret.Interpret("[MATRIX_VALUES]: AZUL, BLUE, A, PLAYER [PREDICTION_MODEL]: TARGET: x")
		want := slices.Repeat([]interpret.Color{interpret.Primary}, 4)
		if !slices.Equal(got.Sequence, want) {
			t.Errorf("Sequence = %v, want %v", got.Sequence, want)
		}
	})

	t.Run("secondary and neutral synonyms", func(t *testing.T) {
		got := interpret.Interpret("[MATRIX_VALUES]: vermelho, V, banker, verde, E, tie [PREDICTION_MODEL]: TARGET: x")
		want := []interpret.Color{
			interpret.Secondary, interpret.Secondary, interpret.Secondary,
			interpret.Neutral, interpret.Neutral, interpret.Neutral,
		}
		if !slices.Equal(got.Sequence, want) {
			t.Errorf("Sequence = %v, want %v", got.Sequence, want)
		}
	})

	t.Run("longest token wins", func(t *testing.T) {
		got := interpret.Interpret("[MATRIX_VALUES]: VERMELHO VERDE [PREDICTION_MODEL]: TARGET: x")
		want := []interpret.Color{interpret.Secondary, interpret.Neutral}
		if !slices.Equal(got.Sequence, want) {
			t.Errorf("Sequence = %v, want %v", got.Sequence, want)
		}
	})
}

func TestInterpretTruncation(t *testing.T) {
	var parts []string
	var all []interpret.Color
	for i := range 20 {
		switch i % 3 {
		case 0:
			parts = append(parts, "BLUE")
			all = append(all, interpret.Primary)
		case 1:
			parts = append(parts, "RED")
			all = append(all, interpret.Secondary)
		default:
			parts = append(parts, "GREEN")
			all = append(all, interpret.Neutral)
		}
	}

	input := "[MATRIX_VALUES]: " + strings.Join(parts, ", ") + " [PREDICTION_MODEL]: TARGET: RED"
	got := interpret.Interpret(input)

	if len(got.Sequence) != interpret.MaxSequence {
		t.Fatalf("len(Sequence) = %d, want %d", len(got.Sequence), interpret.MaxSequence)
	}
	if !slices.Equal(got.Sequence, all[8:]) {
		t.Errorf("Sequence = %v, want %v", got.Sequence, all[8:])
	}
}

func TestInterpretShortInput(t *testing.T) {
	for _, input := range []string{"", "x", "123456789"} {
		got := interpret.Interpret(input)
		if len(got.Sequence) != 0 {
			t.Errorf("%q: Sequence = %v, want empty", input, got.Sequence)
		}
		if got.Advisory != interpret.AdvisoryEmptyResponse {
			t.Errorf("%q: Advisory = %q, want empty-response advisory", input, got.Advisory)
		}
		if got.Status != interpret.StatusShortResponse {
			t.Errorf("%q: Status = %s, want %s", input, got.Status, interpret.StatusShortResponse)
		}
	}
}

func TestInterpretShortInputCountsRunes(t *testing.T) {
	// nine runes, more than ten bytes
	got := interpret.Interpret("ééééééééé")
	if got.Status != interpret.StatusShortResponse {
		t.Errorf("Status = %s, want %s", got.Status, interpret.StatusShortResponse)
	}
}

func TestInterpretBlankPrediction(t *testing.T) {
	got := interpret.Interpret("[MATRIX_VALUES]: BLUE, RED [PREDICTION_MODEL]:   \n ")

	if got.Status != interpret.StatusUnstableSignal {
		t.Errorf("Status = %s, want %s", got.Status, interpret.StatusUnstableSignal)
	}
	if got.Advisory != interpret.Header+"\n\n"+interpret.AdvisoryUnstable {
		t.Errorf("Advisory = %q, want unstable signal instead of a bare header", got.Advisory)
	}
}

func TestInterpretMissingPrediction(t *testing.T) {
	got := interpret.Interpret("[MATRIX_VALUES]: BLUE, BLUE, RED and nothing else")

	if got.Advisory != interpret.Header+"\n\n"+interpret.AdvisoryUnstable {
		t.Errorf("Advisory = %q, want unstable signal", got.Advisory)
	}
	if got.Status != interpret.StatusUnstableSignal {
		t.Errorf("Status = %s, want %s", got.Status, interpret.StatusUnstableSignal)
	}
	if len(got.Sequence) == 0 {
		t.Error("Sequence should still be populated without a prediction section")
	}
}

func TestInterpretEmptyPredictionSection(t *testing.T) {
	got := interpret.Interpret("[MATRIX_VALUES]: BLUE [PREDICTION_MODEL]:   \n  ")
	if got.Status != interpret.StatusUnstableSignal {
		t.Errorf("Status = %s, want %s", got.Status, interpret.StatusUnstableSignal)
	}
	if !slices.Equal(got.Sequence, []interpret.Color{interpret.Primary}) {
		t.Errorf("Sequence = %v, want [PRIMARY]", got.Sequence)
	}
}

func TestInterpretScopesTokensToMatrix(t *testing.T) {
	got := interpret.Interpret("[MATRIX_VALUES]: RED [PREDICTION_MODEL]: TARGET: BLUE PLAYER AZUL")
	if !slices.Equal(got.Sequence, []interpret.Color{interpret.Secondary}) {
		t.Errorf("Sequence = %v, want [SECONDARY]", got.Sequence)
	}
}

func TestInterpretFallsBackToWholeText(t *testing.T) {
	got := interpret.Interpret("blue red green tie")
	want := []interpret.Color{interpret.Primary, interpret.Secondary, interpret.Neutral, interpret.Neutral}
	if !slices.Equal(got.Sequence, want) {
		t.Errorf("Sequence = %v, want %v", got.Sequence, want)
	}
}

func TestInterpretNoTokens(t *testing.T) {
	got := interpret.Interpret("[MATRIX_VALUES]: ??? [PREDICTION_MODEL]: TARGET: hold")

	if got.Sequence == nil || len(got.Sequence) != 0 {
		t.Errorf("Sequence = %#v, want empty non-nil", got.Sequence)
	}
	if !strings.Contains(got.Advisory, "🚀 ENTRY: hold") {
		t.Errorf("Advisory = %q, want prediction text", got.Advisory)
	}
}

func TestInterpretSecondPredictionMarker(t *testing.T) {
	got := interpret.Interpret("[MATRIX_VALUES]: A [PREDICTION_MODEL]: TARGET: first [PREDICTION_MODEL]: TARGET: second")
	if !strings.Contains(got.Advisory, "first") || strings.Contains(got.Advisory, "second") {
		t.Errorf("Advisory = %q, want only the first prediction segment", got.Advisory)
	}
}

func TestInterpretPure(t *testing.T) {
	inputs := []string{"", "x", fullReply, "random \x00\xff\xfe bytes that are long enough"}
	for _, input := range inputs {
		a := interpret.Interpret(input)
		b := interpret.Interpret(input)
		if a.Advisory != b.Advisory || a.Status != b.Status || !slices.Equal(a.Sequence, b.Sequence) {
			t.Errorf("%q: results differ: %+v vs %+v", input, a, b)
		}
	}
}

func TestInterpretInvariants(t *testing.T) {
	inputs := []string{
		"",
		"\xff\xfe\xfd\xfc\xfb\xfa\xf9\xf8\xf7\xf6\xf5",
		strings.Repeat("A", 500),
		strings.Repeat("[PREDICTION_MODEL]:", 4),
		"[MATRIX_VALUES]:[PREDICTION_MODEL]",
		fullReply,
	}
	for _, input := range inputs {
		got := interpret.Interpret(input)
		if len(got.Sequence) > interpret.MaxSequence {
			t.Errorf("%q: len(Sequence) = %d exceeds cap", input, len(got.Sequence))
		}
		if got.Advisory == "" {
			t.Errorf("%q: empty advisory", input)
		}
	}
}

func TestFailure(t *testing.T) {
	got := interpret.Failure()

	if len(got.Sequence) != 0 {
		t.Errorf("Sequence = %v, want empty", got.Sequence)
	}
	if got.Advisory != interpret.AdvisoryEngineFailure {
		t.Errorf("Advisory = %q, want engine failure", got.Advisory)
	}
	if got.Advisory == interpret.Interpret("x").Advisory {
		t.Error("engine failure advisory should differ from empty-response advisory")
	}
}

func TestStrip(t *testing.T) {
	seq := []interpret.Color{interpret.Primary, interpret.Secondary, interpret.Neutral}
	if got := interpret.Strip(seq); got != "A V E" {
		t.Errorf("Strip = %q, want %q", got, "A V E")
	}
	if got := interpret.Strip(nil); got != "" {
		t.Errorf("Strip(nil) = %q, want empty", got)
	}
}

func TestColorJSON(t *testing.T) {
	t.Run("round trips known value", func(t *testing.T) {
		var c interpret.Color
		if err := json.Unmarshal([]byte(`"NEUTRAL"`), &c); err != nil {
			t.Fatalf("Unmarshal error: %v", err)
		}
		if c != interpret.Neutral {
			t.Errorf("got %s, want NEUTRAL", c)
		}
	})

	t.Run("rejects unknown value", func(t *testing.T) {
		var c interpret.Color
		err := json.Unmarshal([]byte(`"PURPLE"`), &c)
		if !errors.Is(err, interpret.ErrUnknownColor) {
			t.Errorf("error = %v, want ErrUnknownColor", err)
		}
	})
}

func TestReplaces(t *testing.T) {
	tests := []struct {
		name string
		out  interpret.Outcome
		want bool
	}{
		{"parsed sequence", interpret.Interpret("[MATRIX_VALUES]: RED BLUE [PREDICTION_MODEL]: TARGET: RED"), true},
		{"short response", interpret.Interpret("..."), false},
		{"engine failure", interpret.Failure(), false},
		{"no tokens", interpret.Interpret("[MATRIX_VALUES]: ??? [PREDICTION_MODEL]: nothing"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.out.Replaces(); got != tt.want {
				t.Errorf("Replaces() = %v, want %v", got, tt.want)
			}
		})
	}
}
