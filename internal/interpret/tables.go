package interpret

import (
	"cmp"
	"slices"
	"strings"
)

// Section markers the instruction template asks the model to emit.
const (
	MatrixStart = "[MATRIX_VALUES]:"
	MatrixEnd   = "[PREDICTION_MODEL]"
	Prediction  = "[PREDICTION_MODEL]:"
)

const (
	// MinResponseLength is the rune count below which a reply is treated as
	// empty (typically a filtered response).
	MinResponseLength = 10

	// MaxSequence caps the returned sequence to the most recent entries.
	MaxSequence = 12
)

// Fixed advisory texts.
const (
	Header = "💎 BEADREADER SIGNAL:"

	AdvisoryUnstable = "⚠️ UNSTABLE SIGNAL. TRY AGAIN."

	AdvisoryEmptyResponse = "❌ CONNECTION ERROR. THE ENGINE RETURNED AN EMPTY RESPONSE.\n\n" +
		"Check your connection and send the image again."

	AdvisoryEngineFailure = "❌ NEURAL ENGINE FAILURE.\n\n" +
		"Reason: too much glare or a poor angle. Clean the lens, center the grid and retake the photo."
)

// synonyms maps every recognized upper-case token to its color class.
var synonyms = map[string]Color{
	"BLUE":   Primary,
	"AZUL":   Primary,
	"A":      Primary,
	"PLAYER": Primary,

	"RED":      Secondary,
	"VERMELHO": Secondary,
	"V":        Secondary,
	"BANKER":   Secondary,

	"GREEN": Neutral,
	"VERDE": Neutral,
	"E":     Neutral,
	"TIE":   Neutral,
}

// labels replaces the technical field names of the prediction section with
// their user-facing forms.
var labels = strings.NewReplacer(
	"TARGET:", "🚀 ENTRY:",
	"LOGIC:", "🔥 PATTERN:",
	"PROBABILITY:", "🎯 CONFIDENCE:",
	"SAFETY:", "🛡 COVER:",
)

// tokens lists the synonym keys longest first so a scan prefers VERMELHO
// and VERDE over V.
var tokens = sortedTokens()

func sortedTokens() []string {
	keys := make([]string, 0, len(synonyms))
	for k := range synonyms {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return keys
}
