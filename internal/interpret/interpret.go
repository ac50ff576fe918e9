package interpret

import (
	"strings"
	"unicode/utf8"
)

// Interpret parses a raw model reply into an Outcome.
//
// Replies shorter than MinResponseLength yield the empty-response outcome.
// Tokens are read from the matrix section when both of its markers are
// present and from the whole reply otherwise. The advisory comes from the
// prediction section, or the unstable-signal text when there is none.
func Interpret(raw string) Outcome {
	if utf8.RuneCountInString(raw) < MinResponseLength {
		return shortResponse()
	}

	seq := classify(matrixSection(raw))
	if len(seq) > MaxSequence {
		seq = seq[len(seq)-MaxSequence:]
	}

	advisory, ok := predictionSection(raw)
	status := StatusOK
	if !ok {
		advisory = AdvisoryUnstable
		status = StatusUnstableSignal
	}

	return Outcome{
		Sequence: seq,
		Advisory: Header + "\n\n" + advisory,
		Status:   status,
	}
}

func matrixSection(raw string) string {
	start := strings.Index(raw, MatrixStart)
	if start < 0 {
		return raw
	}

	rest := raw[start+len(MatrixStart):]
	end := strings.Index(rest, MatrixEnd)
	if end < 0 {
		return raw
	}

	return rest[:end]
}

// classify scans left to right, taking the longest recognized token at each
// position. Tokens are ASCII, so stepping a byte at a time never matches
// inside a multi-byte rune.
func classify(section string) []Color {
	upper := strings.ToUpper(section)
	seq := make([]Color, 0)

	for i := 0; i < len(upper); {
		tok, ok := matchAt(upper[i:])
		if !ok {
			i++
			continue
		}
		seq = append(seq, synonyms[tok])
		i += len(tok)
	}

	return seq
}

func matchAt(s string) (string, bool) {
	for _, tok := range tokens {
		if strings.HasPrefix(s, tok) {
			return tok, true
		}
	}
	return "", false
}

func predictionSection(raw string) (string, bool) {
	parts := strings.SplitN(raw, Prediction, 3)
	if len(parts) < 2 {
		return "", false
	}

	text := strings.TrimSpace(labels.Replace(parts[1]))
	if text == "" {
		return "", false
	}

	return text, true
}
