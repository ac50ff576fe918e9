// Package interpret turns the free-text reply of the vision model into an
// ordered color sequence and a user-facing advisory.
//
// Interpret is a pure function over its input plus the static tables in this
// package. It never returns an error: every malformed, truncated, or empty
// reply degrades to a well-formed Outcome.
package interpret

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Color is one of the three token classes read from the bead plate.
type Color string

// Recognized color classes. Primary and secondary are the two competing
// outcomes on the grid; neutral is the tie.
const (
	Primary   Color = "PRIMARY"
	Secondary Color = "SECONDARY"
	Neutral   Color = "NEUTRAL"
)

var colors = []Color{Primary, Secondary, Neutral}

// Colors returns the closed set of color classes.
func Colors() []Color {
	return colors
}

// Symbol returns the single-letter glyph used in the history strip.
func (c Color) Symbol() string {
	switch c {
	case Primary:
		return "A"
	case Secondary:
		return "V"
	case Neutral:
		return "E"
	}
	return "?"
}

// UnmarshalJSON rejects values outside the closed set.
func (c *Color) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v := Color(raw)
	if !slices.Contains(colors, v) {
		return fmt.Errorf("%w: %q", ErrUnknownColor, raw)
	}
	*c = v
	return nil
}

// Strip renders a sequence as space-separated symbols, oldest first.
func Strip(seq []Color) string {
	symbols := make([]string, len(seq))
	for i, c := range seq {
		symbols[i] = c.Symbol()
	}
	return strings.Join(symbols, " ")
}
