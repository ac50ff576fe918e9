// Package prompts holds the fixed instruction template sent with every
// analysis request. The template is split the same way for every call:
// tunable reading instructions first, then the immutable response format
// that the interpreter depends on.
package prompts

const readInstructions = `You are reading a bead plate: a grid of colored circles recorded in columns, top to bottom, left to right.

Locate the grid in the image and classify every circle by color:
- Blue circles = BLUE
- Red circles = RED
- Green circles = GREEN

List the most recent 10 to 15 circles in chronological order, following the column order of the grid. Report only circles you can actually see. If the image does not contain a readable grid, say so in DATA_STATUS and leave MATRIX_VALUES empty.

Then describe the pattern you observe in the listed sequence (streaks, alternation, clusters) and name the color that pattern points to next. Outcomes on the grid are independent events: state your probability as an honest estimate and never present it as a certainty.`

// Request is the literal user message that accompanies the image.
const Request = "Read the bead plate in this image and report the values and the pattern you observe."

// Instructions returns the reading instructions.
func Instructions() string {
	return readInstructions
}
