package prompts

const responseFormat = `Respond in plain text using exactly this layout, one field per line:

[DATA_STATUS]: VALIDATED | UNREADABLE
[MATRIX_VALUES]: BLUE, RED, GREEN, BLUE, ...
[PREDICTION_MODEL]:
- TARGET: BLUE | RED
- LOGIC: <short description of the observed pattern>
- PROBABILITY: <estimated percentage>%
- SAFETY: <suggested cover, e.g. COVER GREEN>

Format constraints:
- Use only the words BLUE, RED and GREEN inside MATRIX_VALUES, comma separated
- Keep the bracketed markers exactly as written
- No markdown, no extra sections`

// Format returns the immutable response format.
func Format() string {
	return responseFormat
}
