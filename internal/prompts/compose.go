package prompts

import "strings"

// System builds the system-level instruction sent with every analysis
// request: reading instructions followed by the response format. The image
// travels with Request as the user message.
func System() string {
	var sb strings.Builder
	sb.WriteString(Instructions())
	sb.WriteString("\n\n")
	sb.WriteString(Format())
	return sb.String()
}
