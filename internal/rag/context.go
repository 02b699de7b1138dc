package rag

import "strings"

// AssembleContext concatenates match texts into a single prompt context,
// preserving the order given (similarity descending), separated by a
// blank line. Pure and deterministic; any token budget is the answer
// generator's concern, not enforced here.
func AssembleContext(matches []Match) string {
	if len(matches) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, m := range matches {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(m.Text)
	}
	return sb.String()
}
