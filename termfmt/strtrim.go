package termfmt

import "strings"

// trimToRect cuts a payload down to at most maxHeight lines of maxWidth
// characters, marking the cut points with "[...]".
func trimToRect(s string, maxHeight int, maxWidth int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > maxHeight {
		lines = lines[:maxHeight]
		lines = append(lines, "[...]")
	}
	var sb strings.Builder
	for i, line := range lines {
		if i > 0 {
			sb.WriteString("\n")
		}
		if len(line) > maxWidth {
			sb.WriteString(line[:maxWidth] + "[...]")
		} else {
			sb.WriteString(line)
		}
	}
	return sb.String()
}
