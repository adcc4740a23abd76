package extract

import (
	"strings"
	"unicode"
)

// isLineBreak reports whether r terminates a line. The set matches the
// separators recognised by common text layers: LF, CR, VT, FF, the ASCII
// file/group/record separators, NEL and the Unicode line/paragraph separators.
func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', 0x1c, 0x1d, 0x1e, 0x85, 0x2028, 0x2029:
		return true
	}
	return false
}

// Lines splits text into trimmed, non-blank lines, preserving order.
func Lines(text string) []string {
	raw := strings.FieldsFunc(text, isLineBreak)

	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimFunc(line, isStripped)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func isStripped(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// joinLines concatenates lines with single spaces.
func joinLines(lines []string) string {
	return strings.Join(lines, " ")
}
