package extract

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

// isWordRune reports whether r belongs to a word for boundary purposes:
// Unicode letters, numbers and the underscore.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// findWord returns the first match of re in s that starts and ends on a word
// boundary. Go's \b only knows ASCII word characters, so the boundary is
// checked here against Unicode letters and numbers instead.
//
// The pattern must match a run of word characters; a candidate rejected at
// its right edge cannot be rescued by a shorter match, so scanning resumes one
// rune after the rejected start.
func findWord(re *regexp.Regexp, s string) (string, bool) {
	offset := 0
	for offset <= len(s) {
		loc := re.FindStringIndex(s[offset:])
		if loc == nil {
			return "", false
		}
		start, end := offset+loc[0], offset+loc[1]

		if boundaryBefore(s, start) && boundaryAfter(s, end) {
			return s[start:end], true
		}

		_, size := utf8.DecodeRuneInString(s[start:])
		if size == 0 {
			return "", false
		}
		offset = start + size
	}
	return "", false
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isWordRune(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !isWordRune(r)
}
