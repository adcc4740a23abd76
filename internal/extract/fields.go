// Package extract pulls the declaration fields out of the text layer of a
// customs export declaration. Every rule is a pure function over the trimmed,
// non-blank lines of a document and only ever looks at the first occurrence
// of its anchor.
package extract

import (
	"regexp"
	"strings"
)

// Anchors printed next to the boxes of the declaration form.
const (
	ExporterAnchor  = "Exportator [13 01]"
	DateAnchor      = "[15 09]"
	ContainerAnchor = "[19 07]"
)

// MRN window around the label line: lines[i-mrnBefore : i+mrnAfter].
const (
	mrnBefore = 3
	mrnAfter  = 8
)

var (
	// Both are checked for Unicode word boundaries by findWord.
	mrnCodePattern  = regexp.MustCompile(`25RO[A-Z0-9]{6,}`)
	mrnLabelPattern = regexp.MustCompile(`(?i)MRN`)

	leadingWord     = regexp.MustCompile(`^[\p{L}\p{N}_]+`)
	leadingAlnum    = regexp.MustCompile(`(?i)^[A-Z0-9]+`)
	dayMonthPattern = regexp.MustCompile(`(\p{Nd}{2}-\p{Nd}{2})-\p{Nd}{4}`)
)

// Fields holds the values found in one declaration. Empty means not found.
type Fields struct {
	ExporterName    string `json:"numeExportator,omitempty"`
	MRN             string `json:"mrn,omitempty"`
	DeclarationDate string `json:"dataDeclaratie,omitempty"`
	ContainerNumber string `json:"nrContainer,omitempty"`
}

// Empty reports whether no field was extracted.
func (f Fields) Empty() bool {
	return f == Fields{}
}

// Extract runs every rule over the document text.
func Extract(text string) Fields {
	lines := Lines(text)

	var f Fields
	if v, ok := ExporterName(lines); ok {
		f.ExporterName = v
	}
	if v, ok := MRN(lines); ok {
		f.MRN = v
	}
	if v, ok := DeclarationDate(lines); ok {
		f.DeclarationDate = v
	}
	if v, ok := ContainerNumber(lines); ok {
		f.ContainerNumber = v
	}
	return f
}

// ExporterName returns the first word of the line following the exporter box label.
func ExporterName(lines []string) (string, bool) {
	return nextLinePrefix(lines, ExporterAnchor, leadingWord)
}

// ContainerNumber returns the leading alphanumeric run of the line following
// the container box label, e.g. "MSKU1234567" from "MSKU1234567 (40GP)".
func ContainerNumber(lines []string) (string, bool) {
	return nextLinePrefix(lines, ContainerAnchor, leadingAlnum)
}

// DeclarationDate returns the DD-MM part of the first DD-MM-YYYY date on the
// acceptance date line. The year is dropped.
func DeclarationDate(lines []string) (string, bool) {
	i := indexContaining(lines, DateAnchor)
	if i < 0 {
		return "", false
	}
	m := dayMonthPattern.FindStringSubmatch(lines[i])
	if m == nil {
		return "", false
	}
	return m[1], true
}

// MRN locates the movement reference number. When a line carries the MRN
// label, only the window around that first label is searched: each line in
// order, then the window joined with spaces. A label with no code in its
// window yields nothing, even if a code appears elsewhere in the document.
// Without a label the whole document is searched as one joined string.
func MRN(lines []string) (string, bool) {
	for i, line := range lines {
		if _, ok := findWord(mrnLabelPattern, line); !ok {
			continue
		}

		window := lines[max(0, i-mrnBefore):min(len(lines), i+mrnAfter)]
		for _, w := range window {
			if code, ok := findWord(mrnCodePattern, w); ok {
				return code, true
			}
		}
		return findWord(mrnCodePattern, joinLines(window))
	}

	return findWord(mrnCodePattern, joinLines(lines))
}

// nextLinePrefix finds the first line containing anchor and applies prefix to
// the line after it. Later occurrences of the anchor are ignored.
func nextLinePrefix(lines []string, anchor string, prefix *regexp.Regexp) (string, bool) {
	i := indexContaining(lines, anchor)
	if i < 0 || i+1 >= len(lines) {
		return "", false
	}
	v := prefix.FindString(lines[i+1])
	return v, v != ""
}

func indexContaining(lines []string, substr string) int {
	for i, line := range lines {
		if strings.Contains(line, substr) {
			return i
		}
	}
	return -1
}
