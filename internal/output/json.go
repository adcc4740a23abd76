package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/a3tai/customs-pdf-extract/internal/batch"
)

// JSONWriter emits the records as a single JSON array followed by a newline.
// Non-ASCII text is written as UTF-8 and HTML characters are left unescaped.
type JSONWriter struct{}

// Write encodes records to w
func (JSONWriter) Write(w io.Writer, records []batch.Record) error {
	if records == nil {
		records = []batch.Record{}
	}
	if err := EncodeJSON(w, records); err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}
	return nil
}

// EncodeJSON writes v as compact JSON and a newline, leaving every non-ASCII
// character unescaped, U+2028 and U+2029 included.
func EncodeJSON(w io.Writer, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	_, err := w.Write(unescapeLineSeparators(buf.Bytes()))
	return err
}

// unescapeLineSeparators turns the \u2028 and \u2029 escapes that
// encoding/json always emits back into the raw characters. Other escape
// sequences are copied untouched, so an escaped backslash followed by
// "u2028" stays literal text.
func unescapeLineSeparators(b []byte) []byte {
	if !bytes.Contains(b, []byte(`\u202`)) {
		return b
	}

	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] != '\\' || i+1 >= len(b) {
			out = append(out, b[i])
			continue
		}
		if b[i+1] == 'u' && i+5 < len(b) && string(b[i+2:i+5]) == "202" && (b[i+5] == '8' || b[i+5] == '9') {
			if b[i+5] == '8' {
				out = append(out, "\u2028"...)
			} else {
				out = append(out, "\u2029"...)
			}
			i += 5
			continue
		}
		out = append(out, b[i], b[i+1])
		i++
	}
	return out
}
