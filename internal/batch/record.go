package batch

import (
	"github.com/a3tai/customs-pdf-extract/internal/extract"
)

// Record is the result for one input file. A failed file carries only File
// and Error; a successful one carries whichever fields were found.
type Record struct {
	extract.Fields
	File  string `json:"file"`
	Error string `json:"error,omitempty"`
}

// Failed reports whether the file could not be processed
func (r Record) Failed() bool {
	return r.Error != ""
}

func successRecord(file string, fields extract.Fields) Record {
	return Record{Fields: fields, File: file}
}

func failureRecord(file string, err error) Record {
	msg := err.Error()
	if msg == "" {
		msg = "unknown error"
	}
	return Record{File: file, Error: msg}
}
