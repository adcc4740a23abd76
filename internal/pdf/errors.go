package pdf

import (
	"errors"
	"fmt"
)

// Operations reported in LoadError.
const (
	OpValidate = "validate"
	OpOpen     = "open"
	OpParse    = "parse"
)

var (
	ErrEmptyPath  = errors.New("path cannot be empty")
	ErrNotRegular = errors.New("not a regular file")
	ErrEmptyFile  = errors.New("file is empty")
	ErrTooLarge   = errors.New("file too large")
)

// LoadError describes why a document could not be loaded
type LoadError struct {
	Path string `json:"path"`
	Op   string `json:"operation"`
	Err  error  `json:"error"`
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("pdf %s: %v", e.Op, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
