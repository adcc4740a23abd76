package pdf

import (
	"fmt"
	"os"
)

// Validator performs the cheap file checks that precede parsing
type Validator struct {
	maxFileSize int64
}

// NewValidator creates a new validator with the specified size limit
func NewValidator(maxFileSize int64) *Validator {
	return &Validator{
		maxFileSize: maxFileSize,
	}
}

// Check verifies that path names a non-empty regular file within the size limit.
// The extension is not checked: callers select files by pattern.
func (v *Validator) Check(path string) error {
	if path == "" {
		return ErrEmptyPath
	}

	fileInfo, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}

	return v.CheckInfo(fileInfo)
}

// CheckInfo validates file info without touching the file contents
func (v *Validator) CheckInfo(fileInfo os.FileInfo) error {
	if !fileInfo.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotRegular, fileInfo.Name())
	}

	if fileInfo.Size() == 0 {
		return ErrEmptyFile
	}

	if v.maxFileSize > 0 && fileInfo.Size() > v.maxFileSize {
		return fmt.Errorf("%w: %d bytes (max: %d bytes)", ErrTooLarge, fileInfo.Size(), v.maxFileSize)
	}

	return nil
}
