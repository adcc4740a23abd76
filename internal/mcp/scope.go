package mcp

import (
	"fmt"
	"path/filepath"
	"strings"
)

// folderScope confines the paths tools accept to the configured folder
type folderScope struct {
	root     string
	realRoot string
}

func newFolderScope(root string) (*folderScope, error) {
	if root == "" {
		return nil, fmt.Errorf("folder cannot be empty")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve folder: %w", err)
	}
	abs = filepath.Clean(abs)

	real := abs
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		real = resolved
	}
	return &folderScope{root: abs, realRoot: real}, nil
}

// Resolve returns the absolute form of path, which may be relative to the
// folder. Paths leaving the folder, directly or through a symlink, are
// rejected.
func (s *folderScope) Resolve(path string) (string, error) {
	path = strings.ReplaceAll(path, "\x00", "")
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(s.root, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	real := abs
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		real = resolved
	}

	if !s.contains(abs) || !s.contains(real) {
		return "", fmt.Errorf("path is outside the configured folder: %s", path)
	}
	return abs, nil
}

func (s *folderScope) contains(path string) bool {
	return within(path, s.root) || within(path, s.realRoot)
}

func within(path, dir string) bool {
	if path == dir {
		return true
	}
	if !strings.HasSuffix(dir, string(filepath.Separator)) {
		dir += string(filepath.Separator)
	}
	return strings.HasPrefix(path, dir)
}
