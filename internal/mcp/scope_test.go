package mcp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFolderScope(t *testing.T) {
	_, err := newFolderScope("")
	assert.Error(t, err)

	scope, err := newFolderScope("relative/dir")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(scope.root))
}

func TestFolderScope_Resolve(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "sub"), 0o755))

	scope, err := newFolderScope(root)
	require.NoError(t, err)

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{name: "relative file", path: "a.pdf", want: filepath.Join(root, "a.pdf")},
		{name: "relative subfolder", path: "sub", want: filepath.Join(root, "sub")},
		{name: "absolute inside", path: filepath.Join(root, "sub", "b.pdf"), want: filepath.Join(root, "sub", "b.pdf")},
		{name: "root itself", path: root, want: root},
		{name: "dot dot escape", path: "../x.pdf", wantErr: true},
		{name: "absolute outside", path: filepath.Join(outside, "x.pdf"), wantErr: true},
		{name: "sibling with shared prefix", path: root + "-other", wantErr: true},
		{name: "empty", path: "", wantErr: true},
		{name: "null bytes only", path: "\x00", wantErr: true},
		{name: "null bytes stripped", path: "a\x00.pdf", want: filepath.Join(root, "a.pdf")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scope.Resolve(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFolderScope_SymlinkEscape(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	target := filepath.Join(outside, "secret.pdf")
	require.NoError(t, os.WriteFile(target, []byte("%PDF"), 0o644))

	link := filepath.Join(root, "link.pdf")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	scope, err := newFolderScope(root)
	require.NoError(t, err)

	_, err = scope.Resolve("link.pdf")
	assert.ErrorContains(t, err, "outside the configured folder")
}
