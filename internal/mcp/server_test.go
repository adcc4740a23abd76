package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/customs-pdf-extract/internal/batch"
	"github.com/a3tai/customs-pdf-extract/internal/config"
	"github.com/a3tai/customs-pdf-extract/internal/pdf"
)

func writeDeclaration(t *testing.T, dir, name string, lines ...string) {
	t.Helper()
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetFont("Helvetica", "", 11)
	doc.AddPage()
	for i, line := range lines {
		doc.Text(20, 20+float64(i)*8, line)
	}
	require.NoError(t, doc.OutputFileAndClose(filepath.Join(dir, name)))
}

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()

	writeDeclaration(t, dir, "a.pdf",
		"Exportator [13 01]",
		"ACME1 extra text",
		"Identificare container [19 07]",
		"MSKU1234567 (40GP)",
	)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.pdf"), []byte("not a pdf"), 0o644))

	cfg := config.DefaultConfig()
	cfg.Mode = config.ModeMCP
	cfg.Folder = dir
	cfg.ServerName = "test-server"

	driver := batch.NewDriver(pdf.NewLoader(cfg.MaxFileSize, nil), nil)
	s, err := NewServer(cfg, driver, nil)
	require.NoError(t, err)
	return s, dir
}

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{Params: mcp.CallToolParams{Arguments: args}}
}

func TestNewServer(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Folder = t.TempDir()
	driver := batch.NewDriver(pdf.NewLoader(cfg.MaxFileSize, nil), nil)

	s, err := NewServer(cfg, driver, nil)
	require.NoError(t, err)
	assert.Same(t, cfg, s.config)
	assert.Same(t, driver, s.driver)
	assert.NotNil(t, s.mcpServer)
	assert.NotNil(t, s.logger)

	_, err = NewServer(nil, driver, nil)
	assert.ErrorContains(t, err, "config cannot be nil")

	_, err = NewServer(cfg, nil, nil)
	assert.ErrorContains(t, err, "driver cannot be nil")

	cfg.Folder = ""
	_, err = NewServer(cfg, driver, nil)
	assert.ErrorContains(t, err, "folder cannot be empty")
}

func TestHandleExtractFile(t *testing.T) {
	s, dir := newTestServer(t)

	tests := []struct {
		name string
		path string
		want map[string]string
	}{
		{
			name: "absolute path",
			path: filepath.Join(dir, "a.pdf"),
			want: map[string]string{"numeExportator": "ACME1", "nrContainer": "MSKU1234567", "file": "a.pdf"},
		},
		{
			name: "relative to default folder",
			path: "a.pdf",
			want: map[string]string{"numeExportator": "ACME1", "nrContainer": "MSKU1234567", "file": "a.pdf"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := s.handleExtractFile(context.Background(), callRequest(map[string]interface{}{"path": tt.path}))
			require.NoError(t, err)
			require.False(t, result.IsError)

			var got map[string]string
			require.NoError(t, json.Unmarshal([]byte(extractTextFromResult(result)), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHandleExtractFile_Unreadable(t *testing.T) {
	s, _ := newTestServer(t)

	result, err := s.handleExtractFile(context.Background(), callRequest(map[string]interface{}{"path": "b.pdf"}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(extractTextFromResult(result)), &got))
	assert.Equal(t, "b.pdf", got["file"])
	assert.NotEmpty(t, got["error"])
	assert.Len(t, got, 2)
}

func TestHandleExtractFile_MissingPath(t *testing.T) {
	s, _ := newTestServer(t)

	result, err := s.handleExtractFile(context.Background(), callRequest(map[string]interface{}{}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleExtractDirectory(t *testing.T) {
	s, dir := newTestServer(t)

	for name, args := range map[string]map[string]interface{}{
		"default folder":  {},
		"explicit folder": {"directory": dir},
	} {
		t.Run(name, func(t *testing.T) {
			result, err := s.handleExtractDirectory(context.Background(), callRequest(args))
			require.NoError(t, err)
			require.False(t, result.IsError)

			var records []batch.Record
			require.NoError(t, json.Unmarshal([]byte(extractTextFromResult(result)), &records))
			require.Len(t, records, 2)
			assert.Equal(t, "a.pdf", records[0].File)
			assert.Equal(t, "ACME1", records[0].ExporterName)
			assert.Equal(t, "b.pdf", records[1].File)
			assert.True(t, records[1].Failed())
		})
	}
}

func TestHandleExtractDirectory_Empty(t *testing.T) {
	s, dir := newTestServer(t)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "empty"), 0o755))

	result, err := s.handleExtractDirectory(context.Background(),
		callRequest(map[string]interface{}{"directory": "empty"}))
	require.NoError(t, err)
	assert.Equal(t, "[]\n", extractTextFromResult(result))
}

func TestHandlers_RejectPathsOutsideFolder(t *testing.T) {
	s, _ := newTestServer(t)
	outside := t.TempDir()

	result, err := s.handleExtractFile(context.Background(),
		callRequest(map[string]interface{}{"path": filepath.Join(outside, "x.pdf")}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, extractTextFromResult(result), "outside the configured folder")

	result, err = s.handleExtractDirectory(context.Background(),
		callRequest(map[string]interface{}{"directory": outside}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleExtractDirectory_NotADirectory(t *testing.T) {
	s, dir := newTestServer(t)

	result, err := s.handleExtractDirectory(context.Background(),
		callRequest(map[string]interface{}{"directory": filepath.Join(dir, "a.pdf")}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleServerInfo(t *testing.T) {
	s, dir := newTestServer(t)

	result, err := s.handleServerInfo(context.Background(), callRequest(nil))
	require.NoError(t, err)

	text := extractTextFromResult(result)
	assert.Contains(t, text, "test-server")
	assert.Contains(t, text, "Default folder: "+dir)
	assert.Contains(t, text, "PDF files: 2")
	for _, tool := range []string{ToolExtractFile, ToolExtractDirectory, ToolServerInfo} {
		assert.Contains(t, text, tool)
	}
	assert.Contains(t, text, "[19 07]")
}

func TestServer_Run_EmptyInput(t *testing.T) {
	s, _ := newTestServer(t)

	var out strings.Builder
	err := s.Run(context.Background(), strings.NewReader(""), &out)
	if err != nil {
		assert.Contains(t, err.Error(), "EOF")
	}
}

// Helper function to extract text from a CallToolResult
func extractTextFromResult(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}

	for _, content := range result.Content {
		if textContent, ok := content.(mcp.TextContent); ok {
			return textContent.Text
		}
		if textContentPtr, ok := content.(*mcp.TextContent); ok {
			return textContentPtr.Text
		}
	}

	return ""
}
