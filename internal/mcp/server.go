package mcp

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/a3tai/customs-pdf-extract/internal/batch"
	"github.com/a3tai/customs-pdf-extract/internal/config"
	"github.com/a3tai/customs-pdf-extract/internal/descriptions"
	"github.com/a3tai/customs-pdf-extract/internal/output"
)

// Tool names
const (
	ToolExtractFile      = "customs_extract_file"
	ToolExtractDirectory = "customs_extract_directory"
	ToolServerInfo       = "customs_server_info"
)

// Server exposes the batch driver as MCP tools
type Server struct {
	config    *config.Config
	driver    *batch.Driver
	scope     *folderScope
	logger    *zap.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, driver *batch.Driver, logger *zap.Logger) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if driver == nil {
		return nil, fmt.Errorf("driver cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	scope, err := newFolderScope(cfg.Folder)
	if err != nil {
		return nil, err
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // the tool list never changes
	)

	s := &Server{
		config:    cfg,
		driver:    driver,
		scope:     scope,
		logger:    logger,
		mcpServer: mcpServer,
	}
	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	extractFileTool := mcp.NewTool(
		ToolExtractFile,
		mcp.WithDescription(descriptions.ExtractFileDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the declaration PDF inside the default folder; relative paths resolve against it"),
		),
	)
	s.mcpServer.AddTool(extractFileTool, s.handleExtractFile)

	extractDirectoryTool := mcp.NewTool(
		ToolExtractDirectory,
		mcp.WithDescription(descriptions.ExtractDirectoryDescription),
		mcp.WithString("directory",
			mcp.Description("Folder inside the default folder to process (uses default if empty)"),
		),
	)
	s.mcpServer.AddTool(extractDirectoryTool, s.handleExtractDirectory)

	serverInfoTool := mcp.NewTool(
		ToolServerInfo,
		mcp.WithDescription(descriptions.ServerInfoDescription),
	)
	s.mcpServer.AddTool(serverInfoTool, s.handleServerInfo)
}

func (s *Server) handleExtractFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resolved, err := s.scope.Resolve(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	record := s.driver.ProcessFile(ctx, resolved)

	text, err := encodeJSON(record)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleExtractDirectory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	directory, _ := request.GetArguments()["directory"].(string)
	if directory == "" {
		directory = s.scope.root
	}
	directory, err := s.scope.Resolve(directory)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	records, err := s.driver.Run(ctx, directory)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var buf bytes.Buffer
	if err := (output.JSONWriter{}).Write(&buf, records); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

func (s *Server) handleServerInfo(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := fmt.Sprintf("%s %s\n", s.config.ServerName, s.config.Version)
	text += fmt.Sprintf("Default folder: %s\n", s.config.Folder)

	paths, err := batch.ListPDFs(s.config.Folder)
	if err != nil {
		text += fmt.Sprintf("PDF files: unavailable (%v)\n", err)
	} else {
		text += fmt.Sprintf("PDF files: %d\n", len(paths))
	}
	text += fmt.Sprintf("Maximum file size: %d bytes\n", s.config.MaxFileSize)

	text += "\nTools:\n"
	text += fmt.Sprintf("• %s(path)\n", ToolExtractFile)
	text += fmt.Sprintf("• %s(directory?)\n", ToolExtractDirectory)
	text += fmt.Sprintf("• %s()\n", ToolServerInfo)

	text += "\n" + descriptions.FieldGuide + "\n"

	return mcp.NewToolResultText(text), nil
}

func encodeJSON(v any) (string, error) {
	var buf bytes.Buffer
	if err := output.EncodeJSON(&buf, v); err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return buf.String(), nil
}

// Run serves MCP over the given streams until in is exhausted or ctx is done
func (s *Server) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	s.logger.Info("starting MCP server",
		zap.String("name", s.config.ServerName),
		zap.String("folder", s.config.Folder))

	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(zap.NewStdLog(s.logger))

	if err := stdio.Listen(ctx, in, out); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
