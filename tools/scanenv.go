package tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usemanusai/uploadprep-mcp/envscan"
)

// ScanEnvArgs defines the input parameters for the scan_env_files tool.
type ScanEnvArgs struct {
	LocalDir string `json:"localDir,omitempty" jsonschema:"Directory to scan (default: server root)"`
}

// ScanEnvHandler holds the dependencies for the scan_env_files tool.
type ScanEnvHandler struct {
	Scanner *envscan.Scanner
	RootDir string
	Logger  *slog.Logger
}

// Handle processes a scan_env_files request. The response lists variable
// names only; values stay inside the scanner.
func (h *ScanEnvHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args ScanEnvArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	dir := resolveDir(args.LocalDir, h.RootDir)
	index, err := h.Scanner.Scan(dir)
	if err != nil {
		h.Logger.Error("scan_env_files failed", "dir", dir, "error", err)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Scan error: %v", err)}},
			IsError: true,
		}, nil, nil
	}

	h.Logger.Info("scan_env_files",
		"dir", dir,
		"files", index.FileCount(),
		"elapsed", time.Since(start),
	)

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: FormatEnvScan(index)}},
	}, nil, nil
}
