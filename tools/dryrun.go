package tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usemanusai/uploadprep-mcp/filter"
)

// DryRunArgs defines the input parameters for the test_file_filtering tool.
type DryRunArgs struct {
	LocalDir string `json:"localDir,omitempty" jsonschema:"Directory to classify (default: server root)"`
}

// DryRunHandler holds the dependencies for the test_file_filtering tool.
type DryRunHandler struct {
	Engine  *filter.Engine
	RootDir string
	Logger  *slog.Logger
}

// Handle processes a test_file_filtering request.
func (h *DryRunHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args DryRunArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	dir := resolveDir(args.LocalDir, h.RootDir)
	report, err := h.Engine.DryRun(dir)
	if err != nil {
		h.Logger.Error("test_file_filtering failed", "dir", dir, "error", err)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Dry run error: %v", err)}},
			IsError: true,
		}, nil, nil
	}

	h.Logger.Info("test_file_filtering",
		"dir", dir,
		"total", report.TotalCount,
		"excluded", report.ExcludedCount,
		"rate", report.ExclusionRatePercent,
		"elapsed", time.Since(start),
	)

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: FormatDryRun(report)}},
	}, nil, nil
}
