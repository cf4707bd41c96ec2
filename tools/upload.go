package tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usemanusai/uploadprep-mcp/envscan"
	"github.com/usemanusai/uploadprep-mcp/filter"
	"github.com/usemanusai/uploadprep-mcp/upload"
)

// UploadArgs defines the input parameters for the upload_with_filtering tool.
type UploadArgs struct {
	LocalDir           string `json:"localDir,omitempty" jsonschema:"Directory to upload (default: server root)"`
	BatchSize          int    `json:"batchSize,omitempty" jsonschema:"Number of files per upload batch (default 5)"`
	GenerateEnvExample *bool  `json:"generateEnvExample,omitempty" jsonschema:"Also synthesize .env.example content (default true)"`
}

// UploadHandler holds the dependencies for the upload_with_filtering tool.
type UploadHandler struct {
	Engine    *filter.Engine
	Scanner   *envscan.Scanner
	Uploader  upload.Uploader
	RootDir   string
	BatchSize int
	Logger    *slog.Logger
}

// Handle processes an upload_with_filtering request.
func (h *UploadHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args UploadArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	dir := resolveDir(args.LocalDir, h.RootDir)
	batchSize := args.BatchSize
	if batchSize <= 0 {
		batchSize = h.BatchSize
	}
	generateEnv := true
	if args.GenerateEnvExample != nil {
		generateEnv = *args.GenerateEnvExample
	}

	manifest, err := upload.BuildManifest(dir, h.Engine, h.Scanner, batchSize, generateEnv)
	if err != nil {
		h.Logger.Error("upload_with_filtering failed to build manifest", "dir", dir, "error", err)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Upload error: %v", err)}},
			IsError: true,
		}, nil, nil
	}

	result, err := h.Uploader.Upload(ctx, manifest)
	if err != nil {
		h.Logger.Error("upload_with_filtering uploader failed", "dir", dir, "error", err)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Upload error: %v", err)}},
			IsError: true,
		}, nil, nil
	}

	h.Logger.Info("upload_with_filtering",
		"dir", dir,
		"files", result.Files,
		"batches", result.Batches,
		"skipped", manifest.SkippedCount,
		"elapsed", time.Since(start),
	)

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: FormatUploadResult(manifest, result)}},
	}, nil, nil
}
