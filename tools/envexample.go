package tools

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usemanusai/uploadprep-mcp/envscan"
)

// EnvExampleArgs defines the input parameters for the generate_env_example tool.
type EnvExampleArgs struct {
	LocalDir       string            `json:"localDir,omitempty" jsonschema:"Directory to scan for environment files (default: server root)"`
	AdditionalVars map[string]string `json:"additionalVars,omitempty" jsonschema:"Extra variables to append to the generated content"`
	Write          bool              `json:"write,omitempty" jsonschema:"Write the result to .env.example in the directory"`
}

// EnvExampleHandler holds the dependencies for the generate_env_example tool.
type EnvExampleHandler struct {
	Scanner *envscan.Scanner
	RootDir string
	Logger  *slog.Logger
}

// Handle processes a generate_env_example request.
func (h *EnvExampleHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args EnvExampleArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	dir := resolveDir(args.LocalDir, h.RootDir)
	index, err := h.Scanner.Scan(dir)
	if err != nil {
		h.Logger.Error("generate_env_example scan failed", "dir", dir, "error", err)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Scan error: %v", err)}},
			IsError: true,
		}, nil, nil
	}

	content := envscan.Synthesize(index, args.AdditionalVars)

	outPath := ""
	if args.Write {
		outPath = filepath.Join(dir, ".env.example")
		if err := os.WriteFile(outPath, []byte(content), 0644); err != nil {
			h.Logger.Error("generate_env_example write failed", "path", outPath, "error", err)
			return &mcp.CallToolResult{
				Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Write error: %v", err)}},
				IsError: true,
			}, nil, nil
		}
	}

	h.Logger.Info("generate_env_example",
		"dir", dir,
		"sourceFiles", index.FileCount(),
		"additionalVars", len(args.AdditionalVars),
		"written", args.Write,
		"elapsed", time.Since(start),
	)

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: FormatEnvExample(index, content, outPath)}},
	}, nil, nil
}
