package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usemanusai/uploadprep-mcp/filter"
)

// AddFilterArgs defines the input parameters for the add_filter tool.
type AddFilterArgs struct {
	Pattern    string `json:"pattern" jsonschema:"Filter pattern (e.g. *.backup, temp/, node_modules/)"`
	FilterType string `json:"filterType,omitempty" jsonschema:"Rule kind: exclude or include (default exclude)"`
}

// AddFilterHandler holds the dependencies for the add_filter tool.
type AddFilterHandler struct {
	Engine *filter.Engine
	Logger *slog.Logger
}

// Handle processes an add_filter request. Invalid input yields an error
// result, never a protocol fault.
func (h *AddFilterHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args AddFilterArgs) (*mcp.CallToolResult, any, error) {
	kind, err := filter.ParseKind(args.FilterType)
	if err != nil {
		h.Logger.Warn("add_filter called with unknown filter type", "filterType", args.FilterType)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Error: %v", err)}},
			IsError: true,
		}, nil, nil
	}

	if !h.Engine.AddRule(args.Pattern, kind) {
		h.Logger.Warn("add_filter rejected pattern", "pattern", args.Pattern)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Invalid filter pattern: %q", args.Pattern)}},
			IsError: true,
		}, nil, nil
	}

	h.Logger.Info("add_filter", "pattern", args.Pattern, "kind", kind.String())

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Added %s rule: %s", kind, args.Pattern)}},
	}, nil, nil
}
