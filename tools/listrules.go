package tools

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usemanusai/uploadprep-mcp/filter"
)

// ListRulesArgs defines the input parameters for the list_filter_rules tool
// (none required).
type ListRulesArgs struct{}

// ListRulesHandler holds the dependencies for the list_filter_rules tool.
type ListRulesHandler struct {
	Engine *filter.Engine
	Logger *slog.Logger
}

// Handle processes a list_filter_rules request.
func (h *ListRulesHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args ListRulesArgs) (*mcp.CallToolResult, any, error) {
	rules := h.Engine.Rules()
	h.Logger.Info("list_filter_rules", "count", len(rules))

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: FormatRules(rules)}},
	}, nil, nil
}
