package server

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usemanusai/uploadprep-mcp/tools"
)

const instructions = `Prepares local project directories for upload: applies ordered
exclude/include filter rules (last match wins, .gitignore-aware), scans
.env files without exposing values, and synthesizes .env.example content.`

// Setup wires the tool handlers into an MCP server ready to run over a
// transport.
func Setup(
	uploadHandler *tools.UploadHandler,
	envExampleHandler *tools.EnvExampleHandler,
	listRulesHandler *tools.ListRulesHandler,
	addFilterHandler *tools.AddFilterHandler,
	dryRunHandler *tools.DryRunHandler,
	scanEnvHandler *tools.ScanEnvHandler,
) *mcp.Server {
	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "uploadprep-mcp",
		Version: "2.0.0",
	}, &mcp.ServerOptions{
		Instructions: instructions,
	})

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "upload_with_filtering",
		Description: "Prepare a directory for upload: filter files, batch them, and optionally generate .env.example content",
	}, uploadHandler.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "generate_env_example",
		Description: "Scan .env files and synthesize .env.example content with variable names only",
	}, envExampleHandler.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "list_filter_rules",
		Description: "List the active filter rules in evaluation order",
	}, listRulesHandler.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "add_filter",
		Description: "Add an exclude or include filter rule for subsequent operations",
	}, addFilterHandler.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "test_file_filtering",
		Description: "Dry run: classify every file under a directory as included or excluded without uploading",
	}, dryRunHandler.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "scan_env_files",
		Description: "List discovered environment files and their variable names (values are never shown)",
	}, scanEnvHandler.Handle)

	return mcpServer
}
