package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	aeonmcp "github.com/gorewood/aeon3md/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve <file.aeon>",
		Short: "Serve a project to agents as an MCP server (stdio transport)",
		Long: `Load a project and serve it read-only over the Model Context Protocol (stdio).

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "ashes": {
        "command": "aeon3md",
        "args": ["serve", "/path/to/Ashes.aeon"]
      }
    }
  }

Available tools: types, list_items, show_item, narrative`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := newPrinter(cmd)
			s, err := loadSettings(cmd)
			if err != nil {
				return fail(printer, err)
			}
			model, err := loadModel(args[0], s)
			if err != nil {
				return fail(printer, err)
			}
			s.log.Infof("serving %d items over stdio", model.Len())
			server := aeonmcp.NewServer(buildVersion(), model)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
