// Package mcp provides a Model Context Protocol server for aeon3md.
// It exposes a loaded timeline as read-only tools that any MCP-capable agent can use.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/aeon3md/internal/timeline"
)

// NewServer creates an MCP server with all timeline tools registered.
func NewServer(version string, model *timeline.Model) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "aeon3md",
		Version: version,
	}, nil)
	registerTools(server, model)
	return server
}

func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations marks a tool that only reads the loaded timeline.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

func registerTools(server *mcp.Server, model *timeline.Model) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "types",
		Description: "List the item types of the timeline (Character, Event, ...) with their item counts.",
		Annotations: readOnlyAnnotations(),
	}, handleTypes(model))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_items",
		Description: "List timeline items in chronological order, optionally filtered by type label or tag. Undated items come last.",
		Annotations: readOnlyAnnotations(),
	}, handleListItems(model))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "show_item",
		Description: "Show one timeline item by its unique label, with dates, properties, relationships and children. Set markdown=true to also get the rendered note.",
		Annotations: readOnlyAnnotations(),
	}, handleShowItem(model))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "narrative",
		Description: "Show the narrative outline (chapters, scenes) as a flat list with depths and as Markdown headings.",
		Annotations: readOnlyAnnotations(),
	}, handleNarrative(model))
}
