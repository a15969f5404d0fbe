package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/aeon3md/internal/export"
	"github.com/gorewood/aeon3md/internal/timeline"
)

// --- Shared types ---

// ItemSummary is a simplified item for list output.
type ItemSummary struct {
	Label string   `json:"label"          jsonschema:"unique item label"`
	Type  string   `json:"type,omitempty" jsonschema:"item type label"`
	Date  string   `json:"date,omitempty" jsonschema:"display date"`
	Time  string   `json:"time,omitempty" jsonschema:"display time"`
	Tags  []string `json:"tags,omitempty" jsonschema:"item tags"`
}

// --- Types tool ---

// TypesInput is the input for the types tool (no parameters needed).
type TypesInput struct{}

// TypeSummary describes one item type.
type TypeSummary struct {
	UID               string `json:"uid"                 jsonschema:"type UID"`
	Label             string `json:"label"               jsonschema:"type label"`
	IsNarrativeFolder bool   `json:"is_narrative_folder" jsonschema:"whether items of this type structure the narrative"`
	ItemCount         int    `json:"item_count"          jsonschema:"number of live items of this type"`
}

// TypesOutput is the output for the types tool.
type TypesOutput struct {
	Types []TypeSummary `json:"types" jsonschema:"item types in definition order"`
}

func handleTypes(model *timeline.Model) mcp.ToolHandlerFor[TypesInput, TypesOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ TypesInput) (*mcp.CallToolResult, TypesOutput, error) {
		out := TypesOutput{Types: []TypeSummary{}}
		for _, t := range model.Types() {
			out.Types = append(out.Types, TypeSummary{
				UID:               t.UID,
				Label:             t.Label,
				IsNarrativeFolder: t.IsNarrativeFolder,
				ItemCount:         len(model.ItemUIDsOfType(t.UID)),
			})
		}
		return nil, out, nil
	}
}

// --- Show item tool ---

// ShowItemInput is the input for the show_item tool.
type ShowItemInput struct {
	Label    string `json:"label"              jsonschema:"unique item label, e.g. Storm(1)"`
	Markdown bool   `json:"markdown,omitempty" jsonschema:"also return the rendered Markdown note"`
}

// ShowItemOutput is the output for the show_item tool.
type ShowItemOutput struct {
	Item *timeline.Item `json:"item"           jsonschema:"the resolved item"`
	Note string         `json:"note,omitempty" jsonschema:"rendered Markdown note"`
}

func handleShowItem(model *timeline.Model) mcp.ToolHandlerFor[ShowItemInput, ShowItemOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ShowItemInput) (*mcp.CallToolResult, ShowItemOutput, error) {
		if input.Label == "" {
			return nil, ShowItemOutput{}, fmt.Errorf("label is required")
		}
		item, ok := model.ItemByLabel(input.Label)
		if !ok {
			return nil, ShowItemOutput{}, fmt.Errorf("no item labeled %q", input.Label)
		}

		out := ShowItemOutput{Item: item}
		if input.Markdown {
			note, err := export.FormatItem(item, export.Options{Frontmatter: true, Names: export.NewNoteNames(model, nil)})
			if err != nil {
				return nil, ShowItemOutput{}, err
			}
			out.Note = note
		}
		return nil, out, nil
	}
}

// --- Narrative tool ---

// NarrativeInput is the input for the narrative tool (no parameters needed).
type NarrativeInput struct{}

// NarrativeEntry is one node of the outline.
type NarrativeEntry struct {
	Depth int    `json:"depth" jsonschema:"nesting depth, roots are 1"`
	UID   string `json:"uid"   jsonschema:"item UID"`
	Label string `json:"label" jsonschema:"unique item label"`
}

// NarrativeOutput is the output for the narrative tool.
type NarrativeOutput struct {
	Entries  []NarrativeEntry `json:"entries"  jsonschema:"outline in depth-first order"`
	Markdown string           `json:"markdown" jsonschema:"outline as Markdown headings"`
}

func handleNarrative(model *timeline.Model) mcp.ToolHandlerFor[NarrativeInput, NarrativeOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ NarrativeInput) (*mcp.CallToolResult, NarrativeOutput, error) {
		return nil, NarrativeOutput{
			Entries:  flattenNarrative(model.Narrative(), 1, []NarrativeEntry{}),
			Markdown: export.FormatNarrative(model, export.NewNoteNames(model, nil)),
		}, nil
	}
}
