package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/aeon3md/internal/timeline"
)

// ListItemsInput is the input for the list_items tool.
type ListItemsInput struct {
	Type  string `json:"type,omitempty"  jsonschema:"only items of this type label"`
	Tag   string `json:"tag,omitempty"   jsonschema:"only items with this tag (raw or #tag form)"`
	Limit int    `json:"limit,omitempty" jsonschema:"return at most N items"`
}

// ListItemsOutput is the output for the list_items tool.
type ListItemsOutput struct {
	Count int           `json:"count" jsonschema:"number of items returned"`
	Items []ItemSummary `json:"items" jsonschema:"items in chronological order"`
}

func handleListItems(model *timeline.Model) mcp.ToolHandlerFor[ListItemsInput, ListItemsOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ListItemsInput) (*mcp.CallToolResult, ListItemsOutput, error) {
		if input.Limit < 0 {
			return nil, ListItemsOutput{}, fmt.Errorf("limit must not be negative")
		}

		uids := model.UIDs()
		if input.Type != "" {
			t, ok := model.TypeByLabel(input.Type)
			if !ok {
				return nil, ListItemsOutput{}, fmt.Errorf("no item type labeled %q", input.Type)
			}
			uids = model.ItemUIDsOfType(t.UID)
		}

		out := ListItemsOutput{Items: []ItemSummary{}}
		for _, uid := range model.SortByDate(uids) {
			item, _ := model.Item(uid)
			if input.Tag != "" && !hasTag(item, input.Tag) {
				continue
			}
			out.Items = append(out.Items, toItemSummary(item))
			if input.Limit > 0 && len(out.Items) == input.Limit {
				break
			}
		}
		out.Count = len(out.Items)
		return nil, out, nil
	}
}
