package mcp

import (
	"slices"
	"strings"

	"github.com/gorewood/aeon3md/internal/timeline"
)

// toItemSummary converts an item to its list form.
func toItemSummary(item *timeline.Item) ItemSummary {
	return ItemSummary{
		Label: item.Label,
		Type:  item.TypeLabel,
		Date:  item.DateString,
		Time:  item.TimeString,
		Tags:  item.Tags,
	}
}

// flattenNarrative lists the outline depth-first. Roots have depth 1.
func flattenNarrative(nodes []*timeline.NarrativeNode, depth int, out []NarrativeEntry) []NarrativeEntry {
	for _, node := range nodes {
		out = append(out, NarrativeEntry{Depth: depth, UID: node.UID, Label: node.Label})
		out = flattenNarrative(node.Children, depth+1, out)
	}
	return out
}

func hasTag(item *timeline.Item, tag string) bool {
	tag = strings.TrimPrefix(tag, "#")
	return slices.Contains(item.Tags, tag) || slices.Contains(sanitizedTags(item.Tags), tag)
}

func sanitizedTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		out = append(out, timeline.SanitizeTag(tag))
	}
	return out
}
