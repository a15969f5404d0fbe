package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/gorewood/aeon3md/internal/timeline/timelinetest"
)

func TestNewServer(t *testing.T) {
	if server := NewServer("test", timelinetest.Model(t)); server == nil {
		t.Fatal("NewServer() returned nil")
	}
}

func TestHandleTypes(t *testing.T) {
	handler := handleTypes(timelinetest.Model(t))

	_, out, err := handler(context.Background(), nil, TypesInput{})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}

	want := []TypeSummary{
		{UID: timelinetest.EventType, Label: "Event", ItemCount: 3},
		{UID: timelinetest.CharacterType, Label: "Character", ItemCount: 2},
		{UID: timelinetest.ChapterType, Label: "Chapter", IsNarrativeFolder: true, ItemCount: 1},
	}
	if len(out.Types) != len(want) {
		t.Fatalf("got %d types, want %d", len(out.Types), len(want))
	}
	for i := range want {
		if out.Types[i] != want[i] {
			t.Errorf("Types[%d] = %+v, want %+v", i, out.Types[i], want[i])
		}
	}
}

func TestHandleListItems(t *testing.T) {
	handler := handleListItems(timelinetest.Model(t))

	tests := []struct {
		name  string
		input ListItemsInput
		want  []string
	}{
		{
			name:  "all items by date",
			input: ListItemsInput{},
			want:  []string{"Storm", "Aspirin synthesized", "Storm(1)", "Alice", "Bob", "Chapter 1"},
		},
		{
			name:  "by type",
			input: ListItemsInput{Type: "Character"},
			want:  []string{"Alice", "Bob"},
		},
		{
			name:  "by raw tag",
			input: ListItemsInput{Tag: "Nobel prize"},
			want:  []string{"Aspirin synthesized"},
		},
		{
			name:  "by hashtag",
			input: ListItemsInput{Tag: "#Nobel_prize"},
			want:  []string{"Aspirin synthesized"},
		},
		{
			name:  "limit",
			input: ListItemsInput{Type: "Event", Limit: 2},
			want:  []string{"Storm", "Aspirin synthesized"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out, err := handler(context.Background(), nil, tt.input)
			if err != nil {
				t.Fatalf("handler error = %v", err)
			}
			if out.Count != len(tt.want) {
				t.Fatalf("Count = %d, want %d (%+v)", out.Count, len(tt.want), out.Items)
			}
			for i, label := range tt.want {
				if out.Items[i].Label != label {
					t.Errorf("Items[%d] = %q, want %q", i, out.Items[i].Label, label)
				}
			}
		})
	}
}

func TestHandleListItems_Errors(t *testing.T) {
	handler := handleListItems(timelinetest.Model(t))

	for _, input := range []ListItemsInput{{Type: "Planet"}, {Limit: -1}} {
		if _, _, err := handler(context.Background(), nil, input); err == nil {
			t.Errorf("handler(%+v) should fail", input)
		}
	}
}

func TestHandleShowItem(t *testing.T) {
	handler := handleShowItem(timelinetest.Model(t))

	_, out, err := handler(context.Background(), nil, ShowItemInput{Label: "Aspirin synthesized", Markdown: true})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if out.Item == nil || out.Item.UID != timelinetest.Aspirin {
		t.Fatalf("Item = %+v, want aspirin", out.Item)
	}
	if !strings.Contains(out.Note, "- **When** : Monday 6 February 1933 22:41") {
		t.Errorf("Note missing date line:\n%s", out.Note)
	}

	_, out, err = handler(context.Background(), nil, ShowItemInput{Label: "Storm(1)"})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if out.Item.UID != timelinetest.LateStorm || out.Note != "" {
		t.Errorf("Storm(1) = %+v, note %q", out.Item, out.Note)
	}
}

func TestHandleShowItem_Errors(t *testing.T) {
	handler := handleShowItem(timelinetest.Model(t))

	for _, label := range []string{"", "Ghost", "Nobody"} {
		if _, _, err := handler(context.Background(), nil, ShowItemInput{Label: label}); err == nil {
			t.Errorf("show_item(%q) should fail", label)
		}
	}
}

func TestHandleNarrative(t *testing.T) {
	handler := handleNarrative(timelinetest.Model(t))

	_, out, err := handler(context.Background(), nil, NarrativeInput{})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}

	want := []NarrativeEntry{
		{Depth: 1, UID: timelinetest.Chapter, Label: "Chapter 1"},
		{Depth: 2, UID: timelinetest.Aspirin, Label: "Aspirin synthesized"},
		{Depth: 2, UID: timelinetest.IdesStorm, Label: "Storm"},
	}
	if len(out.Entries) != len(want) {
		t.Fatalf("got %d entries, want %d: %+v", len(out.Entries), len(want), out.Entries)
	}
	for i := range want {
		if out.Entries[i] != want[i] {
			t.Errorf("Entries[%d] = %+v, want %+v", i, out.Entries[i], want[i])
		}
	}
	if !strings.HasPrefix(out.Markdown, "# [[Chapter 1]]") {
		t.Errorf("Markdown = %q", out.Markdown)
	}
}
