package export

import (
	"strings"

	"github.com/gorewood/aeon3md/internal/timeline"
)

// NoteNames maps item UIDs to note names, without the .md extension.
// Items missing from the map use their sanitized label, or their UID when
// the label has no usable characters. A nil NoteNames is valid.
type NoteNames map[string]string

// NewNoteNames names every item note of a vault. An item whose name clashes
// with a generated page (type pages, __Index, __Narrative) gets its UID
// appended, e.g. "__Index (ev-12)".
func NewNoteNames(model *timeline.Model, log Logger) NoteNames {
	if log == nil {
		log = nopLogger{}
	}
	reserved := map[string]bool{
		strings.ToLower(IndexPage):     true,
		strings.ToLower(NarrativePage): true,
	}
	for _, entry := range model.Index() {
		reserved[strings.ToLower(TypePageName(model, entry.TypeUID))] = true
	}

	names := make(NoteNames, model.Len())
	for _, item := range model.Items() {
		name := noteName(item.Label, item.UID)
		if reserved[strings.ToLower(name)] {
			renamed := name + " (" + SanitizeTitle(item.UID) + ")"
			log.Debugf("item %s: note name %q is taken by a generated page, writing %q", item.UID, name, renamed)
			name = renamed
		}
		names[item.UID] = name
	}
	return names
}

// Name returns the note name of the item with the given label and UID.
func (n NoteNames) Name(label, uid string) string {
	if name, ok := n[uid]; ok {
		return name
	}
	return noteName(label, uid)
}

func (n NoteNames) link(label, uid string) string {
	return "[[" + n.Name(label, uid) + "]]"
}

func noteName(label, uid string) string {
	if name := SanitizeTitle(label); strings.TrimSpace(name) != "" {
		return name
	}
	return SanitizeTitle(uid)
}
