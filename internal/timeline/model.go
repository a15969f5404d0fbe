// Package timeline builds the resolved data model of an Aeon Timeline 3 project.
package timeline

import (
	"regexp"

	"github.com/gorewood/aeon3md/internal/calendar"
)

// Property is a custom property value of an item.
type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Relationship links an item to the unique label of another item.
type Relationship struct {
	Target    string `json:"target"`
	TargetUID string `json:"target_uid"`
	Type      string `json:"type"`
}

// Item is a fully resolved Aeon item.
// Empty strings and nil pointers mean the value is unknown.
type Item struct {
	UID           string          `json:"uid"`
	Label         string          `json:"label"`
	RawLabel      string          `json:"raw_label,omitempty"`
	ShortLabel    string          `json:"short_label,omitempty"`
	Summary       string          `json:"summary,omitempty"`
	DisplayID     string          `json:"display_id,omitempty"`
	TypeUID       string          `json:"type_uid,omitempty"`
	TypeLabel     string          `json:"type,omitempty"`
	Tags          []string        `json:"tags,omitempty"`
	Properties    []Property      `json:"properties,omitempty"`
	Era           *calendar.Named `json:"era,omitempty"`
	Weekday       *calendar.Named `json:"weekday,omitempty"`
	Month         *calendar.Named `json:"month,omitempty"`
	Year          *int            `json:"year,omitempty"`
	Day           *int            `json:"day,omitempty"`
	Hour          *int            `json:"hour,omitempty"`
	Minute        *int            `json:"minute,omitempty"`
	Second        *int            `json:"second,omitempty"`
	Timestamp     *int64          `json:"timestamp,omitempty"`
	ISODate       string          `json:"iso_date,omitempty"`
	ISOTime       string          `json:"iso_time,omitempty"`
	DateString    string          `json:"date,omitempty"`
	TimeString    string          `json:"time,omitempty"`
	Duration      string          `json:"duration,omitempty"`
	Relationships []Relationship  `json:"relationships,omitempty"`
	Children      []string        `json:"children,omitempty"`
	ChildUIDs     []string        `json:"child_uids,omitempty"`
}

// Dated reports whether the item has a timestamp.
func (i *Item) Dated() bool {
	return i.Timestamp != nil
}

// ItemType is an Aeon item type such as "Character" or "Event".
type ItemType struct {
	UID               string `json:"uid"`
	Label             string `json:"label"`
	IsNarrativeFolder bool   `json:"is_narrative_folder,omitempty"`
}

// TypeIndex lists the live items of one type in source order.
type TypeIndex struct {
	TypeUID  string   `json:"type_uid"`
	ItemUIDs []string `json:"item_uids"`
}

// NarrativeNode is one node of the narrative outline.
type NarrativeNode struct {
	UID      string           `json:"uid"`
	Label    string           `json:"label"`
	Children []*NarrativeNode `json:"children,omitempty"`
}

// Model is the resolved project. It is built once by Build and must be
// treated as read-only afterwards.
type Model struct {
	FileVersion string

	items     map[string]*Item
	order     []string
	byLabel   map[string]string
	types     map[string]*ItemType
	typeOrder []string
	index     []TypeIndex
	narrative []*NarrativeNode
}

func newModel() *Model {
	return &Model{
		items:   make(map[string]*Item),
		byLabel: make(map[string]string),
		types:   make(map[string]*ItemType),
	}
}

func (m *Model) addItem(item *Item) {
	if _, exists := m.items[item.UID]; !exists {
		m.order = append(m.order, item.UID)
	}
	m.items[item.UID] = item
	m.byLabel[item.Label] = item.UID
}

func (m *Model) addType(t *ItemType) {
	if _, exists := m.types[t.UID]; !exists {
		m.typeOrder = append(m.typeOrder, t.UID)
	}
	m.types[t.UID] = t
}

// Len returns the number of live items.
func (m *Model) Len() int {
	return len(m.order)
}

// Items returns all live items in source order.
func (m *Model) Items() []*Item {
	items := make([]*Item, 0, len(m.order))
	for _, uid := range m.order {
		items = append(items, m.items[uid])
	}
	return items
}

// UIDs returns the UIDs of all live items in source order.
func (m *Model) UIDs() []string {
	return append([]string(nil), m.order...)
}

// Item returns the item with the given UID.
func (m *Model) Item(uid string) (*Item, bool) {
	item, ok := m.items[uid]
	return item, ok
}

// ItemByLabel returns the item with the given unique label.
func (m *Model) ItemByLabel(label string) (*Item, bool) {
	uid, ok := m.byLabel[label]
	if !ok {
		return nil, false
	}
	return m.Item(uid)
}

// Types returns the item types in definition order.
func (m *Model) Types() []*ItemType {
	types := make([]*ItemType, 0, len(m.typeOrder))
	for _, uid := range m.typeOrder {
		types = append(types, m.types[uid])
	}
	return types
}

// Type returns the item type with the given UID.
func (m *Model) Type(uid string) (*ItemType, bool) {
	t, ok := m.types[uid]
	return t, ok
}

// TypeByLabel returns the first item type with the given label.
func (m *Model) TypeByLabel(label string) (*ItemType, bool) {
	for _, uid := range m.typeOrder {
		if m.types[uid].Label == label {
			return m.types[uid], true
		}
	}
	return nil, false
}

// Index returns the per-type item lists.
func (m *Model) Index() []TypeIndex {
	return m.index
}

// ItemUIDsOfType returns the indexed item UIDs of one type.
func (m *Model) ItemUIDsOfType(typeUID string) []string {
	for _, entry := range m.index {
		if entry.TypeUID == typeUID {
			return entry.ItemUIDs
		}
	}
	return nil
}

// Narrative returns the roots of the narrative outline.
func (m *Model) Narrative() []*NarrativeNode {
	return m.narrative
}

var nonTagChars = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

// SanitizeTag replaces every run of characters that cannot appear in a
// Markdown #tag with an underscore.
func SanitizeTag(tag string) string {
	return nonTagChars.ReplaceAllString(tag, "_")
}
