package export

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/aeon3md/internal/timeline"
)

// Page names of the generated index notes.
const (
	IndexPage     = "__Index"
	NarrativePage = "__Narrative"
)

// maxHeadingLevel is the deepest Markdown heading.
const maxHeadingLevel = 6

// Options controls note rendering.
type Options struct {
	// Frontmatter writes item metadata as YAML frontmatter. Without it the
	// short label and tags are written inline at the top of the note.
	Frontmatter bool

	// Names resolves wiki link targets. Nil links to plain note names.
	Names NoteNames
}

type frontmatter struct {
	Label     string   `yaml:"label"`
	Aliases   []string `yaml:"aliases,omitempty"`
	Type      string   `yaml:"type,omitempty"`
	DisplayID string   `yaml:"display_id,omitempty"`
	Date      string   `yaml:"date,omitempty"`
	Time      string   `yaml:"time,omitempty"`
	Tags      []string `yaml:"tags,omitempty"`
}

var forbiddenTitleChars = regexp.MustCompile(`[\\/:*?"<>|]+`)

// SanitizeTitle strips the characters that are not allowed in file names
// and wiki links.
func SanitizeTitle(title string) string {
	return forbiddenTitleChars.ReplaceAllString(title, "")
}

// FormatItem renders the note of one item.
func FormatItem(item *timeline.Item, opts Options) (string, error) {
	var sections []string

	if opts.Frontmatter {
		fm, err := formatFrontmatter(item)
		if err != nil {
			return "", err
		}
		sections = append(sections, fm)
	} else {
		sections = appendNonEmpty(sections, item.ShortLabel, inlineTags(item.Tags))
	}

	if item.Summary != "" {
		sections = append(sections, "---\n\n"+toMarkdown(item.Summary)+"\n\n---")
	}
	sections = appendNonEmpty(sections,
		whenAndLasts(item),
		propertyList(item.Properties),
		relationshipList(item.Relationships, opts.Names),
		childList(item, opts.Names),
	)

	return strings.Join(sections, "\n\n") + "\n", nil
}

func formatFrontmatter(item *timeline.Item) (string, error) {
	fm := frontmatter{
		Label:     item.Label,
		Type:      item.TypeLabel,
		DisplayID: item.DisplayID,
		Date:      item.ISODate,
		Time:      item.ISOTime,
	}
	if item.ShortLabel != "" {
		fm.Aliases = []string{item.ShortLabel}
	}
	for _, tag := range item.Tags {
		fm.Tags = append(fm.Tags, timeline.SanitizeTag(tag))
	}

	data, err := yaml.Marshal(&fm)
	if err != nil {
		return "", fmt.Errorf("encoding frontmatter of %s: %w", item.Label, err)
	}
	return "---\n" + string(data) + "---", nil
}

func inlineTags(tags []string) string {
	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		parts = append(parts, "#"+timeline.SanitizeTag(tag))
	}
	return strings.Join(parts, " ")
}

func whenAndLasts(item *timeline.Item) string {
	var lines []string
	when := strings.TrimSpace(item.DateString + " " + item.TimeString)
	if when != "" {
		lines = append(lines, "- **When** : "+when)
	}
	if item.Duration != "" {
		lines = append(lines, "- **Lasts** : "+item.Duration)
	}
	return strings.Join(lines, "\n")
}

func propertyList(props []timeline.Property) string {
	lines := make([]string, 0, len(props))
	for _, prop := range props {
		lines = append(lines, fmt.Sprintf("- **%s** : %s", prop.Name, toListElement(prop.Value)))
	}
	return strings.Join(lines, "\n")
}

func relationshipList(rels []timeline.Relationship, names NoteNames) string {
	lines := make([]string, 0, len(rels))
	for _, rel := range rels {
		lines = append(lines, fmt.Sprintf("- **%s** : %s", rel.Type, names.link(rel.Target, rel.TargetUID)))
	}
	return strings.Join(lines, "\n")
}

func childList(item *timeline.Item, names NoteNames) string {
	lines := make([]string, 0, len(item.Children))
	for i, label := range item.Children {
		uid := ""
		if i < len(item.ChildUIDs) {
			uid = item.ChildUIDs[i]
		}
		lines = append(lines, "- "+names.link(label, uid))
	}
	return strings.Join(lines, "\n")
}

// FormatTypePage renders the index page of one item type: links to its
// items ordered by date.
func FormatTypePage(model *timeline.Model, typeUID string, names NoteNames) string {
	var lines []string
	for _, uid := range model.SortByDate(model.ItemUIDsOfType(typeUID)) {
		item, _ := model.Item(uid)
		lines = append(lines, "- "+names.link(item.Label, uid))
	}
	return strings.Join(lines, "\n") + "\n"
}

// FormatIndex renders __Index.md, one link per type page.
func FormatIndex(model *timeline.Model) string {
	lines := make([]string, 0, len(model.Index()))
	for _, entry := range model.Index() {
		lines = append(lines, "- [["+TypePageName(model, entry.TypeUID)+"]]")
	}
	return strings.Join(lines, "\n") + "\n"
}

// TypePageName returns the page name for an item type, falling back to the
// type UID for types without a definition.
func TypePageName(model *timeline.Model, typeUID string) string {
	name := typeUID
	if t, ok := model.Type(typeUID); ok && SanitizeTitle(t.Label) != "" {
		name = t.Label
	}
	return "_" + SanitizeTitle(name)
}

// FormatNarrative renders the narrative outline as nested headings.
// Levels deeper than six stay at six.
func FormatNarrative(model *timeline.Model, names NoteNames) string {
	var lines []string
	var walk func(nodes []*timeline.NarrativeNode, level int)
	walk = func(nodes []*timeline.NarrativeNode, level int) {
		for _, node := range nodes {
			lines = append(lines, strings.Repeat("#", min(level, maxHeadingLevel))+" "+names.link(node.Label, node.UID))
			walk(node.Children, level+1)
		}
	}
	walk(model.Narrative(), 1)
	return strings.Join(lines, "\n\n") + "\n"
}

// toMarkdown turns single line breaks into paragraph breaks.
func toMarkdown(text string) string {
	return strings.ReplaceAll(collapseBlankLines(text), "\n", "\n\n")
}

// toListElement keeps a multi-line value inside its list item.
func toListElement(text string) string {
	return strings.ReplaceAll(collapseBlankLines(text), "\n", "\n  ")
}

func collapseBlankLines(text string) string {
	text = strings.ReplaceAll(strings.TrimSpace(text), "\r\n", "\n")
	for strings.Contains(text, "\n\n") {
		text = strings.ReplaceAll(text, "\n\n", "\n")
	}
	return text
}

func appendNonEmpty(sections []string, parts ...string) []string {
	for _, part := range parts {
		if part != "" {
			sections = append(sections, part)
		}
	}
	return sections
}
