package timeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/gorewood/aeon3md/internal/calendar"
	"github.com/gorewood/aeon3md/internal/envelope"
	"github.com/gorewood/aeon3md/internal/labels"
)

// Sentinel errors for projects that cannot be converted.
var (
	ErrMalformedJSON  = errors.New("malformed project JSON")
	ErrMissingSection = errors.New("missing project section")
)

// requiredSections must be JSON objects for a project to be readable.
var requiredSections = []string{
	"core",
	"core.definitions.calendar",
	"core.data.itemsById",
	"collection",
}

// Logger receives build diagnostics. *logrus.Logger satisfies it.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}

type options struct {
	log          Logger
	hiddenEras   []string
	customHidden bool
}

// Option configures Build and Read.
type Option func(*options)

// WithLogger sets the logger that receives per-entity diagnostics.
func WithLogger(log Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithHiddenEras sets the eras whose name is left out of display dates and
// which qualify for ISO dates.
func WithHiddenEras(names ...string) Option {
	return func(o *options) {
		o.hiddenEras = names
		o.customHidden = true
	}
}

// Read loads an .aeon project file and builds its model.
func Read(path string, opts ...Option) (*Model, error) {
	payload, err := envelope.ExtractFile(path)
	if err != nil {
		return nil, err
	}
	return Build([]byte(payload), opts...)
}

// Build resolves the project JSON into a Model.
//
// Missing top-level sections fail the build. Dangling references, deleted
// items and out-of-range calendar indices are skipped and logged at debug
// level.
func Build(data []byte, opts ...Option) (*Model, error) {
	o := options{log: nopLogger{}}
	for _, opt := range opts {
		opt(&o)
	}

	if !gjson.ValidBytes(data) {
		return nil, ErrMalformedJSON
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: top level is not an object", ErrMalformedJSON)
	}
	for _, path := range requiredSections {
		if !root.Get(path).IsObject() {
			return nil, fmt.Errorf("%w: %s", ErrMissingSection, path)
		}
	}

	def, err := calendar.ParseDefinition(root.Get("core.definitions.calendar"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingSection, err)
	}
	resolverOpts := []calendar.Option{calendar.WithLogger(o.log)}
	if o.customHidden {
		resolverOpts = append(resolverOpts, calendar.WithHiddenEras(o.hiddenEras...))
	}

	b := &builder{
		root:          root,
		log:           o.log,
		resolver:      calendar.NewResolver(def, resolverOpts...),
		itemLabels:    labels.New(o.log),
		typeLabels:    labels.New(o.log),
		refLabels:     labels.New(o.log),
		tagLabels:     labels.New(o.log),
		propLabels:    labels.New(o.log),
		enums:         make(map[string]string),
		model:         newModel(),
		dates:         byKey(root.Get("core.data.itemDatesById")),
		relationships: byKey(root.Get("core.data.relationshipsById")),
		relIDs:        byKey(root.Get("collection.relationshipIdsByItemId")),
		childOrder:    byKey(root.Get("core.data.superAndChildOrderById")),
		sac:           byKey(root.Get("collection.narrativeSacById")),
	}

	b.model.FileVersion = root.Get("fileVersion").String()
	if b.model.FileVersion != "" {
		b.log.Infof("found file version %q", b.model.FileVersion)
	}

	b.readTypes()
	b.readReferences()
	b.readTags()
	b.readProperties()
	b.readItems()
	b.buildIndex()
	b.buildNarrative()

	b.log.Infof("read %d items of %d types", b.model.Len(), len(b.model.typeOrder))
	return b.model, nil
}

type builder struct {
	root     gjson.Result
	log      Logger
	resolver *calendar.Resolver

	itemLabels *labels.Registry
	typeLabels *labels.Registry
	refLabels  *labels.Registry
	tagLabels  *labels.Registry
	propLabels *labels.Registry
	enums      map[string]string

	dates         map[string]gjson.Result
	relationships map[string]gjson.Result
	relIDs        map[string]gjson.Result
	childOrder    map[string]gjson.Result
	sac           map[string]gjson.Result

	model *Model
}

// byKey indexes a JSON object by key. Non-objects yield an empty map.
func byKey(obj gjson.Result) map[string]gjson.Result {
	m := make(map[string]gjson.Result)
	if !obj.IsObject() {
		return m
	}
	obj.ForEach(func(key, value gjson.Result) bool {
		m[key.String()] = value
		return true
	})
	return m
}

func (b *builder) readTypes() {
	b.root.Get("core.definitions.types.byId").ForEach(func(uid, t gjson.Result) bool {
		label := b.typeLabels.RegisterSimple(uid.String(), t.Get("label").String())
		b.model.addType(&ItemType{
			UID:               uid.String(),
			Label:             label,
			IsNarrativeFolder: t.Get("isNarrativeFolder").Bool(),
		})
		return true
	})
}

func (b *builder) readReferences() {
	b.root.Get("core.definitions.references.byId").ForEach(func(uid, ref gjson.Result) bool {
		b.refLabels.RegisterSimple(uid.String(), ref.Get("label").String())
		return true
	})
}

func (b *builder) readTags() {
	b.root.Get("core.data.tags").ForEach(func(uid, tag gjson.Result) bool {
		if tag.Type != gjson.String {
			b.log.Debugf("tag %s is not a string", uid.String())
			return true
		}
		b.tagLabels.RegisterSimple(uid.String(), tag.String())
		return true
	})
}

func (b *builder) readProperties() {
	b.root.Get("core.definitions.properties.byId").ForEach(func(uid, prop gjson.Result) bool {
		b.propLabels.RegisterSimple(uid.String(), prop.Get("label").String())
		prop.Get("allowed").ForEach(func(enumUID, enum gjson.Result) bool {
			b.enums[enumUID.String()] = strings.TrimSpace(enum.Get("label").String())
			return true
		})
		return true
	})
}

// readItems registers all live labels first so that relationships and
// children can point at items that appear later in the source.
func (b *builder) readItems() {
	liveness := b.root.Get("collection.allItemIds")
	alive := byKey(liveness)
	live := func(uid string) bool {
		if !liveness.Exists() {
			return true
		}
		return alive[uid].Bool()
	}

	type pending struct {
		uid string
		raw gjson.Result
	}
	var queue []pending
	b.root.Get("core.data.itemsById").ForEach(func(key, raw gjson.Result) bool {
		uid := key.String()
		if !live(uid) {
			b.log.Debugf("skipping deleted item %s", uid)
			return true
		}
		label := raw.Get("label")
		if label.Type != gjson.String {
			b.log.Debugf("skipping item %s without label", uid)
			return true
		}
		b.itemLabels.RegisterItem(uid, label.String())
		queue = append(queue, pending{uid: uid, raw: raw})
		return true
	})
	b.log.Debugf("registered %d item labels", b.itemLabels.Len())

	for _, p := range queue {
		b.model.addItem(b.resolveItem(p.uid, p.raw))
	}
}

func (b *builder) resolveItem(uid string, raw gjson.Result) *Item {
	label, _ := b.itemLabels.Lookup(uid)
	item := &Item{
		UID:        uid,
		Label:      label,
		RawLabel:   raw.Get("label").String(),
		ShortLabel: strings.TrimSpace(raw.Get("shortLabel").String()),
		Summary:    raw.Get("summary").String(),
		DisplayID:  raw.Get("displayId").String(),
		TypeUID:    raw.Get("type").String(),
	}
	if t, ok := b.model.Type(item.TypeUID); ok {
		item.TypeLabel = t.Label
	}

	item.Tags = b.itemTags(uid, raw.Get("tags"))
	item.Properties = b.itemProperties(uid, raw.Get("propertyValues"))
	item.Relationships = b.itemRelationships(uid)
	item.Children, item.ChildUIDs = b.itemChildren(uid)
	b.resolveDates(item)
	return item
}

func (b *builder) itemTags(uid string, raw gjson.Result) []string {
	var tags []string
	for _, tagUID := range raw.Array() {
		tag, ok := b.tagLabels.Lookup(tagUID.String())
		if !ok {
			b.log.Debugf("item %s: unknown tag %s", uid, tagUID.String())
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

func (b *builder) itemProperties(uid string, raw gjson.Result) []Property {
	var props []Property
	raw.ForEach(func(propUID, value gjson.Result) bool {
		name, ok := b.propLabels.Lookup(propUID.String())
		if !ok {
			b.log.Debugf("item %s: unknown property %s", uid, propUID.String())
			return true
		}
		if value.Type == gjson.Null {
			return true
		}
		props = append(props, Property{Name: name, Value: b.propertyValue(value)})
		return true
	})
	return props
}

// propertyValue resolves enum UIDs to their labels. Multi-select values
// are joined with ", ".
func (b *builder) propertyValue(value gjson.Result) string {
	switch {
	case value.IsArray():
		parts := make([]string, 0, len(value.Array()))
		for _, v := range value.Array() {
			parts = append(parts, b.propertyValue(v))
		}
		return strings.Join(parts, ", ")
	case value.Type == gjson.String:
		if enum, ok := b.enums[value.Str]; ok {
			return enum
		}
		return value.Str
	case value.Type == gjson.Number:
		return value.Raw
	default:
		return value.String()
	}
}

func (b *builder) itemRelationships(uid string) []Relationship {
	var rels []Relationship
	b.relIDs[uid].ForEach(func(relUID, alive gjson.Result) bool {
		if !alive.Bool() {
			return true
		}
		rel, ok := b.relationships[relUID.String()]
		if !ok {
			b.log.Debugf("item %s: unknown relationship %s", uid, relUID.String())
			return true
		}
		targetUID := rel.Get("object").String()
		target, ok := b.itemLabels.Lookup(targetUID)
		if !ok {
			b.log.Debugf("item %s: relationship %s points at deleted item %s", uid, relUID.String(), targetUID)
			return true
		}
		refType, ok := b.refLabels.Lookup(rel.Get("reference").String())
		if !ok {
			b.log.Debugf("item %s: relationship %s has unknown type", uid, relUID.String())
			return true
		}
		rels = append(rels, Relationship{Target: target, TargetUID: targetUID, Type: refType})
		return true
	})
	return rels
}

func (b *builder) itemChildren(uid string) (labels, uids []string) {
	order := b.childOrder[uid].Get("childOrder")
	if !order.IsArray() {
		order = b.sac[uid].Get("children")
	}
	for _, child := range order.Array() {
		label, ok := b.itemLabels.Lookup(child.String())
		if !ok {
			b.log.Debugf("item %s: skipping deleted child %s", uid, child.String())
			continue
		}
		labels = append(labels, label)
		uids = append(uids, child.String())
	}
	return labels, uids
}

func (b *builder) resolveDates(item *Item) {
	raw, ok := b.dates[item.UID]
	if !ok {
		return
	}
	d := calendar.ParseDates(raw)
	r := b.resolver

	item.Era = named(r.Era(d))
	item.Weekday = named(r.Weekday(d))
	item.Month = named(r.Month(d))
	item.Year = optional(r.Year(d))
	item.Day = optional(r.Day(d))
	item.Hour = optional(r.Hour(d))
	item.Minute = optional(r.Minute(d))
	item.Second = optional(r.Second(d))
	if ts, ok := r.Timestamp(d); ok {
		item.Timestamp = &ts
	}
	item.ISODate, _ = r.ISODate(d)
	item.ISOTime, _ = r.ISOTime(d)
	item.DateString = r.DateString(d)
	item.TimeString = r.TimeString(d)
	item.Duration = r.DurationString(d)
}

func (b *builder) buildIndex() {
	b.root.Get("collection.itemIdsByType").ForEach(func(typeUID, uids gjson.Result) bool {
		entry := TypeIndex{TypeUID: typeUID.String()}
		for _, uid := range uids.Array() {
			if _, ok := b.model.items[uid.String()]; !ok {
				b.log.Debugf("type %s: skipping deleted item %s", typeUID.String(), uid.String())
				continue
			}
			entry.ItemUIDs = append(entry.ItemUIDs, uid.String())
		}
		b.model.index = append(b.model.index, entry)
		return true
	})
}

// buildNarrative walks the narrative outline from every root (a node whose
// super is null). Nodes that are not live items are dropped and their
// children move up to the nearest kept ancestor.
func (b *builder) buildNarrative() {
	visited := make(map[string]bool)
	b.root.Get("collection.narrativeSacById").ForEach(func(uid, node gjson.Result) bool {
		super := node.Get("super")
		if super.Exists() && super.Type != gjson.Null {
			return true
		}
		b.model.narrative = append(b.model.narrative, b.narrativeBranch(uid.String(), visited)...)
		return true
	})
}

func (b *builder) narrativeBranch(uid string, visited map[string]bool) []*NarrativeNode {
	if visited[uid] {
		b.log.Debugf("narrative: %s visited twice, skipping", uid)
		return nil
	}
	visited[uid] = true

	var children []*NarrativeNode
	for _, child := range b.sac[uid].Get("children").Array() {
		children = append(children, b.narrativeBranch(child.String(), visited)...)
	}

	item, ok := b.model.items[uid]
	if !ok {
		return children
	}
	return []*NarrativeNode{{UID: uid, Label: item.Label, Children: children}}
}

func named(n calendar.Named, ok bool) *calendar.Named {
	if !ok {
		return nil
	}
	return &n
}

func optional(v int, ok bool) *int {
	if !ok {
		return nil
	}
	return &v
}
