// Package labels maps Aeon UIDs to display labels.
//
// Item labels become file names in the generated vault, so they must be
// unique within one conversion: repeated labels get a running counter
// suffix ("Storm", "Storm(1)", "Storm(2)"). Labels of types, tags and
// relationship types are stored as-is.
package labels

import (
	"fmt"
	"strings"
)

// Logger receives a note for every duplicate item label.
type Logger interface {
	Debugf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}

// Registry stores the label of every registered UID.
type Registry struct {
	labels map[string]string
	counts map[string]int
	taken  map[string]bool
	log    Logger
}

// New creates an empty Registry. A nil logger discards diagnostics.
func New(log Logger) *Registry {
	if log == nil {
		log = nopLogger{}
	}
	return &Registry{
		labels: make(map[string]string),
		counts: make(map[string]int),
		taken:  make(map[string]bool),
		log:    log,
	}
}

// RegisterItem stores a unique label for uid and returns it.
// The raw label is trimmed; a label seen before gets a "(n)" suffix where n
// is a per-label counter that only grows. Suffixed candidates that collide
// with an existing label are skipped.
func (r *Registry) RegisterItem(uid, raw string) string {
	label := strings.TrimSpace(raw)
	if !r.taken[label] {
		if _, ok := r.counts[label]; !ok {
			r.counts[label] = 0
		}
		return r.store(uid, label)
	}

	n := r.counts[label]
	candidate := label
	for r.taken[candidate] {
		n++
		candidate = fmt.Sprintf("%s(%d)", label, n)
	}
	r.counts[label] = n
	r.log.Debugf("duplicate item label %q (uid %s), registered as %q", label, uid, candidate)
	return r.store(uid, candidate)
}

func (r *Registry) store(uid, label string) string {
	r.labels[uid] = label
	r.taken[label] = true
	return label
}

// RegisterSimple stores the trimmed label for uid without uniqueness checks.
func (r *Registry) RegisterSimple(uid, raw string) string {
	label := strings.TrimSpace(raw)
	r.labels[uid] = label
	return label
}

// Lookup returns the label registered for uid.
func (r *Registry) Lookup(uid string) (string, bool) {
	label, ok := r.labels[uid]
	return label, ok
}

// Len returns the number of registered UIDs.
func (r *Registry) Len() int {
	return len(r.labels)
}
