package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorewood/aeon3md/internal/output"
	"github.com/gorewood/aeon3md/internal/timeline"
)

// Result summarizes a vault export.
type Result struct {
	Dir     string   `json:"dir"`
	Items   int      `json:"items"`
	Pages   int      `json:"pages"`
	Files   []string `json:"files"`
	Backups []string `json:"backups,omitempty"`
}

// DefaultDir returns the vault directory for an input file: a sibling
// directory named after the file without its extension.
func DefaultDir(inputPath string) string {
	base := filepath.Base(inputPath)
	return filepath.Join(filepath.Dir(inputPath), strings.TrimSuffix(base, filepath.Ext(base)))
}

// WriteVault writes item notes, type pages, the index page and the
// narrative page into dir.
func WriteVault(model *timeline.Model, dir string, opts Options, log Logger) (*Result, error) {
	if log == nil {
		log = nopLogger{}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, output.NewSystemErrorWithCause(fmt.Sprintf("cannot create %s", dir), err)
	}
	w := NewFileWriter(dir, log)
	opts.Names = NewNoteNames(model, log)

	for _, item := range model.Items() {
		name := opts.Names.Name(item.Label, item.UID) + ".md"
		if noteName(item.Label, item.UID) != SanitizeTitle(item.Label) {
			log.Debugf("item %s has no usable label, writing %s", item.UID, name)
		}
		content, err := FormatItem(item, opts)
		if err != nil {
			return nil, output.NewSystemErrorWithCause(fmt.Sprintf("cannot format %s", item.Label), err)
		}
		if err := w.Write(name, content); err != nil {
			return nil, err
		}
	}
	log.Infof("%d item notes written", model.Len())

	pages := 0
	for _, entry := range model.Index() {
		if err := w.Write(TypePageName(model, entry.TypeUID)+".md", FormatTypePage(model, entry.TypeUID, opts.Names)); err != nil {
			return nil, err
		}
		pages++
	}
	if err := w.Write(IndexPage+".md", FormatIndex(model)); err != nil {
		return nil, err
	}
	if err := w.Write(NarrativePage+".md", FormatNarrative(model, opts.Names)); err != nil {
		return nil, err
	}
	pages += 2
	log.Infof("%d index pages written", pages)

	return &Result{
		Dir:     dir,
		Items:   model.Len(),
		Pages:   pages,
		Files:   w.Written(),
		Backups: w.Backups(),
	}, nil
}
