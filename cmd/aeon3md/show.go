package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gorewood/aeon3md/internal/export"
	"github.com/gorewood/aeon3md/internal/output"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <file.aeon> <label>",
		Short: "Print the note of a single item",
		Long: `Print the Markdown note of one item, exactly as the conversion writes it.
Items are addressed by their unique label; repeated labels carry a counter,
e.g. "Storm(1)".

Examples:
  aeon3md show Ashes.aeon "The fire"          # Markdown note
  aeon3md show Ashes.aeon "Storm(1)" --json   # Resolved item record`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args[0], args[1])
		},
	}
}

func runShow(cmd *cobra.Command, path, label string) error {
	printer := newPrinter(cmd)

	s, err := loadSettings(cmd)
	if err != nil {
		return fail(printer, err)
	}
	model, err := loadModel(path, s)
	if err != nil {
		return fail(printer, err)
	}

	item, ok := model.ItemByLabel(label)
	if !ok {
		return fail(printer, output.NewUserError(fmt.Sprintf("no item labeled %q in %s", label, path)))
	}

	if printer.IsJSON() {
		return printer.WriteJSON(item)
	}

	note, err := export.FormatItem(item, export.Options{
		Frontmatter: s.cfg.Frontmatter,
		Names:       export.NewNoteNames(model, s.log),
	})
	if err != nil {
		return fail(printer, output.NewSystemErrorWithCause("cannot format note", err))
	}
	printer.Print("%s", note)
	return nil
}
