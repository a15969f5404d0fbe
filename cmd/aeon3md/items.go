package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gorewood/aeon3md/internal/output"
	"github.com/gorewood/aeon3md/internal/timeline"
)

func newItemsCmd() *cobra.Command {
	var typeFlag string

	cmd := &cobra.Command{
		Use:   "items <file.aeon>",
		Short: "List the items of a project by date",
		Long: `List the live items of a project in chronological order.
Undated items come last, in project order.

Examples:
  aeon3md items Ashes.aeon                    # All items
  aeon3md items Ashes.aeon --type Character   # Only characters
  aeon3md items Ashes.aeon --json             # Full item records`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runItems(cmd, args[0], typeFlag)
		},
	}

	cmd.Flags().StringVarP(&typeFlag, "type", "t", "", "Only list items of this type label")

	return cmd
}

func runItems(cmd *cobra.Command, path, typeLabel string) error {
	printer := newPrinter(cmd)

	s, err := loadSettings(cmd)
	if err != nil {
		return fail(printer, err)
	}
	model, err := loadModel(path, s)
	if err != nil {
		return fail(printer, err)
	}

	uids := model.UIDs()
	if typeLabel != "" {
		t, ok := model.TypeByLabel(typeLabel)
		if !ok {
			return fail(printer, output.NewUserError(fmt.Sprintf("no item type labeled %q", typeLabel)))
		}
		uids = model.ItemUIDsOfType(t.UID)
	}

	items := make([]*timeline.Item, 0, len(uids))
	for _, uid := range model.SortByDate(uids) {
		item, _ := model.Item(uid)
		items = append(items, item)
	}

	if printer.IsJSON() {
		return printer.WriteJSON(items)
	}

	if len(items) == 0 {
		printer.Println("No items.")
		return nil
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{item.Label, item.TypeLabel, item.DateString, item.TimeString, item.Duration})
	}
	printer.Table([]string{"LABEL", "TYPE", "DATE", "TIME", "LASTS"}, rows)
	return nil
}
