// Package main provides the entry point for the aeon3md CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/aeon3md/internal/config"
	"github.com/gorewood/aeon3md/internal/envfile"
	"github.com/gorewood/aeon3md/internal/output"
)

// Build info set via ldflags at build time.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2026-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	os.Exit(run())
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command. Given a project file it converts it
// into a vault of Markdown notes.
func newRootCmd() *cobra.Command {
	var flags convertFlags

	cmd := &cobra.Command{
		Use:   "aeon3md <file.aeon>",
		Short: "Convert Aeon Timeline 3 projects into Markdown notes",
		Long: `aeon3md - Convert an Aeon Timeline 3 project into interlinked Markdown notes.

The project's items become one note each, with YAML frontmatter, #tags and
[[wiki links]] for relationships and children. Index pages list the items of
every type by date, and __Narrative.md lays out the narrative outline.

Notes are written to a folder next to the project, named after it:
  aeon3md ~/novels/Ashes.aeon     # writes ~/novels/Ashes/*.md

Existing notes are kept as <name>.md.bak before they are replaced.

All commands support --json for structured output.`,
		Version:       buildVersion(),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				if isJSONMode(cmd) {
					printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
					err := output.NewUserError("no project file specified. Run 'aeon3md --help' for usage")
					printer.Error(err)
					return err
				}
				return cmd.Help()
			}
			return runConvert(cmd, args[0], flags)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if err := loadEnvFiles(); err != nil {
			newPrinter(cmd).Warn("%v", err)
		}
		return nil
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("config", "", "Read settings from this YAML file")
	cmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Log every skipped item and reference (same as --log-level debug)")
	cmd.PersistentFlags().String("color", "auto", "Color output: auto, always or never")

	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "Write notes to this directory instead of the folder next to the project")
	cmd.Flags().BoolVar(&flags.noFrontmatter, "no-frontmatter", false, "Write short label and tags inline instead of YAML frontmatter")

	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// loadEnvFiles loads env files in priority order. First match for each
// variable wins; variables already set always take precedence. A malformed
// file is reported and the remaining files are still loaded.
//
// Resolution order:
//  1. $CWD/.env.local
//  2. $CWD/.env
//  3. <config dir>/env
func loadEnvFiles() error {
	paths := []string{".env.local", ".env"}
	if dir := config.Dir(); dir != "" {
		paths = append(paths, filepath.Join(dir, "env"))
	}
	return envfile.Load(paths...)
}

func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "query", Title: "Query Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "agent", Title: "Agent Commands:"})
}

func addCommands(cmd *cobra.Command) {
	addGroupedCommand(cmd, newItemsCmd(), "query")
	addGroupedCommand(cmd, newShowCmd(), "query")
	addGroupedCommand(cmd, newServeCmd(), "agent")
}

func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
