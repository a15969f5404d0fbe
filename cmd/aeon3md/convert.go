package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gorewood/aeon3md/internal/export"
)

type convertFlags struct {
	out           string
	noFrontmatter bool
}

// runConvert reads the project and writes its vault.
func runConvert(cmd *cobra.Command, path string, flags convertFlags) error {
	printer := newPrinter(cmd)

	s, err := loadSettings(cmd)
	if err != nil {
		return fail(printer, err)
	}

	model, err := loadModel(path, s)
	if err != nil {
		return fail(printer, err)
	}

	dir := outputDir(path, flags.out, s.cfg.OutputDir)
	opts := export.Options{Frontmatter: s.cfg.Frontmatter && !flags.noFrontmatter}
	result, err := export.WriteVault(model, dir, opts, s.log)
	if err != nil {
		return fail(printer, err)
	}

	return printer.Success(map[string]any{
		"message":      fmt.Sprintf("Converted %s", path),
		"output":       result.Dir,
		"items":        result.Items,
		"pages":        result.Pages,
		"backups":      len(result.Backups),
		"file_version": fileVersion(model.FileVersion),
	})
}

// outputDir picks the vault directory: --out as given, else a folder named
// after the project inside output_dir, else next to the project.
func outputDir(path, out, configured string) string {
	if out != "" {
		return out
	}
	dir := export.DefaultDir(path)
	if configured != "" {
		return filepath.Join(configured, filepath.Base(dir))
	}
	return dir
}

func fileVersion(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
