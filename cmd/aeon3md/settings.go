package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gorewood/aeon3md/internal/config"
	"github.com/gorewood/aeon3md/internal/envelope"
	"github.com/gorewood/aeon3md/internal/logging"
	"github.com/gorewood/aeon3md/internal/output"
	"github.com/gorewood/aeon3md/internal/timeline"
)

// settings bundles what every command needs: merged config and a logger.
type settings struct {
	cfg *config.Config
	log *logrus.Logger
}

// loadSettings merges config files with the persistent flags.
// --verbose wins over --log-level, which wins over the config files.
func loadSettings(cmd *cobra.Command) (*settings, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, output.NewUserError(err.Error())
	}

	level := cfg.LogLevel
	if flagLevel, _ := cmd.Flags().GetString("log-level"); flagLevel != "" {
		level = flagLevel
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = "debug"
	}

	log, err := logging.New(level, cmd.ErrOrStderr())
	if err != nil {
		return nil, output.NewUserError(err.Error())
	}
	for _, file := range cfg.Files {
		log.Debugf("config loaded from %s", file)
	}
	return &settings{cfg: cfg, log: log}, nil
}

// newPrinter creates a printer honoring --json and --color.
func newPrinter(cmd *cobra.Command) *output.Printer {
	colorMode, _ := cmd.Flags().GetString("color")
	isTTY := output.ResolveColorMode(colorMode, output.IsTTY(cmd.OutOrStdout()))
	return output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), isTTY).WithStderr(cmd.ErrOrStderr())
}

// loadModel reads a project file and maps failures to exit codes.
func loadModel(path string, s *settings) (*timeline.Model, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, output.NewUserError(fmt.Sprintf("project file not found: %s", path))
		}
		return nil, output.NewSystemErrorWithCause(fmt.Sprintf("cannot access %s", path), err)
	}

	s.log.Infof("reading %s", path)
	model, err := timeline.Read(path,
		timeline.WithLogger(s.log),
		timeline.WithHiddenEras(s.cfg.HiddenEras...),
	)
	switch {
	case err == nil:
		return model, nil
	case errors.Is(err, envelope.ErrCorrupted),
		errors.Is(err, envelope.ErrNoJSON),
		errors.Is(err, timeline.ErrMalformedJSON),
		errors.Is(err, timeline.ErrMissingSection):
		return nil, output.NewCorruptDataError(fmt.Sprintf("cannot read %s", path), err)
	default:
		return nil, output.NewSystemErrorWithCause(fmt.Sprintf("cannot read %s", path), err)
	}
}

// fail prints err and returns it, for RunE functions.
func fail(printer *output.Printer, err error) error {
	printer.Error(err)
	return err
}
