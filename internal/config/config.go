package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/gorewood/aeon3md/internal/calendar"
	"github.com/gorewood/aeon3md/internal/logging"
)

// ProjectFile is the per-directory config file name.
const ProjectFile = ".aeon3md.yaml"

// Config holds the conversion settings.
type Config struct {
	LogLevel    string   `mapstructure:"log_level"`
	HiddenEras  []string `mapstructure:"hidden_eras"`
	Frontmatter bool     `mapstructure:"frontmatter"`
	OutputDir   string   `mapstructure:"output_dir"`

	// Files lists the config files that were read, in load order.
	Files []string `mapstructure:"-"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		LogLevel:    logging.DefaultLevel,
		HiddenEras:  append([]string(nil), calendar.DefaultHiddenEras...),
		Frontmatter: true,
	}
}

// GlobalPath returns the path of the user config file.
func GlobalPath() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load merges, in increasing precedence: defaults, the user config file,
// ./.aeon3md.yaml, the explicit file (if any) and AEON3MD_* environment
// variables. Missing optional files are skipped; a missing explicit file
// is an error.
func Load(explicitPath string) (*Config, error) {
	def := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("hidden_eras", def.HiddenEras)
	v.SetDefault("frontmatter", def.Frontmatter)
	v.SetDefault("output_dir", def.OutputDir)
	v.SetEnvPrefix("aeon3md")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var files []string
	for _, path := range []string{GlobalPath(), ProjectFile} {
		if path == "" {
			continue
		}
		read, err := mergeFile(v, path)
		if err != nil {
			return nil, err
		}
		if read {
			files = append(files, path)
		}
	}

	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return nil, fmt.Errorf("config file %s: %w", explicitPath, err)
		}
		if _, err := mergeFile(v, explicitPath); err != nil {
			return nil, err
		}
		files = append(files, explicitPath)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Files = files
	cfg.HiddenEras = splitList(cfg.HiddenEras)
	return cfg, nil
}

func mergeFile(v *viper.Viper, path string) (bool, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil {
		return false, fmt.Errorf("reading config %s: %w", path, err)
	}
	return true, nil
}

// splitList trims entries and splits comma-separated values coming from
// the environment.
func splitList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
