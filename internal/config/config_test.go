package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// isolate points every config source at empty temp locations.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("AEON3MD_CONFIG_HOME", home)
	for _, key := range []string{"AEON3MD_LOG_LEVEL", "AEON3MD_HIDDEN_ERAS", "AEON3MD_FRONTMATTER", "AEON3MD_OUTPUT_DIR"} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key) //nolint:errcheck
	}
	t.Chdir(t.TempDir())
	return home
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Default()
	if cfg.LogLevel != want.LogLevel || !cfg.Frontmatter || cfg.OutputDir != "" {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, want)
	}
	if !reflect.DeepEqual(cfg.HiddenEras, []string{"AD"}) {
		t.Errorf("HiddenEras = %v, want [AD]", cfg.HiddenEras)
	}
	if len(cfg.Files) != 0 {
		t.Errorf("Files = %v, want none", cfg.Files)
	}
}

func TestLoad_Precedence(t *testing.T) {
	home := isolate(t)
	writeConfig(t, filepath.Join(home, "config.yaml"), "log_level: info\nhidden_eras: [CE]\nfrontmatter: false\n")
	writeConfig(t, ProjectFile, "log_level: error\n")
	explicit := filepath.Join(t.TempDir(), "explicit.yaml")
	writeConfig(t, explicit, "output_dir: /vault\n")

	cfg, err := Load(explicit)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel = %q, want project value %q", cfg.LogLevel, "error")
	}
	if !reflect.DeepEqual(cfg.HiddenEras, []string{"CE"}) {
		t.Errorf("HiddenEras = %v, want [CE]", cfg.HiddenEras)
	}
	if cfg.Frontmatter {
		t.Error("Frontmatter = true, want false from user config")
	}
	if cfg.OutputDir != "/vault" {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, "/vault")
	}
	if len(cfg.Files) != 3 {
		t.Errorf("Files = %v, want 3 entries", cfg.Files)
	}
}

func TestLoad_EnvironmentWins(t *testing.T) {
	home := isolate(t)
	writeConfig(t, filepath.Join(home, "config.yaml"), "log_level: info\n")
	t.Setenv("AEON3MD_LOG_LEVEL", "debug")
	t.Setenv("AEON3MD_HIDDEN_ERAS", "AD, CE")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if !reflect.DeepEqual(cfg.HiddenEras, []string{"AD", "CE"}) {
		t.Errorf("HiddenEras = %v, want [AD CE]", cfg.HiddenEras)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)

	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() with missing explicit file should fail")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	isolate(t)
	writeConfig(t, ProjectFile, "log_level: [unclosed\n")

	if _, err := Load(""); err == nil {
		t.Error("Load() with invalid YAML should fail")
	}
}
