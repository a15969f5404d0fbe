package envfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeEnv(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func unset(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		_ = os.Unsetenv(key) //nolint:errcheck
	}
}

func TestLoad_NonexistentFile(t *testing.T) {
	if err := Load("/nonexistent/.env"); err != nil {
		t.Fatalf("expected nil for nonexistent file, got %v", err)
	}
}

func TestLoad_SetsUnsetVars(t *testing.T) {
	path := writeEnv(t, t.TempDir(), ".env.local", "AEON3MD_TEST_A=hello\nexport AEON3MD_TEST_B=\"world\"\n# comment\n")
	unset(t, "AEON3MD_TEST_A", "AEON3MD_TEST_B")

	if err := Load(path); err != nil {
		t.Fatal(err)
	}

	if got := os.Getenv("AEON3MD_TEST_A"); got != "hello" {
		t.Errorf("AEON3MD_TEST_A = %q, want %q", got, "hello")
	}
	if got := os.Getenv("AEON3MD_TEST_B"); got != "world" {
		t.Errorf("AEON3MD_TEST_B = %q, want %q", got, "world")
	}
}

func TestLoad_DoesNotOverrideExisting(t *testing.T) {
	path := writeEnv(t, t.TempDir(), ".env", "AEON3MD_TEST_C=from_file\n")
	t.Setenv("AEON3MD_TEST_C", "from_env")

	if err := Load(path); err != nil {
		t.Fatal(err)
	}

	if got := os.Getenv("AEON3MD_TEST_C"); got != "from_env" {
		t.Errorf("AEON3MD_TEST_C = %q, want %q (env should take precedence)", got, "from_env")
	}
}

func TestLoad_EarlierFileWins(t *testing.T) {
	dir := t.TempDir()
	local := writeEnv(t, dir, ".env.local", "AEON3MD_TEST_D=local\n")
	shared := writeEnv(t, dir, ".env", "AEON3MD_TEST_D=shared\nAEON3MD_TEST_E=shared\n")
	unset(t, "AEON3MD_TEST_D", "AEON3MD_TEST_E")

	if err := Load(local, shared); err != nil {
		t.Fatal(err)
	}

	if got := os.Getenv("AEON3MD_TEST_D"); got != "local" {
		t.Errorf("AEON3MD_TEST_D = %q, want %q", got, "local")
	}
	if got := os.Getenv("AEON3MD_TEST_E"); got != "shared" {
		t.Errorf("AEON3MD_TEST_E = %q, want %q", got, "shared")
	}
}

func TestLoad_MalformedFileDoesNotHideOthers(t *testing.T) {
	dir := t.TempDir()
	bad := writeEnv(t, dir, ".env.local", "NOT VALID LINE\n")
	good := writeEnv(t, dir, ".env", "AEON3MD_TEST_F=from_env\n")
	unset(t, "AEON3MD_TEST_F")

	err := Load(bad, good)
	if err == nil {
		t.Fatal("expected an error for the malformed file")
	}
	if !strings.Contains(err.Error(), bad) {
		t.Errorf("error should name %s: %v", bad, err)
	}
	if got := os.Getenv("AEON3MD_TEST_F"); got != "from_env" {
		t.Errorf("AEON3MD_TEST_F = %q, want %q", got, "from_env")
	}
}
