package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorewood/aeon3md/internal/output"
	"github.com/gorewood/aeon3md/internal/timeline/timelinetest"
)

func writeProject(t *testing.T, dir string) string {
	t.Helper()
	return timelinetest.WriteFile(t, dir)
}

func readNote(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func TestConvert_WritesVaultNextToProject(t *testing.T) {
	dir := isolate(t)
	path := writeProject(t, dir)

	stdout, _, err := execute(t, path)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(stdout, "Converted "+path) {
		t.Errorf("stdout = %q", stdout)
	}

	vault := filepath.Join(dir, "project")
	for _, name := range []string{"Aspirin synthesized.md", "Storm(1).md", "_Event.md", "__Index.md", "__Narrative.md"} {
		if _, err := os.Stat(filepath.Join(vault, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(vault, "Ghost.md")); !os.IsNotExist(err) {
		t.Errorf("deleted item should not be written, stat err = %v", err)
	}
	if note := readNote(t, filepath.Join(vault, "Aspirin synthesized.md")); !strings.HasPrefix(note, "---\n") {
		t.Errorf("note should start with frontmatter:\n%s", note)
	}
}

func TestConvert_Flags(t *testing.T) {
	dir := isolate(t)
	path := writeProject(t, dir)
	out := filepath.Join(dir, "vault")

	stdout, _, err := execute(t, "--json", "--out", out, "--no-frontmatter", path)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var result map[string]any
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("output should be JSON: %v\n%s", err, stdout)
	}
	if result["output"] != out {
		t.Errorf("output = %v, want %s", result["output"], out)
	}
	if result["items"] != float64(6) {
		t.Errorf("items = %v, want 6", result["items"])
	}
	if result["file_version"] != "3.2.1" {
		t.Errorf("file_version = %v", result["file_version"])
	}

	note := readNote(t, filepath.Join(out, "Aspirin synthesized.md"))
	if strings.HasPrefix(note, "---\nlabel:") {
		t.Errorf("--no-frontmatter should suppress YAML:\n%s", note)
	}
	if !strings.Contains(note, "#Nobel_prize") {
		t.Errorf("note should carry inline tags:\n%s", note)
	}
}

func TestConvert_SecondRunKeepsBackups(t *testing.T) {
	dir := isolate(t)
	path := writeProject(t, dir)

	if _, _, err := execute(t, path); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if _, _, err := execute(t, path); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "project", "Alice.md.bak")); err != nil {
		t.Errorf("expected backup of Alice.md: %v", err)
	}
}

func TestConvert_ConfigOutputDir(t *testing.T) {
	dir := isolate(t)
	path := writeProject(t, dir)
	parent := filepath.Join(dir, "notes")
	if err := os.WriteFile(".aeon3md.yaml", []byte("output_dir: "+parent+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, _, err := execute(t, path); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(parent, "project", "Alice.md")); err != nil {
		t.Errorf("vault should be inside output_dir: %v", err)
	}
}

func TestConvert_Errors(t *testing.T) {
	tests := []struct {
		name     string
		content  []byte
		wantCode int
		wantMsg  string
	}{
		{name: "missing file", wantCode: output.ExitUserError, wantMsg: "not found"},
		{name: "unbalanced braces", content: []byte(`AEON {"core": {`), wantCode: output.ExitCorruptData, wantMsg: "corrupted data"},
		{name: "no JSON", content: []byte("just bytes"), wantCode: output.ExitCorruptData, wantMsg: "no JSON part"},
		{name: "missing sections", content: timelinetest.Envelope(`{"fileVersion": "3"}`), wantCode: output.ExitCorruptData, wantMsg: "missing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			path := filepath.Join(dir, "broken.aeon")
			if tt.content != nil {
				if err := os.WriteFile(path, tt.content, 0o600); err != nil {
					t.Fatal(err)
				}
			}

			_, stderr, err := execute(t, path)
			if err == nil {
				t.Fatal("expected error")
			}
			if code := output.GetExitCode(err); code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(stderr, tt.wantMsg) {
				t.Errorf("stderr = %q, want it to contain %q", stderr, tt.wantMsg)
			}
			if _, err := os.Stat(filepath.Join(dir, "broken")); !os.IsNotExist(err) {
				t.Errorf("no vault should be created, stat err = %v", err)
			}
		})
	}
}

func TestOutputDir(t *testing.T) {
	tests := []struct {
		name, out, configured, want string
	}{
		{name: "default", want: filepath.Join("novels", "Ashes")},
		{name: "flag", out: "vault", configured: "notes", want: "vault"},
		{name: "configured parent", configured: "notes", want: filepath.Join("notes", "Ashes")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputDir(filepath.Join("novels", "Ashes.aeon"), tt.out, tt.configured)
			if got != tt.want {
				t.Errorf("outputDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConvert_MalformedEnvFileStillLoadsOthers(t *testing.T) {
	dir := isolate(t)
	path := writeProject(t, dir)
	parent := filepath.Join(dir, "notes")
	if err := os.WriteFile(".env.local", []byte("NOT VALID LINE\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(".env", []byte("AEON3MD_OUTPUT_DIR="+parent+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, stderr, err := execute(t, path)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(stderr, "Warning") || !strings.Contains(stderr, ".env.local") {
		t.Errorf("stderr should warn about .env.local: %q", stderr)
	}
	if _, err := os.Stat(filepath.Join(parent, "project", "Alice.md")); err != nil {
		t.Errorf(".env should still be applied: %v", err)
	}
}
