package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestPrinter_JSON_Success(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false)

	err := printer.Success(map[string]any{
		"message": "Converted project.aeon",
		"items":   42,
	})
	if err != nil {
		t.Fatalf("Success() error = %v", err)
	}

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v\nOutput: %s", err, buf.String())
	}
	if result["message"] != "Converted project.aeon" {
		t.Errorf("message = %v, want %q", result["message"], "Converted project.aeon")
	}
	if result["items"] != float64(42) {
		t.Errorf("items = %v, want 42", result["items"])
	}
}

func TestPrinter_Human_Success(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	err := printer.Success(map[string]any{
		"message": "Converted project.aeon",
		"output":  "/tmp/project",
		"items":   3,
	})
	if err != nil {
		t.Fatalf("Success() error = %v", err)
	}

	want := "Converted project.aeon\nitems: 3\noutput: /tmp/project\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestPrinter_JSON_Error(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false)

	printer.Error(NewCorruptDataError("cannot read project.aeon", errors.New("truncated")))

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v\nOutput: %s", err, buf.String())
	}
	if result["error"] != "cannot read project.aeon: truncated" {
		t.Errorf("error = %v, want %q", result["error"], "cannot read project.aeon: truncated")
	}
	if code, ok := result["code"].(float64); !ok || int(code) != ExitCorruptData {
		t.Errorf("code = %v, want %d", result["code"], ExitCorruptData)
	}
}

func TestPrinter_Human_Error(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"user error", NewUserError("no input file"), "Error: no input file\n"},
		{"with cause", NewSystemErrorWithCause("writing notes", errors.New("disk full")), "Error: writing notes: disk full\n"},
		{"plain error", errors.New("boom"), "Error: boom\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			printer := NewPrinter(&out, false, false).WithStderr(&errOut)

			printer.Error(tt.err)

			if out.Len() != 0 {
				t.Errorf("stdout = %q, want empty", out.String())
			}
			if errOut.String() != tt.want {
				t.Errorf("stderr = %q, want %q", errOut.String(), tt.want)
			}
		})
	}
}

func TestPrinter_PrintAndPrintln(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	printer.Print("Hello, %s!", "vault")
	printer.Println()

	if buf.String() != "Hello, vault!\n" {
		t.Errorf("output = %q, want %q", buf.String(), "Hello, vault!\n")
	}
}

func TestPrinter_IsJSON(t *testing.T) {
	var buf bytes.Buffer

	if !NewPrinter(&buf, true, false).IsJSON() {
		t.Error("IsJSON() should return true for JSON printer")
	}
	if NewPrinter(&buf, false, false).IsJSON() {
		t.Error("IsJSON() should return false for human printer")
	}
}

func TestPrinter_Warn(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, false, false).Warn("%d backups written", 2)
	if got := buf.String(); got != "Warning: 2 backups written\n" {
		t.Errorf("human warn = %q", got)
	}

	var stdout, stderr bytes.Buffer
	NewPrinter(&stdout, true, false).WithStderr(&stderr).Warn("stale output")
	if stdout.Len() != 0 {
		t.Errorf("JSON warning written to the main output: %q", stdout.String())
	}
	var result map[string]any
	if err := json.Unmarshal(stderr.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v\nOutput: %s", err, stderr.String())
	}
	if result["warning"] != "stale output" {
		t.Errorf("warning = %v, want %q", result["warning"], "stale output")
	}
}

func TestPrinter_Table(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	printer.Table([]string{"LABEL", "DATE"}, [][]string{
		{"Zoë", "6 February 1933"},
		{"Storm(1)", ""},
	})

	want := strings.Join([]string{
		"LABEL     DATE",
		"Zoë       6 February 1933",
		"Storm(1)",
		"",
	}, "\n")
	if buf.String() != want {
		t.Errorf("Table() =\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestPrinter_TableNoHeaders(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, false, false).Table(nil, [][]string{{"x"}})
	if buf.Len() != 0 {
		t.Errorf("Table(nil) wrote %q", buf.String())
	}
}

func TestPrinter_KeyValue(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, false, false).KeyValue("type", "Event")

	if want := "type: Event\n"; buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestErrorJSON_Format(t *testing.T) {
	var parsed struct {
		Error string `json:"error"`
		Code  int    `json:"code"`
	}
	if err := json.Unmarshal(ErrorJSON("test error", ExitUserError), &parsed); err != nil {
		t.Fatalf("Failed to parse ErrorJSON output: %v", err)
	}
	if parsed.Error != "test error" || parsed.Code != ExitUserError {
		t.Errorf("ErrorJSON = %+v", parsed)
	}
}
