package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	apperr "github.com/tichlinh-png/trace-worksheet/pkg/errors"
	"github.com/tichlinh-png/trace-worksheet/pkg/wordlist"
)

// run executes the CLI with args and returns what commands wrote to their
// cobra output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func initWorksheet(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "animals.toml")
	if _, err := run(t, "init", path); err != nil {
		t.Fatalf("init: %v", err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestInit(t *testing.T) {
	path := initWorksheet(t)

	ws, err := wordlist.Load(path)
	if err != nil {
		t.Fatalf("load sample: %v", err)
	}
	if len(ws.Entries) != 4 || ws.Entries[0].Text != "Cats" {
		t.Errorf("sample entries = %+v", ws.Entries)
	}

	_, err = run(t, "init", path)
	if !apperr.Is(err, apperr.ErrCodeInvalidPath) {
		t.Errorf("second init error = %v, want INVALID_PATH", err)
	}
	if _, err := run(t, "init", "--force", path); err != nil {
		t.Errorf("init --force: %v", err)
	}
}

func TestGenerate(t *testing.T) {
	path := initWorksheet(t)
	base := strings.TrimSuffix(path, ".toml")

	if _, err := run(t, "generate", path, "-f", "html,json"); err != nil {
		t.Fatalf("generate: %v", err)
	}

	html := readFile(t, base+".html")
	for _, word := range []string{"Cats", "Ducks", "Birds", "Cows"} {
		if !strings.Contains(html, word) {
			t.Errorf("html missing %q", word)
		}
	}
	if got := strings.Count(html, `<section class="page"`); got != 2 {
		t.Errorf("pages = %d, want 2", got)
	}
	if !strings.Contains(readFile(t, base+".json"), `"pages"`) {
		t.Error("json output missing pages")
	}
}

func TestGenerateOverrides(t *testing.T) {
	path := initWorksheet(t)
	out := filepath.Join(t.TempDir(), "nested", "one-per-page.html")

	_, err := run(t, "generate", path, "-o", out, "--per-page", "1", "--repeat", "3", "--name", "Sunrise", "--print", "--no-print-button")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	html := readFile(t, out)
	if got := strings.Count(html, `<section class="page"`); got != 4 {
		t.Errorf("pages = %d, want 4", got)
	}
	if !strings.Contains(html, "Cats Cats Cats<") {
		t.Error("trace lines should repeat the word three times")
	}
	if !strings.Contains(html, "Sunrise") {
		t.Error("institution override missing")
	}
	if strings.Contains(html, `class="print-button"`) {
		t.Error("print button should be omitted")
	}
	if !strings.Contains(html, "window.print()") {
		t.Error("auto-print script missing")
	}
}

func TestGenerateErrors(t *testing.T) {
	path := initWorksheet(t)

	tests := []struct {
		name string
		args []string
		code apperr.Code
	}{
		{"missing file", []string{"generate", filepath.Join(t.TempDir(), "missing.toml")}, apperr.ErrCodeFileNotFound},
		{"bad format", []string{"generate", path, "-f", "docx"}, apperr.ErrCodeInvalidFormat},
		{"repeat out of range", []string{"generate", path, "--repeat", "99"}, apperr.ErrCodeInvalidConfig},
		{"bad paper", []string{"generate", path, "--paper", "A0"}, apperr.ErrCodeInvalidConfig},
		{"bad output name", []string{"generate", path, "-o", filepath.Join(t.TempDir(), "sheet.txt")}, apperr.ErrCodeInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if !apperr.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestInspect(t *testing.T) {
	path := initWorksheet(t)
	if _, err := run(t, "inspect", path, "--per-page", "3"); err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if _, err := run(t, "inspect", path, "--lines", "0", "--per-page", "13"); !apperr.Is(err, apperr.ErrCodeInvalidConfig) {
		t.Errorf("inspect with 13 per page: error = %v, want INVALID_CONFIG", err)
	}
}

func TestCachePath(t *testing.T) {
	out, err := run(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), appName) {
		t.Errorf("cache path = %q, want suffix %q", out, appName)
	}
}

func TestCacheClear(t *testing.T) {
	if _, err := run(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
}

func TestCompletion(t *testing.T) {
	out, err := run(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion: %v", err)
	}
	if !strings.Contains(out, appName) {
		t.Error("bash completion should mention the program name")
	}
}

func TestOutputPaths(t *testing.T) {
	one := map[string][]byte{"html": nil}
	two := map[string][]byte{"html": nil, "pdf": nil}

	tests := []struct {
		name      string
		output    string
		artifacts map[string][]byte
		want      map[string]string
	}{
		{"from input", "", one, map[string]string{"html": "lists/animals.html"}},
		{"explicit file", "out/sheet.htm", one, map[string]string{"html": "out/sheet.htm"}},
		{"base without extension", "out/sheet", one, map[string]string{"html": "out/sheet.html"}},
		{"several formats", "out/sheet.html", two, map[string]string{"html": "out/sheet.html", "pdf": "out/sheet.pdf"}},
		{"several from input", "", two, map[string]string{"html": "lists/animals.html", "pdf": "lists/animals.pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.output, "lists/animals.toml", tt.artifacts)
			for format, want := range tt.want {
				if got[format] != want {
					t.Errorf("%s path = %q, want %q", format, got[format], want)
				}
			}
		})
	}
}

func TestOutputPathsAvoidInput(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   string
	}{
		{"derived from input", "", "lists/words.worksheet.json"},
		{"base equal to input", "lists/words", "lists/words.worksheet.json"},
		{"unrelated base", "out/words", "out/words.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.output, "lists/words.json", map[string][]byte{"json": nil, "html": nil})
			if got["json"] != tt.want {
				t.Errorf("json path = %q, want %q", got["json"], tt.want)
			}
		})
	}
}

func TestGenerateKeepsInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.json")
	if _, err := run(t, "init", path); err != nil {
		t.Fatalf("init: %v", err)
	}
	before := readFile(t, path)

	if _, err := run(t, "generate", path, "-f", "json"); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if readFile(t, path) != before {
		t.Error("generate overwrote the input worksheet")
	}
	export := strings.TrimSuffix(path, ".json") + ".worksheet.json"
	if !strings.Contains(readFile(t, export), `"pages"`) {
		t.Errorf("%s missing pages", export)
	}

	if _, err := run(t, "generate", path, "-f", "json", "-o", path); !apperr.Is(err, apperr.ErrCodeInvalidPath) {
		t.Errorf("explicit -o onto input: error = %v, want INVALID_PATH", err)
	}
	if readFile(t, path) != before {
		t.Error("explicit -o overwrote the input worksheet")
	}
}
