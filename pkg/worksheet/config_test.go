package worksheet

import (
	"testing"

	apperr "github.com/tichlinh-png/trace-worksheet/pkg/errors"
)

func TestWithDefaults(t *testing.T) {
	c := Config{}.WithDefaults()
	if c.EntriesPerPage != 2 || c.RepeatCount != 12 || c.LineCount != 4 {
		t.Errorf("defaults = %d/%d/%d, want 2/12/4", c.EntriesPerPage, c.RepeatCount, c.LineCount)
	}
	if c.Title != DefaultTitle {
		t.Errorf("Title = %q", c.Title)
	}

	c = Config{EntriesPerPage: 3, RepeatCount: -5, Title: "Farm"}.WithDefaults()
	if c.EntriesPerPage != 3 {
		t.Errorf("explicit value overwritten: %d", c.EntriesPerPage)
	}
	if c.RepeatCount != -5 {
		t.Errorf("negative value should survive defaults, got %d", c.RepeatCount)
	}
	if c.Title != "Farm" {
		t.Errorf("Title = %q", c.Title)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", DefaultConfig(), false},
		{"minimums", Config{EntriesPerPage: 1, RepeatCount: 1, LineCount: 1}, false},
		{"maximums", Config{EntriesPerPage: MaxEntriesPerPage, RepeatCount: MaxRepeatCount, LineCount: MaxLineCount}, false},
		{"unset", Config{}, true},
		{"per page too big", Config{EntriesPerPage: 13, RepeatCount: 1, LineCount: 1}, true},
		{"repeat too big", Config{EntriesPerPage: 1, RepeatCount: 65, LineCount: 1}, true},
		{"negative lines", Config{EntriesPerPage: 1, RepeatCount: 1, LineCount: -2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !apperr.Is(err, apperr.ErrCodeInvalidConfig) {
				t.Errorf("code = %v", apperr.GetCode(err))
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	cfg := DefaultConfig()
	doc, err := Generate(numbered(5), cfg)
	if err != nil {
		t.Fatal(err)
	}
	s := Summarize(doc)
	want := Stats{Entries: 5, Pages: 3, EntriesPerPage: 2, Sheets: 2, TracesPerEntry: 48, TotalTraces: 240}
	if s != want {
		t.Errorf("Summarize = %+v, want %+v", s, want)
	}

	if s := Summarize(Document{Config: cfg}); s.Pages != 0 || s.Sheets != 0 || s.TotalTraces != 0 {
		t.Errorf("empty summary = %+v", s)
	}
}
