package worksheet

import (
	"strings"

	apperr "github.com/tichlinh-png/trace-worksheet/pkg/errors"
	"github.com/tichlinh-png/trace-worksheet/pkg/imageref"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, server and file loader
// =============================================================================

const (
	// DefaultEntriesPerPage fits two large blocks on an A4 page.
	DefaultEntriesPerPage = 2

	// DefaultRepeatCount fills one line at the spacious tier's font size.
	DefaultRepeatCount = 12

	// DefaultLineCount is the number of trace lines per word.
	DefaultLineCount = 4

	// DefaultTitle is the document title when none is configured.
	DefaultTitle = "Tracing Worksheets"
)

// Accepted ranges. Values outside are configuration errors, never clamped.
const (
	MinEntriesPerPage = 1
	MaxEntriesPerPage = 12
	MinRepeatCount    = 1
	MaxRepeatCount    = 64
	MinLineCount      = 1
	MaxLineCount      = 20
)

// Config is the layout snapshot for one generation call.
//
// A zero field means "unset": [Config.WithDefaults] fills those at the input
// boundary. [Generate] itself rejects zero and negative counts.
type Config struct {
	EntriesPerPage  int           `json:"entries_per_page,omitempty"`
	RepeatCount     int           `json:"repeat_count,omitempty"`
	LineCount       int           `json:"line_count,omitempty"`
	InstitutionName string        `json:"institution_name,omitempty"`
	InstitutionLogo *imageref.Ref `json:"institution_logo,omitempty"`
	Title           string        `json:"title,omitempty"`
}

// DefaultConfig returns a config with every knob at its default.
func DefaultConfig() Config {
	return Config{}.WithDefaults()
}

// WithDefaults returns a copy of c with unset (zero) fields defaulted.
// Negative values are left alone so Validate can report them.
func (c Config) WithDefaults() Config {
	if c.EntriesPerPage == 0 {
		c.EntriesPerPage = DefaultEntriesPerPage
	}
	if c.RepeatCount == 0 {
		c.RepeatCount = DefaultRepeatCount
	}
	if c.LineCount == 0 {
		c.LineCount = DefaultLineCount
	}
	if strings.TrimSpace(c.Title) == "" {
		c.Title = DefaultTitle
	}
	return c
}

// Validate checks every count against its accepted range.
func (c Config) Validate() error {
	if err := checkRange("entries per page", c.EntriesPerPage, MinEntriesPerPage, MaxEntriesPerPage); err != nil {
		return err
	}
	if err := checkRange("repeat count", c.RepeatCount, MinRepeatCount, MaxRepeatCount); err != nil {
		return err
	}
	return checkRange("line count", c.LineCount, MinLineCount, MaxLineCount)
}

// TracesPerEntry is the number of times each word is traced.
func (c Config) TracesPerEntry() int {
	return c.RepeatCount * c.LineCount
}

func checkRange(name string, v, lo, hi int) error {
	if v < lo || v > hi {
		return apperr.New(apperr.ErrCodeInvalidConfig, "%s must be between %d and %d, got %d", name, lo, hi, v)
	}
	return nil
}
