// Package pipeline runs worksheet generation and rendering for every entry
// point (CLI, HTTP server, editor preview).
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Generate: filter, paginate and lay out the word list ([worksheet.Generate])
//  2. Render: serialize the document to each requested format (HTML, JSON, PDF)
//
// Generation is cheap and always runs. Rendered artifacts are cached by a
// content hash of the inputs and the render options, so regenerating an
// unchanged worksheet file returns the stored bytes.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, entries, cfg, pipeline.Options{
//	    Formats:   []string{pipeline.FormatHTML, pipeline.FormatJSON},
//	    AutoPrint: true,
//	})
//	if err != nil {
//	    return err
//	}
//	html := result.Artifacts[pipeline.FormatHTML]
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tichlinh-png/trace-worksheet/pkg/buildinfo"
	"github.com/tichlinh-png/trace-worksheet/pkg/cache"
	apperr "github.com/tichlinh-png/trace-worksheet/pkg/errors"
	"github.com/tichlinh-png/trace-worksheet/pkg/render/sink"
	"github.com/tichlinh-png/trace-worksheet/pkg/render/styles"
	"github.com/tichlinh-png/trace-worksheet/pkg/worksheet"
)

// Format constants for output formats.
const (
	FormatHTML = "html"
	FormatJSON = "json"
	FormatPDF  = "pdf"
)

// DefaultFilename is the base name of generated files, without extension.
const DefaultFilename = "tracing-worksheets"

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatHTML: true,
	FormatJSON: true,
	FormatPDF:  true,
}

// ContentTypes maps output formats to their MIME type.
var ContentTypes = map[string]string{
	FormatHTML: "text/html; charset=utf-8",
	FormatJSON: "application/json",
	FormatPDF:  "application/pdf",
}

// =============================================================================
// Options - Render Configuration
// =============================================================================

// Options configures rendering. The zero value renders HTML with the default
// print button on A4 paper.
type Options struct {
	Formats          []string `json:"formats,omitempty"`
	AutoPrint        bool     `json:"auto_print,omitempty"`
	NoPrintButton    bool     `json:"no_print_button,omitempty"`
	PrintButtonLabel string   `json:"print_button_label,omitempty"`
	Paper            string   `json:"paper,omitempty"`
	Refresh          bool     `json:"refresh,omitempty"` // bypass cached artifacts

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the generated worksheet.
	Document worksheet.Document

	// InputHash is the content hash of the entries and config.
	InputHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats summarizes the document.
	Stats worksheet.Stats

	// Timing records how long each stage took.
	Timing Timing

	// CacheInfo tracks whether artifacts came from the cache.
	CacheInfo CacheInfo
}

// Timing contains stage durations.
type Timing struct {
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return apperr.New(apperr.ErrCodeInvalidFormat, "invalid format: %q (must be one of: html, json, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, dropping blanks and
// duplicates.
func ParseFormats(s string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		seen[f] = true
		out = append(out, f)
	}
	return out, nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatHTML}
	}
	if o.PrintButtonLabel == "" {
		o.PrintButtonLabel = sink.DefaultPrintButtonLabel
	}
	if o.Paper == "" {
		o.Paper = styles.DefaultPaper.Name
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if _, err := styles.ParsePaper(o.Paper); err != nil {
		return err
	}
	return apperr.ValidateText("print button label", o.PrintButtonLabel)
}

// HTMLOptions returns the sink options for HTML output.
func (o *Options) HTMLOptions() []sink.HTMLOption {
	paper, _ := styles.ParsePaper(o.Paper)
	opts := []sink.HTMLOption{sink.WithPaper(paper)}
	if o.NoPrintButton {
		opts = append(opts, sink.WithPrintButton(""))
	} else {
		opts = append(opts, sink.WithPrintButton(o.PrintButtonLabel))
	}
	if o.AutoPrint {
		opts = append(opts, sink.WithAutoPrint())
	}
	return opts
}

// ArtifactKeyOpts returns cache key options for artifact rendering. Keys
// include the build version and commit, so templates and stylesheets from an
// older build are never served after an upgrade.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:  format,
		Paper:   o.Paper,
		Version: buildinfo.Version + "+" + buildinfo.Commit,
	}
	if format == FormatHTML {
		opts.AutoPrint = o.AutoPrint
		if !o.NoPrintButton {
			opts.PrintButton = o.PrintButtonLabel
		}
	}
	return opts
}

// Filename returns the default output file name for format.
func Filename(format string) string {
	return DefaultFilename + "." + format
}
