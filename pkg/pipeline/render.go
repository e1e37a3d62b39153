package pipeline

import (
	"context"

	"github.com/tichlinh-png/trace-worksheet/pkg/buildinfo"
	"github.com/tichlinh-png/trace-worksheet/pkg/render/sink"
	"github.com/tichlinh-png/trace-worksheet/pkg/worksheet"
)

// RenderFormats renders doc into every format in opts.Formats without
// caching. opts must have been validated.
func RenderFormats(ctx context.Context, doc worksheet.Document, opts Options) (map[string][]byte, error) {
	out := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := RenderFormat(ctx, doc, format, opts)
		if err != nil {
			return nil, err
		}
		out[format] = data
	}
	return out, nil
}

// RenderFormat renders doc into one format.
func RenderFormat(ctx context.Context, doc worksheet.Document, format string, opts Options) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	switch format {
	case FormatJSON:
		return sink.RenderJSON(doc, sink.WithJSONGenerator(buildinfo.Generator()))
	case FormatPDF:
		return sink.RenderPDF(ctx, doc, sink.WithPDFHTMLOptions(opts.HTMLOptions()...))
	default:
		return sink.RenderHTML(doc, opts.HTMLOptions()...)
	}
}
