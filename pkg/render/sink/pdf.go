package sink

import (
	"context"

	"github.com/tichlinh-png/trace-worksheet/pkg/render"
	"github.com/tichlinh-png/trace-worksheet/pkg/render/styles"
	"github.com/tichlinh-png/trace-worksheet/pkg/worksheet"
)

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	htmlOpts []HTMLOption
}

// WithPDFHTMLOptions passes options through to the underlying HTML renderer.
func WithPDFHTMLOptions(opts ...HTMLOption) PDFOption {
	return func(r *pdfRenderer) { r.htmlOpts = opts }
}

// RenderPDF renders the document as PDF via HTML conversion.
// The print button and auto-print script are left out of the PDF.
// Requires wkhtmltopdf: brew install wkhtmltopdf (macOS), apt install wkhtmltopdf (Linux).
func RenderPDF(ctx context.Context, doc worksheet.Document, opts ...PDFOption) ([]byte, error) {
	r := pdfRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	htmlOpts := append([]HTMLOption{}, r.htmlOpts...)
	htmlOpts = append(htmlOpts, WithPrintButton(""), withoutAutoPrint())
	cfg := htmlRenderer{paper: styles.DefaultPaper}
	for _, opt := range htmlOpts {
		opt(&cfg)
	}

	html, err := RenderHTML(doc, htmlOpts...)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, html, cfg.paper.Name)
}

func withoutAutoPrint() HTMLOption { return func(r *htmlRenderer) { r.autoPrint = false } }
