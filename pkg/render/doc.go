// Package render turns worksheet documents into printable output.
//
// # Overview
//
// Rendering is split into two subpackages plus a format converter:
//
//   - [styles]: size tiers and the print stylesheet
//   - [sink]: output formats (HTML, JSON, PDF)
//
// # Format Conversion
//
// [ToPDF] converts a rendered HTML page to PDF with the external wkhtmltopdf
// tool. [PDFAvailable] lets callers check for it up front.
//
//	html, _ := sink.RenderHTML(doc)
//	pdf, err := render.ToPDF(ctx, html, "A4")
//
// [styles]: github.com/tichlinh-png/trace-worksheet/pkg/render/styles
// [sink]: github.com/tichlinh-png/trace-worksheet/pkg/render/sink
package render
