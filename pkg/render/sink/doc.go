// Package sink serializes worksheet documents into output formats.
//
// # Overview
//
// A "sink" transforms a generated [worksheet.Document] into bytes:
//
//   - HTML: self-contained, print-ready page (the primary output)
//   - JSON: structural export for tooling and previews
//   - PDF: HTML converted by wkhtmltopdf
//
// # HTML Output
//
// [RenderHTML] executes an embedded html/template, so word text, emoji glyphs,
// the institution name and the title are all escaped for the context they
// land in. Image sources come only from [imageref.Ref] values, which are
// validated raster data URIs; nothing else can reach a src attribute.
//
//	html, err := sink.RenderHTML(doc,
//	    sink.WithAutoPrint(),
//	    sink.WithPrintButton("Print"),
//	    sink.WithPaper(styles.Letter),
//	)
//
// An empty document still renders a valid HTML page with an empty
// main container.
//
// # JSON Output
//
// [RenderJSON] mirrors pages, blocks and trace lines. Images are listed by
// hash with MIME type and size instead of their payload.
//
// # PDF Output
//
// [RenderPDF] requires the external wkhtmltopdf tool. The on-screen print
// button is omitted from PDFs.
package sink
