package sink

import (
	"bytes"
	"context"
	"testing"

	"github.com/tichlinh-png/trace-worksheet/pkg/render"
	"github.com/tichlinh-png/trace-worksheet/pkg/worksheet"
)

func TestRenderPDF(t *testing.T) {
	if !render.PDFAvailable() {
		t.Skip("wkhtmltopdf not installed")
	}
	doc := generate(t, worksheet.DefaultEntries(), worksheet.Config{})

	data, err := RenderPDF(context.Background(), doc, WithPDFHTMLOptions(WithAutoPrint()))
	if err != nil {
		t.Fatalf("RenderPDF error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output is not a PDF: %q", data[:min(8, len(data))])
	}
}
