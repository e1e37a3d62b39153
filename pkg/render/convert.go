package render

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	apperr "github.com/tichlinh-png/trace-worksheet/pkg/errors"
)

const pdfConverter = "wkhtmltopdf"

// ToPDF converts HTML bytes to PDF using wkhtmltopdf. paper is a page size
// name such as "A4" or "letter".
// Requires wkhtmltopdf: brew install wkhtmltopdf (macOS), apt install wkhtmltopdf (Linux).
func ToPDF(ctx context.Context, html []byte, paper string) ([]byte, error) {
	if !PDFAvailable() {
		return nil, apperr.New(apperr.ErrCodeUnsupported, "pdf export requires %s. Install with:\n  macOS:  brew install wkhtmltopdf\n  Linux:  apt install wkhtmltopdf", pdfConverter)
	}

	if paper != "" {
		paper = strings.ToUpper(paper[:1]) + paper[1:]
	}
	args := []string{
		"--quiet",
		"--encoding", "utf-8",
		"--print-media-type",
		"--page-size", paper,
		"--margin-top", "0", "--margin-bottom", "0",
		"--margin-left", "0", "--margin-right", "0",
		"-", "-",
	}
	cmd := exec.CommandContext(ctx, pdfConverter, args...)
	cmd.Stdin = bytes.NewReader(html)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInternal, err, "%s: %s", pdfConverter, bytes.TrimSpace(errBuf.Bytes()))
	}
	return out.Bytes(), nil
}

// PDFAvailable reports whether the PDF converter is on PATH.
func PDFAvailable() bool {
	_, err := exec.LookPath(pdfConverter)
	return err == nil
}
