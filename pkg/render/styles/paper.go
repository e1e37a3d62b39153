package styles

import (
	"strings"

	apperr "github.com/tichlinh-png/trace-worksheet/pkg/errors"
)

// Paper is a printable page size.
type Paper struct {
	Name   string  // CSS page size keyword
	Width  float64 // in mm
	Height float64 // in mm
}

var (
	A4     = Paper{Name: "A4", Width: 210, Height: 297}
	Letter = Paper{Name: "letter", Width: 215.9, Height: 279.4}
)

// DefaultPaper is used when no paper is configured.
var DefaultPaper = A4

// PaperNames lists the accepted values for [ParsePaper].
var PaperNames = []string{"a4", "letter"}

// ParsePaper resolves a paper name, case-insensitively. Empty selects A4.
func ParsePaper(name string) (Paper, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "a4":
		return A4, nil
	case "letter":
		return Letter, nil
	}
	return Paper{}, apperr.New(apperr.ErrCodeInvalidConfig, "unknown paper size %q (want one of %s)", name, strings.Join(PaperNames, ", "))
}
