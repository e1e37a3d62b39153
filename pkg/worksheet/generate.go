package worksheet

import (
	"strings"

	apperr "github.com/tichlinh-png/trace-worksheet/pkg/errors"
)

// Header field labels, in print order.
var headerLabels = []string{"Name", "Class", "Date", "Teacher"}

const (
	// BlankLine is the write-in line printed after each header label.
	BlankLine = "___________________"

	// LogoPlaceholder is shown in the logo box when no logo is configured.
	LogoPlaceholder = "Logo"
)

// FilterEntries returns the entries whose text is not blank, in input order.
// The input slice is not modified.
func FilterEntries(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if !e.IsBlank() {
			out = append(out, e)
		}
	}
	return out
}

// Paginate splits entries into consecutive groups of size, preserving order.
// Every group holds exactly size entries except possibly the last.
// A size below 1 is a configuration error.
func Paginate(entries []Entry, size int) ([][]Entry, error) {
	if size < 1 {
		return nil, apperr.New(apperr.ErrCodeInvalidConfig, "page size must be at least 1, got %d", size)
	}
	groups := make([][]Entry, 0, (len(entries)+size-1)/size)
	for start := 0; start < len(entries); start += size {
		end := min(start+size, len(entries))
		groups = append(groups, entries[start:end:end])
	}
	return groups, nil
}

// RenderVisual picks the illustration for an entry: its image when present,
// otherwise its emoji verbatim.
func RenderVisual(e Entry) Visual {
	if e.HasImage() {
		return Visual{Kind: VisualImage, Image: e.Image}
	}
	return Visual{Kind: VisualGlyph, Glyph: e.Emoji}
}

// ReplicateLines returns lines identical trace lines, each holding repeat
// copies of text joined by a single space. text is used as typed.
func ReplicateLines(text string, repeat, lines int) []TraceLine {
	if repeat < 1 || lines < 1 {
		return nil
	}
	words := make([]string, repeat)
	for i := range words {
		words[i] = text
	}
	line := TraceLine(strings.Join(words, " "))

	out := make([]TraceLine, lines)
	for i := range out {
		out[i] = line
	}
	return out
}

// ComposeHeader builds the first-page identification header.
func ComposeHeader(c Config) Header {
	fields := make([]HeaderField, len(headerLabels))
	for i, label := range headerLabels {
		fields[i] = HeaderField{Label: label, Blank: BlankLine}
	}
	return Header{
		InstitutionName: strings.TrimSpace(c.InstitutionName),
		Logo:            c.InstitutionLogo,
		LogoPlaceholder: LogoPlaceholder,
		Fields:          fields,
	}
}

// Generate builds the paginated worksheet for entries under config c.
//
// c must already have its defaults applied; out-of-range counts are rejected
// with an INVALID_CONFIG error and no partial document is returned. An input
// with no non-blank entries yields a document with zero pages.
func Generate(entries []Entry, c Config) (Document, error) {
	if err := c.Validate(); err != nil {
		return Document{}, err
	}

	groups, err := Paginate(FilterEntries(entries), c.EntriesPerPage)
	if err != nil {
		return Document{}, err
	}

	pages := make([]Page, len(groups))
	for i, group := range groups {
		blocks := make([]Block, len(group))
		for j, e := range group {
			blocks[j] = Block{
				EntryID: e.ID,
				Text:    e.Text,
				Visual:  RenderVisual(e),
				Lines:   ReplicateLines(e.Text, c.RepeatCount, c.LineCount),
			}
		}
		pages[i] = Page{Index: i, Blocks: blocks}
	}

	if len(pages) > 0 {
		h := ComposeHeader(c)
		pages[0].Header = &h
	}

	return Document{Pages: pages, Config: c}, nil
}
