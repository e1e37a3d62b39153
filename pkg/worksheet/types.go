package worksheet

import (
	"strings"

	"github.com/tichlinh-png/trace-worksheet/pkg/imageref"
)

// Entry is one vocabulary item to practice.
type Entry struct {
	ID    int           `json:"id"`              // Identity within a word list
	Text  string        `json:"text"`            // Word to trace, repeated as typed
	Emoji string        `json:"emoji,omitempty"` // Glyph shown when there is no image
	Image *imageref.Ref `json:"image,omitempty"` // Optional picture, already validated
}

// HasImage reports whether the entry carries image data.
func (e Entry) HasImage() bool { return e.Image != nil }

// IsBlank reports whether the entry text is empty or whitespace only.
func (e Entry) IsBlank() bool { return strings.TrimSpace(e.Text) == "" }

// VisualKind distinguishes the two ways a block can be illustrated.
type VisualKind int

const (
	// VisualGlyph shows the entry emoji as a colorable outline.
	VisualGlyph VisualKind = iota
	// VisualImage shows the entry picture.
	VisualImage
)

// String returns "glyph" or "image".
func (k VisualKind) String() string {
	if k == VisualImage {
		return "image"
	}
	return "glyph"
}

// Visual is the illustration above a block's trace lines.
type Visual struct {
	Kind  VisualKind
	Glyph string        // set when Kind == VisualGlyph
	Image *imageref.Ref // set when Kind == VisualImage
}

// IsImage reports whether the visual is a picture.
func (v Visual) IsImage() bool { return v.Kind == VisualImage }

// TraceLine is one row of repeated word text.
type TraceLine string

// Block is the rendered unit for one entry: a visual and its trace lines.
type Block struct {
	EntryID int
	Text    string
	Visual  Visual
	Lines   []TraceLine
}

// HeaderField is one label + blank-line pair in the identification header.
type HeaderField struct {
	Label string
	Blank string
}

// Header identifies the student and institution on the first page.
type Header struct {
	InstitutionName string        // empty when not configured
	Logo            *imageref.Ref // nil renders the logo placeholder
	LogoPlaceholder string
	Fields          []HeaderField
}

// HasLogo reports whether a logo image is attached.
func (h Header) HasLogo() bool { return h.Logo != nil }

// Page is one printed page.
type Page struct {
	Index  int
	Header *Header // non-nil on the first page of a non-empty document only
	Blocks []Block
}

// IsFirst reports whether p is the first page of its document.
func (p Page) IsFirst() bool { return p.Index == 0 }

// Document is the full paginated worksheet.
type Document struct {
	Pages  []Page
	Config Config // the snapshot the document was generated from
}

// IsEmpty reports whether the document has no pages.
func (d Document) IsEmpty() bool { return len(d.Pages) == 0 }

// BlockCount returns the number of blocks over all pages.
func (d Document) BlockCount() int {
	n := 0
	for _, p := range d.Pages {
		n += len(p.Blocks)
	}
	return n
}
