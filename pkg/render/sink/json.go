package sink

import (
	"encoding/json"

	"github.com/tichlinh-png/trace-worksheet/pkg/imageref"
	"github.com/tichlinh-png/trace-worksheet/pkg/worksheet"
)

type jsonOutput struct {
	Title          string          `json:"title"`
	EntriesPerPage int             `json:"entries_per_page"`
	RepeatCount    int             `json:"repeat_count"`
	LineCount      int             `json:"line_count"`
	Pages          []jsonPage      `json:"pages"`
	Stats          worksheet.Stats `json:"stats"`
	Header         *jsonHeader     `json:"header,omitempty"`
	Images         []jsonImage     `json:"images,omitempty"`
	Generator      string          `json:"generator,omitempty"`
}

type jsonPage struct {
	Index  int         `json:"index"`
	Blocks []jsonBlock `json:"blocks"`
}

type jsonBlock struct {
	EntryID int      `json:"entry_id"`
	Text    string   `json:"text"`
	Visual  string   `json:"visual"`
	Glyph   string   `json:"glyph,omitempty"`
	Image   string   `json:"image,omitempty"` // hash into Images
	Lines   []string `json:"lines"`
}

type jsonHeader struct {
	InstitutionName string   `json:"institution_name,omitempty"`
	Logo            string   `json:"logo,omitempty"` // hash into Images
	Fields          []string `json:"fields"`
}

type jsonImage struct {
	Hash   string `json:"hash"`
	MIME   string `json:"mime"`
	Size   int    `json:"size"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	generator string
}

// WithJSONGenerator records the producing program in the output.
func WithJSONGenerator(name string) JSONOption {
	return func(r *jsonRenderer) { r.generator = name }
}

// RenderJSON exports the document structure as indented JSON. Image payloads
// are not embedded; each image is listed once by hash with its MIME type,
// byte size and dimensions.
func RenderJSON(doc worksheet.Document, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Title:          doc.Config.Title,
		EntriesPerPage: doc.Config.EntriesPerPage,
		RepeatCount:    doc.Config.RepeatCount,
		LineCount:      doc.Config.LineCount,
		Pages:          make([]jsonPage, len(doc.Pages)),
		Stats:          worksheet.Summarize(doc),
		Generator:      r.generator,
	}

	seen := make(map[string]bool)
	addImage := func(ref *imageref.Ref) string {
		if ref == nil {
			return ""
		}
		h := ref.Hash()
		if !seen[h] {
			seen[h] = true
			out.Images = append(out.Images, jsonImage{
				Hash: h, MIME: ref.MIME(), Size: ref.Size(), Width: ref.Width(), Height: ref.Height(),
			})
		}
		return h
	}

	for i, p := range doc.Pages {
		if p.Header != nil {
			out.Header = buildJSONHeader(*p.Header, addImage)
		}
		jp := jsonPage{Index: p.Index, Blocks: make([]jsonBlock, len(p.Blocks))}
		for j, b := range p.Blocks {
			jb := jsonBlock{
				EntryID: b.EntryID,
				Text:    b.Text,
				Visual:  b.Visual.Kind.String(),
				Lines:   make([]string, len(b.Lines)),
			}
			if b.Visual.IsImage() {
				jb.Image = addImage(b.Visual.Image)
			} else {
				jb.Glyph = b.Visual.Glyph
			}
			for k, l := range b.Lines {
				jb.Lines[k] = string(l)
			}
			jp.Blocks[j] = jb
		}
		out.Pages[i] = jp
	}

	return json.MarshalIndent(out, "", "  ")
}

func buildJSONHeader(h worksheet.Header, addImage func(*imageref.Ref) string) *jsonHeader {
	jh := &jsonHeader{
		InstitutionName: h.InstitutionName,
		Logo:            addImage(h.Logo),
		Fields:          make([]string, len(h.Fields)),
	}
	for i, f := range h.Fields {
		jh.Fields[i] = f.Label
	}
	return jh
}
