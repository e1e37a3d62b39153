package sink

import (
	"bytes"
	"embed"
	"html/template"

	apperr "github.com/tichlinh-png/trace-worksheet/pkg/errors"
	"github.com/tichlinh-png/trace-worksheet/pkg/imageref"
	"github.com/tichlinh-png/trace-worksheet/pkg/render/styles"
	"github.com/tichlinh-png/trace-worksheet/pkg/worksheet"
)

// DefaultPrintButtonLabel is the label of the on-screen print button.
const DefaultPrintButtonLabel = "🖨️ In / Lưu PDF"

// EmptyNotice is shown on screen in place of pages when no entry has text.
const EmptyNotice = "No words to trace yet. Add a word to build a worksheet."

//go:embed templates/worksheet.gohtml
var templateFS embed.FS

var worksheetTemplate = template.Must(template.ParseFS(templateFS, "templates/worksheet.gohtml"))

// HTMLOption configures HTML rendering via [RenderHTML].
type HTMLOption func(*htmlRenderer)

type htmlRenderer struct {
	autoPrint   bool
	printButton bool
	buttonLabel string
	paper       styles.Paper
	lang        string
}

// WithAutoPrint opens the browser print dialog as soon as the page loads.
func WithAutoPrint() HTMLOption { return func(r *htmlRenderer) { r.autoPrint = true } }

// WithPrintButton sets the on-screen print button label. An empty label
// removes the button.
func WithPrintButton(label string) HTMLOption {
	return func(r *htmlRenderer) { r.printButton = label != ""; r.buttonLabel = label }
}

// WithPaper sets the printed page size.
func WithPaper(p styles.Paper) HTMLOption { return func(r *htmlRenderer) { r.paper = p } }

// WithLang sets the document language attribute.
func WithLang(lang string) HTMLOption { return func(r *htmlRenderer) { r.lang = lang } }

type htmlDoc struct {
	Lang             string
	Title            string
	CSS              template.CSS
	PrintButton      bool
	PrintButtonLabel string
	AutoPrint        bool
	EmptyNotice      string
	Pages            []htmlPage
}

type htmlPage struct {
	Number int
	Header *htmlHeader
	Blocks []htmlBlock
}

type htmlHeader struct {
	InstitutionName string
	LogoSrc         template.URL
	Placeholder     string
	Fields          []worksheet.HeaderField
}

type htmlBlock struct {
	EntryID  int
	Text     string
	ImageSrc template.URL
	Glyph    string
	Lines    []worksheet.TraceLine
}

// RenderHTML serializes doc as a self-contained printable HTML document.
// Every piece of user text is escaped by html/template; image sources only
// ever come from validated raster data URIs.
func RenderHTML(doc worksheet.Document, opts ...HTMLOption) ([]byte, error) {
	r := htmlRenderer{
		printButton: true,
		buttonLabel: DefaultPrintButtonLabel,
		paper:       styles.DefaultPaper,
		lang:        "en",
	}
	for _, opt := range opts {
		opt(&r)
	}

	title := doc.Config.Title
	if title == "" {
		title = worksheet.DefaultTitle
	}
	tier := styles.ForEntriesPerPage(doc.Config.EntriesPerPage)

	data := htmlDoc{
		Lang:             r.lang,
		Title:            title,
		CSS:              template.CSS(tier.Stylesheet(r.paper).String()),
		PrintButton:      r.printButton,
		PrintButtonLabel: r.buttonLabel,
		AutoPrint:        r.autoPrint,
		Pages:            make([]htmlPage, len(doc.Pages)),
	}
	if doc.IsEmpty() {
		data.EmptyNotice = EmptyNotice
	}
	for i, p := range doc.Pages {
		data.Pages[i] = buildHTMLPage(p)
	}

	var buf bytes.Buffer
	if err := worksheetTemplate.Execute(&buf, data); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInternal, err, "render html")
	}
	return buf.Bytes(), nil
}

func buildHTMLPage(p worksheet.Page) htmlPage {
	out := htmlPage{Number: p.Index + 1, Blocks: make([]htmlBlock, len(p.Blocks))}
	if h := p.Header; h != nil {
		out.Header = &htmlHeader{
			InstitutionName: h.InstitutionName,
			LogoSrc:         imageSrc(h.Logo),
			Placeholder:     h.LogoPlaceholder,
			Fields:          h.Fields,
		}
	}
	for i, b := range p.Blocks {
		hb := htmlBlock{EntryID: b.EntryID, Text: b.Text, Lines: b.Lines}
		if b.Visual.IsImage() {
			hb.ImageSrc = imageSrc(b.Visual.Image)
		} else {
			hb.Glyph = b.Visual.Glyph
		}
		out.Blocks[i] = hb
	}
	return out
}

// imageSrc marks a validated data URI as safe for a src attribute.
// Anything that is not a raster data URI is dropped.
func imageSrc(ref *imageref.Ref) template.URL {
	if ref == nil || !imageref.IsDataURI(ref.URI()) {
		return ""
	}
	return template.URL(ref.URI())
}
