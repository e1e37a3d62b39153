package sink

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/tichlinh-png/trace-worksheet/pkg/imageref"
	"github.com/tichlinh-png/trace-worksheet/pkg/render/styles"
	"github.com/tichlinh-png/trace-worksheet/pkg/worksheet"
)

func generate(t *testing.T, entries []worksheet.Entry, cfg worksheet.Config) worksheet.Document {
	t.Helper()
	doc, err := worksheet.Generate(entries, cfg.WithDefaults())
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	return doc
}

func parseHTML(t *testing.T, data []byte) *html.Node {
	t.Helper()
	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("html.Parse error: %v", err)
	}
	return root
}

func query(root *html.Node, sel string) []*html.Node {
	return cascadia.MustCompile(sel).MatchAll(root)
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func testLogo(t *testing.T) *imageref.Ref {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 3, 3))); err != nil {
		t.Fatal(err)
	}
	ref, err := imageref.FromBytes(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	return ref
}

func TestRenderHTMLStructure(t *testing.T) {
	doc := generate(t, worksheet.DefaultEntries(), worksheet.Config{InstitutionName: "Sunrise School"})

	data, err := RenderHTML(doc)
	if err != nil {
		t.Fatalf("RenderHTML error: %v", err)
	}
	root := parseHTML(t, data)

	pages := query(root, "section.page")
	if len(pages) != 2 {
		t.Fatalf("pages = %d, want 2", len(pages))
	}
	if n := len(query(pages[0], "header.page-header")); n != 1 {
		t.Errorf("first page headers = %d, want 1", n)
	}
	if n := len(query(pages[1], "header.page-header")); n != 0 {
		t.Errorf("second page headers = %d, want 0", n)
	}

	if got := text(query(root, ".school-name")[0]); got != "Sunrise School" {
		t.Errorf("school name = %q", got)
	}
	if got := strings.TrimSpace(text(query(root, ".logo-section")[0])); got != "Logo" {
		t.Errorf("logo placeholder = %q", got)
	}

	fields := query(root, ".header-field .field-label")
	if len(fields) != 4 || text(fields[3]) != "Teacher:" {
		t.Errorf("header fields = %d", len(fields))
	}

	blocks := query(root, ".word-block")
	if len(blocks) != 4 {
		t.Fatalf("blocks = %d, want 4", len(blocks))
	}
	lines := query(blocks[0], ".trace-line")
	if len(lines) != worksheet.DefaultLineCount {
		t.Errorf("lines = %d, want %d", len(lines), worksheet.DefaultLineCount)
	}
	if got := text(lines[0]); strings.Count(got, "Cats") != worksheet.DefaultRepeatCount {
		t.Errorf("line = %q", got)
	}
	if got := text(query(blocks[1], ".emoji-placeholder")[0]); got != "🦆" {
		t.Errorf("glyph = %q", got)
	}

	if got := text(query(root, "title")[0]); got != worksheet.DefaultTitle {
		t.Errorf("title = %q", got)
	}
	if got := text(query(root, ".print-button")[0]); got != DefaultPrintButtonLabel {
		t.Errorf("button label = %q", got)
	}
	if n := len(query(root, "script")); n != 0 {
		t.Errorf("scripts = %d, want 0 without auto-print", n)
	}
}

func TestRenderHTMLEscapesText(t *testing.T) {
	payload := `<script>alert("x")</script>`
	doc := generate(t, []worksheet.Entry{
		{ID: 1, Text: payload, Emoji: `<img src=x onerror=alert(1)>`},
	}, worksheet.Config{InstitutionName: `"><b>School</b>`, Title: "</title><script>1</script>"})

	data, err := RenderHTML(doc)
	if err != nil {
		t.Fatalf("RenderHTML error: %v", err)
	}
	root := parseHTML(t, data)

	if n := len(query(root, "script")); n != 0 {
		t.Fatalf("injected script elements = %d", n)
	}
	if n := len(query(root, "b")); n != 0 {
		t.Errorf("injected markup in institution name")
	}
	if n := len(query(root, "img")); n != 0 {
		t.Errorf("injected img = %d", n)
	}

	line := text(query(root, ".trace-line")[0])
	if !strings.HasPrefix(line, payload) {
		t.Errorf("payload not preserved as text: %q", line)
	}
	if got := text(query(root, ".emoji-placeholder")[0]); got != `<img src=x onerror=alert(1)>` {
		t.Errorf("glyph text = %q", got)
	}
}

func TestRenderHTMLImages(t *testing.T) {
	logo := testLogo(t)
	doc := generate(t, []worksheet.Entry{
		{ID: 1, Text: "Cats", Emoji: "🐱", Image: logo},
		{ID: 2, Text: "Ducks", Emoji: "🦆"},
	}, worksheet.Config{InstitutionLogo: logo})

	data, err := RenderHTML(doc)
	if err != nil {
		t.Fatal(err)
	}
	root := parseHTML(t, data)

	imgs := query(root, "img.worksheet-image")
	if len(imgs) != 1 {
		t.Fatalf("worksheet images = %d, want 1", len(imgs))
	}
	if got := attr(imgs[0], "src"); got != logo.URI() {
		t.Errorf("src = %.40s, want data URI", got)
	}
	if got := attr(imgs[0], "alt"); got != "Cats" {
		t.Errorf("alt = %q", got)
	}
	if n := len(query(root, ".emoji-placeholder")); n != 1 {
		t.Errorf("glyph placeholders = %d, want 1", n)
	}
	if n := len(query(root, ".logo-section.has-logo img")); n != 1 {
		t.Errorf("logo images = %d, want 1", n)
	}
}

func TestRenderHTMLEmpty(t *testing.T) {
	doc := generate(t, nil, worksheet.Config{})

	data, err := RenderHTML(doc)
	if err != nil {
		t.Fatal(err)
	}
	root := parseHTML(t, data)

	if n := len(query(root, "main.worksheets")); n != 1 {
		t.Fatalf("containers = %d, want 1", n)
	}
	if n := len(query(root, "section.page")); n != 0 {
		t.Errorf("pages = %d, want 0", n)
	}
	notice := query(root, "main.worksheets > p.empty-notice")
	if len(notice) != 1 || text(notice[0]) != EmptyNotice {
		t.Errorf("empty notice = %d nodes, want 1 with %q", len(notice), EmptyNotice)
	}
}

func TestRenderHTMLOptions(t *testing.T) {
	doc := generate(t, worksheet.DefaultEntries(), worksheet.Config{EntriesPerPage: 4})

	data, err := RenderHTML(doc, WithAutoPrint(), WithPrintButton(""), WithPaper(styles.Letter), WithLang("vi"))
	if err != nil {
		t.Fatal(err)
	}
	root := parseHTML(t, data)

	if n := len(query(root, ".print-button")); n != 0 {
		t.Error("print button should be removed")
	}
	if n := len(query(root, ".empty-notice")); n != 0 {
		t.Error("empty notice shown for a non-empty document")
	}
	scripts := query(root, "script")
	if len(scripts) != 1 || !strings.Contains(text(scripts[0]), "window.print()") {
		t.Error("auto-print script missing")
	}
	if got := attr(query(root, "html")[0], "lang"); got != "vi" {
		t.Errorf("lang = %q", got)
	}

	css := text(query(root, "style")[0])
	if !strings.Contains(css, "letter portrait") {
		t.Error("paper size not applied")
	}
	if !strings.Contains(css, "font-size: 12pt") {
		t.Error("dense tier not applied for four per page")
	}
}

func TestRenderHTMLIsDeterministic(t *testing.T) {
	doc := generate(t, worksheet.DefaultEntries(), worksheet.Config{})
	a, err := RenderHTML(doc)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := RenderHTML(doc)
	if !bytes.Equal(a, b) {
		t.Error("rendering the same document twice differs")
	}
}
