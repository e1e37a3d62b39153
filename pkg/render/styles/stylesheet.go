package styles

import (
	"fmt"
	"strings"

	"github.com/aymerick/douceur/css"
)

const (
	traceColor   = "#e5e5e5"
	traceShadow  = "#d5d5d5"
	buttonColor  = "#2563eb"
	outlineColor = "#000"
)

// Stylesheet builds the full print stylesheet for t on the given paper.
func (t Tier) Stylesheet(p Paper) *css.Stylesheet {
	sheet := css.NewStylesheet()
	add := func(r *css.Rule) { sheet.Rules = append(sheet.Rules, r) }

	add(atRule("@page", "",
		decl("size", p.Name+" portrait"),
		decl("margin", fmt.Sprintf("%dmm", t.PageMargin)),
	))
	add(rule([]string{"*"},
		decl("box-sizing", "border-box"),
	))
	add(rule([]string{"body"},
		decl("margin", "0"),
		decl("padding", "0"),
		decl("font-family", "Arial, Helvetica, sans-serif"),
		decl("background", "#fff"),
	))
	add(rule([]string{".page"},
		decl("width", "100%"),
		decl("page-break-after", "always"),
		decl("break-after", "page"),
		decl("padding", fmt.Sprintf("%dmm", t.PageMargin/2)),
	))
	add(rule([]string{".page:last-child"},
		decl("page-break-after", "auto"),
		decl("break-after", "auto"),
	))
	add(rule([]string{".page-header"},
		decl("display", "grid"),
		decl("grid-template-columns", "80px 1fr"),
		decl("gap", "15px"),
		decl("align-items", "center"),
		decl("margin-bottom", "20px"),
		decl("padding-bottom", "10px"),
		decl("border-bottom", "2px solid #000"),
	))
	add(rule([]string{".logo-section"},
		decl("width", "80px"),
		decl("height", "80px"),
		decl("border", "2px dashed #999"),
		decl("display", "flex"),
		decl("align-items", "center"),
		decl("justify-content", "center"),
		decl("font-size", "12px"),
		decl("color", "#999"),
	))
	add(rule([]string{".logo-section img"},
		decl("max-width", "100%"),
		decl("max-height", "100%"),
		decl("object-fit", "contain"),
	))
	add(rule([]string{".logo-section.has-logo"},
		decl("border", "none"),
	))
	add(rule([]string{".school-name"},
		decl("text-align", "center"),
		decl("font-size", "18px"),
		decl("font-weight", "bold"),
		decl("margin-bottom", "8px"),
	))
	add(rule([]string{".header-info"},
		decl("display", "grid"),
		decl("grid-template-columns", "1fr 1fr"),
		decl("gap", "8px 20px"),
		decl("font-size", "14px"),
	))
	add(rule([]string{".header-field"},
		decl("white-space", "nowrap"),
	))
	add(rule([]string{".word-block"},
		decl("margin-bottom", fmt.Sprintf("%dpx", t.BlockGap)),
		decl("page-break-inside", "avoid"),
		decl("break-inside", "avoid"),
	))
	add(rule([]string{".image-container"},
		decl("display", "flex"),
		decl("justify-content", "center"),
		decl("align-items", "center"),
		decl("height", fmt.Sprintf("%dpx", t.ImageHeight)),
		decl("margin-bottom", "10px"),
	))
	add(rule([]string{".worksheet-image"},
		decl("height", fmt.Sprintf("%dpx", t.ImageHeight)),
		decl("width", "auto"),
		decl("max-width", "100%"),
		decl("object-fit", "contain"),
		decl("filter", "grayscale(100%) contrast(1.2)"),
		decl("border", "2px solid #000"),
	))
	add(rule([]string{".emoji-placeholder"},
		decl("font-size", fmt.Sprintf("%dpx", t.GlyphSize)),
		decl("line-height", "1"),
		decl("color", "white"),
		decl("-webkit-text-stroke", "3px "+outlineColor),
		decl("paint-order", "stroke fill"),
		decl("filter", "drop-shadow(0 0 1px "+outlineColor+")"),
	))
	add(rule([]string{".tracing-lines"},
		decl("display", "flex"),
		decl("flex-direction", "column"),
		decl("gap", "6px"),
	))
	add(rule([]string{".trace-line"},
		decl("font-size", fmt.Sprintf("%dpt", t.TraceFont)),
		decl("font-weight", "bold"),
		decl("letter-spacing", "1px"),
		decl("word-spacing", "0.3em"),
		decl("line-height", "1.7"),
		decl("color", traceColor),
		decl("text-shadow", "0 0 1px "+traceShadow),
		decl("white-space", "nowrap"),
		decl("overflow", "hidden"),
		decl("border-bottom", "1px dashed #ccc"),
	))
	add(rule([]string{".empty-notice"},
		decl("text-align", "center"),
		decl("color", "#666"),
		decl("margin-top", "40mm"),
	))
	add(rule([]string{".print-button"},
		decl("position", "fixed"),
		decl("top", "20px"),
		decl("right", "20px"),
		decl("padding", "12px 24px"),
		decl("background", buttonColor),
		decl("color", "white"),
		decl("border", "none"),
		decl("border-radius", "8px"),
		decl("font-size", "16px"),
		decl("cursor", "pointer"),
		decl("box-shadow", "0 2px 8px rgba(0, 0, 0, 0.2)"),
		decl("z-index", "1000"),
	))

	media := atRule("@media", "print")
	media.Rules = []*css.Rule{
		nested(rule([]string{".print-button", ".empty-notice"}, important("display", "none"))),
		nested(rule([]string{"body"},
			decl("margin", "0"),
			important("-webkit-print-color-adjust", "exact"),
			important("print-color-adjust", "exact"),
		)),
	}
	add(media)

	return sheet
}

func decl(prop, value string) *css.Declaration {
	return &css.Declaration{Property: prop, Value: value}
}

func important(prop, value string) *css.Declaration {
	return &css.Declaration{Property: prop, Value: value, Important: true}
}

func rule(selectors []string, decls ...*css.Declaration) *css.Rule {
	r := css.NewRule(css.QualifiedRule)
	r.Selectors = selectors
	r.Prelude = strings.Join(selectors, ", ")
	r.Declarations = decls
	return r
}

func atRule(name, prelude string, decls ...*css.Declaration) *css.Rule {
	r := css.NewRule(css.AtRule)
	r.Name = name
	r.Prelude = prelude
	r.Declarations = decls
	return r
}

func nested(r *css.Rule) *css.Rule {
	r.EmbedLevel = 1
	return r
}
