// Package styles sizes and styles printed worksheets.
//
// # Tiers
//
// The visual size of a block depends on how many blocks share a page. The
// [Tier] table maps entries-per-page to picture height, glyph size, trace font
// size and page margin:
//
//	1-2 per page  Spacious  130px pictures, 16pt trace text
//	3 per page    Compact   100px pictures, 14pt trace text
//	4+ per page   Dense      72px pictures, 12pt trace text
//
// [ForEntriesPerPage] picks the tier; it never fails, so any positive count
// produces a usable stylesheet.
//
// # Stylesheets
//
// [Tier.Stylesheet] builds the print stylesheet as a CSS syntax tree
// (github.com/aymerick/douceur/css) rather than by string concatenation, so
// every rule is well formed and the output can be re-parsed for inspection.
// The stylesheet contains only constants from this package; no user text ever
// reaches it.
//
//	sheet := styles.ForEntriesPerPage(cfg.EntriesPerPage).Stylesheet(styles.A4)
//	css := sheet.String()
package styles
