package styles

// Tier holds the size parameters for one density of page.
type Tier struct {
	Name        string
	ImageHeight int // px
	GlyphSize   int // px
	TraceFont   int // pt
	PageMargin  int // mm
	BlockGap    int // px between blocks
}

var (
	Spacious = Tier{Name: "spacious", ImageHeight: 130, GlyphSize: 120, TraceFont: 16, PageMargin: 10, BlockGap: 25}
	Compact  = Tier{Name: "compact", ImageHeight: 100, GlyphSize: 100, TraceFont: 14, PageMargin: 10, BlockGap: 18}
	Dense    = Tier{Name: "dense", ImageHeight: 72, GlyphSize: 64, TraceFont: 12, PageMargin: 8, BlockGap: 10}
)

// ForEntriesPerPage returns the tier for n entries per page.
// Counts of 2 or less are spacious, 3 is compact, and anything larger is dense.
func ForEntriesPerPage(n int) Tier {
	switch {
	case n <= 2:
		return Spacious
	case n == 3:
		return Compact
	default:
		return Dense
	}
}
