// Package worksheet implements the tracing-worksheet document model and the
// generation engine that builds it.
//
// # Overview
//
// A worksheet starts as an ordered list of vocabulary [Entry] values (a word
// plus an emoji glyph or an inline image) and a [Config] snapshot with the
// layout knobs. [Generate] turns them into a [Document]:
//
//	entries + config
//	      ↓
//	[FilterEntries]   drop entries whose text is blank
//	      ↓
//	[Paginate]        fixed-size groups of EntriesPerPage
//	      ↓
//	[RenderVisual]    Image(ref) or Glyph(emoji) per entry
//	[ReplicateLines]  LineCount lines of RepeatCount repetitions per entry
//	      ↓
//	[ComposeHeader]   identification header, first page only
//	      ↓
//	Document → pages → blocks → trace lines
//
// The Document is a derived artifact: it is recomputed from the inputs on every
// call and nothing is retained between calls. Serialization lives in the
// render/sink package and sizing in render/styles.
//
// # Invariants
//
//   - No block is produced for an entry whose trimmed text is empty.
//   - len(Pages) == ceil(valid / EntriesPerPage); only the last page may be short.
//   - The header is attached to page 0, and only when there is at least one page.
//   - Every block has exactly LineCount lines, each holding exactly RepeatCount
//     copies of the entry text separated by single spaces.
//   - A block shows an image iff its entry carries one; otherwise the emoji is
//     used verbatim.
//
// # Concurrency
//
// All functions are pure. Entries and configs are passed by value and the
// image references they hold are immutable, so concurrent calls with different
// (or identical) snapshots need no coordination.
//
// # Example
//
//	doc, err := worksheet.Generate([]worksheet.Entry{
//	    {ID: 1, Text: "Cats", Emoji: "🐱"},
//	    {ID: 2, Text: "Ducks", Emoji: "🦆"},
//	}, worksheet.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	fmt.Println(len(doc.Pages)) // 1
package worksheet
