// Package wordlist reads and writes worksheet files.
//
// # Overview
//
// A worksheet file holds everything needed to print one set of tracing
// pages: the layout knobs, the institution shown in the header, and the
// ordered word list. Files are TOML or JSON, chosen by extension.
//
// # TOML Format
//
//	title = "Farm Animals"
//
//	[layout]
//	entries_per_page = 2
//	repeat_count = 12
//	line_count = 4
//
//	[institution]
//	name = "Sunrise Primary School"
//	logo = "images/logo.png"
//
//	[[entry]]
//	text = "Cats"
//	emoji = "🐱"
//
//	[[entry]]
//	text = "Ducks"
//	emoji = "🦆"
//	image = "images/duck.jpg"
//
// The JSON form uses the same keys with "entries" for the list.
//
// # Images
//
// An image (or logo) value is either a base64 data URI or a file path.
// Relative paths resolve against the directory of the worksheet file. Every
// image is decoded and verified through [imageref]; an image that fails is
// dropped and a warning is recorded on the [Worksheet], so one bad picture
// never prevents printing the rest.
//
// # Defaults
//
// Missing layout values receive the engine defaults on load. Missing or
// duplicate entry IDs are reassigned in order.
//
// [imageref]: github.com/tichlinh-png/trace-worksheet/pkg/imageref
package wordlist
