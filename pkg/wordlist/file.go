package wordlist

import (
	"github.com/tichlinh-png/trace-worksheet/pkg/imageref"
	"github.com/tichlinh-png/trace-worksheet/pkg/worksheet"
)

type file struct {
	Title       string      `toml:"title,omitempty" json:"title,omitempty"`
	Layout      layout      `toml:"layout" json:"layout"`
	Institution institution `toml:"institution,omitempty" json:"institution,omitempty"`
	Entries     []entry     `toml:"entry" json:"entries"`
}

type layout struct {
	EntriesPerPage int `toml:"entries_per_page,omitempty" json:"entries_per_page,omitempty"`
	RepeatCount    int `toml:"repeat_count,omitempty" json:"repeat_count,omitempty"`
	LineCount      int `toml:"line_count,omitempty" json:"line_count,omitempty"`
}

type institution struct {
	Name string `toml:"name,omitempty" json:"name,omitempty"`
	Logo string `toml:"logo,omitempty" json:"logo,omitempty"`
}

type entry struct {
	ID    int    `toml:"id,omitempty" json:"id,omitempty"`
	Text  string `toml:"text" json:"text"`
	Emoji string `toml:"emoji,omitempty" json:"emoji,omitempty"`
	Image string `toml:"image,omitempty" json:"image,omitempty"`
}

// Worksheet is a loaded worksheet file.
type Worksheet struct {
	Entries []worksheet.Entry
	Config  worksheet.Config

	// Warnings lists problems that were recovered from while loading,
	// such as an unreadable image.
	Warnings []string

	// sources remembers the path or URI each image came from so that
	// saving a file keeps paths instead of inlining the images.
	sources    map[int]string
	logoSource string
}

// Sample returns the starter worksheet written by "tracesheet init".
func Sample() *Worksheet {
	return &Worksheet{
		Entries: worksheet.DefaultEntries(),
		Config:  worksheet.DefaultConfig(),
	}
}

// ImageSource returns the original path or URI of entry id's image.
func (w *Worksheet) ImageSource(id int) string {
	return w.sources[id]
}

// SetImageSource records where entry id's image came from.
func (w *Worksheet) SetImageSource(id int, src string) {
	if w.sources == nil {
		w.sources = make(map[int]string)
	}
	if src == "" {
		delete(w.sources, id)
		return
	}
	w.sources[id] = src
}

// SetLogo replaces the institution logo and records where it came from.
// A nil logo removes it.
func (w *Worksheet) SetLogo(logo *imageref.Ref, src string) {
	w.Config.InstitutionLogo = logo
	w.logoSource = ""
	if logo != nil {
		w.logoSource = src
	}
}
