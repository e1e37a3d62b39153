package pipeline

import (
	"github.com/tichlinh-png/trace-worksheet/pkg/cache"
	"github.com/tichlinh-png/trace-worksheet/pkg/imageref"
	"github.com/tichlinh-png/trace-worksheet/pkg/worksheet"
)

type hashedEntry struct {
	ID    int    `json:"id"`
	Text  string `json:"text"`
	Emoji string `json:"emoji"`
	Image string `json:"image"`
}

type hashedInput struct {
	Entries         []hashedEntry `json:"entries"`
	EntriesPerPage  int           `json:"entries_per_page"`
	RepeatCount     int           `json:"repeat_count"`
	LineCount       int           `json:"line_count"`
	InstitutionName string        `json:"institution_name"`
	InstitutionLogo string        `json:"institution_logo"`
	Title           string        `json:"title"`
}

// InputHash is a content hash of a generation request. Images contribute
// their content hash, not their bytes.
func InputHash(entries []worksheet.Entry, cfg worksheet.Config) (string, error) {
	in := hashedInput{
		Entries:         make([]hashedEntry, len(entries)),
		EntriesPerPage:  cfg.EntriesPerPage,
		RepeatCount:     cfg.RepeatCount,
		LineCount:       cfg.LineCount,
		InstitutionName: cfg.InstitutionName,
		InstitutionLogo: imageHash(cfg.InstitutionLogo),
		Title:           cfg.Title,
	}
	for i, e := range entries {
		in.Entries[i] = hashedEntry{ID: e.ID, Text: e.Text, Emoji: e.Emoji, Image: imageHash(e.Image)}
	}
	return cache.HashJSON(in)
}

func imageHash(ref *imageref.Ref) string {
	if ref == nil {
		return ""
	}
	return ref.Hash()
}
