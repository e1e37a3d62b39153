package worksheet

// Stats summarizes a generated document for status output and API responses.
type Stats struct {
	Entries        int `json:"entries"`
	Pages          int `json:"pages"`
	EntriesPerPage int `json:"entries_per_page"`
	Sheets         int `json:"sheets"` // physical sheets when printed double-sided
	TracesPerEntry int `json:"traces_per_entry"`
	TotalTraces    int `json:"total_traces"`
}

// Summarize computes the stats of d.
func Summarize(d Document) Stats {
	blocks := d.BlockCount()
	per := d.Config.TracesPerEntry()
	return Stats{
		Entries:        blocks,
		Pages:          len(d.Pages),
		EntriesPerPage: d.Config.EntriesPerPage,
		Sheets:         (len(d.Pages) + 1) / 2,
		TracesPerEntry: per,
		TotalTraces:    per * blocks,
	}
}
