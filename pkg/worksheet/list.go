package worksheet

import (
	"math"
	"slices"
	"strings"

	apperr "github.com/tichlinh-png/trace-worksheet/pkg/errors"
)

// DefaultEmoji is the glyph given to newly added entries.
const DefaultEmoji = "📝"

// DefaultEntries returns the starter word list.
func DefaultEntries() []Entry {
	return []Entry{
		{ID: 1, Text: "Cats", Emoji: "🐱"},
		{ID: 2, Text: "Ducks", Emoji: "🦆"},
		{ID: 3, Text: "Birds", Emoji: "🐦"},
		{ID: 4, Text: "Cows", Emoji: "🐄"},
	}
}

// List is an editable, ordered word list. IDs are unique within a list.
// The zero value is an empty list ready to use. List is not safe for
// concurrent use.
type List struct {
	entries []Entry
}

// NewList returns a list holding a copy of entries.
func NewList(entries []Entry) *List {
	return &List{entries: slices.Clone(entries)}
}

// Entries returns a copy of the entries in order.
func (l *List) Entries() []Entry {
	return slices.Clone(l.entries)
}

// Len returns the number of entries, blank ones included.
func (l *List) Len() int { return len(l.entries) }

// NextID returns one more than the largest ID in the list. When the largest
// ID is math.MaxInt it returns the smallest unused positive ID instead.
func (l *List) NextID() int {
	largest := 0
	for _, e := range l.entries {
		largest = max(largest, e.ID)
	}
	if largest < math.MaxInt {
		return largest + 1
	}
	for id := 1; ; id++ {
		if l.index(id) < 0 {
			return id
		}
	}
}

// Add appends a new blank entry with the default emoji and returns it.
func (l *List) Add() Entry {
	e := Entry{ID: l.NextID(), Emoji: DefaultEmoji}
	l.entries = append(l.entries, e)
	return e
}

// Append adds e, assigning a fresh ID when e.ID is zero or already taken.
func (l *List) Append(e Entry) Entry {
	if e.ID <= 0 || l.index(e.ID) >= 0 {
		e.ID = l.NextID()
	}
	l.entries = append(l.entries, e)
	return e
}

// Find returns the entry with the given ID.
func (l *List) Find(id int) (Entry, bool) {
	if i := l.index(id); i >= 0 {
		return l.entries[i], true
	}
	return Entry{}, false
}

// Update replaces the entry with e.ID.
func (l *List) Update(e Entry) error {
	i := l.index(e.ID)
	if i < 0 {
		return apperr.New(apperr.ErrCodeNotFound, "entry %d not found", e.ID)
	}
	l.entries[i] = e
	return nil
}

// SetText changes the text of entry id.
func (l *List) SetText(id int, text string) error {
	e, ok := l.Find(id)
	if !ok {
		return apperr.New(apperr.ErrCodeNotFound, "entry %d not found", id)
	}
	e.Text = text
	return l.Update(e)
}

// SetEmoji changes the glyph of entry id. An empty glyph restores the default.
func (l *List) SetEmoji(id int, emoji string) error {
	e, ok := l.Find(id)
	if !ok {
		return apperr.New(apperr.ErrCodeNotFound, "entry %d not found", id)
	}
	e.Emoji = strings.TrimSpace(emoji)
	if e.Emoji == "" {
		e.Emoji = DefaultEmoji
	}
	return l.Update(e)
}

// Delete removes the entry with the given ID.
func (l *List) Delete(id int) error {
	i := l.index(id)
	if i < 0 {
		return apperr.New(apperr.ErrCodeNotFound, "entry %d not found", id)
	}
	l.entries = slices.Delete(l.entries, i, i+1)
	return nil
}

// Valid returns the entries that would produce blocks.
func (l *List) Valid() []Entry {
	return FilterEntries(l.entries)
}

func (l *List) index(id int) int {
	return slices.IndexFunc(l.entries, func(e Entry) bool { return e.ID == id })
}
