package worksheet

import (
	"math"
	"testing"

	apperr "github.com/tichlinh-png/trace-worksheet/pkg/errors"
)

func TestListAdd(t *testing.T) {
	l := NewList(DefaultEntries())
	e := l.Add()
	if e.ID != 5 {
		t.Errorf("new ID = %d, want 5", e.ID)
	}
	if e.Emoji != DefaultEmoji || e.Text != "" {
		t.Errorf("new entry = %+v", e)
	}
	if l.Len() != 5 {
		t.Errorf("Len = %d", l.Len())
	}
	if len(l.Valid()) != 4 {
		t.Errorf("blank added entry should not be valid")
	}
}

func TestListNextIDAfterDelete(t *testing.T) {
	l := NewList([]Entry{{ID: 1}, {ID: 7}, {ID: 3}})
	if err := l.Delete(7); err != nil {
		t.Fatal(err)
	}
	if got := l.NextID(); got != 4 {
		t.Errorf("NextID = %d, want 4", got)
	}

	var empty List
	if got := empty.Add().ID; got != 1 {
		t.Errorf("first ID in empty list = %d, want 1", got)
	}
}

func TestListNextIDAtMaxInt(t *testing.T) {
	l := NewList([]Entry{{ID: 1}, {ID: math.MaxInt}, {ID: 2}})
	if got := l.NextID(); got != 3 {
		t.Errorf("NextID = %d, want 3", got)
	}
	got := l.Append(Entry{ID: math.MaxInt, Text: "Pigs"})
	if got.ID != 3 {
		t.Errorf("duplicate of MaxInt reassigned to %d, want 3", got.ID)
	}
	for _, e := range l.Entries() {
		if e.ID <= 0 {
			t.Errorf("non-positive ID %d", e.ID)
		}
	}
}

func TestListEdit(t *testing.T) {
	l := NewList(DefaultEntries())

	if err := l.SetText(2, "Geese"); err != nil {
		t.Fatal(err)
	}
	if err := l.SetEmoji(2, ""); err != nil {
		t.Fatal(err)
	}
	e, ok := l.Find(2)
	if !ok || e.Text != "Geese" || e.Emoji != DefaultEmoji {
		t.Errorf("entry 2 = %+v", e)
	}

	if err := l.Delete(99); !apperr.Is(err, apperr.ErrCodeNotFound) {
		t.Errorf("Delete missing code = %v", apperr.GetCode(err))
	}
	if err := l.SetText(99, "x"); !apperr.Is(err, apperr.ErrCodeNotFound) {
		t.Errorf("SetText missing code = %v", apperr.GetCode(err))
	}
}

func TestListAppendReassignsDuplicateID(t *testing.T) {
	l := NewList(DefaultEntries())
	got := l.Append(Entry{ID: 2, Text: "Pigs"})
	if got.ID != 5 {
		t.Errorf("duplicate ID reassigned to %d, want 5", got.ID)
	}
	got = l.Append(Entry{ID: 10, Text: "Goats"})
	if got.ID != 10 {
		t.Errorf("free ID changed to %d", got.ID)
	}
}

func TestListEntriesIsCopy(t *testing.T) {
	l := NewList(DefaultEntries())
	es := l.Entries()
	es[0].Text = "changed"
	if e, _ := l.Find(1); e.Text != "Cats" {
		t.Error("Entries exposed internal storage")
	}
}
