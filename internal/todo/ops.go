// Package todo holds the list operations, the search filter and the Store
// that persists the list through a Slot.
package todo

import (
	"strings"

	"github.com/google/uuid"

	"github.com/Makepad-fr/tada/internal/model"
)

// NewID returns a fresh opaque item id.
func NewID() string { return uuid.NewString() }

// Add returns a copy of l with a new pending item appended. The text is
// stored as given; text that trims to nothing leaves l unchanged.
func Add(l model.List, text string) model.List {
	out, _ := add(l, text, NewID)
	return out
}

// ToggleComplete returns a copy of l with the matching item's Completed
// flipped. An unknown id returns l unchanged.
func ToggleComplete(l model.List, id string) model.List {
	out, _ := toggle(l, id)
	return out
}

// Delete returns a copy of l without the matching item. Survivors keep
// their order. An unknown id returns l unchanged.
func Delete(l model.List, id string) model.List {
	out, _ := remove(l, id)
	return out
}

func add(l model.List, text string, newID func() string) (model.List, bool) {
	if strings.TrimSpace(text) == "" {
		return l, false
	}
	out := make(model.List, len(l), len(l)+1)
	copy(out, l)
	out = append(out, model.Item{ID: freshID(l, newID), Text: text})
	return out, true
}

// freshID draws from newID until the id is unused in l. A generator that
// keeps colliding falls back to a random uuid.
func freshID(l model.List, newID func() string) string {
	for range 8 {
		id := newID()
		if id != "" && l.Index(id) < 0 {
			return id
		}
	}
	for {
		id := uuid.NewString()
		if l.Index(id) < 0 {
			return id
		}
	}
}

func toggle(l model.List, id string) (model.List, bool) {
	i := l.Index(id)
	if i < 0 {
		return l, false
	}
	out := l.Clone()
	out[i].Completed = !out[i].Completed
	return out, true
}

func remove(l model.List, id string) (model.List, bool) {
	i := l.Index(id)
	if i < 0 {
		return l, false
	}
	out := make(model.List, 0, len(l)-1)
	out = append(out, l[:i]...)
	out = append(out, l[i+1:]...)
	return out, true
}
