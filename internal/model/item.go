package model

// Item is the domain model for a todo entry.
// Text is kept exactly as entered; only Completed ever changes.
type Item struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// List is an ordered run of items. Insertion order is display order.
// Values handed out by the store are never modified in place.
type List []Item

// Index returns the position of the item with the given id, or -1.
func (l List) Index(id string) int {
	for i, it := range l {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a copy that shares no backing array with l.
func (l List) Clone() List {
	out := make(List, len(l))
	copy(out, l)
	return out
}

// Stats counts completed and pending items.
func (l List) Stats() (done, pending int) {
	for _, it := range l {
		if it.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}
