package todo

import (
	"encoding/json"
	"fmt"

	"github.com/Makepad-fr/tada/internal/model"
)

// DefaultKey is the slot key the list lives under.
const DefaultKey = "my-todos"

// Encode serializes the whole list as a JSON array.
func Encode(l model.List) ([]byte, error) {
	if l == nil {
		l = model.List{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return b, nil
}

// Decode parses a stored list. A blob that is not an array of items, or
// that carries empty or repeated ids, is rejected.
func Decode(b []byte) (model.List, error) {
	var l model.List
	if err := json.Unmarshal(b, &l); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if l == nil {
		return nil, fmt.Errorf("json unmarshal: not an array")
	}
	seen := make(map[string]struct{}, len(l))
	for i, it := range l {
		if it.ID == "" {
			return nil, fmt.Errorf("item %d: empty id", i)
		}
		if _, dup := seen[it.ID]; dup {
			return nil, fmt.Errorf("item %d: duplicate id %q", i, it.ID)
		}
		seen[it.ID] = struct{}{}
	}
	return l, nil
}
