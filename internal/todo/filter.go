package todo

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/Makepad-fr/tada/internal/model"
)

// Filter returns, in order, the items whose text contains query under
// Unicode case folding. An empty query returns l itself.
func Filter(l model.List, query string) model.List {
	if query == "" {
		return l
	}
	fold := cases.Fold()
	q := fold.String(query)
	out := make(model.List, 0, len(l))
	for _, it := range l {
		if strings.Contains(fold.String(it.Text), q) {
			out = append(out, it)
		}
	}
	return out
}
