package todo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Makepad-fr/tada/internal/model"
)

func TestFilter(t *testing.T) {
	l := model.List{
		{ID: "1", Text: "Buy MILK"},
		{ID: "2", Text: "walk dog"},
		{ID: "3", Text: "milkshake"},
		{ID: "4", Text: "École du soir"},
	}
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty query keeps all", "", []string{"1", "2", "3", "4"}},
		{"case insensitive", "milk", []string{"1", "3"}},
		{"upper query", "DOG", []string{"2"}},
		{"no match", "eggs", nil},
		{"inner substring", "ilk", []string{"1", "3"}},
		{"unicode folding", "éCOLE", []string{"4"}},
		{"spaces count", "buy m", []string{"1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(l, tt.query)
			var ids []string
			for _, it := range got {
				ids = append(ids, it.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFilter_FullCaseFolding(t *testing.T) {
	l := model.List{{ID: "1", Text: "Straße fegen"}, {ID: "2", Text: "Strasse"}}
	assert.Len(t, Filter(l, "ss"), 2)
	assert.Len(t, Filter(l, "STRASSE"), 2)
	assert.Len(t, Filter(l, "ß"), 2)
}

func TestFilter_DoesNotMutate(t *testing.T) {
	l := sample()
	_ = Filter(l, "o")
	assert.Equal(t, sample(), l)
}
