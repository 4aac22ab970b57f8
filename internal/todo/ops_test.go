package todo

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/model"
)

func sample() model.List {
	return model.List{
		{ID: "1", Text: "Buy milk"},
		{ID: "2", Text: "Walk dog", Completed: true},
		{ID: "3", Text: "Call mom"},
	}
}

func counterIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestAdd(t *testing.T) {
	for _, l := range []model.List{nil, {}, sample()} {
		got := Add(l, "Read book")
		require.Len(t, got, len(l)+1)
		last := got[len(got)-1]
		assert.Equal(t, "Read book", last.Text)
		assert.False(t, last.Completed)
		assert.NotEmpty(t, last.ID)
		assert.Equal(t, -1, l.Index(last.ID), "id must be fresh")
		if len(l) > 0 {
			assert.Equal(t, l, got[:len(l)])
		}
	}
}

func TestAdd_KeepsRawText(t *testing.T) {
	got := Add(nil, " Buy milk ")
	require.Len(t, got, 1)
	assert.Equal(t, " Buy milk ", got[0].Text)
}

func TestAdd_WhitespaceIsNoop(t *testing.T) {
	l := sample()
	for _, text := range []string{"", " ", "\t\n", "   \r\n  "} {
		got := Add(l, text)
		assert.Equal(t, l, got, "text %q", text)
	}
}

func TestAdd_DoesNotShareBacking(t *testing.T) {
	l := make(model.List, 1, 4)
	l[0] = model.Item{ID: "a", Text: "A"}
	first := Add(l, "B")
	second := Add(l, "C")
	assert.Equal(t, "B", first[1].Text)
	assert.Equal(t, "C", second[1].Text)
}

func TestAdd_RedrawsCollidingIDs(t *testing.T) {
	l := model.List{{ID: "id-1", Text: "A"}}
	got, changed := add(l, "B", counterIDs())
	require.True(t, changed)
	assert.Equal(t, "id-2", got[1].ID)

	stuck := func() string { return "id-1" }
	got, _ = add(l, "C", stuck)
	assert.NotEqual(t, "id-1", got[1].ID)
	assert.NotEmpty(t, got[1].ID)
}

func TestToggleComplete(t *testing.T) {
	l := sample()
	got := ToggleComplete(l, "1")
	assert.True(t, got[0].Completed)
	assert.Equal(t, l[1:], got[1:])
	assert.False(t, l[0].Completed, "input must not change")

	back := ToggleComplete(got, "1")
	assert.Equal(t, l, back)
}

func TestToggleAndDelete_UnknownID(t *testing.T) {
	l := sample()
	assert.Equal(t, l, ToggleComplete(l, "nope"))
	assert.Equal(t, l, Delete(l, "nope"))
	assert.Empty(t, Delete(nil, "nope"))
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want []string
	}{
		{"first", "1", []string{"2", "3"}},
		{"middle", "2", []string{"1", "3"}},
		{"last", "3", []string{"1", "2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := sample()
			got := Delete(l, tt.id)
			require.Len(t, got, len(l)-1)
			assert.Equal(t, -1, got.Index(tt.id))
			ids := make([]string, 0, len(got))
			for _, it := range got {
				ids = append(ids, it.ID)
			}
			assert.Equal(t, tt.want, ids)
			assert.Equal(t, sample(), l, "input must not change")
		})
	}
}

func TestScenario_AddToggleFilter(t *testing.T) {
	var l model.List
	l = Add(l, " Buy milk ")
	require.Len(t, l, 1)
	assert.Equal(t, " Buy milk ", l[0].Text)
	assert.False(t, l[0].Completed)

	l = ToggleComplete(l, l[0].ID)
	assert.True(t, l[0].Completed)

	assert.Equal(t, l, Filter(l, "milk"))
	assert.Empty(t, Filter(l, "eggs"))
}

func TestScenario_AddTwiceDeleteFirst(t *testing.T) {
	var l model.List
	l = Add(l, "A")
	l = Add(l, "B")
	l = Delete(l, l[0].ID)
	require.Len(t, l, 1)
	assert.Equal(t, "B", l[0].Text)
}
