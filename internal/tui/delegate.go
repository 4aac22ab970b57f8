package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/tada/internal/model"
)

// listItem adapts model.Item to bubbles/list.Item.
type listItem struct {
	model.Item
}

func (i listItem) FilterValue() string { return i.Text }

// itemDelegate renders one item per line: selection marker, box, text.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	box := mutedStyle.Render(boxUnchecked)
	text := it.Text
	if it.Completed {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s", prefix, box, text)
}
