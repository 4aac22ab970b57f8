// Package tui is the interactive single-screen list: a search field, the
// filtered items and an inline add form, kept in sync with a todo.Store.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/todo"
)

type focus int

const (
	focusList focus = iota
	focusSearch
	focusAdd
)

// loadedMsg carries the result of the initial Load.
type loadedMsg struct{ items model.List }

// changedMsg carries a list published by the store.
type changedMsg struct{ items model.List }

// Model implements tea.Model.
type Model struct {
	ctx     context.Context
	store   *todo.Store
	changes chan model.List
	done    chan struct{}
	cancel  func()

	items  model.List
	loaded bool
	err    string

	list   list.Model
	search textinput.Model
	add    textinput.Model
	focus  focus
	keys   keyMap

	width, height int
}

// New builds the screen model and subscribes it to store changes. Call
// Close once the program has exited.
func New(ctx context.Context, store *todo.Store) Model {
	keys := defaultKeys()

	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("item", "items")
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.KeyMap.Quit.SetEnabled(false)
	l.AdditionalShortHelpKeys = keys.bindings
	l.AdditionalFullHelpKeys = keys.bindings

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "Search to-dos..."

	add := textinput.New()
	add.Prompt = "> "
	add.Placeholder = "New item..."
	add.CharLimit = 200

	m := Model{
		ctx:     ctx,
		store:   store,
		changes: make(chan model.List, 1),
		done:    make(chan struct{}),
		items:   model.List{},
		list:    l,
		search:  search,
		add:     add,
		keys:    keys,
		width:   80,
		height:  24,
	}
	m.resize()
	changes, done := m.changes, m.done
	m.cancel = store.Subscribe(func(items model.List) {
		// keep only the newest list if the screen has not caught up
		for {
			select {
			case <-done:
				return
			case changes <- items:
				return
			default:
				select {
				case <-changes:
				default:
				}
			}
		}
	})
	return m
}

// Close drops the store subscription.
func (m Model) Close() {
	m.cancel()
	select {
	case <-m.done:
	default:
		close(m.done)
	}
}

// Run shows the screen until the user quits.
func Run(ctx context.Context, store *todo.Store) error {
	m := New(ctx, store)
	defer m.Close()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.waitForChange())
}

func (m Model) loadCmd() tea.Cmd {
	ctx, store := m.ctx, m.store
	return func() tea.Msg {
		return loadedMsg{items: store.Load(ctx)}
	}
}

func (m Model) waitForChange() tea.Cmd {
	changes, done := m.changes, m.done
	return func() tea.Msg {
		select {
		case items := <-changes:
			return changedMsg{items: items}
		case <-done:
			return nil
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		m.loaded = true
		return m, m.setItems(msg.items)

	case changedMsg:
		return m, tea.Batch(m.setItems(msg.items), m.waitForChange())

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.focus {
		case focusSearch:
			return m.updateSearch(msg)
		case focusAdd:
			return m.updateAdd(msg)
		}
		return m.updateList(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.search.Blur()
		m.focus = focusList
		m.resize()
		return m, nil
	}
	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		return m, tea.Batch(cmd, m.refresh())
	}
	return m, cmd
}

func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		items, err := m.store.Add(m.add.Value())
		if err != nil {
			m.err = err.Error()
			return m, nil
		}
		m.err = ""
		m.add.SetValue("")
		m.add.Blur()
		m.focus = focusList
		m.resize()
		return m, m.setItems(items)
	case tea.KeyEsc:
		m.add.SetValue("")
		m.add.Blur()
		m.focus = focusList
		m.resize()
		return m, nil
	}
	var cmd tea.Cmd
	m.add, cmd = m.add.Update(msg)
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case msg.Type == tea.KeyEsc:
		if m.search.Value() != "" {
			m.search.SetValue("")
			return m, m.refresh()
		}
		return m, tea.Quit
	case key.Matches(msg, m.keys.Search):
		m.focus = focusSearch
		m.resize()
		return m, m.search.Focus()
	case !m.loaded:
		// nothing can change until the stored list is in
		return m, nil
	case key.Matches(msg, m.keys.Add):
		m.focus = focusAdd
		m.err = ""
		m.add.SetValue("")
		m.resize()
		return m, m.add.Focus()
	case key.Matches(msg, m.keys.Toggle):
		if it, ok := m.selected(); ok {
			return m.mutate(m.store.ToggleComplete(it.ID))
		}
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		if it, ok := m.selected(); ok {
			return m.mutate(m.store.Delete(it.ID))
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) mutate(items model.List, err error) (tea.Model, tea.Cmd) {
	if err != nil {
		m.err = err.Error()
		return m, nil
	}
	m.err = ""
	return m, m.setItems(items)
}

func (m Model) selected() (model.Item, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Item{}, false
	}
	return it.Item, true
}

// setItems replaces the full list and recomputes the visible rows.
func (m *Model) setItems(items model.List) tea.Cmd {
	m.items = items
	return m.refresh()
}

// refresh filters items by the current query, keeping the selection on
// the same item when it is still visible.
func (m *Model) refresh() tea.Cmd {
	prev, hadSel := m.selected()
	visible := todo.Filter(m.items, m.search.Value())
	rows := make([]list.Item, 0, len(visible))
	for _, it := range visible {
		rows = append(rows, listItem{Item: it})
	}
	cmd := m.list.SetItems(rows)
	if hadSel {
		if i := visible.Index(prev.ID); i >= 0 {
			m.list.Select(i)
		}
	}
	if m.list.Index() >= len(rows) && len(rows) > 0 {
		m.list.Select(len(rows) - 1)
	}
	return cmd
}

// Visible returns the items currently shown.
func (m Model) Visible() model.List {
	out := make(model.List, 0, len(m.list.Items()))
	for _, it := range m.list.Items() {
		if li, ok := it.(listItem); ok {
			out = append(out, li.Item)
		}
	}
	return out
}

func (m *Model) resize() {
	h := m.height - 7
	if m.focus == focusAdd {
		h -= 3
	}
	if h < 3 {
		h = 3
	}
	m.list.SetSize(m.width-4, h)
}

func (m Model) View() string {
	d, p := m.items.Stats()
	header := fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("To-Do"),
		successStyle.Render("✔"), d,
		pendingStyle.Render("•"), p,
		accentStyle.Render("Total"), len(m.items),
	)

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	if m.focus == focusSearch || m.search.Value() != "" {
		b.WriteString(m.search.View())
	} else {
		b.WriteString(mutedStyle.Render("press / to search"))
	}
	b.WriteString("\n\n")

	if !m.loaded {
		b.WriteString(mutedStyle.Render("loading..."))
	} else {
		b.WriteString(m.list.View())
	}

	if m.focus == focusAdd {
		title := "Add new item"
		if m.err != "" {
			title += "  " + errorStyle.Render(m.err)
		}
		b.WriteString("\n")
		b.WriteString(frameStyle.Render(title + "\n" + m.add.View()))
	} else if m.err != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.err))
	}
	return frameStyle.Width(max(m.width-2, 20)).Render(b.String())
}
