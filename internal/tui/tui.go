// Package tui is the interactive full-screen view of a todo list: an input
// box for new tasks, a view switch, and the visible tasks under a cursor.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/todo"
	"github.com/Makepad-fr/tada/internal/ui"
)

type keyMap struct {
	Create, Visibility, Up, Down, Toggle, Delete, Quit key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Create, k.Visibility, k.Toggle, k.Delete, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Create, k.Visibility}, {k.Up, k.Down, k.Toggle, k.Delete}, {k.Quit}}
}

func defaultKeys() keyMap {
	return keyMap{
		Create:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "create")),
		Visibility: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "show finished")),
		Up:         key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:       key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Toggle:     key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "check")),
		Delete:     key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete")),
		Quit:       key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

// Model implements tea.Model over a *todo.List. Every edit of the input box
// goes to the list draft; every mutation writes through immediately.
type Model struct {
	list   *todo.List
	input  textinput.Model
	keys   keyMap
	help   help.Model
	cursor int

	status    string
	statusErr bool
}

// New returns a Model with the input box focused.
func New(l *todo.List) Model {
	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = "Add a new task..."
	in.CharLimit = 500
	in.SetValue(l.Draft())
	in.Focus()

	return Model{
		list:  l,
		input: in,
		keys:  defaultKeys(),
		help:  help.New(),
	}
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(l *todo.List) error {
	_, err := tea.NewProgram(New(l), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.input.Width = msg.Width - 8
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Create):
			m.create()
			return m, nil
		case key.Matches(msg, m.keys.Visibility):
			m.list.ToggleVisibility()
			m.cursor = 0
			m.setStatus("", false)
			return m, nil
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.list.VisibleItems())-1 {
				m.cursor++
			}
			return m, nil
		case key.Matches(msg, m.keys.Toggle):
			m.toggle()
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			m.remove()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.list.UpdateDraft(m.input.Value())
	return m, cmd
}

func (m *Model) create() {
	it, err := m.list.AddTodo()
	switch {
	case errors.Is(err, todo.ErrEmptyContent):
		m.setStatus(err.Error(), true)
		return
	case err != nil && !todo.IsPersistence(err):
		m.setStatus(err.Error(), true)
		return
	}
	m.input.SetValue("")
	if err != nil {
		m.setStatus("not saved: "+err.Error(), true)
		return
	}
	m.setStatus("added "+ui.Truncate(it.Content, 40), false)
}

func (m *Model) selected() (model.Item, bool) {
	items := m.list.VisibleItems()
	if m.cursor < 0 || m.cursor >= len(items) {
		return model.Item{}, false
	}
	return items[m.cursor], true
}

func (m *Model) toggle() {
	it, ok := m.selected()
	if !ok {
		return
	}
	if _, err := m.list.ToggleCompleted(it.ID); err != nil {
		m.setStatus(err.Error(), true)
	} else {
		m.setStatus("", false)
	}
	m.clampCursor()
}

// remove only acts in the finished view, where the finished tasks carry a
// Delete action.
func (m *Model) remove() {
	if !m.list.ShowCompleted() {
		m.setStatus("switch to finished tasks (tab) to delete", true)
		return
	}
	it, ok := m.selected()
	if !ok {
		return
	}
	if err := m.list.DeleteTodo(it.ID); err != nil {
		m.setStatus("not saved: "+err.Error(), true)
	} else {
		m.setStatus("deleted "+ui.Truncate(it.Content, 40), false)
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.list.VisibleItems())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status, m.statusErr = s, isErr
}

// Status is the message under the list, empty when there is none.
func (m Model) Status() string { return m.status }

// Cursor is the index of the selected visible item.
func (m Model) Cursor() int { return m.cursor }

func (m Model) View() string {
	t := ui.Current()

	button := "Show Finished"
	if m.list.ShowCompleted() {
		button = "Hide Finished"
	}
	done, pending := m.list.Stats()

	var b strings.Builder
	b.WriteString(t.Title.Render("TODO LIST") + "\n")
	b.WriteString(fmt.Sprintf("%s %d  %s %d   %s\n",
		t.Success.Render(t.SymDone), done,
		t.Pending.Render(t.SymPending), pending,
		t.Muted.Render(ui.ProgressBar(done, done+pending, 20))))
	b.WriteString("\n")
	b.WriteString(m.input.View() + "\n")
	b.WriteString(t.Muted.Render("[enter] Create   [tab] "+button) + "\n\n")

	items := m.list.VisibleItems()
	switch {
	case len(m.list.Items()) == 0:
		b.WriteString(t.Muted.Render("You completed all the tasks!") + "\n")
	case len(items) == 0 && m.list.ShowCompleted():
		b.WriteString(t.Muted.Render("no finished tasks") + "\n")
	case len(items) == 0:
		b.WriteString(t.Muted.Render("no pending tasks") + "\n")
	}
	for i, it := range items {
		b.WriteString(m.renderItem(i, it) + "\n")
	}

	if m.status != "" {
		style := t.Success
		if m.statusErr {
			style = t.Error
		}
		b.WriteString("\n" + style.Render(m.status) + "\n")
	}
	b.WriteString("\n" + m.help.View(m.keys))

	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1).
		Render(b.String())
}

func (m Model) renderItem(i int, it model.Item) string {
	t := ui.Current()
	box, content := t.Muted.Render(t.BoxUnchecked), it.Content
	if it.IsCompleted {
		box, content = t.Success.Render(t.BoxChecked), t.Done.Render(it.Content)
	}
	prefix := "  "
	if i == m.cursor {
		prefix = t.Selected.Render(">") + " "
	}
	line := prefix + box + " " + content
	if it.IsCompleted && i == m.cursor {
		line += "  " + t.Muted.Render("[ctrl+d] Delete")
	}
	return line
}
