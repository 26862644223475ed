// Package tui is the interactive terminal view of the task store.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	log "github.com/go-pkgz/lgr"

	"taskpad/internal/service"
	"taskpad/internal/tasks"
)

type focus int

const (
	focusInput focus = iota
	focusPending
	focusDone
)

// Model is the bubbletea model. It holds no task data of its own: every
// action goes through the store and the view redraws from State().
type Model struct {
	store  service.Service
	state  service.State
	input  textinput.Model
	focus  focus
	cursor int
	status string
	width  int

	// editText is the task text the session started from; editShown is
	// how the input box displays it (single line, no tabs).
	editText  string
	editShown string
}

// New returns a model over store with the add form focused.
func New(store service.Service) Model {
	ti := textinput.New()
	ti.Placeholder = "What needs doing?"
	ti.CharLimit = 0
	ti.Width = 50
	ti.Prompt = "> "
	ti.Focus()

	st := store.State()
	ti.SetValue(st.Input)

	return Model{
		store: store,
		state: st,
		input: ti,
		focus: focusInput,
	}
}

// Run starts the program and blocks until the user quits.
func Run(store service.Service) error {
	if _, err := tea.NewProgram(New(store), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("terminal ui: %w", err)
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if msg.String() == "tab" {
			m.cycleFocus()
			return m, nil
		}
		if m.focus == focusInput {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > 10 {
			m.input.Width = msg.Width - 10
		}
	}
	return m, nil
}

// editing reports whether the input box is bound to the edit session.
func (m Model) editing() bool {
	return m.state.Session.Open && m.focus == focusInput
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if m.state.Session.Open {
			m.apply(m.store.CommitEdit(m.state.Session.Index), "saved")
			m.input.SetValue(m.state.Input)
			return m, nil
		}
		m.apply(m.store.Submit(), "")
		m.input.SetValue(m.state.Input)
		return m, nil
	case "esc":
		m.setFocus(focusPending)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.state.Session.Open {
		draft := m.input.Value()
		if draft == m.editShown {
			draft = m.editText
		}
		m.apply(m.store.UpdateDraft(draft), "")
	} else {
		m.store.SetInput(m.input.Value())
		m.refresh()
	}
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		m.cursor = clampCursor(m.cursor+1, m.rows())
	case "esc", "i", "a":
		m.setFocus(focusInput)
	case "c":
		m.apply(m.store.ClearDone(), "done list cleared")
	case "e":
		if m.focus != focusPending || len(m.state.Pending) == 0 {
			return m, nil
		}
		task := m.state.Pending[m.cursor]
		if err := m.store.BeginEdit(m.cursor, task.Text); err != nil {
			m.apply(err, "")
			return m, nil
		}
		m.refresh()
		m.input.SetValue(task.Text)
		m.input.CursorEnd()
		m.editText = task.Text
		m.editShown = m.input.Value()
		m.setFocus(focusInput)
		m.status = fmt.Sprintf("editing task %d, enter to save", m.cursor+1)
	case "d":
		if m.focus == focusPending && len(m.state.Pending) > 0 {
			m.apply(m.store.Complete(m.cursor), "completed")
		}
	case "x":
		if m.focus == focusPending && len(m.state.Pending) > 0 {
			m.apply(m.store.Remove(m.cursor), "removed")
		}
	}
	return m, nil
}

// apply reports err on the status line, re-reads state and clamps the cursor.
func (m *Model) apply(err error, okStatus string) {
	m.refresh()
	switch {
	case err == nil:
		if okStatus != "" {
			m.status = okStatus
		}
	case errors.Is(err, tasks.ErrEditing):
		m.status = "task is being edited, press enter to save it first"
	case errors.Is(err, tasks.ErrNoSession):
		m.status = "no edit in progress"
	case errors.Is(err, tasks.ErrOutOfRange):
		m.status = "no such task"
	default:
		log.Printf("[WARN] store: %v", err)
		m.status = "error: " + err.Error()
	}
}

func (m *Model) refresh() {
	m.state = m.store.State()
	m.cursor = clampCursor(m.cursor, m.rows())
}

func (m *Model) cycleFocus() {
	m.setFocus((m.focus + 1) % 3)
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	m.cursor = clampCursor(m.cursor, m.rows())
	if f == focusInput {
		m.input.Focus()
		return
	}
	m.input.Blur()
	if m.state.Session.Open {
		return
	}
	// keep the add form draft visible while browsing
	m.input.SetValue(m.state.Input)
}

// rows is the length of the focused list.
func (m Model) rows() int {
	switch m.focus {
	case focusPending:
		return len(m.state.Pending)
	case focusDone:
		return len(m.state.Done)
	default:
		return 0
	}
}

func clampCursor(cur, n int) int {
	if n <= 0 || cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

func normalize(text string) string {
	text = strings.ReplaceAll(text, "\n", " ")
	if strings.TrimSpace(text) == "" {
		return "(untitled)"
	}
	return text
}
