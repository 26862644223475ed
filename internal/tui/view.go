package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	headerStyle   = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	editingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	emptyStyle    = lipgloss.NewStyle().Faint(true).Italic(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	focusBoxStyle = boxStyle.BorderForeground(lipgloss.Color("205"))
)

const helpLine = "tab focus • enter add/save • e edit • d done • x remove • c clear done • q quit"

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("taskpad"))
	b.WriteString("\n\n")

	label := "New task"
	if m.editing() {
		label = fmt.Sprintf("Editing task %d", m.state.Session.Index+1)
	}
	b.WriteString(m.box(focusInput).Render(headerStyle.Render(label) + "\n" + m.input.View()))
	b.WriteString("\n")

	b.WriteString(m.box(focusPending).Render(m.renderPending()))
	b.WriteString("\n")

	if len(m.state.Done) > 0 {
		b.WriteString(m.box(focusDone).Render(m.renderDone()))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(statusStyle.Render(helpLine))
	b.WriteString("\n")
	return b.String()
}

func (m Model) box(f focus) lipgloss.Style {
	if m.focus == f {
		return focusBoxStyle
	}
	return boxStyle
}

func (m Model) renderPending() string {
	lines := []string{headerStyle.Render(fmt.Sprintf("Pending (%d)", len(m.state.Pending)))}
	if len(m.state.Pending) == 0 {
		lines = append(lines, emptyStyle.Render("no tasks found"))
	}
	for i, task := range m.state.Pending {
		line := fmt.Sprintf("%d. %s", i+1, normalize(task.Text))
		switch {
		case m.state.Editing(i):
			line = editingStyle.Render(line + " [editing]")
		case m.focus == focusPending && i == m.cursor:
			line = selectedStyle.Render(line)
		}
		lines = append(lines, m.marker(focusPending, i)+line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderDone() string {
	lines := []string{headerStyle.Render(fmt.Sprintf("Done (%d)", len(m.state.Done)))}
	for i, task := range m.state.Done {
		line := doneStyle.Render(fmt.Sprintf("%d. %s", i+1, normalize(task.Text)))
		lines = append(lines, m.marker(focusDone, i)+line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) marker(f focus, i int) string {
	if m.focus == f && i == m.cursor {
		return "> "
	}
	return "  "
}
