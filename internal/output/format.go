// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskpad/internal/service"
)

const (
	// ListSeparator is the separator line around section headers.
	ListSeparator = "------------"

	// DoneTitle is the header of the done section.
	DoneTitle = "done"

	// EditingMarker is appended to the pending task under edit.
	EditingMarker = "  [editing]"
)

// FormatTask formats a pending task line.
// Format: "{N:>4}  {TEXT}\n" (4-wide right-aligned number, two spaces, text)
func FormatTask(w io.Writer, num int, task service.Task, editing bool) {
	line := fmt.Sprintf("%4d  %s", num, normalizeText(task.Text))
	if editing {
		line += EditingMarker
	}
	fmt.Fprintln(w, line)
}

// FormatDoneTask formats a task line in the done section.
// Format: "    {N:>4}  {TEXT}\n" (4 spaces indent + 4-wide number + 2 spaces + text)
func FormatDoneTask(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "    %4d  %s\n", num, normalizeText(task.Text))
}

// FormatSectionHeader formats a section header.
func FormatSectionHeader(w io.Writer, title string) {
	fmt.Fprintln(w, ListSeparator)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, ListSeparator)
}

// normalizeText normalizes task text for display.
// - Empty or whitespace-only text becomes "(untitled)"
// - Newlines are replaced with spaces
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")

	if strings.TrimSpace(text) == "" {
		return "(untitled)"
	}
	return text
}
