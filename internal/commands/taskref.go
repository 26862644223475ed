package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"unicode"

	"taskpad/internal/exitcode"
	"taskpad/internal/tasks"
)

// TaskRef is a parsed 1-based task number as shown by the list command.
type TaskRef struct {
	Num  int      // 1-based position in the pending list
	Rest []string // args after the reference
}

// Index returns the 0-based pending index the reference points at.
func (r TaskRef) Index() int { return r.Num - 1 }

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses the task number from the first arg.
// Only plain decimal numbers are accepted; range is checked by the store.
func ParseTaskRef(args []string) (TaskRef, error) {
	if len(args) == 0 {
		return TaskRef{}, ErrTaskRefRequired
	}

	first := args[0]
	if !isAllDigits(first) {
		return TaskRef{}, fmt.Errorf("invalid task reference: %s", first)
	}
	num, err := strconv.Atoi(first)
	if err != nil {
		return TaskRef{}, fmt.Errorf("invalid task reference: %s", first)
	}
	return TaskRef{Num: num, Rest: args[1:]}, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// parseRef parses args and prints the error line on failure.
func parseRef(args []string, errOut io.Writer) (TaskRef, bool) {
	ref, err := ParseTaskRef(args)
	if err != nil {
		if errors.Is(err, ErrTaskRefRequired) {
			fmt.Fprintln(errOut, "error: task reference required")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return TaskRef{}, false
	}
	return ref, true
}

// storeError maps a store error to an error line and exit code.
func storeError(errOut io.Writer, err error, ref TaskRef) int {
	switch {
	case errors.Is(err, tasks.ErrOutOfRange):
		fmt.Fprintf(errOut, "error: task number out of range: %d\n", ref.Num)
		return exitcode.UserError
	case errors.Is(err, tasks.ErrEditing):
		fmt.Fprintf(errOut, "error: task is being edited: %d\n", ref.Num)
		return exitcode.UserError
	case errors.Is(err, tasks.ErrNoSession):
		fmt.Fprintln(errOut, "error: no edit in progress")
		return exitcode.UserError
	default:
		fmt.Fprintf(errOut, "error: storage error: %v\n", err)
		return exitcode.BackendError
	}
}
