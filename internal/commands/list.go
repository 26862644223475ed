package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"taskpad/internal/exitcode"
	"taskpad/internal/output"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskpad` (no args) and `taskpad list`.
type ListCmd struct {
	asJSON      bool
	pendingOnly bool
}

// SetJSON sets JSON output (for testing).
func (c *ListCmd) SetJSON(v bool) {
	c.asJSON = v
}

// SetPendingOnly hides the done section (for testing).
func (c *ListCmd) SetPendingOnly(v bool) {
	c.pendingOnly = v
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List pending and done tasks" }
func (c *ListCmd) Usage() string     { return "taskpad list [--pending] [--json]" }
func (c *ListCmd) NeedsStore() bool  { return true }
func (c *ListCmd) NeedsAuth() bool   { return false }

func (c *ListCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&c.asJSON, "json", false, "print the full state as JSON")
	fs.BoolVarP(&c.pendingOnly, "pending", "p", false, "hide the done list")
}

func (c *ListCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	st := env.Store.State()

	if c.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(st); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.BackendError
		}
		return exitcode.Success
	}

	if len(st.Pending) == 0 && !env.Cfg.Quiet {
		fmt.Fprintln(out, "no tasks found")
	}
	for i, task := range st.Pending {
		output.FormatTask(out, i+1, task, st.Editing(i))
	}

	if c.pendingOnly || len(st.Done) == 0 {
		return exitcode.Success
	}

	output.FormatSectionHeader(out, output.DoneTitle)
	for i, task := range st.Done {
		output.FormatDoneTask(out, i+1, task)
	}
	return exitcode.Success
}
