package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"taskpad/internal/exitcode"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command.
// It runs a whole edit session (begin, draft, commit) in one call.
type EditCmd struct{}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Replace the text of a pending task" }
func (c *EditCmd) Usage() string     { return "taskpad edit <n> <text...>" }
func (c *EditCmd) NeedsStore() bool  { return true }
func (c *EditCmd) NeedsAuth() bool   { return false }

func (c *EditCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *EditCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	ref, ok := parseRef(args, errOut)
	if !ok {
		return exitcode.UserError
	}

	text := strings.TrimSpace(strings.Join(ref.Rest, " "))
	if text == "" {
		fmt.Fprintln(errOut, "error: task text required")
		return exitcode.UserError
	}

	st := env.Store.State()
	idx := ref.Index()
	current := ""
	if idx >= 0 && idx < len(st.Pending) {
		current = st.Pending[idx].Text
	}

	if err := env.Store.BeginEdit(idx, current); err != nil {
		return storeError(errOut, err, ref)
	}
	if err := env.Store.UpdateDraft(text); err != nil {
		return storeError(errOut, err, ref)
	}
	if err := env.Store.CommitEdit(idx); err != nil {
		return storeError(errOut, err, ref)
	}

	if !env.Cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
