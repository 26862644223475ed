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
	Register(&ImportCmd{})
}

// ImportCmd implements the import command: a one-shot copy of open Google
// Tasks into the pending list. Tasks whose text is already pending are skipped
// unless --all is given.
type ImportCmd struct {
	dryRun bool
	all    bool
}

// SetDryRun sets dry-run mode (for testing).
func (c *ImportCmd) SetDryRun(v bool) { c.dryRun = v }

// SetAll disables duplicate skipping (for testing).
func (c *ImportCmd) SetAll(v bool) { c.all = v }

func (c *ImportCmd) Name() string      { return "import" }
func (c *ImportCmd) Aliases() []string { return nil }
func (c *ImportCmd) Synopsis() string  { return "Copy open Google Tasks into the pending list" }
func (c *ImportCmd) Usage() string     { return "taskpad import [--dry-run] [--all]" }
func (c *ImportCmd) NeedsStore() bool  { return true }
func (c *ImportCmd) NeedsAuth() bool   { return true }

func (c *ImportCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&c.dryRun, "dry-run", "n", false, "print what would be imported")
	fs.BoolVar(&c.all, "all", false, "import tasks already pending too")
}

func (c *ImportCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	remote, err := env.Remote.OpenTasks(ctx)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	seen := make(map[string]bool)
	if !c.all {
		for _, t := range env.Store.State().Pending {
			seen[strings.TrimSpace(t.Text)] = true
		}
	}

	imported := 0
	for _, rt := range remote {
		text := strings.TrimSpace(rt.Title)
		if text == "" || seen[text] {
			continue
		}
		seen[text] = !c.all

		if c.dryRun {
			fmt.Fprintf(out, "+ %s\n", text)
			imported++
			continue
		}
		if err := env.Store.Add(text); err != nil {
			fmt.Fprintf(errOut, "error: storage error: %v\n", err)
			return exitcode.BackendError
		}
		imported++
	}

	if env.Cfg.Quiet {
		return exitcode.Success
	}
	verb := "imported"
	if c.dryRun {
		verb = "would import"
	}
	fmt.Fprintf(out, "%s %d of %d tasks\n", verb, imported, len(remote))
	return exitcode.Success
}
