package commands

import (
	"context"
	"fmt"
	"io"

	log "github.com/go-pkgz/lgr"
	"github.com/spf13/pflag"

	"taskpad/internal/exitcode"
	"taskpad/internal/tui"
)

func init() {
	Register(&UICmd{})
}

// UICmd implements the ui command.
type UICmd struct{}

func (c *UICmd) Name() string      { return "ui" }
func (c *UICmd) Aliases() []string { return []string{"tui"} }
func (c *UICmd) Synopsis() string  { return "Open the interactive terminal view" }
func (c *UICmd) Usage() string     { return "taskpad ui" }
func (c *UICmd) NeedsStore() bool  { return true }
func (c *UICmd) NeedsAuth() bool   { return false }

func (c *UICmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	// the view owns the terminal; without a log file, logs are dropped
	if env.Cfg.LogFile == "" {
		log.Setup(log.Out(io.Discard), log.Err(io.Discard))
	}

	if err := tui.Run(env.Store); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
