// Package cli parses the command line and dispatches to commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	log "github.com/go-pkgz/lgr"
	"github.com/spf13/pflag"

	"taskpad/internal/commands"
	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/service"
	"taskpad/internal/storage"
	"taskpad/internal/tasks"
)

// StoreFactory opens the task store described by cfg.
// Used to inject the store during dispatch.
type StoreFactory func(ctx context.Context, cfg *config.Config) (service.Service, error)

// RemoteFactory creates the remote import source.
type RemoteFactory func(ctx context.Context, cfg *config.Config) (service.Source, error)

// DefaultStoreFactory opens the configured key/value backend and hydrates a store from it.
func DefaultStoreFactory(_ context.Context, cfg *config.Config) (service.Service, error) {
	kv, err := storage.Open(cfg.StorageParams())
	if err != nil {
		return nil, err
	}
	return tasks.New(kv), nil
}

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	store    StoreFactory
	remote   RemoteFactory
}

// NewDispatcher creates a new dispatcher with the given registry and factories.
func NewDispatcher(registry *commands.Registry, store StoreFactory, remote RemoteFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		store:    store,
		remote:   remote,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> list
	if len(args) == 0 {
		return d.dispatch(ctx, "list", nil, out, errOut)
	}

	cmdName := args[0]

	// Flags require a command
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatch(ctx, cmdName, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := pflag.NewFlagSet(cmd.Name(), pflag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves
	fs.Usage = func() {}

	// Common flags
	var configDir string
	var quiet bool
	var debug bool

	fs.StringVar(&configDir, "config", "", "config directory")
	fs.BoolVarP(&quiet, "quiet", "q", false, "suppress informational output")
	fs.BoolVar(&debug, "debug", false, "enable debug logging")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintf(out, "Usage: %s\n\n%s\n", cmd.Usage(), cmd.Synopsis())
			return exitcode.Success
		}
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}

	cfg, err := config.New(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug
	config.SetupLogs(cfg, errOut)
	log.Printf("[DEBUG] command %s, config dir %s, storage %s", cmd.Name(), cfg.Dir, cfg.Storage)

	env := &commands.Env{Cfg: cfg}

	if cmd.NeedsAuth() {
		if code := d.openRemote(ctx, env, errOut); code != exitcode.Success {
			return code
		}
	}

	if cmd.NeedsStore() {
		if d.store == nil {
			fmt.Fprintln(errOut, "error: storage error: no store configured")
			return exitcode.BackendError
		}
		store, err := d.store(ctx, cfg)
		if err != nil {
			fmt.Fprintf(errOut, "error: storage error: %s\n", err)
			return exitcode.BackendError
		}
		if closer, ok := store.(io.Closer); ok {
			defer func() {
				if err := closer.Close(); err != nil {
					log.Printf("[WARN] close store: %v", err)
				}
			}()
		}
		env.Store = store
	}

	return cmd.Run(ctx, env, fs.Args(), out, errOut)
}

// openRemote checks the OAuth files and creates the remote source.
func (d *Dispatcher) openRemote(ctx context.Context, env *commands.Env, errOut io.Writer) int {
	cfg := env.Cfg
	if !cfg.HasOAuthClient() {
		fmt.Fprintf(errOut, "error: oauth_client.json not found in %s\n", cfg.Dir)
		return exitcode.AuthError
	}
	if !cfg.HasToken() {
		fmt.Fprintf(errOut, "error: not logged in (run: taskpad login)\n")
		return exitcode.AuthError
	}
	if d.remote == nil {
		fmt.Fprintln(errOut, "error: backend error: no remote source configured")
		return exitcode.BackendError
	}

	remote, err := d.remote(ctx, cfg)
	if err != nil {
		if strings.Contains(err.Error(), "token") || strings.Contains(err.Error(), "auth") {
			fmt.Fprintf(errOut, "error: auth error: %s\n", err)
			return exitcode.AuthError
		}
		fmt.Fprintf(errOut, "error: backend error: %s\n", err)
		return exitcode.BackendError
	}
	env.Remote = remote
	return exitcode.Success
}
