// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"errors"
	"flag"
	"io"

	"taskhub/internal/api"
	"taskhub/internal/auth"
	"taskhub/internal/config"
	"taskhub/internal/exitcode"
	"taskhub/internal/notify"
	"taskhub/internal/store"
	"taskhub/internal/task"
)

// Deps bundles the collaborators a command works against. Commands talk
// to the store; the client and auth source are exposed for the commands
// that sit outside the task collection (login, whoami).
type Deps struct {
	Store  *store.Store
	Client *api.Client
	Auth   *auth.FileSource
	Notify notify.Notifier
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsAuth returns true if the command requires a stored session.
	// Commands like help, version, login, logout return false.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, service URL).
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int
}

// exitFor maps an error from the store or client to an exit code. Error
// text has already reached the user through the notifier, so callers only
// need the code.
func exitFor(err error) int {
	if err == nil {
		return exitcode.Success
	}
	var ve *task.ValidationError
	if errors.As(err, &ve) {
		return exitcode.UserError
	}
	if errors.Is(err, api.ErrUnauthenticated) {
		return exitcode.AuthError
	}
	var se *api.ServiceError
	if errors.As(err, &se) && (se.Status == 401 || se.Status == 403) {
		return exitcode.AuthError
	}
	return exitcode.BackendError
}
