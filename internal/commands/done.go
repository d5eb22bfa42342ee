package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskhub/internal/config"
	"taskhub/internal/exitcode"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command: it flips a task's completion
// state, in either direction.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Toggle a task's completion" }
func (c *DoneCmd) Usage() string     { return "taskhub done <id>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	id, ok := parseTaskID(args, errOut)
	if !ok {
		return exitcode.UserError
	}

	if err := deps.Store.EnsureLoaded(ctx); err != nil {
		return exitFor(err)
	}
	// A toggle on a task the store does not hold is a no-op; report it
	// instead of silently succeeding.
	if _, held := deps.Store.Get(id); !held {
		fmt.Fprintf(errOut, "error: no such task: %d\n", id)
		return exitcode.UserError
	}

	if err := deps.Store.ToggleComplete(ctx, id); err != nil {
		return exitFor(err)
	}
	return exitcode.Success
}
