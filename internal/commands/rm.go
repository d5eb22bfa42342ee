package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"

	"taskhub/internal/config"
	"taskhub/internal/exitcode"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command. The local record is dropped only
// after the service confirms the delete.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "taskhub rm <id>" }
func (c *RmCmd) NeedsAuth() bool   { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	id, ok := parseTaskID(args, errOut)
	if !ok {
		return exitcode.UserError
	}
	if err := deps.Store.Remove(ctx, id); err != nil {
		return exitFor(err)
	}
	return exitcode.Success
}

// parseTaskID reads the one positional task id argument.
func parseTaskID(args []string, errOut io.Writer) (int, bool) {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: task id required")
		return 0, false
	}
	if len(args) > 1 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[1])
		return 0, false
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id < 1 {
		fmt.Fprintf(errOut, "error: invalid task id: %s\n", args[0])
		return 0, false
	}
	return id, true
}
