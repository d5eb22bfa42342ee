package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"taskhub/internal/api"
	"taskhub/internal/config"
	"taskhub/internal/exitcode"
	"taskhub/internal/output"
	"taskhub/internal/store"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskhub` (no args) and `taskhub list`.
type ListCmd struct {
	filter string
	status string
	sort   string
}

// SetFilter sets the view filter (for testing).
func (c *ListCmd) SetFilter(filter string) {
	c.filter = filter
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string {
	return "taskhub list [--filter all|active|complete] [--status <s>] [--sort <s>]"
}
func (c *ListCmd) NeedsAuth() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", "", "")
	fs.StringVar(&c.filter, "f", "", "")
	fs.StringVar(&c.status, "status", "", "")
	fs.StringVar(&c.sort, "sort", "", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	switch c.filter {
	case "", string(store.FilterAll), string(store.FilterActive), string(store.FilterComplete):
	default:
		fmt.Fprintf(errOut, "error: invalid filter: %s\n", c.filter)
		return exitcode.UserError
	}
	if c.filter != "" {
		deps.Store.SetFilter(store.Filter(c.filter))
	}

	// --status and --sort are server-side list parameters; the filter
	// above only narrows the local view.
	var err error
	if c.status != "" || c.sort != "" {
		err = deps.Store.FetchWith(ctx, api.ListParams{Status: c.status, Sort: c.sort})
	} else {
		err = deps.Store.EnsureLoaded(ctx)
	}
	if err != nil {
		return exitFor(err)
	}

	tasks := deps.Store.Tasks()
	if len(tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "No tasks")
		}
		return exitcode.Success
	}

	now := time.Now()
	for i, t := range tasks {
		output.FormatTask(out, i+1, t, now)
	}
	return exitcode.Success
}
