package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskhub/internal/config"
	"taskhub/internal/dates"
	"taskhub/internal/exitcode"
	"taskhub/internal/task"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	desc     string
	priority string
	due      string
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "taskhub add [--desc <text>] [--priority low|medium|high] [--due YYYY-MM-DD] <title...>"
}
func (c *AddCmd) NeedsAuth() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.desc, "desc", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.priority, "p", "", "")
	fs.StringVar(&c.due, "due", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	draft := task.Draft{
		Title:       title,
		Description: c.desc,
		Priority:    c.priority,
	}
	if c.due != "" {
		due, ok := dates.ToRequestDate(c.due)
		if !ok {
			fmt.Fprintf(errOut, "error: invalid due date (want YYYY-MM-DD): %s\n", c.due)
			return exitcode.UserError
		}
		draft.DueDate = due
	}

	if _, err := deps.Store.Create(ctx, draft); err != nil {
		return exitFor(err)
	}
	return exitcode.Success
}
