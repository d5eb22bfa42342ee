package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskhub/internal/config"
	"taskhub/internal/dates"
	"taskhub/internal/exitcode"
	"taskhub/internal/task"
)

func init() {
	Register(&EditCmd{})
}

// flagUnset marks a string flag the user did not pass, so an explicit
// empty value stays distinguishable from an absent one.
const flagUnset = "\x00unset"

// EditCmd implements the edit command: a partial update of one task.
type EditCmd struct {
	title    string
	desc     string
	priority string
	due      string
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Edit a task" }
func (c *EditCmd) Usage() string {
	return "taskhub edit [--title <t>] [--desc <text>] [--priority low|medium|high] [--due YYYY-MM-DD] <id>"
}
func (c *EditCmd) NeedsAuth() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.title, "title", flagUnset, "")
	fs.StringVar(&c.desc, "desc", flagUnset, "")
	fs.StringVar(&c.priority, "priority", flagUnset, "")
	fs.StringVar(&c.priority, "p", flagUnset, "")
	fs.StringVar(&c.due, "due", flagUnset, "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	id, ok := parseTaskID(args, errOut)
	if !ok {
		return exitcode.UserError
	}

	patch := task.Patch{}
	if c.title != flagUnset {
		v := c.title
		patch.Title = &v
	}
	if c.desc != flagUnset {
		v := c.desc
		patch.Description = &v
	}
	if c.priority != flagUnset {
		v := c.priority
		patch.Priority = &v
	}
	if c.due != flagUnset {
		due, dok := dates.ToRequestDate(c.due)
		if !dok {
			fmt.Fprintf(errOut, "error: invalid due date (want YYYY-MM-DD): %s\n", c.due)
			return exitcode.UserError
		}
		patch.DueDate = &due
	}
	if patch == (task.Patch{}) {
		fmt.Fprintln(errOut, "error: nothing to update")
		return exitcode.UserError
	}

	if err := deps.Store.EnsureLoaded(ctx); err != nil {
		return exitFor(err)
	}
	if err := deps.Store.Update(ctx, id, patch); err != nil {
		return exitFor(err)
	}
	return exitcode.Success
}
