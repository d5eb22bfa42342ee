package commands

import (
	"context"
	"flag"
	"io"

	"taskhub/internal/config"
	"taskhub/internal/exitcode"
	"taskhub/internal/output"
)

func init() {
	Register(&StatsCmd{})
}

// StatsCmd prints collection counts.
type StatsCmd struct{}

func (c *StatsCmd) Name() string      { return "stats" }
func (c *StatsCmd) Aliases() []string { return nil }
func (c *StatsCmd) Synopsis() string  { return "Show task counts" }
func (c *StatsCmd) Usage() string     { return "taskhub stats" }
func (c *StatsCmd) NeedsAuth() bool   { return true }

func (c *StatsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StatsCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	if err := deps.Store.EnsureLoaded(ctx); err != nil {
		return exitFor(err)
	}
	output.FormatStats(out, deps.Store.Stats())
	return exitcode.Success
}
