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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskhub help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskhub                                            List tasks
  taskhub list [common flags] [--filter all|active|complete] [--status <s>] [--sort <s>]
  taskhub add [common flags] [--desc <text>] [--priority low|medium|high] [--due YYYY-MM-DD] <title...>
  taskhub edit [common flags] [--title <t>] [--desc <text>] [--priority <p>] [--due YYYY-MM-DD] <id>
  taskhub done [common flags] <id>
  taskhub rm [common flags] <id>
  taskhub stats [common flags]
  taskhub login [common flags] --email <email> --password <password>
  taskhub signup [common flags] --name <name> --email <email> --password <password>
  taskhub logout [common flags]
  taskhub whoami [common flags]
  taskhub help
  taskhub version

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
