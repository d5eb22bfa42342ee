package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"taskhub/internal/config"
	"taskhub/internal/exitcode"
)

func init() {
	Register(&WhoamiCmd{})
}

// WhoamiCmd prints the signed-in user. The profile comes from the
// service when reachable; the stored token's claims serve offline.
type WhoamiCmd struct{}

func (c *WhoamiCmd) Name() string      { return "whoami" }
func (c *WhoamiCmd) Aliases() []string { return nil }
func (c *WhoamiCmd) Synopsis() string  { return "Show the signed-in user" }
func (c *WhoamiCmd) Usage() string     { return "taskhub whoami" }
func (c *WhoamiCmd) NeedsAuth() bool   { return true }

func (c *WhoamiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WhoamiCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	claims, err := deps.Auth.Claims()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}

	if user, err := deps.Client.Me(ctx); err == nil {
		fmt.Fprintf(out, "%s <%s>\n", displayName(user, claims.Subject), user.Email)
		return exitcode.Success
	}

	name := claims.Name
	if name == "" {
		name = claims.Subject
	}
	fmt.Fprintln(out, name)
	if !claims.ExpiresAt.IsZero() && !cfg.Quiet {
		fmt.Fprintf(out, "session expires %s\n", claims.ExpiresAt.Format(time.RFC3339))
	}
	return exitcode.Success
}
