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
	Register(&SignupCmd{})
}

// SignupCmd implements the signup command: register an account and sign
// in with the issued token.
type SignupCmd struct {
	name     string
	email    string
	password string
}

func (c *SignupCmd) Name() string      { return "signup" }
func (c *SignupCmd) Aliases() []string { return nil }
func (c *SignupCmd) Synopsis() string  { return "Create an account" }
func (c *SignupCmd) Usage() string {
	return "taskhub signup --name <name> --email <email> --password <password>"
}
func (c *SignupCmd) NeedsAuth() bool { return false }

func (c *SignupCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.name, "name", "", "")
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.password, "password", "", "")
}

func (c *SignupCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	if c.email == "" || c.password == "" {
		fmt.Fprintln(errOut, "error: --email and --password required")
		return exitcode.UserError
	}

	token, user, err := deps.Client.SignUp(ctx, c.name, c.email, c.password)
	if err != nil {
		return authFailure(err, errOut)
	}

	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.AuthError
	}
	if err := deps.Auth.Save(token); err != nil {
		fmt.Fprintf(errOut, "error: failed to save token: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "Signed up as %s\n", displayName(user, c.email))
	}
	return exitcode.Success
}
