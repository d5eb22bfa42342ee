package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"taskhub/internal/api"
	"taskhub/internal/config"
	"taskhub/internal/exitcode"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command: sign in with email and
// password, store the issued session token.
type LoginCmd struct {
	email    string
	password string
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return []string{"signin"} }
func (c *LoginCmd) Synopsis() string  { return "Sign in to the task service" }
func (c *LoginCmd) Usage() string     { return "taskhub login --email <email> --password <password>" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.password, "password", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, deps *Deps, args []string, out, errOut io.Writer) int {
	if c.email == "" || c.password == "" {
		fmt.Fprintln(errOut, "error: --email and --password required")
		return exitcode.UserError
	}

	token, user, err := deps.Client.SignIn(ctx, c.email, c.password)
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
		fmt.Fprintf(out, "Signed in as %s\n", displayName(user, c.email))
	}
	return exitcode.Success
}

// authFailure reports a sign-in/sign-up error. A rejected credential is
// an auth error; anything else is the service's fault.
func authFailure(err error, errOut io.Writer) int {
	fmt.Fprintf(errOut, "error: %v\n", err)
	var ne *api.NetworkError
	if errors.As(err, &ne) {
		return exitcode.BackendError
	}
	var se *api.ServiceError
	if errors.As(err, &se) && se.Status >= 500 {
		return exitcode.BackendError
	}
	return exitcode.AuthError
}

func displayName(user api.User, fallback string) string {
	if user.Name != "" {
		return user.Name
	}
	if user.Email != "" {
		return user.Email
	}
	return fallback
}
