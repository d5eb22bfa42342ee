// Package main is the entry point for the taskhub CLI.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"taskhub/internal/api"
	"taskhub/internal/auth"
	"taskhub/internal/cli"
	"taskhub/internal/commands"
	"taskhub/internal/config"
	"taskhub/internal/notify"
	"taskhub/internal/store"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, newDeps)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}

// newDeps wires the real collaborators: file-backed token source,
// writer-backed notifier, the task service client, and a store on top.
func newDeps(ctx context.Context, cfg *config.Config, out, errOut io.Writer) (*commands.Deps, error) {
	logger := newLogger(cfg.Debug)
	src := auth.NewFileSource(cfg.TokenPath())
	notifier := &notify.Writer{Out: out, ErrOut: errOut, Quiet: cfg.Quiet}
	client := api.New(cfg.APIURL, src, notifier, logger)
	return &commands.Deps{
		Store:  store.New(client, logger),
		Client: client,
		Auth:   src,
		Notify: notifier,
	}, nil
}

func newLogger(debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}
