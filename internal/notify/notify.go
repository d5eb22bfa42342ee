// Package notify delivers user-facing transient notifications.
package notify

import (
	"fmt"
	"io"
)

// Notifier receives one-line success and error notifications. The task
// service client emits one for every mutating call.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Writer prints notifications as plain lines, errors prefixed.
type Writer struct {
	Out    io.Writer
	ErrOut io.Writer
	// Quiet suppresses success notifications only; errors always print.
	Quiet bool
}

func (w *Writer) Success(msg string) {
	if w.Quiet {
		return
	}
	fmt.Fprintln(w.Out, msg)
}

func (w *Writer) Error(msg string) {
	fmt.Fprintf(w.ErrOut, "error: %s\n", msg)
}

// Discard drops all notifications.
type Discard struct{}

func (Discard) Success(string) {}
func (Discard) Error(string)   {}
