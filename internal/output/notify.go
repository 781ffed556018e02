package output

import (
	"fmt"
	"io"
)

// Notifier prints transient status messages. Successes go to out and are
// suppressed in quiet mode; errors always go to errOut.
type Notifier struct {
	out    io.Writer
	errOut io.Writer
	quiet  bool
}

// NewNotifier creates a Notifier.
func NewNotifier(out, errOut io.Writer, quiet bool) *Notifier {
	return &Notifier{out: out, errOut: errOut, quiet: quiet}
}

// Success prints msg unless quiet.
func (n *Notifier) Success(msg string) {
	if !n.quiet {
		fmt.Fprintln(n.out, msg)
	}
}

// Error prints "error: msg".
func (n *Notifier) Error(msg string) {
	fmt.Fprintf(n.errOut, "error: %s\n", msg)
}
