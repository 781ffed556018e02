// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"io"

	"github.com/spf13/pflag"

	"taskboard/internal/config"
	"taskboard/internal/gate"
	"taskboard/internal/output"
	"taskboard/internal/service"
	"taskboard/internal/session"
	"taskboard/internal/tasklist"
)

// Env is what a command runs against.
type Env struct {
	// Config is always provided.
	Config *config.Config

	// Session is the login state, opened once per process.
	Session *session.Session

	// Service is nil for Public views.
	Service service.Service

	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer

	tasks *tasklist.State
}

// Notifier returns the transient message printer for this run.
func (e *Env) Notifier() *output.Notifier {
	return output.NewNotifier(e.Out, e.ErrOut, e.Config.Quiet)
}

// TaskList returns the task list state for the logged-in user, creating
// it on first use.
func (e *Env) TaskList() *tasklist.State {
	if e.tasks == nil {
		e.tasks = tasklist.New(e.Service, e.Session, e.Notifier())
	}
	return e.tasks
}

// Close releases the task list, if one was created.
func (e *Env) Close() {
	if e.tasks != nil {
		e.tasks.Close()
		e.tasks = nil
	}
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// View returns the navigation target the command renders. The
	// dispatcher passes it through the route gate before Run.
	View() gate.View

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *pflag.FlagSet)

	// Run executes the command.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, env *Env, args []string) int
}
