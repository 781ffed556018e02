package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"taskboard/internal/exitcode"
	"taskboard/internal/gate"
	"taskboard/internal/service"
	"taskboard/internal/tasklist"
)

// DueDateLayout is the accepted --due format.
const DueDateLayout = "2006-01-02"

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	priority string
	due      string
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "taskboard add [--priority low|medium|high] [--due YYYY-MM-DD] <title...>"
}
func (c *AddCmd) View() gate.View { return gate.Dashboard }

func (c *AddCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.priority, "priority", "p", string(service.DefaultPriority), "Low, Medium or High")
	fs.StringVar(&c.due, "due", "", "due date (YYYY-MM-DD)")
}

func (c *AddCmd) Run(ctx context.Context, env *Env, args []string) int {
	title := strings.Join(args, " ")
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(env.ErrOut, "error: title required")
		return exitcode.UserError
	}

	priority, err := service.ParsePriority(c.priority)
	if err != nil {
		fmt.Fprintf(env.ErrOut, "error: %v\n", err)
		return exitcode.UserError
	}

	due := strings.TrimSpace(c.due)
	if due != "" {
		if _, err := time.Parse(DueDateLayout, due); err != nil {
			fmt.Fprintf(env.ErrOut, "error: invalid due date: %s (want YYYY-MM-DD)\n", c.due)
			return exitcode.UserError
		}
	}

	st := env.TaskList()
	if _, err := st.Add(ctx, title, priority, due); err != nil {
		env.Config.Logger.Debug("add task failed", "err", err)
		return mutationExit(env, err)
	}
	return exitcode.Success
}

// mutationExit maps a failed list mutation to an exit code. Server
// failures were already announced by the list's notifier.
func mutationExit(env *Env, err error) int {
	switch {
	case errors.Is(err, tasklist.ErrTitleRequired):
		fmt.Fprintln(env.ErrOut, "error: title required")
		return exitcode.UserError
	case errors.Is(err, tasklist.ErrNotLoggedIn):
		fmt.Fprintln(env.ErrOut, "error: not logged in (run: taskboard login)")
		return exitcode.AuthError
	case errors.Is(err, tasklist.ErrTaskNotFound):
		fmt.Fprintf(env.ErrOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.FromError(err)
}
