package commands

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"taskboard/internal/exitcode"
	"taskboard/internal/gate"
)

func init() {
	Register(&ToggleCmd{})
}

// ToggleCmd flips a task between pending and completed.
type ToggleCmd struct{}

func (c *ToggleCmd) Name() string      { return "toggle" }
func (c *ToggleCmd) Aliases() []string { return []string{"done"} }
func (c *ToggleCmd) Synopsis() string  { return "Mark a task completed, or pending again" }
func (c *ToggleCmd) Usage() string     { return "taskboard toggle <n|task-id>" }
func (c *ToggleCmd) View() gate.View   { return gate.Dashboard }

func (c *ToggleCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *ToggleCmd) Run(ctx context.Context, env *Env, args []string) int {
	ref, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(env.ErrOut, "error: %v\n", err)
		return exitcode.UserError
	}

	st := env.TaskList()
	if code := loadTasks(ctx, env, st); code != exitcode.Success {
		return code
	}

	task, err := ResolveTaskRef(st, ref)
	if err != nil {
		fmt.Fprintf(env.ErrOut, "error: %v\n", err)
		return exitcode.UserError
	}

	updated, err := st.Toggle(ctx, task.ID)
	if err != nil {
		env.Config.Logger.Debug("toggle task failed", "id", task.ID, "err", err)
		return mutationExit(env, err)
	}
	// Completing already printed its notification.
	if !updated.Completed && !env.Config.Quiet {
		fmt.Fprintln(env.Out, "ok")
	}
	return exitcode.Success
}
