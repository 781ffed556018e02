package commands

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"taskboard/internal/exitcode"
	"taskboard/internal/gate"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "taskboard rm <n|task-id>" }
func (c *RmCmd) View() gate.View   { return gate.Dashboard }

func (c *RmCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, env *Env, args []string) int {
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

	if err := st.Delete(ctx, task.ID); err != nil {
		env.Config.Logger.Debug("delete task failed", "id", task.ID, "err", err)
		return mutationExit(env, err)
	}
	return exitcode.Success
}
