package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"taskboard/internal/exitcode"
	"taskboard/internal/gate"
	"taskboard/internal/output"
	"taskboard/internal/tasklist"
	"taskboard/internal/view"
)

func init() {
	Register(&ListCmd{})
	DefaultRegistry.SetScreen(gate.Dashboard, "list")
}

// ListCmd implements the list command. It is also the dashboard screen
// shown by `taskboard` with no arguments and after login.
type ListCmd struct {
	filter string
	search string
	format string
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string {
	return "taskboard list [--filter all|pending|completed] [--search <text>] [--format text|json|yaml]"
}
func (c *ListCmd) View() gate.View { return gate.Dashboard }

func (c *ListCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.filter, "filter", "f", string(view.ModeAll), "status filter: all, pending or completed")
	fs.StringVarP(&c.search, "search", "s", "", "only tasks whose title contains this text")
	fs.StringVar(&c.format, "format", string(output.FormatText), "output format: text, json or yaml")
}

func (c *ListCmd) Run(ctx context.Context, env *Env, args []string) int {
	mode, err := view.ParseMode(c.filter)
	if err != nil {
		fmt.Fprintf(env.ErrOut, "error: %v\n", err)
		return exitcode.UserError
	}
	format, err := output.ParseFormat(c.format)
	if err != nil {
		fmt.Fprintf(env.ErrOut, "error: %v\n", err)
		return exitcode.UserError
	}

	// Remaining args are a search shorthand: `taskboard list milk`.
	query := c.search
	if len(args) > 0 {
		query = strings.TrimSpace(query + " " + strings.Join(args, " "))
	}

	st := env.TaskList()
	if code := loadTasks(ctx, env, st); code != exitcode.Success {
		return code
	}

	all := st.Tasks()
	switch format {
	case output.FormatJSON:
		return writeStructured(env, output.WriteJSON(env.Out, view.Filter(all, mode, query)))
	case output.FormatYAML:
		return writeStructured(env, output.WriteYAML(env.Out, view.Filter(all, mode, query)))
	}

	output.FormatSummary(env.Out, st.Remaining())

	// Numbers are positions in the unfiltered list so they stay valid
	// as references for toggle and rm whatever the filter.
	q := strings.ToLower(query)
	shown := 0
	for i, task := range all {
		if !view.Matches(task, mode, q) {
			continue
		}
		output.FormatTask(env.Out, i+1, task)
		shown++
	}
	if shown == 0 && !env.Config.Quiet {
		fmt.Fprintln(env.Out, view.EmptyMessage(len(all)))
	}
	return exitcode.Success
}

// loadTasks mounts the task list. Load failures are already announced by
// the list's notifier.
func loadTasks(ctx context.Context, env *Env, st *tasklist.State) int {
	err := st.Load(ctx)
	if err == nil {
		return exitcode.Success
	}
	env.Config.Logger.Debug("load tasks failed", "err", err)
	if errors.Is(err, tasklist.ErrNotLoggedIn) {
		fmt.Fprintln(env.ErrOut, "error: not logged in (run: taskboard login)")
		return exitcode.AuthError
	}
	return exitcode.FromError(err)
}

func writeStructured(env *Env, err error) int {
	if err != nil {
		fmt.Fprintf(env.ErrOut, "error: write output: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}
