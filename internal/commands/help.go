package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"taskboard/internal/exitcode"
	"taskboard/internal/gate"
)

func init() {
	Register(&HelpCmd{registry: DefaultRegistry})
}

// HelpCmd implements the help command.
type HelpCmd struct {
	registry *Registry
}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskboard help" }
func (c *HelpCmd) View() gate.View   { return gate.Public }

func (c *HelpCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, env *Env, args []string) int {
	r := c.registry
	if r == nil {
		r = DefaultRegistry
	}
	WriteHelp(env.Out, r)
	return exitcode.Success
}

// WriteHelp prints usage for every command in r.
func WriteHelp(w io.Writer, r *Registry) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %-40s %s\n", "taskboard", "Show tasks, or the login hint when logged out")
	for _, cmd := range r.All() {
		fmt.Fprintf(w, "  %-40s %s\n", "taskboard "+cmd.Name(), cmd.Synopsis())
	}
	fmt.Fprint(w, helpFooter)
}

const helpFooter = `
Tasks are referenced by their number in ` + "`taskboard list`" + ` or by id.

Common flags:
  --config <dir>    Override config directory
  --api-url <url>   Override the task server base URL
  --quiet           Suppress informational output
  --debug           Print debug logs to stderr
`
