// Package cli turns command-line arguments into a command run behind the
// route gate.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"taskboard/internal/commands"
	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/gate"
	"taskboard/internal/logging"
	"taskboard/internal/service"
	"taskboard/internal/session"
)

// ServiceFactory creates a Service from config.
// Used to inject the backend during dispatch.
type ServiceFactory func(ctx context.Context, cfg *config.Config) (service.Service, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory
	in       io.Reader
}

// NewDispatcher creates a new dispatcher with the given registry and service factory.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// WithInput sets where login and register prompt for missing values.
func (d *Dispatcher) WithInput(in io.Reader) *Dispatcher {
	d.in = in
	return d
}

// globalFlags are accepted by every command.
type globalFlags struct {
	configDir string
	apiURL    string
	quiet     bool
	debug     bool
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		name := args[0]
		// Flags require a command.
		if strings.HasPrefix(name, "-") {
			fmt.Fprintf(errOut, "error: unknown command: %s\n", name)
			return exitcode.UserError
		}
		if _, ok := d.registry.Find(name); !ok {
			fmt.Fprintf(errOut, "error: unknown command: %s\n", name)
			return exitcode.UserError
		}
	}

	code := exitcode.Success
	root := d.newRoot(&code, out, errOut)
	if args == nil {
		// cobra falls back to os.Args on nil.
		args = []string{}
	}
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return code
}

// newRoot builds a fresh cobra tree for one Run. Registering the flags
// again resets every command's flag fields to their defaults.
func (d *Dispatcher) newRoot(code *int, out, errOut io.Writer) *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:           config.AppName,
		Short:         "Manage your tasks on a taskboard server",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(c *cobra.Command, args []string) error {
			*code = d.execute(c.Context(), nil, gate.Root, nil, flags, out, errOut)
			return nil
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetHelpFunc(func(*cobra.Command, []string) {
		commands.WriteHelp(out, d.registry)
	})

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configDir, "config", "", "config directory")
	pf.StringVar(&flags.apiURL, "api-url", "", "task server base URL")
	pf.BoolVar(&flags.quiet, "quiet", false, "suppress informational output")
	pf.BoolVar(&flags.debug, "debug", false, "print debug logs to stderr")

	for _, cmd := range d.registry.All() {
		cc := &cobra.Command{
			Use:           cmd.Name(),
			Aliases:       cmd.Aliases(),
			Short:         cmd.Synopsis(),
			Args:          cobra.ArbitraryArgs,
			SilenceUsage:  true,
			SilenceErrors: true,
			RunE: func(c *cobra.Command, args []string) error {
				*code = d.execute(c.Context(), cmd, cmd.View(), args, flags, out, errOut)
				return nil
			},
		}
		cmd.RegisterFlags(cc.Flags())

		if cmd.Name() == "help" {
			root.SetHelpCommand(cc)
			continue
		}
		root.AddCommand(cc)
	}
	return root
}

// execute sets up config, logging and the session, then renders whatever
// the gate decides for the requested view. cmd is nil for the root view.
func (d *Dispatcher) execute(ctx context.Context, cmd commands.Command, requested gate.View, args []string, flags globalFlags, out, errOut io.Writer) int {
	cfg, err := config.New(flags.configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = flags.quiet
	cfg.Debug = flags.debug
	if flags.apiURL != "" {
		cfg.APIBaseURL = config.NormalizeBaseURL(flags.apiURL)
	}
	cfg.Logger = logging.New(errOut, cfg.Debug)

	sess := session.Open(session.NewStore(cfg.SessionPath()), cfg.Logger)
	env := &commands.Env{
		Config:  cfg,
		Session: sess,
		In:      d.in,
		Out:     out,
		ErrOut:  errOut,
	}
	defer env.Close()
	return d.navigate(ctx, env, gate.New(sess), cmd, requested, args)
}

// navigate passes the requested view through the gate and runs the
// command that renders the outcome.
func (d *Dispatcher) navigate(ctx context.Context, env *commands.Env, g *gate.Gate, cmd commands.Command, requested gate.View, args []string) int {
	log := env.Config.Logger
	dec := g.Navigate(requested)
	log.Debug("navigate", "requested", requested, "view", dec.View, "redirected", dec.Redirected)

	if dec.Redirected {
		switch dec.View {
		case gate.Login:
			fmt.Fprintf(env.ErrOut, "error: not logged in (run: %s login)\n", config.AppName)
			return exitcode.AuthError
		case gate.Dashboard:
			if requested == gate.Login || requested == gate.Register {
				if !env.Config.Quiet {
					fmt.Fprintln(env.Out, "already logged in")
				}
			}
		}
		return d.renderScreen(ctx, env, g, dec.View)
	}
	return d.render(ctx, env, g, cmd, args)
}

// renderScreen runs the command registered as the screen for view.
func (d *Dispatcher) renderScreen(ctx context.Context, env *commands.Env, g *gate.Gate, view gate.View) int {
	screen, ok := d.registry.Screen(view)
	if !ok {
		fmt.Fprintf(env.ErrOut, "error: no screen for %s\n", view)
		return exitcode.UserError
	}
	return d.render(ctx, env, g, screen, nil)
}

// render runs cmd, creating the backend first unless the view is public.
func (d *Dispatcher) render(ctx context.Context, env *commands.Env, g *gate.Gate, cmd commands.Command, args []string) int {
	if cmd.View() != gate.Public && env.Service == nil {
		svc, err := d.newService(ctx, env.Config)
		if err != nil {
			fmt.Fprintf(env.ErrOut, "error: %v\n", err)
			return exitcode.BackendError
		}
		env.Service = svc
	}

	code := cmd.Run(ctx, env, args)
	if code != exitcode.Success {
		return code
	}

	// A form that changed the login state hands over to wherever the
	// gate now sends it.
	if v := cmd.View(); v == gate.Login || v == gate.Register {
		if next := g.Navigate(v); next.Redirected {
			env.Config.Logger.Debug("navigate", "requested", v, "view", next.View, "redirected", true)
			return d.renderScreen(ctx, env, g, next.View)
		}
	}
	return code
}

func (d *Dispatcher) newService(ctx context.Context, cfg *config.Config) (service.Service, error) {
	if d.factory == nil {
		return nil, fmt.Errorf("no backend configured")
	}
	svc, err := d.factory(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("backend error: %w", err)
	}
	return svc, nil
}
