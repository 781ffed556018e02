package commands

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"taskboard/internal/exitcode"
	"taskboard/internal/gate"
	"taskboard/internal/service"
)

// Form notifications.
const (
	MsgWelcome        = "Welcome back!"
	MsgLoginFailed    = "Login failed"
	MsgRegistered     = "Registration successful!"
	MsgRegisterFailed = "Registration failed"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	username string
	password string
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Log in to the task server" }
func (c *LoginCmd) Usage() string {
	return "taskboard login [--username <name>] [--password <password>]"
}
func (c *LoginCmd) View() gate.View { return gate.Login }

func (c *LoginCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.username, "username", "u", "", "account name")
	fs.StringVar(&c.password, "password", "", "account password (prompted when omitted)")
}

func (c *LoginCmd) Run(ctx context.Context, env *Env, args []string) int {
	if len(args) > 0 {
		fmt.Fprintf(env.ErrOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	username, password, err := credentials(env, c.username, c.password)
	if err != nil {
		fmt.Fprintf(env.ErrOut, "error: %v\n", err)
		return exitcode.UserError
	}

	userID, err := env.Service.Authenticate(ctx, username, password)
	if err != nil {
		env.Config.Logger.Debug("login failed", "username", username, "err", err)
		env.Notifier().Error(service.Message(err, MsgLoginFailed))
		return exitcode.FromError(err)
	}

	if err := env.Session.Login(userID); err != nil {
		fmt.Fprintf(env.ErrOut, "error: save session: %v\n", err)
		return exitcode.UserError
	}

	env.Notifier().Success(MsgWelcome)
	return exitcode.Success
}
