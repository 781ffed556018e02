package commands

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"taskboard/internal/exitcode"
	"taskboard/internal/gate"
	"taskboard/internal/service"
)

func init() {
	Register(&RegisterCmd{})
}

// RegisterCmd implements the register command.
type RegisterCmd struct {
	username string
	password string
}

func (c *RegisterCmd) Name() string      { return "register" }
func (c *RegisterCmd) Aliases() []string { return []string{"signup"} }
func (c *RegisterCmd) Synopsis() string  { return "Create an account" }
func (c *RegisterCmd) Usage() string {
	return "taskboard register [--username <name>] [--password <password>]"
}
func (c *RegisterCmd) View() gate.View { return gate.Register }

func (c *RegisterCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.username, "username", "u", "", "account name")
	fs.StringVar(&c.password, "password", "", "account password (prompted when omitted)")
}

func (c *RegisterCmd) Run(ctx context.Context, env *Env, args []string) int {
	if len(args) > 0 {
		fmt.Fprintf(env.ErrOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	username, password, err := credentials(env, c.username, c.password)
	if err != nil {
		fmt.Fprintf(env.ErrOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if err := env.Service.Register(ctx, username, password); err != nil {
		env.Config.Logger.Debug("register failed", "username", username, "err", err)
		env.Notifier().Error(service.Message(err, MsgRegisterFailed))
		return exitcode.FromError(err)
	}

	n := env.Notifier()
	n.Success(MsgRegistered)
	n.Success(fmt.Sprintf("run: taskboard login --username %s", username))
	return exitcode.Success
}
