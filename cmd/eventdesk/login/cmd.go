// Package logincmd implements the `eventdesk login` command.
package logincmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/eventdesk/cmd/eventdesk/shared"
)

// Command implements `eventdesk login`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	password string
}

// New creates the login command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "login <email>",
		Short: "Sign in",
		Args:  cobra.ExactArgs(1),
		RunE:  c.run,
	}
	c.cmd.Flags().StringVarP(&c.password, "password", "p", "", "Account password")
	_ = c.cmd.MarkFlagRequired("password")
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	svc, err := c.ctx.Open()
	if err != nil {
		return err
	}
	defer svc.Close()

	u, err := svc.Login(args[0], c.password)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", u.Name, u.Role)
	return nil
}
