// Package whoamicmd implements the `eventdesk whoami` command.
package whoamicmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/eventdesk/cmd/eventdesk/shared"
)

// Command implements `eventdesk whoami`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the whoami command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	svc, err := c.ctx.Open()
	if err != nil {
		return err
	}
	defer svc.Close()

	out := cmd.OutOrStdout()
	u, ok := svc.CurrentUser()
	if !ok {
		fmt.Fprintln(out, "Not signed in.")
		return nil
	}
	fmt.Fprintf(out, "%s <%s> (%s)\n", u.Name, u.Email, u.Role)
	return nil
}
