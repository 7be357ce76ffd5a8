// Package subscribecmd implements the `eventdesk subscribe` command.
package subscribecmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/eventdesk/cmd/eventdesk/shared"
)

// Command implements `eventdesk subscribe`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the subscribe command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "subscribe <email>",
		Short: "Subscribe to the newsletter",
		Args:  cobra.ExactArgs(1),
		RunE:  c.run,
	}
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

	added, err := svc.Subscribe(args[0])
	if err != nil {
		return err
	}
	if added {
		fmt.Fprintln(cmd.OutOrStdout(), "Thanks for subscribing!")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "Already subscribed.")
	}
	return nil
}
