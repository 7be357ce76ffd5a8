// Package cancelcmd implements the `eventdesk cancel` command.
package cancelcmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/go-ports/eventdesk/cmd/eventdesk/shared"
)

// Command implements `eventdesk cancel`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the cancel command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "cancel <booking-id>",
		Short: "Cancel a booking",
		Args:  cobra.ExactArgs(1),
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid booking id %q", args[0])
	}

	svc, err := c.ctx.Open()
	if err != nil {
		return err
	}
	defer svc.Close()

	b, ok, err := svc.CancelBooking(id)
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintf(cmd.OutOrStdout(), "Cancelled booking %d (%s)\n", b.ID, b.EventTitle)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "No booking found with id %d\n", id)
	}
	return nil
}
