// Package bookcmd implements the `eventdesk book` command.
package bookcmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/go-ports/eventdesk/cmd/eventdesk/shared"
	"github.com/go-ports/eventdesk/internal/session"
)

// Command implements `eventdesk book`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the book command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "book <event-id>",
		Short: "Book an event for the signed-in user",
		Args:  cobra.ExactArgs(1),
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid event id %q", args[0])
	}

	svc, err := c.ctx.Open()
	if err != nil {
		return err
	}
	// Close waits for the confirmation email.
	defer svc.Close()

	b, err := svc.AddBooking(cmd.Context(), id)
	if errors.Is(err, session.ErrAuthRequired) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Please login first to book an event!")
		return err
	}
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✅ Successfully booked %s!\n", b.EventTitle)
	fmt.Fprintf(out, "Booking ID: %d\n", b.ID)
	return nil
}
