// Package bookingscmd implements the `eventdesk bookings` command.
package bookingscmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/go-ports/eventdesk/cmd/eventdesk/shared"
	"github.com/go-ports/eventdesk/internal/models"
	"github.com/go-ports/eventdesk/internal/stats"
)

// Command implements `eventdesk bookings`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	all bool
}

// New creates the bookings command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "bookings",
		Short: "List your bookings",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	c.cmd.Flags().BoolVar(&c.all, "all", false, "List every user's bookings (admin)")
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

	var list []models.Booking
	if c.all {
		list, err = svc.AllBookings()
	} else {
		list, _, err = svc.MyBookings()
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(list) == 0 {
		fmt.Fprintln(out, "No bookings yet.")
		return nil
	}
	printBookings(out, list, c.all)

	sum := stats.SummarizeBookings(list)
	fmt.Fprintf(out, "\nTotal: %d | Confirmed: %d | Cancelled: %d | Spent: ₹%.2f\n",
		sum.Total, sum.Confirmed, sum.Cancelled, sum.Spent)
	return nil
}

func printBookings(out io.Writer, list []models.Booking, withUser bool) {
	for _, b := range list {
		fmt.Fprintf(out, "\n [%d] %s  %s\n", b.ID, b.EventTitle, b.Status)
		line := fmt.Sprintf("     Event date: %s | Booked: %s | ₹%.2f", b.EventDate, b.BookingDate, b.Price)
		if withUser {
			line += fmt.Sprintf(" | User: %d", b.UserID)
		}
		fmt.Fprintln(out, line)
	}
}
