// Package profilecmd implements the `eventdesk profile` command.
package profilecmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/eventdesk/cmd/eventdesk/shared"
	"github.com/go-ports/eventdesk/internal/models"
	"github.com/go-ports/eventdesk/internal/session"
)

// Command implements `eventdesk profile`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	name  string
	email string
	phone string
}

// New creates the profile command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "profile",
		Short: "Show or edit the signed-in user's profile",
		Long:  "Without flags, shows the profile and booking totals. Flags that are set replace the matching field.",
		RunE:  c.run,
	}

	f := c.cmd.Flags()
	f.StringVar(&c.name, "name", "", "New display name")
	f.StringVar(&c.email, "email", "", "New email (also the login)")
	f.StringVar(&c.phone, "phone", "", "New phone number")

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

	u, ok := svc.CurrentUser()
	if !ok {
		return session.ErrAuthRequired
	}

	f := cmd.Flags()
	if f.Changed("name") || f.Changed("email") || f.Changed("phone") {
		in := models.ProfileInput{Name: u.Name, Email: u.Email, Phone: u.Phone}
		if f.Changed("name") {
			in.Name = c.name
		}
		if f.Changed("email") {
			in.Email = c.email
		}
		if f.Changed("phone") {
			in.Phone = c.phone
		}
		if u, err = svc.UpdateProfile(in); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Profile updated.")
	}

	_, sum, err := svc.MyBookings()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Name:  %s\n", u.Name)
	fmt.Fprintf(out, "Email: %s\n", u.Email)
	if u.Phone != "" {
		fmt.Fprintf(out, "Phone: %s\n", u.Phone)
	}
	fmt.Fprintf(out, "Role:  %s\n", u.Role)
	fmt.Fprintf(out, "Bookings: %d total, %d confirmed, %d cancelled\n", sum.Total, sum.Confirmed, sum.Cancelled)
	return nil
}
