// Package emailscmd implements the `eventdesk emails` command.
package emailscmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/eventdesk/cmd/eventdesk/shared"
)

// Command implements `eventdesk emails`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	limit int
	body  bool
}

// New creates the emails command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "emails",
		Short: "Show the sent email log, most recent first (admin)",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	f := c.cmd.Flags()
	f.IntVar(&c.limit, "limit", 20, "Maximum number of emails")
	f.BoolVar(&c.body, "body", false, "Include message bodies")
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

	emails, err := svc.SentEmails()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(emails) == 0 {
		fmt.Fprintln(out, "No emails sent.")
		return nil
	}
	if c.limit > 0 && len(emails) > c.limit {
		emails = emails[:c.limit]
	}
	for _, e := range emails {
		fmt.Fprintf(out, "\n %s  to %s\n     %s\n", e.Date, e.To, e.Subject)
		if c.body {
			fmt.Fprintf(out, "\n%s\n", e.Body)
		}
	}
	return nil
}
