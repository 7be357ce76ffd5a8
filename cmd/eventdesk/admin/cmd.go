// Package admincmd implements the `eventdesk admin` command group.
package admincmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-ports/eventdesk/cmd/eventdesk/shared"
	"github.com/go-ports/eventdesk/internal/markdown"
)

// Command implements `eventdesk admin`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the admin command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "admin",
		Short: "Administrator views (requires an admin session)",
		RunE:  func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}
	c.cmd.AddCommand(
		newReport(ctx),
		newUsers(ctx),
	)
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

// ---------------------------------------------------------------------------
// admin report
// ---------------------------------------------------------------------------

func newReport(ctx *shared.Context) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the dashboard as a markdown report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := ctx.Open()
			if err != nil {
				return err
			}
			defer svc.Close()

			d, err := svc.Dashboard()
			if err != nil {
				return err
			}
			content, err := markdown.RenderDashboard(&d, time.Now())
			if err != nil {
				return err
			}
			if outPath == "" {
				fmt.Fprint(cmd.OutOrStdout(), content)
				return nil
			}
			if err := markdown.WriteReport(outPath, content); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the report to a file instead of stdout")
	return cmd
}

// ---------------------------------------------------------------------------
// admin users
// ---------------------------------------------------------------------------

func newUsers(ctx *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List registered users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := ctx.Open()
			if err != nil {
				return err
			}
			defer svc.Close()

			users, err := svc.Users()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE\tPASSWORD")
			for _, u := range users {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role, u.Password)
			}
			return tw.Flush()
		},
	}
}
