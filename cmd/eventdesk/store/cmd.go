// Package storecmd implements the `eventdesk store` command.
package storecmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/go-ports/eventdesk/cmd/eventdesk/shared"
)

// Command implements `eventdesk store`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the store command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "store",
		Short: "List the storage slots in the data home",
		Args:  cobra.NoArgs,
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

	slots, err := svc.Slots()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(slots) == 0 {
		fmt.Fprintln(out, "Store is empty. Run `eventdesk init` to seed it.")
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tBYTES\tWRITES\tUPDATED")
	for _, s := range slots {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", s.Key, s.Size, s.WriteCount, s.UpdatedAt)
	}
	return tw.Flush()
}
