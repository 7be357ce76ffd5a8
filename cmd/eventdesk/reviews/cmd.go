// Package reviewscmd implements the `eventdesk reviews` command group.
package reviewscmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/go-ports/eventdesk/cmd/eventdesk/shared"
	"github.com/go-ports/eventdesk/internal/models"
)

// Command implements `eventdesk reviews`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the reviews command group. `reviews <event-id>` lists reviews.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "reviews <event-id>",
		Short: "List, add or delete event reviews",
		Args:  cobra.ExactArgs(1),
		RunE:  c.runList,
	}
	c.cmd.AddCommand(
		newAdd(ctx),
		newDelete(ctx),
	)
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) runList(cmd *cobra.Command, args []string) error {
	eventID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid event id %q", args[0])
	}
	svc, err := c.ctx.Open()
	if err != nil {
		return err
	}
	defer svc.Close()

	out := cmd.OutOrStdout()
	revs := svc.ReviewsForEvent(eventID)
	if len(revs) == 0 {
		fmt.Fprintln(out, "No reviews yet.")
		return nil
	}
	fmt.Fprintf(out, "Average rating: %.1f (%d reviews)\n", svc.AverageRating(eventID), len(revs))
	for _, r := range revs {
		fmt.Fprintf(out, "\n [%d] %s %s\n     %s\n", r.ID, strings.Repeat("★", r.Rating), r.UserName, r.Comment)
	}
	return nil
}

// ---------------------------------------------------------------------------
// reviews add
// ---------------------------------------------------------------------------

func newAdd(ctx *shared.Context) *cobra.Command {
	var (
		rating  string
		comment string
	)
	cmd := &cobra.Command{
		Use:   "add <event-id>",
		Short: "Review an event as the signed-in user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid event id %q", args[0])
			}
			stars, err := models.ParseRating(rating)
			if err != nil {
				return err
			}

			svc, err := ctx.Open()
			if err != nil {
				return err
			}
			defer svc.Close()

			rv, err := svc.AddReview(models.ReviewInput{EventID: eventID, Rating: stars, Comment: comment})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Review added (id: %d). Average rating is now %.1f\n",
				rv.ID, svc.AverageRating(eventID))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&rating, "rating", "5", "Stars, 1 to 5")
	f.StringVar(&comment, "comment", "", "Review text")
	_ = cmd.MarkFlagRequired("comment")
	return cmd
}

// ---------------------------------------------------------------------------
// reviews delete
// ---------------------------------------------------------------------------

func newDelete(ctx *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <review-id>",
		Short: "Delete a review (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid review id %q", args[0])
			}
			svc, err := ctx.Open()
			if err != nil {
				return err
			}
			defer svc.Close()

			deleted, err := svc.DeleteReview(id)
			if err != nil {
				return err
			}
			if deleted {
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted review %d\n", id)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "No review found with id %d\n", id)
			}
			return nil
		},
	}
}
