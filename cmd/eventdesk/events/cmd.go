// Package eventscmd implements the `eventdesk events` command group.
package eventscmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/go-ports/eventdesk/cmd/eventdesk/shared"
	"github.com/go-ports/eventdesk/internal/models"
	"github.com/go-ports/eventdesk/internal/search"
)

// Command implements `eventdesk events`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	query    string
	category string
	maxPrice float64
	sort     string
	desc     bool
}

// New creates the events command group. Without a subcommand it lists events.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "events",
		Short: "Browse and manage the event catalog",
		Args:  cobra.NoArgs,
		RunE:  c.runList,
	}

	f := c.cmd.Flags()
	f.StringVarP(&c.query, "query", "q", "", "Title contains (case-insensitive)")
	f.StringVar(&c.category, "category", search.CategoryAll, "All | Music | Art | Tech")
	f.Float64Var(&c.maxPrice, "max-price", -1, "Maximum price (default: configured catalog.max_price)")
	f.StringVar(&c.sort, "sort", "", "Sort by date | price | title | rating")
	f.BoolVar(&c.desc, "desc", false, "Reverse the sort order")

	c.cmd.AddCommand(
		newShow(ctx),
		newAdd(ctx),
		newEdit(ctx),
		newDelete(ctx),
	)
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) runList(cmd *cobra.Command, _ []string) error {
	if !search.IsValidSort(c.sort) {
		return fmt.Errorf("unknown sort %q (want one of %s)", c.sort, strings.Join(search.ValidSorts, ", "))
	}
	if c.category != search.CategoryAll {
		if _, err := models.ParseCategory(c.category); err != nil {
			return err
		}
	}

	svc, err := c.ctx.Open()
	if err != nil {
		return err
	}
	defer svc.Close()

	crit := svc.DefaultCriteria()
	crit.Query = c.query
	crit.Category = c.category
	if cmd.Flags().Changed("max-price") {
		crit.MaxPrice = c.maxPrice
	}
	crit.Sort = c.sort
	crit.Desc = c.desc

	results := svc.ListEvents(crit)
	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintln(out, "No events found.")
		return nil
	}

	fmt.Fprintf(out, "\n Events (%d found) \n", len(results))
	for i := range results {
		r := &results[i]
		fmt.Fprintf(out, "\n [%d] %s  ₹%.2f\n", r.ID, r.Title, r.Price)
		fmt.Fprintf(out, "     %s | %s %s | %s\n", r.Category, r.Date, r.Time, r.Location)
		if r.ReviewCount > 0 {
			fmt.Fprintf(out, "     Rating: %.1f (%d reviews)\n", r.AverageRating, r.ReviewCount)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// events show
// ---------------------------------------------------------------------------

func newShow(ctx *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "show <event-id>",
		Short: "Show an event with its reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEventID(args[0])
			if err != nil {
				return err
			}
			svc, err := ctx.Open()
			if err != nil {
				return err
			}
			defer svc.Close()

			ev, err := svc.SelectEvent(id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printEvent(out, &ev)

			revs := svc.ReviewsForEvent(id)
			if len(revs) == 0 {
				fmt.Fprintln(out, "\nNo reviews yet.")
				return nil
			}
			fmt.Fprintf(out, "\nReviews (average %.1f)\n", svc.AverageRating(id))
			for _, r := range revs {
				fmt.Fprintf(out, "  %s %s: %s\n", strings.Repeat("★", r.Rating), r.UserName, r.Comment)
			}
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// events add / edit / delete
// ---------------------------------------------------------------------------

type eventFlags struct {
	title, category, date, time, location, image, description string
	price                                                     float64
}

func (ef *eventFlags) register(f *pflag.FlagSet) {
	f.StringVar(&ef.title, "title", "", "Event title")
	f.StringVar(&ef.category, "category", string(models.CategoryMusic), "Music | Art | Tech")
	f.StringVar(&ef.date, "date", "", "Date (YYYY-MM-DD)")
	f.StringVar(&ef.time, "time", "", "Start time, e.g. 7:00 PM")
	f.StringVar(&ef.location, "location", "", "Venue")
	f.StringVar(&ef.image, "image", "", "Image URL")
	f.StringVar(&ef.description, "description", "", "Description")
	f.Float64Var(&ef.price, "price", 0, "Ticket price")
}

// apply overlays the flags that were set on top of base.
func (ef *eventFlags) apply(f *pflag.FlagSet, base models.EventInput) (models.EventInput, error) {
	if f.Changed("category") {
		cat, err := models.ParseCategory(ef.category)
		if err != nil {
			return base, err
		}
		base.Category = cat
	}
	set := func(name string, dst *string, v string) {
		if f.Changed(name) {
			*dst = v
		}
	}
	set("title", &base.Title, ef.title)
	set("date", &base.Date, ef.date)
	set("time", &base.Time, ef.time)
	set("location", &base.Location, ef.location)
	set("image", &base.Image, ef.image)
	set("description", &base.Description, ef.description)
	if f.Changed("price") {
		base.Price = ef.price
	}
	return base, nil
}

func newAdd(ctx *shared.Context) *cobra.Command {
	ef := &eventFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an event (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := ef.apply(cmd.Flags(), models.EventInput{Category: models.CategoryMusic})
			if err != nil {
				return err
			}
			svc, err := ctx.Open()
			if err != nil {
				return err
			}
			defer svc.Close()

			ev, err := svc.CreateEvent(in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added event %d: %s\n", ev.ID, ev.Title)
			return nil
		},
	}
	ef.register(cmd.Flags())
	return cmd
}

func newEdit(ctx *shared.Context) *cobra.Command {
	ef := &eventFlags{}
	cmd := &cobra.Command{
		Use:   "edit <event-id>",
		Short: "Edit an event (admin); unset flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEventID(args[0])
			if err != nil {
				return err
			}
			svc, err := ctx.Open()
			if err != nil {
				return err
			}
			defer svc.Close()

			cur, ok := svc.GetEvent(id)
			if !ok {
				return fmt.Errorf("no event found with id %d", id)
			}
			in, err := ef.apply(cmd.Flags(), models.EventInput{
				Title: cur.Title, Category: cur.Category, Date: cur.Date, Time: cur.Time,
				Location: cur.Location, Image: cur.Image, Description: cur.Description, Price: cur.Price,
			})
			if err != nil {
				return err
			}
			ev, err := svc.UpdateEvent(id, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated event %d: %s\n", ev.ID, ev.Title)
			return nil
		},
	}
	ef.register(cmd.Flags())
	return cmd
}

func newDelete(ctx *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <event-id>",
		Short: "Delete an event (admin); its bookings and reviews are kept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEventID(args[0])
			if err != nil {
				return err
			}
			svc, err := ctx.Open()
			if err != nil {
				return err
			}
			defer svc.Close()

			deleted, err := svc.DeleteEvent(id)
			if err != nil {
				return err
			}
			if deleted {
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted event %d\n", id)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "No event found with id %d\n", id)
			}
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func parseEventID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid event id %q", s)
	}
	return id, nil
}

func printEvent(out io.Writer, ev *models.Event) {
	fmt.Fprintf(out, "%s\n", ev.Title)
	fmt.Fprintf(out, "  Category: %s\n", ev.Category)
	fmt.Fprintf(out, "  When:     %s %s\n", ev.Date, ev.Time)
	fmt.Fprintf(out, "  Where:    %s\n", ev.Location)
	fmt.Fprintf(out, "  Price:    ₹%.2f\n", ev.Price)
	if ev.Description != "" {
		fmt.Fprintf(out, "\n%s\n", ev.Description)
	}
}
