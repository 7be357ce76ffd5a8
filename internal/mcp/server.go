// Package mcp provides the stdio MCP server exposing the event desk to agents.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/go-ports/eventdesk/internal/buildinfo"
	"github.com/go-ports/eventdesk/internal/models"
	"github.com/go-ports/eventdesk/internal/search"
	"github.com/go-ports/eventdesk/internal/service"
)

const listDescription = `List events in the catalog. Filter by title text, category and maximum price, and sort by date, price, title or rating. Each event carries its average rating and review count.` //nolint:lll

const bookDescription = `Book an event for the signed-in user. Call login first. A confirmation email is recorded in the background; it never delays or fails the booking.` //nolint:lll

// NewServer creates and registers all event desk tools on a new MCP server.
// It is separate from Serve so that tests can obtain a fully configured
// server without committing to the stdio transport.
func NewServer(svc *service.Service) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer("eventdesk", buildinfo.Version)
	registerTools(s, svc)
	return s
}

// Serve starts the stdio MCP server rooted at home, blocking until stdin closes.
func Serve(_ context.Context, home string) error {
	svc, err := service.New(home)
	if err != nil {
		return fmt.Errorf("mcp: init service: %w", err)
	}
	defer svc.Close()

	return mcpserver.ServeStdio(NewServer(svc))
}

// registerTools wires every tool into the server.
func registerTools(s *mcpserver.MCPServer, svc *service.Service) {
	s.AddTool(mcp.NewTool("events_list",
		mcp.WithDescription(listDescription),
		mcp.WithString("query", mcp.Description("Case-insensitive title substring.")),
		mcp.WithString("category",
			mcp.Description("Category filter (default All)."),
			mcp.Enum(categoryChoices()...),
		),
		mcp.WithNumber("max_price", mcp.Description("Maximum price, inclusive. Defaults to the configured ceiling.")),
		mcp.WithString("sort",
			mcp.Description("Sort key. Catalog order when omitted."),
			mcp.Enum(search.ValidSorts...),
		),
		mcp.WithBoolean("desc", mcp.Description("Reverse the sort order.")),
	), func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleList(svc, req)
	})

	s.AddTool(mcp.NewTool("event_details",
		mcp.WithDescription("Show one event with its reviews and average rating, and remember it as the selected event."),
		mcp.WithNumber("event_id", mcp.Description("Event id."), mcp.Required()),
	), func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleDetails(svc, req)
	})

	s.AddTool(mcp.NewTool("login",
		mcp.WithDescription("Sign in. The session is shared by every later tool call."),
		mcp.WithString("email", mcp.Required()),
		mcp.WithString("password", mcp.Required()),
	), func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		u, err := svc.Login(req.GetString("email", ""), req.GetString("password", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(userView(&u))
	})

	s.AddTool(mcp.NewTool("logout",
		mcp.WithDescription("Sign out."),
	), func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		svc.Logout()
		return jsonResult(map[string]any{"signed_in": false})
	})

	s.AddTool(mcp.NewTool("event_book",
		mcp.WithDescription(bookDescription),
		mcp.WithNumber("event_id", mcp.Description("Event id."), mcp.Required()),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		b, err := svc.AddBooking(ctx, req.GetInt("event_id", 0))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(b)
	})

	s.AddTool(mcp.NewTool("booking_cancel",
		mcp.WithDescription("Cancel one of the signed-in user's bookings."),
		mcp.WithNumber("booking_id", mcp.Description("Booking id."), mcp.Required()),
	), func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := int64(req.GetFloat("booking_id", 0))
		b, ok, err := svc.CancelBooking(id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("no booking found with id %d", id)), nil
		}
		return jsonResult(b)
	})

	s.AddTool(mcp.NewTool("bookings_list",
		mcp.WithDescription("List the signed-in user's bookings with a status summary. Admins may pass all=true."),
		mcp.WithBoolean("all", mcp.Description("List every user's bookings (admin only).")),
	), func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleBookings(svc, req)
	})

	s.AddTool(mcp.NewTool("review_add",
		mcp.WithDescription("Review an event as the signed-in user."),
		mcp.WithNumber("event_id", mcp.Description("Event id."), mcp.Required()),
		mcp.WithNumber("rating", mcp.Description("1 to 5 stars."), mcp.Required()),
		mcp.WithString("comment", mcp.Description("Review text."), mcp.Required()),
	), func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		rating, err := wholeStars(req.GetFloat("rating", 0))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		rv, err := svc.AddReview(models.ReviewInput{
			EventID: req.GetInt("event_id", 0),
			Rating:  rating,
			Comment: req.GetString("comment", ""),
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(map[string]any{
			"review":         rv,
			"average_rating": svc.AverageRating(rv.EventID),
		})
	})

	s.AddTool(mcp.NewTool("newsletter_subscribe",
		mcp.WithDescription("Subscribe an email address to the newsletter."),
		mcp.WithString("email", mcp.Required()),
	), func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		added, err := svc.Subscribe(req.GetString("email", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(map[string]any{"subscribed": true, "new": added})
	})

	s.AddTool(mcp.NewTool("admin_dashboard",
		mcp.WithDescription("Admin overview: ratings per event, booking totals, users, notification log and integrity counts."),
	), func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleDashboard(svc)
	})
}

// ---------------------------------------------------------------------------
// Tool handlers
// ---------------------------------------------------------------------------

func handleList(svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	crit := svc.DefaultCriteria()
	crit.Query = req.GetString("query", "")
	if cat := req.GetString("category", ""); cat != "" {
		if err := checkCategory(cat); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		crit.Category = cat
	}
	crit.MaxPrice = req.GetFloat("max_price", crit.MaxPrice)
	crit.Sort = req.GetString("sort", "")
	if !search.IsValidSort(crit.Sort) {
		return mcp.NewToolResultError(fmt.Sprintf("unknown sort %q", crit.Sort)), nil
	}
	crit.Desc = req.GetBool("desc", false)

	results := svc.ListEvents(crit)
	events := make([]map[string]any, 0, len(results))
	for i := range results {
		r := &results[i]
		events = append(events, map[string]any{
			"id":             r.ID,
			"title":          r.Title,
			"category":       r.Category,
			"date":           displayDate(r.Date),
			"time":           r.Time,
			"location":       r.Location,
			"price":          r.Price,
			"price_label":    rupees(r.Price),
			"average_rating": r.AverageRating,
			"reviews":        r.ReviewCount,
			"summary":        summarize(r.Description, 80),
		})
	}
	return jsonResult(map[string]any{
		"total":  len(events),
		"events": events,
	})
}

func handleDetails(svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ev, err := svc.SelectEvent(req.GetInt("event_id", 0))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"event":          ev,
		"average_rating": svc.AverageRating(ev.ID),
		"reviews":        svc.ReviewsForEvent(ev.ID),
	})
}

func handleBookings(svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if req.GetBool("all", false) {
		all, err := svc.AllBookings()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(map[string]any{"total": len(all), "bookings": all})
	}
	mine, summary, err := svc.MyBookings()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"total":     summary.Total,
		"confirmed": summary.Confirmed,
		"cancelled": summary.Cancelled,
		"spent":     rupees(summary.Spent),
		"bookings":  mine,
	})
}

func handleDashboard(svc *service.Service) (*mcp.CallToolResult, error) {
	d, err := svc.Dashboard()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"events":      len(d.Events),
		"ratings":     d.Ratings,
		"summary":     d.Summary,
		"users":       d.Users,
		"reviews":     len(d.Reviews),
		"sent_emails": d.SentEmails,
		"subscribers": d.Subscribers,
		"orphans":     d.Orphans,
	})
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// categoryChoices is the category filter enum: All plus every event category.
func categoryChoices() []string {
	out := []string{search.CategoryAll}
	for _, c := range models.ValidCategories {
		out = append(out, string(c))
	}
	return out
}

func checkCategory(s string) error {
	if s == search.CategoryAll {
		return nil
	}
	_, err := models.ParseCategory(s)
	return err
}

// wholeStars rejects fractional ratings instead of truncating them.
func wholeStars(v float64) (int, error) {
	if v != math.Trunc(v) {
		return 0, models.Invalid("rating must be a whole number of stars, got %v", v)
	}
	n := int(v)
	if err := models.CheckRating(n); err != nil {
		return 0, err
	}
	return n, nil
}

func userView(u *models.User) map[string]any {
	return map[string]any{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"role":  u.Role,
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

// summarize shortens s to at most maxRunes runes, cutting at a word
// boundary when one exists and marking the cut with an ellipsis.
func summarize(s string, maxRunes int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= maxRunes {
		return string(runes)
	}
	cut := string(runes[:maxRunes])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}

// displayDate renders an ISO date as "Oct 1, 2025"; other input is returned as is.
func displayDate(iso string) string {
	t, err := time.Parse(time.DateOnly, iso)
	if err != nil {
		return iso
	}
	return t.Format("Jan 2, 2006")
}

func rupees(amount float64) string {
	return fmt.Sprintf("₹%.2f", amount)
}
