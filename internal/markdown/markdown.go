// Package markdown renders the admin dashboard as an Obsidian-compatible
// markdown report.
package markdown

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-ports/eventdesk/internal/models"
	"github.com/go-ports/eventdesk/internal/stats"
)

// Frontmatter is the YAML header of a dashboard report.
type Frontmatter struct {
	Generated   string   `yaml:"generated"`
	Events      int      `yaml:"events"`
	Bookings    int      `yaml:"bookings"`
	Confirmed   int      `yaml:"confirmed"`
	Cancelled   int      `yaml:"cancelled"`
	Revenue     float64  `yaml:"revenue"`
	Users       int      `yaml:"users"`
	Reviews     int      `yaml:"reviews"`
	Emails      int      `yaml:"emails"`
	Subscribers int      `yaml:"subscribers"`
	Tags        []string `yaml:"tags,flow"`
}

// RenderEventSection produces a single ### heading block for an event.
func RenderEventSection(ev *models.Event, rating stats.EventRating) string {
	var sb strings.Builder
	sb.WriteString("### ")
	sb.WriteString(ev.Title)
	sb.WriteString("\n**When:** ")
	sb.WriteString(strings.TrimSpace(ev.Date + " " + ev.Time))
	if ev.Location != "" {
		sb.WriteString("\n**Where:** ")
		sb.WriteString(ev.Location)
	}
	sb.WriteString("\n**Price:** ")
	sb.WriteString(formatPrice(ev.Price))
	sb.WriteString("\n**Rating:** ")
	if rating.Count == 0 {
		sb.WriteString("no reviews")
	} else {
		fmt.Fprintf(&sb, "%.1f (%d %s)", rating.Average, rating.Count, plural(rating.Count, "review", "reviews"))
	}
	return sb.String()
}

// RenderDashboard produces the full report: front matter, events grouped by
// category, then bookings, users, reviews, the email log and integrity counts.
func RenderDashboard(d *stats.Dashboard, generatedAt time.Time) (string, error) {
	fm := Frontmatter{
		Generated:   generatedAt.UTC().Format(time.RFC3339),
		Events:      len(d.Events),
		Bookings:    d.Summary.Total,
		Confirmed:   d.Summary.Confirmed,
		Cancelled:   d.Summary.Cancelled,
		Revenue:     d.Summary.Spent,
		Users:       len(d.Users),
		Reviews:     len(d.Reviews),
		Emails:      len(d.SentEmails),
		Subscribers: d.Subscribers,
		Tags:        []string{"eventdesk", "dashboard"},
	}
	header, err := yaml.Marshal(fm)
	if err != nil {
		return "", fmt.Errorf("markdown.RenderDashboard: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("---\n")
	sb.Write(header)
	sb.WriteString("---\n\n# Admin Dashboard\n")

	writeEvents(&sb, d)
	writeBookings(&sb, d.Bookings)
	writeUsers(&sb, d.Users)
	writeReviews(&sb, d.Reviews)
	writeEmails(&sb, d.SentEmails)

	sb.WriteString("\n## Integrity\n\n")
	fmt.Fprintf(&sb, "- Bookings for deleted events: %d\n", d.Orphans.Bookings)
	fmt.Fprintf(&sb, "- Reviews for deleted events: %d\n", d.Orphans.Reviews)
	return sb.String(), nil
}

// ParseFrontmatter reads the YAML header of a rendered report.
func ParseFrontmatter(content string) (Frontmatter, error) {
	var fm Frontmatter
	header, _ := splitFrontmatter(content)
	if header == "" {
		return fm, fmt.Errorf("markdown.ParseFrontmatter: no front matter")
	}
	header = strings.TrimSuffix(strings.TrimPrefix(header, "---\n"), "---")
	if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
		return fm, fmt.Errorf("markdown.ParseFrontmatter: %w", err)
	}
	return fm, nil
}

// WriteReport writes content to path, creating parent directories.
func WriteReport(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644) // #nosec G306 -- reports carry masked passwords only
}

// ---------------------------------------------------------------------------
// Sections
// ---------------------------------------------------------------------------

func writeEvents(sb *strings.Builder, d *stats.Dashboard) {
	ratings := make(map[int]stats.EventRating, len(d.Ratings))
	for _, r := range d.Ratings {
		ratings[r.EventID] = r
	}

	sb.WriteString("\n## Events\n")
	if len(d.Events) == 0 {
		sb.WriteString("\n_No events._\n")
		return
	}
	for _, cat := range orderedCategories(d.Events) {
		sb.WriteString("\n### ")
		sb.WriteString(string(cat))
		sb.WriteString("\n")
		for i := range d.Events {
			ev := &d.Events[i]
			if ev.Category != cat {
				continue
			}
			// Demote to H4 under the category heading.
			sb.WriteString("\n#")
			sb.WriteString(RenderEventSection(ev, ratings[ev.ID]))
			sb.WriteString("\n")
		}
	}
}

func writeBookings(sb *strings.Builder, bookings []models.Booking) {
	sb.WriteString("\n## Bookings\n\n")
	if len(bookings) == 0 {
		sb.WriteString("_No bookings._\n")
		return
	}
	sb.WriteString("| ID | Event | Date | User | Price | Booked | Status |\n")
	sb.WriteString("|---|---|---|---|---|---|---|\n")
	for _, b := range bookings {
		fmt.Fprintf(sb, "| %d | %s | %s | %d | %s | %s | %s |\n",
			b.ID, cell(b.EventTitle), cell(b.EventDate), b.UserID, formatPrice(b.Price), cell(b.BookingDate), b.Status)
	}
}

func writeUsers(sb *strings.Builder, users []models.User) {
	sb.WriteString("\n## Users\n\n")
	sb.WriteString("| ID | Name | Email | Role | Password |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	for _, u := range users {
		fmt.Fprintf(sb, "| %d | %s | %s | %s | %s |\n", u.ID, cell(u.Name), cell(u.Email), u.Role, cell(u.Password))
	}
}

func writeReviews(sb *strings.Builder, reviews []models.Review) {
	sb.WriteString("\n## Reviews\n\n")
	if len(reviews) == 0 {
		sb.WriteString("_No reviews._\n")
		return
	}
	sb.WriteString("| ID | Event | User | Rating | Comment |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	for _, r := range reviews {
		fmt.Fprintf(sb, "| %d | %d | %s | %s | %s |\n", r.ID, r.EventID, cell(r.UserName), stars(r.Rating), cell(r.Comment))
	}
}

func writeEmails(sb *strings.Builder, emails []models.SentEmail) {
	sb.WriteString("\n## Sent Emails\n\n")
	if len(emails) == 0 {
		sb.WriteString("_No emails sent._\n")
		return
	}
	for _, e := range emails {
		fmt.Fprintf(sb, "- %s to %s: %s\n", e.Date, e.To, oneLine(e.Subject))
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// splitFrontmatter splits YAML front-matter from the body.
// Returns ("", content) when no front-matter is detected.
func splitFrontmatter(content string) (frontmatter, body string) {
	parts := strings.SplitN(content, "---\n", 3)
	if len(parts) >= 3 && parts[0] == "" {
		return "---\n" + parts[1] + "---", parts[2]
	}
	return "", content
}

// orderedCategories returns the categories present in events, known
// categories first in models.ValidCategories order.
func orderedCategories(events []models.Event) []models.Category {
	present := make(map[models.Category]bool)
	for _, ev := range events {
		present[ev.Category] = true
	}
	out := make([]models.Category, 0, len(present))
	for _, cat := range models.ValidCategories {
		if present[cat] {
			out = append(out, cat)
			delete(present, cat)
		}
	}
	for _, ev := range events {
		if present[ev.Category] {
			out = append(out, ev.Category)
			delete(present, ev.Category)
		}
	}
	return out
}

func cell(s string) string {
	return strings.ReplaceAll(oneLine(s), "|", `\|`)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func stars(n int) string {
	if n < 0 {
		n = 0
	}
	return strings.Repeat("★", n)
}

func formatPrice(p float64) string {
	return fmt.Sprintf("₹%.2f", p)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
