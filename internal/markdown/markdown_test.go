package markdown_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/eventdesk/internal/markdown"
	"github.com/go-ports/eventdesk/internal/models"
	"github.com/go-ports/eventdesk/internal/stats"
)

// ---------------------------------------------------------------------------
// RenderEventSection
// ---------------------------------------------------------------------------

func TestRenderEventSection_HappyPath(t *testing.T) {
	c := qt.New(t)

	cases := []struct {
		name   string
		ev     models.Event
		rating stats.EventRating
		want   string
	}{
		{
			name: "no reviews",
			ev:   models.Event{Title: "Foo", Date: "2025-10-01", Time: "7:00 PM", Location: "Hall", Price: 500},
			want: "### Foo\n**When:** 2025-10-01 7:00 PM\n**Where:** Hall\n**Price:** ₹500.00\n**Rating:** no reviews",
		},
		{
			name:   "one review",
			ev:     models.Event{Title: "Foo", Date: "2025-10-01", Price: 0},
			rating: stats.EventRating{Average: 5, Count: 1},
			want:   "### Foo\n**When:** 2025-10-01\n**Price:** ₹0.00\n**Rating:** 5.0 (1 review)",
		},
		{
			name:   "several reviews",
			ev:     models.Event{Title: "Foo", Date: "2025-10-01", Price: 249.5},
			rating: stats.EventRating{Average: 4.3, Count: 3},
			want:   "### Foo\n**When:** 2025-10-01\n**Price:** ₹249.50\n**Rating:** 4.3 (3 reviews)",
		},
	}

	for _, tc := range cases {
		c.Run(tc.name, func(c *qt.C) {
			c.Assert(markdown.RenderEventSection(&tc.ev, tc.rating), qt.Equals, tc.want)
		})
	}
}

// ---------------------------------------------------------------------------
// RenderDashboard
// ---------------------------------------------------------------------------

func sampleDashboard() stats.Dashboard {
	events := models.SeedEvents()
	users := models.SeedUsers()
	for i := range users {
		users[i].Password = "[REDACTED]"
	}
	now := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	bookings := []models.Booking{
		models.NewBooking(1756720800000, &events[0], &users[1], now),
		models.NewBooking(1756720800001, &events[2], &users[2], now),
		{ID: 1756720800002, EventID: 99, EventTitle: "Gone | Event", UserID: 2, Status: models.StatusCancelled},
	}
	emails := []models.SentEmail{
		{To: "jane@example.com", Subject: "Booking Confirmed: Music Concert", Body: "Hi Jane,\n\n...", Date: "2025-09-01T10:00:00Z"},
	}
	return stats.BuildDashboard(events, bookings, users, models.SeedReviews(), emails, 4)
}

func TestRenderDashboard_HappyPath(t *testing.T) {
	c := qt.New(t)
	d := sampleDashboard()
	generated := time.Date(2025, 9, 2, 8, 30, 0, 0, time.UTC)

	out, err := markdown.RenderDashboard(&d, generated)
	c.Assert(err, qt.IsNil)
	c.Assert(strings.HasPrefix(out, "---\n"), qt.IsTrue)

	fm, err := markdown.ParseFrontmatter(out)
	c.Assert(err, qt.IsNil)
	c.Assert(fm, qt.DeepEquals, markdown.Frontmatter{
		Generated:   "2025-09-02T08:30:00Z",
		Events:      6,
		Bookings:    3,
		Confirmed:   2,
		Cancelled:   1,
		Revenue:     700,
		Users:       3,
		Reviews:     1,
		Emails:      1,
		Subscribers: 4,
		Tags:        []string{"eventdesk", "dashboard"},
	})

	for _, want := range []string{
		"# Admin Dashboard\n",
		"\n### Music\n\n#### Music Concert\n",
		"**Rating:** 5.0 (1 review)",
		"\n### Tech\n",
		"| Gone \\| Event |",
		"| 1 | John | john@example.com | admin | [REDACTED] |",
		"| 1 | 1 | Jane | ★★★★★ | Amazing show! |",
		"- 2025-09-01T10:00:00Z to jane@example.com: Booking Confirmed: Music Concert\n",
		"- Bookings for deleted events: 1\n",
		"- Reviews for deleted events: 0\n",
	} {
		c.Assert(out, qt.Contains, want)
	}
	c.Assert(out, qt.Not(qt.Contains), "123456")

	// Categories follow the fixed order.
	c.Assert(strings.Index(out, "### Music\n") < strings.Index(out, "### Art\n"), qt.IsTrue)
	c.Assert(strings.Index(out, "### Art\n") < strings.Index(out, "### Tech\n"), qt.IsTrue)
}

func TestRenderDashboard_Empty(t *testing.T) {
	c := qt.New(t)
	d := stats.BuildDashboard(nil, nil, nil, nil, nil, 0)

	out, err := markdown.RenderDashboard(&d, time.Now())
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "_No events._")
	c.Assert(out, qt.Contains, "_No bookings._")
	c.Assert(out, qt.Contains, "_No reviews._")
	c.Assert(out, qt.Contains, "_No emails sent._")
}

func TestParseFrontmatter_FailurePath(t *testing.T) {
	c := qt.New(t)

	_, err := markdown.ParseFrontmatter("# just a heading\n")
	c.Assert(err, qt.IsNotNil)

	_, err = markdown.ParseFrontmatter("---\nevents: [oops\n---\nbody\n")
	c.Assert(err, qt.IsNotNil)
}

// ---------------------------------------------------------------------------
// WriteReport
// ---------------------------------------------------------------------------

func TestWriteReport_HappyPath(t *testing.T) {
	c := qt.New(t)

	path := filepath.Join(t.TempDir(), "reports", "dashboard.md")
	c.Assert(markdown.WriteReport(path, "# hi\n"), qt.IsNil)

	data, err := os.ReadFile(path)
	c.Assert(err, qt.IsNil)
	c.Assert(string(data), qt.Equals, "# hi\n")
}
