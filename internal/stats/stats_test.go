package stats_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/eventdesk/internal/models"
	"github.com/go-ports/eventdesk/internal/stats"
)

func ratings(eventID int, rs ...int) []models.Review {
	out := make([]models.Review, 0, len(rs))
	for i, r := range rs {
		out = append(out, models.Review{ID: int64(i + 1), EventID: eventID, Rating: r})
	}
	return out
}

func TestAverageRating_HappyPath(t *testing.T) {
	c := qt.New(t)

	cases := []struct {
		name    string
		reviews []models.Review
		want    float64
	}{
		{"no reviews", nil, 0},
		{"single review", ratings(1, 5), 5},
		{"exact mean", ratings(1, 5, 3), 4},
		{"rounds down", ratings(1, 5, 4, 4), 4.3},
		{"rounds up", ratings(1, 5, 5, 4), 4.7},
		{"one third", ratings(1, 1, 1, 2), 1.3},
	}

	for _, tc := range cases {
		c.Run(tc.name, func(c *qt.C) {
			c.Assert(stats.AverageRating(tc.reviews), qt.Equals, tc.want)
		})
	}
}

func TestSummarizeBookings(t *testing.T) {
	c := qt.New(t)

	got := stats.SummarizeBookings([]models.Booking{
		{ID: 1, Status: models.StatusConfirmed, Price: 500},
		{ID: 2, Status: models.StatusCancelled, Price: 300},
		{ID: 3, Status: models.StatusConfirmed, Price: 200},
	})
	c.Assert(got, qt.DeepEquals, stats.BookingSummary{Total: 3, Confirmed: 2, Cancelled: 1, Spent: 700})

	c.Assert(stats.SummarizeBookings(nil), qt.DeepEquals, stats.BookingSummary{})
}

func TestRatingsByEvent(t *testing.T) {
	c := qt.New(t)

	events := models.SeedEvents()[:3]
	reviews := append(ratings(1, 5, 3), ratings(3, 2)...)

	got := stats.RatingsByEvent(events, reviews)
	c.Assert(got, qt.HasLen, 3)
	c.Assert(got[0], qt.DeepEquals, stats.EventRating{EventID: 1, Title: "Music Concert", Average: 4, Count: 2})
	c.Assert(got[1], qt.DeepEquals, stats.EventRating{EventID: 2, Title: "Art Workshop", Average: 0, Count: 0})
	c.Assert(got[2], qt.DeepEquals, stats.EventRating{EventID: 3, Title: "Tech Meetup", Average: 2, Count: 1})
}

func TestBuildDashboard_CountsOrphans(t *testing.T) {
	c := qt.New(t)

	events := models.SeedEvents()[:2]
	bookings := []models.Booking{
		{ID: 1, EventID: 1, Status: models.StatusConfirmed},
		{ID: 2, EventID: 9, Status: models.StatusConfirmed},
	}
	reviews := append(ratings(2, 4), ratings(7, 1, 2)...)

	d := stats.BuildDashboard(events, bookings, models.SeedUsers(), reviews, nil, 3)
	c.Assert(d.Orphans, qt.DeepEquals, stats.Orphans{Bookings: 1, Reviews: 2})
	c.Assert(d.Summary.Confirmed, qt.Equals, 2)
	c.Assert(d.Subscribers, qt.Equals, 3)
	c.Assert(d.Ratings, qt.HasLen, 2)
}
