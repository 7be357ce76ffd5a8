package models_test

import (
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/eventdesk/internal/models"
)

func TestNewBooking_HappyPath(t *testing.T) {
	c := qt.New(t)

	ev := models.SeedEvents()[0]
	u := models.SeedUsers()[1]
	now := time.Date(2025, 9, 3, 14, 0, 0, 0, time.UTC)

	b := models.NewBooking(42, &ev, &u, now)
	c.Assert(b, qt.DeepEquals, models.Booking{
		ID:          42,
		EventID:     1,
		EventTitle:  "Music Concert",
		EventDate:   "2025-10-01",
		EventImage:  ev.Image,
		Price:       500,
		UserID:      2,
		BookingDate: "9/3/2025",
		Status:      models.StatusConfirmed,
	})
}

func TestParseRating_HappyPath(t *testing.T) {
	c := qt.New(t)

	cases := []struct {
		name string
		in   string
		want int
	}{
		{"lowest", "1", 1},
		{"highest", "5", 5},
		{"surrounding whitespace", " 3 ", 3},
	}

	for _, tc := range cases {
		c.Run(tc.name, func(c *qt.C) {
			got, err := models.ParseRating(tc.in)
			c.Assert(err, qt.IsNil)
			c.Assert(got, qt.Equals, tc.want)
		})
	}
}

func TestParseRating_FailurePath(t *testing.T) {
	c := qt.New(t)

	for _, in := range []string{"", "abc", "0", "6", "4.5", "-1"} {
		c.Run(in, func(c *qt.C) {
			_, err := models.ParseRating(in)
			c.Assert(err, qt.ErrorIs, models.ErrValidation)
		})
	}
}

func TestParseCategory(t *testing.T) {
	c := qt.New(t)

	got, err := models.ParseCategory("music")
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.Equals, models.CategoryMusic)

	_, err = models.ParseCategory("Sports")
	c.Assert(err, qt.ErrorIs, models.ErrValidation)
}

func TestReviewInput_Validate(t *testing.T) {
	c := qt.New(t)

	c.Assert(models.ReviewInput{EventID: 1, Rating: 4, Comment: "ok"}.Validate(), qt.IsNil)
	c.Assert(models.ReviewInput{EventID: 1, Rating: 4, Comment: "   "}.Validate(), qt.ErrorIs, models.ErrValidation)
	c.Assert(models.ReviewInput{EventID: 1, Rating: 9, Comment: "ok"}.Validate(), qt.ErrorIs, models.ErrValidation)
}

func TestEventInput_Validate(t *testing.T) {
	c := qt.New(t)

	cases := []struct {
		name    string
		in      models.EventInput
		wantErr bool
	}{
		{"title date and category", models.EventInput{Title: "Jazz", Date: "2025-12-01", Category: models.CategoryMusic}, false},
		{"lower-case category", models.EventInput{Title: "Jazz", Date: "2025-12-01", Category: "music"}, false},
		{"full form", models.EventInput{Title: "Jazz", Date: "2025-12-01", Category: models.CategoryMusic, Price: 100}, false},
		{"missing title", models.EventInput{Date: "2025-12-01"}, true},
		{"blank date", models.EventInput{Title: "Jazz", Date: "  "}, true},
		{"unknown category", models.EventInput{Title: "Jazz", Date: "2025-12-01", Category: "Sports"}, true},
		{"missing category", models.EventInput{Title: "Jazz", Date: "2025-12-01"}, true},
		{"negative price", models.EventInput{Title: "Jazz", Date: "2025-12-01", Category: models.CategoryMusic, Price: -1}, true},
	}

	for _, tc := range cases {
		c.Run(tc.name, func(c *qt.C) {
			err := tc.in.Validate()
			if tc.wantErr {
				c.Assert(err, qt.ErrorIs, models.ErrValidation)
			} else {
				c.Assert(err, qt.IsNil)
			}
		})
	}
}

func TestEventInput_ToEventCanonicalCategory(t *testing.T) {
	c := qt.New(t)

	for _, raw := range []models.Category{"music", "TECH", " art "} {
		in := models.EventInput{Title: "Jazz", Date: "2025-12-01", Category: raw}
		c.Assert(in.Validate(), qt.IsNil)
		want, err := models.ParseCategory(string(raw))
		c.Assert(err, qt.IsNil)
		c.Assert(in.ToEvent(7).Category, qt.Equals, want)
	}
}

func TestProfileInput_Validate(t *testing.T) {
	c := qt.New(t)

	c.Assert(models.ProfileInput{Name: "Jane", Email: "jane@x.com"}.Validate(), qt.IsNil)
	c.Assert(models.ProfileInput{Name: "", Email: "x@x.com"}.Validate(), qt.ErrorIs, models.ErrValidation)
	c.Assert(models.ProfileInput{Name: "Jane", Email: " "}.Validate(), qt.ErrorIs, models.ErrValidation)
}

func TestNextID(t *testing.T) {
	c := qt.New(t)
	now := time.UnixMilli(1_700_000_000_000)

	c.Assert(models.NextID(now, 0), qt.Equals, int64(1_700_000_000_000))
	c.Assert(models.NextID(now, 1_700_000_000_000), qt.Equals, int64(1_700_000_000_001))
	c.Assert(models.NextID(now, 1_800_000_000_000), qt.Equals, int64(1_800_000_000_001))
}

func TestUser_IsAdmin(t *testing.T) {
	c := qt.New(t)
	users := models.SeedUsers()

	c.Assert(users[0].IsAdmin(), qt.IsTrue)
	c.Assert(users[1].IsAdmin(), qt.IsFalse)

	var none *models.User
	c.Assert(none.IsAdmin(), qt.IsFalse)
}
