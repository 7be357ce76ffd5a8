package mcp

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/eventdesk/internal/models"
)

func TestCategoryChoices(t *testing.T) {
	c := qt.New(t)

	c.Assert(categoryChoices(), qt.DeepEquals, []string{"All", "Music", "Art", "Tech"})
}

func TestCheckCategory(t *testing.T) {
	c := qt.New(t)

	for _, ok := range []string{"All", "Music", "tech"} {
		c.Assert(checkCategory(ok), qt.IsNil, qt.Commentf("%q", ok))
	}
	for _, bad := range []string{"", "Sports", "all music"} {
		c.Assert(checkCategory(bad), qt.ErrorMatches, `.*unknown category.*`, qt.Commentf("%q", bad))
	}
}

func TestSummarize(t *testing.T) {
	c := qt.New(t)

	cases := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"fits", "Dance the night away.", 40, "Dance the night away."},
		{"cuts at a word boundary", "Dance the night away with the best DJs", 16, "Dance the night…"},
		{"trims trailing punctuation", "Create pottery, glaze it, fire it", 16, "Create pottery…"},
		{"single long word", "Supercalifragilistic", 5, "Super…"},
		{"surrounding space ignored", "  short  ", 5, "short"},
	}
	for _, tc := range cases {
		c.Run(tc.name, func(c *qt.C) {
			c.Assert(summarize(tc.in, tc.max), qt.Equals, tc.want)
		})
	}
}

func TestDisplayDate(t *testing.T) {
	c := qt.New(t)

	c.Assert(displayDate("2025-10-01"), qt.Equals, "Oct 1, 2025")
	c.Assert(displayDate("2025-11-10"), qt.Equals, "Nov 10, 2025")
	c.Assert(displayDate("next friday"), qt.Equals, "next friday")
	c.Assert(displayDate(""), qt.Equals, "")
}

func TestRupees(t *testing.T) {
	c := qt.New(t)

	c.Assert(rupees(500), qt.Equals, "₹500.00")
	c.Assert(rupees(249.5), qt.Equals, "₹249.50")
	c.Assert(rupees(0), qt.Equals, "₹0.00")
}

func TestWholeStars(t *testing.T) {
	c := qt.New(t)

	n, err := wholeStars(4)
	c.Assert(err, qt.IsNil)
	c.Assert(n, qt.Equals, 4)

	for _, v := range []float64{4.7, 0.5, 0, 6} {
		_, err := wholeStars(v)
		c.Assert(err, qt.ErrorIs, models.ErrValidation, qt.Commentf("rating %v", v))
	}
}
