package search_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/eventdesk/internal/models"
	"github.com/go-ports/eventdesk/internal/search"
)

func ids(results []search.Result) []int {
	out := make([]int, len(results))
	for i, r := range results {
		out[i] = r.ID
	}
	return out
}

func TestRun_Filters(t *testing.T) {
	c := qt.New(t)
	events := models.SeedEvents()

	cases := []struct {
		name string
		crit search.Criteria
		want []int
	}{
		{"no filters", search.Criteria{MaxPrice: -1}, []int{1, 2, 3, 4, 5, 6}},
		{"default price ceiling keeps all", search.Criteria{MaxPrice: 1000, Category: search.CategoryAll}, []int{1, 2, 3, 4, 5, 6}},
		{"title substring is case-insensitive", search.Criteria{Query: "CLASS", MaxPrice: -1}, []int{5}},
		{"category", search.Criteria{Category: "Tech", MaxPrice: -1}, []int{3, 6}},
		{"category is case-insensitive", search.Criteria{Category: "music", MaxPrice: -1}, []int{1, 4}},
		{"max price is inclusive", search.Criteria{MaxPrice: 300}, []int{2, 3, 5}},
		{"zero price keeps only free events", search.Criteria{MaxPrice: 0}, []int{}},
		{"combined", search.Criteria{Query: "o", Category: "Art", MaxPrice: 280}, []int{5}},
		{"nothing matches", search.Criteria{Query: "opera", MaxPrice: -1}, []int{}},
	}

	for _, tc := range cases {
		c.Run(tc.name, func(c *qt.C) {
			c.Assert(ids(search.Run(events, tc.crit, nil)), qt.DeepEquals, tc.want)
		})
	}
}

func TestRun_Sorts(t *testing.T) {
	c := qt.New(t)
	events := models.SeedEvents()

	rating := func(id int) (float64, int) {
		switch id {
		case 1:
			return 4.5, 2
		case 3:
			return 5, 1
		}
		return 0, 0
	}

	cases := []struct {
		name string
		crit search.Criteria
		want []int
	}{
		{"by date", search.Criteria{MaxPrice: -1, Sort: search.SortDate}, []int{1, 2, 4, 5, 3, 6}},
		{"by price descending", search.Criteria{MaxPrice: -1, Sort: search.SortPrice, Desc: true}, []int{6, 1, 4, 2, 5, 3}},
		{"by title", search.Criteria{MaxPrice: -1, Sort: search.SortTitle}, []int{2, 4, 1, 5, 3, 6}},
		{"by rating descending keeps ties stable", search.Criteria{MaxPrice: -1, Sort: search.SortRating, Desc: true}, []int{3, 1, 2, 4, 5, 6}},
	}

	for _, tc := range cases {
		c.Run(tc.name, func(c *qt.C) {
			c.Assert(ids(search.Run(events, tc.crit, rating)), qt.DeepEquals, tc.want)
		})
	}
}

func TestRun_AttachesRatings(t *testing.T) {
	c := qt.New(t)
	got := search.Run(models.SeedEvents()[:1], search.Criteria{MaxPrice: -1}, func(int) (float64, int) { return 3.5, 4 })
	c.Assert(got, qt.HasLen, 1)
	c.Assert(got[0].AverageRating, qt.Equals, 3.5)
	c.Assert(got[0].ReviewCount, qt.Equals, 4)
}

func TestIsValidSort(t *testing.T) {
	c := qt.New(t)
	for _, s := range []string{"", "date", "price", "title", "rating"} {
		c.Assert(search.IsValidSort(s), qt.IsTrue, qt.Commentf("sort %q", s))
	}
	c.Assert(search.IsValidSort("popularity"), qt.IsFalse)
}
