// Package search filters and orders the event catalog for display.
package search

import (
	"sort"
	"strings"

	"github.com/go-ports/eventdesk/internal/models"
)

// CategoryAll matches every category.
const CategoryAll = "All"

// Sort orders.
const (
	SortNone   = ""
	SortDate   = "date"
	SortPrice  = "price"
	SortTitle  = "title"
	SortRating = "rating"
)

// ValidSorts lists the accepted Sort values.
var ValidSorts = []string{SortDate, SortPrice, SortTitle, SortRating}

// Criteria selects and orders events.
type Criteria struct {
	// Query is matched case-insensitively against the title.
	Query string
	// Category is a models.Category value or CategoryAll / "".
	Category string
	// MaxPrice keeps events priced at or below it; negative means no ceiling.
	MaxPrice float64
	// Sort is one of ValidSorts, or SortNone to keep catalog order.
	Sort string
	// Desc reverses the order.
	Desc bool
}

// Result is an event with its rating aggregate.
type Result struct {
	models.Event
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`
}

// RatingFunc returns the average rating and review count of an event.
type RatingFunc func(eventID int) (avg float64, count int)

// Matches reports whether ev satisfies every filter in crit.
func Matches(ev *models.Event, crit Criteria) bool {
	if crit.Query != "" && !strings.Contains(strings.ToLower(ev.Title), strings.ToLower(crit.Query)) {
		return false
	}
	if crit.MaxPrice >= 0 && ev.Price > crit.MaxPrice {
		return false
	}
	if crit.Category != "" && crit.Category != CategoryAll && !strings.EqualFold(string(ev.Category), crit.Category) {
		return false
	}
	return true
}

// Run filters events by crit, attaches ratings and orders the result.
// rating may be nil.
func Run(events []models.Event, crit Criteria, rating RatingFunc) []Result {
	out := make([]Result, 0, len(events))
	for i := range events {
		if !Matches(&events[i], crit) {
			continue
		}
		r := Result{Event: events[i]}
		if rating != nil {
			r.AverageRating, r.ReviewCount = rating(r.ID)
		}
		out = append(out, r)
	}

	less := lessFunc(crit.Sort)
	if less == nil {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		if crit.Desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// IsValidSort reports whether s is an accepted sort key.
func IsValidSort(s string) bool {
	if s == SortNone {
		return true
	}
	for _, v := range ValidSorts {
		if v == s {
			return true
		}
	}
	return false
}

func lessFunc(key string) func(a, b Result) bool {
	switch key {
	case SortDate:
		// ISO dates order lexically.
		return func(a, b Result) bool { return a.Date < b.Date }
	case SortPrice:
		return func(a, b Result) bool { return a.Price < b.Price }
	case SortTitle:
		return func(a, b Result) bool { return strings.ToLower(a.Title) < strings.ToLower(b.Title) }
	case SortRating:
		return func(a, b Result) bool { return a.AverageRating < b.AverageRating }
	}
	return nil
}
