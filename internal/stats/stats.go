// Package stats derives view aggregates from the repositories. Every value is
// recomputed from the collections passed in; nothing is cached.
package stats

import (
	"math"

	"github.com/go-ports/eventdesk/internal/models"
)

// AverageRating is the arithmetic mean of the ratings rounded to one decimal,
// or 0 when reviews is empty.
func AverageRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return roundOne(float64(sum) / float64(len(reviews)))
}

// BookingSummary counts bookings by status.
type BookingSummary struct {
	Total     int `json:"total"`
	Confirmed int `json:"confirmed"`
	Cancelled int `json:"cancelled"`
	// Spent is the price total of confirmed bookings.
	Spent float64 `json:"spent"`
}

// SummarizeBookings counts bookings by status.
func SummarizeBookings(bookings []models.Booking) BookingSummary {
	var s BookingSummary
	for _, b := range bookings {
		s.Total++
		switch b.Status {
		case models.StatusConfirmed:
			s.Confirmed++
			s.Spent += b.Price
		case models.StatusCancelled:
			s.Cancelled++
		}
	}
	return s
}

// EventRating is the rating aggregate of one event.
type EventRating struct {
	EventID int     `json:"eventId"`
	Title   string  `json:"title"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// RatingsByEvent returns one EventRating per event, in catalog order.
func RatingsByEvent(events []models.Event, reviews []models.Review) []EventRating {
	byEvent := make(map[int][]models.Review, len(events))
	for _, r := range reviews {
		byEvent[r.EventID] = append(byEvent[r.EventID], r)
	}
	out := make([]EventRating, 0, len(events))
	for _, ev := range events {
		rs := byEvent[ev.ID]
		out = append(out, EventRating{
			EventID: ev.ID,
			Title:   ev.Title,
			Average: AverageRating(rs),
			Count:   len(rs),
		})
	}
	return out
}

// Orphans counts bookings and reviews that reference events missing from the catalog.
type Orphans struct {
	Bookings int `json:"bookings"`
	Reviews  int `json:"reviews"`
}

// FindOrphans counts records whose eventId is not in events.
func FindOrphans(events []models.Event, bookings []models.Booking, reviews []models.Review) Orphans {
	known := make(map[int]bool, len(events))
	for _, ev := range events {
		known[ev.ID] = true
	}
	var o Orphans
	for _, b := range bookings {
		if !known[b.EventID] {
			o.Bookings++
		}
	}
	for _, r := range reviews {
		if !known[r.EventID] {
			o.Reviews++
		}
	}
	return o
}

// Dashboard is the admin overview.
type Dashboard struct {
	Events      []models.Event     `json:"events"`
	Ratings     []EventRating      `json:"ratings"`
	Bookings    []models.Booking   `json:"bookings"`
	Summary     BookingSummary     `json:"summary"`
	Users       []models.User      `json:"users"`
	Reviews     []models.Review    `json:"reviews"`
	SentEmails  []models.SentEmail `json:"sentEmails"`
	Subscribers int                `json:"subscribers"`
	Orphans     Orphans            `json:"orphans"`
}

// BuildDashboard assembles the admin overview from raw collections.
func BuildDashboard(
	events []models.Event,
	bookings []models.Booking,
	users []models.User,
	reviews []models.Review,
	emails []models.SentEmail,
	subscribers int,
) Dashboard {
	return Dashboard{
		Events:      events,
		Ratings:     RatingsByEvent(events, reviews),
		Bookings:    bookings,
		Summary:     SummarizeBookings(bookings),
		Users:       users,
		Reviews:     reviews,
		SentEmails:  emails,
		Subscribers: subscribers,
		Orphans:     FindOrphans(events, bookings, reviews),
	}
}

// roundOne rounds f to 1 decimal place.
func roundOne(f float64) float64 {
	return math.Round(f*10) / 10
}
