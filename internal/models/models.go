// Package models defines the core records persisted by eventdesk.
package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrValidation wraps every input rejection so callers can match it with errors.Is.
var ErrValidation = errors.New("validation failed")

// Invalid returns an ErrValidation carrying a formatted reason.
func Invalid(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, a...))
}

// ---------------------------------------------------------------------------
// Enumerations
// ---------------------------------------------------------------------------

// Category is the event category.
type Category string

// Event categories.
const (
	CategoryMusic Category = "Music"
	CategoryArt   Category = "Art"
	CategoryTech  Category = "Tech"
)

// ValidCategories lists the accepted category values in display order.
var ValidCategories = []Category{CategoryMusic, CategoryArt, CategoryTech}

// ParseCategory matches s case-insensitively against ValidCategories.
func ParseCategory(s string) (Category, error) {
	for _, c := range ValidCategories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", Invalid("unknown category %q", s)
}

// Role is the user role.
type Role string

// User roles.
const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Status is the booking status. The only transition is Confirmed → Cancelled.
type Status string

// Booking statuses.
const (
	StatusConfirmed Status = "Confirmed"
	StatusCancelled Status = "Cancelled"
)

// ---------------------------------------------------------------------------
// Records
// ---------------------------------------------------------------------------

// Event is a catalog entry.
type Event struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Category    Category `json:"category"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Location    string   `json:"location"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
}

// User is an account that can sign in.
type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"` // #nosec G117 -- plaintext demo credentials
	Role     Role   `json:"role"`
	Phone    string `json:"phone,omitempty"`
}

// IsAdmin reports whether u holds the admin role.
func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

// Booking is a reservation with an event snapshot taken at booking time.
type Booking struct {
	ID          int64   `json:"id"`
	EventID     int     `json:"eventId"`
	EventTitle  string  `json:"eventTitle"`
	EventDate   string  `json:"eventDate"`
	EventImage  string  `json:"eventImage"`
	Price       float64 `json:"price"`
	UserID      int     `json:"userId"`
	BookingDate string  `json:"bookingDate"`
	Status      Status  `json:"status"`
}

// Review is a rating left on an event.
type Review struct {
	ID       int64  `json:"id"`
	EventID  int    `json:"eventId"`
	UserID   int    `json:"userId"`
	UserName string `json:"userName"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
}

// SentEmail is one entry of the notification log.
type SentEmail struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Date    string `json:"date"`
}

// ---------------------------------------------------------------------------
// Constructors and boundary validation
// ---------------------------------------------------------------------------

// BookingDateLayout renders the booking creation date.
const BookingDateLayout = "1/2/2006"

// NewBooking snapshots ev for user u with status Confirmed.
func NewBooking(id int64, ev *Event, u *User, now time.Time) Booking {
	return Booking{
		ID:          id,
		EventID:     ev.ID,
		EventTitle:  ev.Title,
		EventDate:   ev.Date,
		EventImage:  ev.Image,
		Price:       ev.Price,
		UserID:      u.ID,
		BookingDate: now.Format(BookingDateLayout),
		Status:      StatusConfirmed,
	}
}

// ParseRating coerces a submitted rating to an int in [1, 5].
func ParseRating(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, Invalid("rating %q is not a number", s)
	}
	if err := CheckRating(n); err != nil {
		return 0, err
	}
	return n, nil
}

// CheckRating rejects ratings outside [1, 5].
func CheckRating(n int) error {
	if n < 1 || n > 5 {
		return Invalid("rating must be between 1 and 5, got %d", n)
	}
	return nil
}

// ReviewInput is a review as submitted by a user.
type ReviewInput struct {
	EventID int
	Rating  int
	Comment string
}

// Validate checks the rating range and requires a comment.
func (in ReviewInput) Validate() error {
	if err := CheckRating(in.Rating); err != nil {
		return err
	}
	if strings.TrimSpace(in.Comment) == "" {
		return Invalid("please write a comment")
	}
	return nil
}

// EventInput is the admin event form. Title, Date and Category are required.
type EventInput struct {
	Title       string
	Category    Category
	Date        string
	Time        string
	Location    string
	Image       string
	Description string
	Price       float64
}

// Validate checks required fields, the category and the price.
func (in EventInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Date) == "" {
		return Invalid("title and date required")
	}
	if _, err := ParseCategory(string(in.Category)); err != nil {
		return err
	}
	if in.Price < 0 {
		return Invalid("price must not be negative")
	}
	return nil
}

// ToEvent builds an Event with the given id. The category is stored in its
// canonical spelling; call Validate first.
func (in EventInput) ToEvent(id int) Event {
	cat, _ := ParseCategory(string(in.Category))
	return Event{
		ID:          id,
		Title:       strings.TrimSpace(in.Title),
		Category:    cat,
		Date:        strings.TrimSpace(in.Date),
		Time:        in.Time,
		Location:    in.Location,
		Image:       in.Image,
		Description: in.Description,
		Price:       in.Price,
	}
}

// ProfileInput holds editable profile fields.
type ProfileInput struct {
	Name  string
	Email string
	Phone string
}

// Validate requires name and email to be non-blank.
func (in ProfileInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" {
		return Invalid("name and email are required")
	}
	return nil
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

// NextID returns a time-based identifier that is strictly greater than last,
// so ids stay unique when several records are created in the same millisecond.
func NextID(now time.Time, last int64) int64 {
	id := now.UnixMilli()
	if id <= last {
		id = last + 1
	}
	return id
}
