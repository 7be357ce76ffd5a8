// Package bookings holds the booking collection mirrored to the store.
// Bookings are never removed; the only mutation is Confirmed → Cancelled.
package bookings

import (
	"slices"
	"sync"
	"time"

	"github.com/go-ports/eventdesk/internal/models"
	"github.com/go-ports/eventdesk/internal/store"
)

// Repository is the only writer of store.KeyBookings. Every mutation
// re-serializes the full collection before returning.
type Repository struct {
	mu       sync.Mutex
	store    *store.Store
	bookings []models.Booking
	now      func() time.Time
}

// New loads the stored bookings, starting empty on a missing or corrupt slot.
func New(st *store.Store) *Repository {
	return &Repository{
		store:    st,
		bookings: store.Load(st, store.KeyBookings, make([]models.Booking, 0)),
		now:      time.Now,
	}
}

// All returns every booking in creation order.
func (r *Repository) All() []models.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.bookings)
}

// ForUser returns the bookings made by userID.
func (r *Repository) ForUser(userID int) []models.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Booking, 0)
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out
}

// Get returns the booking with id.
func (r *Repository) Get(id int64) (models.Booking, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := slices.IndexFunc(r.bookings, func(b models.Booking) bool { return b.ID == id })
	if i < 0 {
		return models.Booking{}, false
	}
	return r.bookings[i], true
}

// Add appends a Confirmed booking of ev for u and persists.
func (r *Repository) Add(ev *models.Event, u *models.User) models.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	b := models.NewBooking(models.NextID(now, maxID(r.bookings)), ev, u, now)
	r.bookings = append(r.bookings, b)
	store.Save(r.store, store.KeyBookings, r.bookings)
	return b
}

// Cancel sets the booking's status to Cancelled, keeping every other field.
// Returns the booking and false when id is unknown (no-op).
func (r *Repository) Cancel(id int64) (models.Booking, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var (
		found models.Booking
		ok    bool
	)
	next := make([]models.Booking, len(r.bookings))
	for i, b := range r.bookings {
		if b.ID == id {
			b.Status = models.StatusCancelled
			found, ok = b, true
		}
		next[i] = b
	}
	r.bookings = next
	store.Save(r.store, store.KeyBookings, r.bookings)
	return found, ok
}

func maxID(all []models.Booking) int64 {
	var m int64
	for _, b := range all {
		if b.ID > m {
			m = b.ID
		}
	}
	return m
}

// Persist writes the current collection to the store.
func (r *Repository) Persist() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return store.Save(r.store, store.KeyBookings, r.bookings)
}
