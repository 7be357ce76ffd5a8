// Package reviews holds the review collection mirrored to the store.
package reviews

import (
	"slices"
	"sync"
	"time"

	"github.com/go-ports/eventdesk/internal/models"
	"github.com/go-ports/eventdesk/internal/stats"
	"github.com/go-ports/eventdesk/internal/store"
)

// Repository is the only writer of store.KeyReviews.
type Repository struct {
	mu      sync.Mutex
	store   *store.Store
	reviews []models.Review
	now     func() time.Time
}

// New seeds the repository once from st, falling back to the default seed
// review when the slot is empty or corrupt.
func New(st *store.Store) *Repository {
	return &Repository{
		store:   st,
		reviews: store.Load(st, store.KeyReviews, models.SeedReviews()),
		now:     time.Now,
	}
}

// All returns the reviews in the order held (most recent first).
func (r *Repository) All() []models.Review {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.reviews)
}

// ForEvent returns the reviews for eventID, preserving order.
func (r *Repository) ForEvent(eventID int) []models.Review {
	r.mu.Lock()
	defer r.mu.Unlock()
	return forEvent(r.reviews, eventID)
}

// Add prepends a new review and persists the collection. The comment is not
// checked here; see models.ReviewInput.Validate.
func (r *Repository) Add(eventID, userID int, userName string, rating int, comment string) models.Review {
	r.mu.Lock()
	defer r.mu.Unlock()

	rev := models.Review{
		ID:       models.NextID(r.now(), maxID(r.reviews)),
		EventID:  eventID,
		UserID:   userID,
		UserName: userName,
		Rating:   rating,
		Comment:  comment,
	}
	r.reviews = append([]models.Review{rev}, r.reviews...)
	store.Save(r.store, store.KeyReviews, r.reviews)
	return rev
}

// Delete removes the review with id and persists. Returns false when absent.
func (r *Repository) Delete(id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := slices.DeleteFunc(slices.Clone(r.reviews), func(rv models.Review) bool { return rv.ID == id })
	removed := len(next) != len(r.reviews)
	r.reviews = next
	store.Save(r.store, store.KeyReviews, r.reviews)
	return removed
}

// AverageRating is the mean rating for eventID rounded to one decimal, 0 with no reviews.
func (r *Repository) AverageRating(eventID int) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return stats.AverageRating(forEvent(r.reviews, eventID))
}

func forEvent(all []models.Review, eventID int) []models.Review {
	out := make([]models.Review, 0)
	for _, rv := range all {
		if rv.EventID == eventID {
			out = append(out, rv)
		}
	}
	return out
}

func maxID(all []models.Review) int64 {
	var m int64
	for _, rv := range all {
		if rv.ID > m {
			m = rv.ID
		}
	}
	return m
}

// Persist writes the current collection to the store.
func (r *Repository) Persist() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return store.Save(r.store, store.KeyReviews, r.reviews)
}
