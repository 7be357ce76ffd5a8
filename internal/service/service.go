// Package service implements the eventdesk view model that wires together
// configuration, storage, the repositories, redaction and notifications.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-ports/eventdesk/internal/bookings"
	"github.com/go-ports/eventdesk/internal/catalog"
	"github.com/go-ports/eventdesk/internal/config"
	"github.com/go-ports/eventdesk/internal/db"
	"github.com/go-ports/eventdesk/internal/models"
	"github.com/go-ports/eventdesk/internal/newsletter"
	"github.com/go-ports/eventdesk/internal/notify"
	"github.com/go-ports/eventdesk/internal/redaction"
	"github.com/go-ports/eventdesk/internal/reviews"
	"github.com/go-ports/eventdesk/internal/search"
	"github.com/go-ports/eventdesk/internal/session"
	"github.com/go-ports/eventdesk/internal/stats"
	"github.com/go-ports/eventdesk/internal/store"
)

// DBFile is the name of the database inside the data home.
const DBFile = "eventdesk.db"

const metaInitializedAt = "initialized_at"

var (
	// ErrNotFound is returned when an event or booking id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNoDatabase is returned by operations that need the SQLite backend.
	ErrNoDatabase = errors.New("no database attached")
)

// Service owns one repository per collection. It is the only place where
// collections are combined.
type Service struct {
	Home   string
	Config *config.AppConfig

	database   *db.DB
	store      *store.Store
	catalog    *catalog.Catalog
	reviews    *reviews.Repository
	bookings   *bookings.Repository
	session    *session.Manager
	mailer     *notify.Mailer
	dispatcher *notify.Dispatcher
	newsletter *newsletter.List

	redactor *redaction.Redactor
	mu       sync.Mutex
}

// New initialises a Service rooted at home.
// If home is empty it is resolved via config.GetHome.
func New(home string) (*Service, error) {
	if home == "" {
		home = config.GetHome()
	}
	if err := os.MkdirAll(home, 0o755); err != nil {
		return nil, fmt.Errorf("service.New: create home: %w", err)
	}

	cfg, err := config.Load(filepath.Join(home, "config.yaml"))
	if err != nil {
		return nil, fmt.Errorf("service.New: load config: %w", err)
	}

	database, err := db.Open(filepath.Join(home, DBFile))
	if err != nil {
		return nil, fmt.Errorf("service.New: open db: %w", err)
	}

	s := NewWithBackend(home, cfg, database)
	s.database = database
	return s, nil
}

// NewWithBackend builds a Service over an arbitrary backend. home is only used
// to locate the .eventignore file and may be empty. A nil cfg means defaults.
func NewWithBackend(home string, cfg *config.AppConfig, backend store.Backend) *Service {
	if cfg == nil {
		cfg = config.Default()
	}
	st := store.New(backend)
	mailer := notify.NewMailer(st, cfg.Notifications.From)

	var sender notify.Sender
	if cfg.Notifications.Enabled {
		sender = mailer
	}

	return &Service{
		Home:       home,
		Config:     cfg,
		store:      st,
		catalog:    catalog.New(st),
		reviews:    reviews.New(st),
		bookings:   bookings.New(st),
		session:    session.New(st, cfg.Session.Persist),
		mailer:     mailer,
		dispatcher: notify.NewDispatcher(sender, 0),
		newsletter: newsletter.New(st),
	}
}

// Close waits for pending notifications and releases the database.
func (s *Service) Close() error {
	s.dispatcher.Wait()
	if s.database == nil {
		return nil
	}
	return s.database.Close()
}

// ---------------------------------------------------------------------------
// Lazy helpers
// ---------------------------------------------------------------------------

// redact scrubs text with the home's redaction rules, loaded on first use.
func (s *Service) redact(text string) string {
	s.mu.Lock()
	if s.redactor == nil {
		r, err := redaction.Load(s.Home)
		if err != nil {
			slog.Warn("failed to load "+redaction.IgnoreFile, "err", err)
		}
		s.redactor = r
	}
	r := s.redactor
	s.mu.Unlock()
	return r.Redact(text)
}

// ---------------------------------------------------------------------------
// Init
// ---------------------------------------------------------------------------

// Init writes the default config when absent, materialises the seed
// collections and records the initialisation time. It is safe to re-run.
func (s *Service) Init() error {
	if s.Home != "" {
		cfgPath := filepath.Join(s.Home, "config.yaml")
		if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
			if err := config.Save(cfgPath, s.Config); err != nil {
				return fmt.Errorf("service.Init: write config: %w", err)
			}
		}
	}

	ok := s.catalog.Persist()
	ok = s.session.PersistUsers() && ok
	ok = s.reviews.Persist() && ok
	ok = s.bookings.Persist() && ok
	if !ok {
		return fmt.Errorf("service.Init: %w", store.ErrUnavailable)
	}

	if s.database == nil {
		return nil
	}
	if _, found, err := s.database.GetMeta(metaInitializedAt); err != nil {
		return fmt.Errorf("service.Init: %w", err)
	} else if found {
		return nil
	}
	if err := s.database.SetMeta(metaInitializedAt, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("service.Init: %w", err)
	}
	return nil
}

// InitializedAt returns when Init first ran against this data home.
func (s *Service) InitializedAt() (string, bool) {
	if s.database == nil {
		return "", false
	}
	v, ok, err := s.database.GetMeta(metaInitializedAt)
	if err != nil {
		slog.Warn("read init time", "err", err)
		return "", false
	}
	return v, ok
}

// Slots lists the stored keys with their sizes.
func (s *Service) Slots() ([]db.SlotInfo, error) {
	if s.database == nil {
		return nil, ErrNoDatabase
	}
	return s.database.Keys()
}

// ---------------------------------------------------------------------------
// Session
// ---------------------------------------------------------------------------

// Login signs a user in.
func (s *Service) Login(email, password string) (models.User, error) {
	return s.session.Login(email, password)
}

// Logout signs the current user out.
func (s *Service) Logout() {
	s.session.Logout()
}

// CurrentUser returns the signed-in user.
func (s *Service) CurrentUser() (models.User, bool) {
	return s.session.Current()
}

// UpdateProfile edits the signed-in user's profile.
func (s *Service) UpdateProfile(in models.ProfileInput) (models.User, error) {
	return s.session.UpdateProfile(in)
}

// ---------------------------------------------------------------------------
// Events
// ---------------------------------------------------------------------------

// ListEvents filters and orders the catalog, attaching review aggregates.
func (s *Service) ListEvents(crit search.Criteria) []search.Result {
	all := s.reviews.All()
	return search.Run(s.catalog.All(), crit, func(id int) (float64, int) {
		rs := make([]models.Review, 0)
		for _, r := range all {
			if r.EventID == id {
				rs = append(rs, r)
			}
		}
		return stats.AverageRating(rs), len(rs)
	})
}

// DefaultCriteria returns criteria with the configured price ceiling.
func (s *Service) DefaultCriteria() search.Criteria {
	return search.Criteria{Category: search.CategoryAll, MaxPrice: s.Config.Catalog.MaxPrice}
}

// GetEvent returns the event with id.
func (s *Service) GetEvent(id int) (models.Event, bool) {
	return s.catalog.Get(id)
}

// SelectEvent returns the event with id and remembers it as the selected event.
func (s *Service) SelectEvent(id int) (models.Event, error) {
	ev, ok := s.catalog.Get(id)
	if !ok {
		return models.Event{}, fmt.Errorf("event %d: %w", id, ErrNotFound)
	}
	s.store.SaveValue(store.KeySelected, ev)
	return ev, nil
}

// SelectedEvent returns the last event shown.
func (s *Service) SelectedEvent() (models.Event, bool) {
	var ev models.Event
	ok := s.store.LoadValue(store.KeySelected, &ev)
	return ev, ok
}

// CreateEvent adds an event to the catalog. Admin only.
func (s *Service) CreateEvent(in models.EventInput) (models.Event, error) {
	if _, err := s.session.RequireAdmin(); err != nil {
		return models.Event{}, err
	}
	return s.catalog.Create(in)
}

// UpdateEvent replaces an event. Admin only.
func (s *Service) UpdateEvent(id int, in models.EventInput) (models.Event, error) {
	if _, err := s.session.RequireAdmin(); err != nil {
		return models.Event{}, err
	}
	ev, ok, err := s.catalog.Update(id, in)
	if err != nil {
		return models.Event{}, err
	}
	if !ok {
		return models.Event{}, fmt.Errorf("event %d: %w", id, ErrNotFound)
	}
	return ev, nil
}

// DeleteEvent removes an event. Bookings and reviews for it are kept. Admin only.
func (s *Service) DeleteEvent(id int) (bool, error) {
	if _, err := s.session.RequireAdmin(); err != nil {
		return false, err
	}
	return s.catalog.Delete(id), nil
}

// ---------------------------------------------------------------------------
// Bookings
// ---------------------------------------------------------------------------

// AddBooking books eventID for the signed-in user and queues a confirmation
// email. The email never delays or fails the booking.
func (s *Service) AddBooking(ctx context.Context, eventID int) (models.Booking, error) {
	if err := ctx.Err(); err != nil {
		return models.Booking{}, err
	}
	u, err := s.session.RequireUser()
	if err != nil {
		return models.Booking{}, err
	}
	ev, ok := s.catalog.Get(eventID)
	if !ok {
		return models.Booking{}, fmt.Errorf("event %d: %w", eventID, ErrNotFound)
	}

	b := s.bookings.Add(&ev, &u)
	s.dispatcher.Notify(u.Email, confirmationSubject(&ev), s.redact(confirmationBody(&u, &ev, b.ID)))
	return b, nil
}

// CancelBooking marks a booking Cancelled. Users may cancel their own bookings;
// admins may cancel any. Returns false when no such booking is visible.
func (s *Service) CancelBooking(id int64) (models.Booking, bool, error) {
	u, err := s.session.RequireUser()
	if err != nil {
		return models.Booking{}, false, err
	}
	b, ok := s.bookings.Get(id)
	if !ok || (b.UserID != u.ID && !u.IsAdmin()) {
		return models.Booking{}, false, nil
	}
	b, ok = s.bookings.Cancel(id)
	return b, ok, nil
}

// MyBookings returns the signed-in user's bookings and their summary.
func (s *Service) MyBookings() ([]models.Booking, stats.BookingSummary, error) {
	u, err := s.session.RequireUser()
	if err != nil {
		return nil, stats.BookingSummary{}, err
	}
	mine := s.bookings.ForUser(u.ID)
	return mine, stats.SummarizeBookings(mine), nil
}

// AllBookings returns every booking. Admin only.
func (s *Service) AllBookings() ([]models.Booking, error) {
	if _, err := s.session.RequireAdmin(); err != nil {
		return nil, err
	}
	return s.bookings.All(), nil
}

func confirmationSubject(ev *models.Event) string {
	return "Booking Confirmed: " + ev.Title
}

func confirmationBody(u *models.User, ev *models.Event, bookingID int64) string {
	return fmt.Sprintf("Hi %s,\n\nYour booking for %s on %s is confirmed. Booking ID: %d",
		u.Name, ev.Title, ev.Date, bookingID)
}

// ---------------------------------------------------------------------------
// Reviews
// ---------------------------------------------------------------------------

// AddReview records a review by the signed-in user. The comment is redacted
// before it is stored.
func (s *Service) AddReview(in models.ReviewInput) (models.Review, error) {
	u, err := s.session.RequireUser()
	if err != nil {
		return models.Review{}, err
	}
	if err := in.Validate(); err != nil {
		return models.Review{}, err
	}
	if _, ok := s.catalog.Get(in.EventID); !ok {
		return models.Review{}, fmt.Errorf("event %d: %w", in.EventID, ErrNotFound)
	}
	comment := s.redact(strings.TrimSpace(in.Comment))
	return s.reviews.Add(in.EventID, u.ID, u.Name, in.Rating, comment), nil
}

// ReviewsForEvent returns the reviews of an event, most recent first.
func (s *Service) ReviewsForEvent(eventID int) []models.Review {
	return s.reviews.ForEvent(eventID)
}

// AverageRating returns the event's mean rating rounded to one decimal.
func (s *Service) AverageRating(eventID int) float64 {
	return s.reviews.AverageRating(eventID)
}

// AllReviews returns every review. Admin only.
func (s *Service) AllReviews() ([]models.Review, error) {
	if _, err := s.session.RequireAdmin(); err != nil {
		return nil, err
	}
	return s.reviews.All(), nil
}

// DeleteReview removes a review. Admin only.
func (s *Service) DeleteReview(id int64) (bool, error) {
	if _, err := s.session.RequireAdmin(); err != nil {
		return false, err
	}
	return s.reviews.Delete(id), nil
}

// ---------------------------------------------------------------------------
// Admin
// ---------------------------------------------------------------------------

// SentEmails returns the notification log, most recent first. Admin only.
func (s *Service) SentEmails() ([]models.SentEmail, error) {
	if _, err := s.session.RequireAdmin(); err != nil {
		return nil, err
	}
	return s.mailer.Sent(), nil
}

// Users returns the user list with passwords masked. Admin only.
func (s *Service) Users() ([]models.User, error) {
	if _, err := s.session.RequireAdmin(); err != nil {
		return nil, err
	}
	return maskPasswords(s.session.Users()), nil
}

// Dashboard assembles the admin overview. Admin only.
func (s *Service) Dashboard() (stats.Dashboard, error) {
	if _, err := s.session.RequireAdmin(); err != nil {
		return stats.Dashboard{}, err
	}
	return stats.BuildDashboard(
		s.catalog.All(),
		s.bookings.All(),
		maskPasswords(s.session.Users()),
		s.reviews.All(),
		s.mailer.Sent(),
		s.newsletter.Len(),
	), nil
}

func maskPasswords(users []models.User) []models.User {
	out := slices.Clone(users)
	for i := range out {
		out[i].Password = redaction.Mask(out[i].Password)
	}
	return out
}

// ---------------------------------------------------------------------------
// Newsletter
// ---------------------------------------------------------------------------

// Subscribe adds email to the newsletter. Reports false when already present.
func (s *Service) Subscribe(email string) (bool, error) {
	return s.newsletter.Subscribe(email)
}
