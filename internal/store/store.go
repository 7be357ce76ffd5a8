// Package store is the JSON collection adapter over a synchronous key-value
// backend. Reads never fail: missing or malformed slots fall back to the
// caller's default. Writes are full-snapshot overwrites whose failures are
// logged and swallowed so that in-memory state stays authoritative.
package store

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Storage keys shared by the repositories.
const (
	KeyBookings    = "event_app_bookings"
	KeyReviews     = "event_app_reviews"
	KeyUsers       = "event_app_users"
	KeyEvents      = "event_app_events"
	KeySession     = "event_app_session"
	KeySentEmails  = "sentEmails"
	KeySubscribers = "newsletter_subscribers"
	KeySelected    = "selectedEvent"
)

// Backend is the raw slot storage. *db.DB satisfies it.
type Backend interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) (bool, error)
}

// Store serializes collections to a Backend.
type Store struct {
	backend Backend
}

// New wraps backend.
func New(backend Backend) *Store {
	return &Store{backend: backend}
}

// Load reads the array stored under key. A missing slot, unreadable backend,
// malformed JSON or non-array content all return def.
func Load[T any](s *Store, key string, def []T) []T {
	raw, ok, err := s.backend.Get(key)
	if err != nil {
		slog.Warn("store: load failed, using default", "key", key, "err", err)
		return def
	}
	if !ok || raw == "" {
		return def
	}
	var out []T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		slog.Warn("store: malformed slot, using default", "key", key, "err", err)
		return def
	}
	// JSON null decodes into a nil slice without error.
	if out == nil {
		return def
	}
	return out
}

// Save overwrites key with the full collection. Returns false when the write
// failed; the failure is logged and otherwise ignored.
func Save[T any](s *Store, key string, items []T) bool {
	if items == nil {
		items = make([]T, 0)
	}
	b, err := json.Marshal(items)
	if err != nil {
		slog.Warn("store: encode failed", "key", key, "err", err)
		return false
	}
	if err := s.backend.Set(key, string(b)); err != nil {
		slog.Warn("store: save failed, keeping in-memory state", "key", key, "err", err)
		return false
	}
	return true
}

// LoadValue reads a single JSON object slot into out. Returns false (leaving out
// untouched) when the slot is missing or malformed.
func (s *Store) LoadValue(key string, out any) bool {
	raw, ok, err := s.backend.Get(key)
	if err != nil {
		slog.Warn("store: load failed", "key", key, "err", err)
		return false
	}
	if !ok || raw == "" || raw == "null" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		slog.Warn("store: malformed slot", "key", key, "err", err)
		return false
	}
	return true
}

// SaveValue overwrites key with a single JSON object.
func (s *Store) SaveValue(key string, v any) bool {
	b, err := json.Marshal(v)
	if err != nil {
		slog.Warn("store: encode failed", "key", key, "err", err)
		return false
	}
	if err := s.backend.Set(key, string(b)); err != nil {
		slog.Warn("store: save failed", "key", key, "err", err)
		return false
	}
	return true
}

// Clear removes key. Failures are logged and ignored.
func (s *Store) Clear(key string) {
	if _, err := s.backend.Delete(key); err != nil {
		slog.Warn("store: clear failed", "key", key, "err", err)
	}
}

// ---------------------------------------------------------------------------
// In-memory backend
// ---------------------------------------------------------------------------

// Memory is a map-backed Backend used by tests and by callers that run without
// a data home.
type Memory struct {
	mu    sync.Mutex
	slots map[string]string

	// FailWrites makes every Set and Delete return ErrUnavailable.
	FailWrites bool
	// FailReads makes every Get return ErrUnavailable.
	FailReads bool
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{slots: make(map[string]string)}
}

// Get implements Backend.
func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailReads {
		return "", false, ErrUnavailable
	}
	v, ok := m.slots[key]
	return v, ok, nil
}

// Set implements Backend.
func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return ErrUnavailable
	}
	m.slots[key] = value
	return nil
}

// Delete implements Backend.
func (m *Memory) Delete(key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return false, ErrUnavailable
	}
	_, ok := m.slots[key]
	delete(m.slots, key)
	return ok, nil
}

// Raw returns the stored string under key, for assertions.
func (m *Memory) Raw(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.slots[key]
	return v, ok
}
