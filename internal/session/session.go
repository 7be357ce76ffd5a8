// Package session owns the user list and the signed-in identity. It is the
// authorization gate consulted by every mutating booking and review operation.
package session

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/go-ports/eventdesk/internal/models"
	"github.com/go-ports/eventdesk/internal/store"
)

var (
	// ErrInvalidCredentials is returned by Login for any mismatch.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAuthRequired is returned when an operation needs a signed-in user.
	ErrAuthRequired = errors.New("please login first")
	// ErrAdminRequired is returned when an operation needs the admin role.
	ErrAdminRequired = errors.New("access denied: admins only")
)

type persistedSession struct {
	UserID int `json:"userId"`
}

// Manager is the only writer of store.KeyUsers and store.KeySession.
type Manager struct {
	mu      sync.Mutex
	store   *store.Store
	users   []models.User
	current *models.User
	persist bool
}

// New loads the user list (seeded when empty or corrupt). When persist is true
// the previous session is restored from the store.
func New(st *store.Store, persist bool) *Manager {
	m := &Manager{
		store:   st,
		users:   store.Load(st, store.KeyUsers, models.SeedUsers()),
		persist: persist,
	}
	if persist {
		var ps persistedSession
		if st.LoadValue(store.KeySession, &ps) {
			if u, ok := m.byID(ps.UserID); ok {
				m.current = &u
			}
		}
	}
	return m
}

// Login signs in the first user whose email and password match exactly.
func (m *Manager) Login(email, password string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email && u.Password == password {
			m.current = &u
			m.saveSession()
			return u, nil
		}
	}
	return models.User{}, ErrInvalidCredentials
}

// Logout clears the session.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = nil
	if m.persist {
		m.store.Clear(store.KeySession)
	}
}

// Current returns the signed-in user.
func (m *Manager) Current() (models.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return models.User{}, false
	}
	return *m.current, true
}

// RequireUser returns the signed-in user or ErrAuthRequired.
func (m *Manager) RequireUser() (models.User, error) {
	u, ok := m.Current()
	if !ok {
		return models.User{}, ErrAuthRequired
	}
	return u, nil
}

// RequireAdmin returns the signed-in admin, ErrAuthRequired or ErrAdminRequired.
func (m *Manager) RequireAdmin() (models.User, error) {
	u, err := m.RequireUser()
	if err != nil {
		return u, err
	}
	if !u.IsAdmin() {
		return models.User{}, ErrAdminRequired
	}
	return u, nil
}

// UpdateProfile merges in into the session user and its entry in the user
// list. Nothing changes unless every field validates.
func (m *Manager) UpdateProfile(in models.ProfileInput) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return models.User{}, ErrAuthRequired
	}
	if err := in.Validate(); err != nil {
		return models.User{}, err
	}
	email := strings.TrimSpace(in.Email)
	for _, u := range m.users {
		if u.ID != m.current.ID && u.Email == email {
			return models.User{}, fmt.Errorf("%w: email %s is already in use", models.ErrValidation, email)
		}
	}

	updated := *m.current
	updated.Name = strings.TrimSpace(in.Name)
	updated.Email = email
	updated.Phone = strings.TrimSpace(in.Phone)

	next := slices.Clone(m.users)
	for i, u := range next {
		if u.ID == updated.ID {
			next[i] = updated
		}
	}
	m.users = next
	m.current = &updated
	store.Save(m.store, store.KeyUsers, m.users)
	return updated, nil
}

// Users returns the user list.
func (m *Manager) Users() []models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.users)
}

func (m *Manager) byID(id int) (models.User, bool) {
	for _, u := range m.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

func (m *Manager) saveSession() {
	if !m.persist || m.current == nil {
		return
	}
	m.store.SaveValue(store.KeySession, persistedSession{UserID: m.current.ID})
}

// PersistUsers writes the user list to the store.
func (m *Manager) PersistUsers() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return store.Save(m.store, store.KeyUsers, m.users)
}
