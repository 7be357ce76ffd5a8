// Package newsletter keeps the list of newsletter subscribers.
package newsletter

import (
	"net/mail"
	"slices"
	"strings"
	"sync"

	"github.com/go-ports/eventdesk/internal/models"
	"github.com/go-ports/eventdesk/internal/store"
)

// List is the only writer of store.KeySubscribers.
type List struct {
	mu     sync.Mutex
	store  *store.Store
	emails []string
}

// New loads the subscriber list from st.
func New(st *store.Store) *List {
	return &List{
		store:  st,
		emails: store.Load(st, store.KeySubscribers, make([]string, 0)),
	}
}

// Subscribe adds email to the list. It reports false when the address was
// already subscribed. Addresses compare case-insensitively and are stored
// lower-cased.
func (l *List) Subscribe(email string) (bool, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil || addr.Name != "" {
		return false, models.Invalid("invalid email address %q", email)
	}
	normalized := strings.ToLower(addr.Address)

	l.mu.Lock()
	defer l.mu.Unlock()

	if slices.Contains(l.emails, normalized) {
		return false, nil
	}
	l.emails = append(slices.Clone(l.emails), normalized)
	store.Save(l.store, store.KeySubscribers, l.emails)
	return true, nil
}

// All returns the subscribers in the order they joined.
func (l *List) All() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.emails)
}

// Len returns the number of subscribers.
func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.emails)
}
