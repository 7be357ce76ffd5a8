// Package catalog holds the event list. It is seeded from the fixed catalog
// and changed only through admin operations.
package catalog

import (
	"slices"
	"sync"

	"github.com/go-ports/eventdesk/internal/models"
	"github.com/go-ports/eventdesk/internal/store"
)

// Catalog is the only writer of store.KeyEvents.
type Catalog struct {
	mu     sync.Mutex
	store  *store.Store
	events []models.Event
}

// New loads the stored catalog, or the seed catalog when none is stored.
func New(st *store.Store) *Catalog {
	return &Catalog{
		store:  st,
		events: store.Load(st, store.KeyEvents, models.SeedEvents()),
	}
}

// All returns the events in catalog order.
func (c *Catalog) All() []models.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.events)
}

// Get returns the event with id.
func (c *Catalog) Get(id int) (models.Event, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(id)
	if i < 0 {
		return models.Event{}, false
	}
	return c.events[i], true
}

// Create validates in and appends it with the next free id.
func (c *Catalog) Create(in models.EventInput) (models.Event, error) {
	if err := in.Validate(); err != nil {
		return models.Event{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	next := 1
	for _, ev := range c.events {
		if ev.ID >= next {
			next = ev.ID + 1
		}
	}
	ev := in.ToEvent(next)
	c.events = append(slices.Clone(c.events), ev)
	store.Save(c.store, store.KeyEvents, c.events)
	return ev, nil
}

// Update replaces the event with id. Returns false when id is unknown.
func (c *Catalog) Update(id int, in models.EventInput) (models.Event, bool, error) {
	if err := in.Validate(); err != nil {
		return models.Event{}, false, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(id)
	if i < 0 {
		return models.Event{}, false, nil
	}
	ev := in.ToEvent(id)
	next := slices.Clone(c.events)
	next[i] = ev
	c.events = next
	store.Save(c.store, store.KeyEvents, c.events)
	return ev, true, nil
}

// Delete removes the event with id. Bookings and reviews that reference it
// are left in place.
func (c *Catalog) Delete(id int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(id)
	if i < 0 {
		return false
	}
	c.events = slices.Delete(slices.Clone(c.events), i, i+1)
	store.Save(c.store, store.KeyEvents, c.events)
	return true
}

func (c *Catalog) index(id int) int {
	return slices.IndexFunc(c.events, func(ev models.Event) bool { return ev.ID == id })
}

// Persist writes the current catalog to the store.
func (c *Catalog) Persist() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return store.Save(c.store, store.KeyEvents, c.events)
}
