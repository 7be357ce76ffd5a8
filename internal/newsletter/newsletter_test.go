package newsletter_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/eventdesk/internal/models"
	"github.com/go-ports/eventdesk/internal/newsletter"
	"github.com/go-ports/eventdesk/internal/store"
)

func TestSubscribe_HappyPath(t *testing.T) {
	c := qt.New(t)
	st := store.New(store.NewMemory())
	l := newsletter.New(st)

	added, err := l.Subscribe(" Fan@Example.com ")
	c.Assert(err, qt.IsNil)
	c.Assert(added, qt.IsTrue)

	added, err = l.Subscribe("other@example.com")
	c.Assert(err, qt.IsNil)
	c.Assert(added, qt.IsTrue)

	c.Assert(l.All(), qt.DeepEquals, []string{"fan@example.com", "other@example.com"})
	c.Assert(newsletter.New(st).Len(), qt.Equals, 2)
}

func TestSubscribe_Duplicate(t *testing.T) {
	c := qt.New(t)
	l := newsletter.New(store.New(store.NewMemory()))

	_, err := l.Subscribe("fan@example.com")
	c.Assert(err, qt.IsNil)

	added, err := l.Subscribe("FAN@example.com")
	c.Assert(err, qt.IsNil)
	c.Assert(added, qt.IsFalse)
	c.Assert(l.Len(), qt.Equals, 1)
}

func TestSubscribe_FailurePath(t *testing.T) {
	c := qt.New(t)
	l := newsletter.New(store.New(store.NewMemory()))

	for _, in := range []string{"", "not-an-email", "Fan <fan@example.com>"} {
		added, err := l.Subscribe(in)
		c.Assert(err, qt.ErrorIs, models.ErrValidation, qt.Commentf("input %q", in))
		c.Assert(added, qt.IsFalse)
	}
	c.Assert(l.All(), qt.HasLen, 0)
}

func TestNew_CorruptSlotStartsEmpty(t *testing.T) {
	c := qt.New(t)
	mem := store.NewMemory()
	c.Assert(mem.Set(store.KeySubscribers, "{not json"), qt.IsNil)

	l := newsletter.New(store.New(mem))
	c.Assert(l.All(), qt.DeepEquals, []string{})
}
