package session_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/eventdesk/internal/models"
	"github.com/go-ports/eventdesk/internal/session"
	"github.com/go-ports/eventdesk/internal/store"
)

func TestLogin_HappyPath(t *testing.T) {
	c := qt.New(t)
	m := session.New(store.New(store.NewMemory()), false)

	u, err := m.Login("john@example.com", "123456")
	c.Assert(err, qt.IsNil)
	c.Assert(u.Name, qt.Equals, "John")
	c.Assert(u.IsAdmin(), qt.IsTrue)

	cur, ok := m.Current()
	c.Assert(ok, qt.IsTrue)
	c.Assert(cur, qt.DeepEquals, u)
}

func TestLogin_FailurePath(t *testing.T) {
	c := qt.New(t)

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "nope@x.com", "wrong"},
		{"wrong password", "john@example.com", "wrong"},
		{"email is case sensitive", "JOHN@example.com", "123456"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		c.Run(tc.name, func(c *qt.C) {
			m := session.New(store.New(store.NewMemory()), false)
			_, err := m.Login(tc.email, tc.password)
			c.Assert(err, qt.ErrorIs, session.ErrInvalidCredentials)
			_, ok := m.Current()
			c.Assert(ok, qt.IsFalse)
		})
	}
}

func TestLogin_FirstMatchWins(t *testing.T) {
	c := qt.New(t)
	st := store.New(store.NewMemory())
	store.Save(st, store.KeyUsers, []models.User{
		{ID: 10, Name: "First", Email: "dup@x.com", Password: "pw", Role: models.RoleUser},
		{ID: 11, Name: "Second", Email: "dup@x.com", Password: "pw", Role: models.RoleAdmin},
	})

	u, err := session.New(st, false).Login("dup@x.com", "pw")
	c.Assert(err, qt.IsNil)
	c.Assert(u.ID, qt.Equals, 10)
}

func TestLogout_ClosesGate(t *testing.T) {
	c := qt.New(t)
	m := session.New(store.New(store.NewMemory()), false)

	_, err := m.Login("jane@example.com", "123456")
	c.Assert(err, qt.IsNil)
	_, err = m.RequireUser()
	c.Assert(err, qt.IsNil)

	m.Logout()
	_, err = m.RequireUser()
	c.Assert(err, qt.ErrorIs, session.ErrAuthRequired)
}

func TestRequireAdmin(t *testing.T) {
	c := qt.New(t)
	m := session.New(store.New(store.NewMemory()), false)

	_, err := m.RequireAdmin()
	c.Assert(err, qt.ErrorIs, session.ErrAuthRequired)

	_, _ = m.Login("jane@example.com", "123456")
	_, err = m.RequireAdmin()
	c.Assert(err, qt.ErrorIs, session.ErrAdminRequired)

	_, _ = m.Login("john@example.com", "123456")
	u, err := m.RequireAdmin()
	c.Assert(err, qt.IsNil)
	c.Assert(u.ID, qt.Equals, 1)
}

func TestPersistedSession(t *testing.T) {
	c := qt.New(t)

	c.Run("restored when persist is on", func(c *qt.C) {
		st := store.New(store.NewMemory())
		_, err := session.New(st, true).Login("jane@example.com", "123456")
		c.Assert(err, qt.IsNil)

		u, ok := session.New(st, true).Current()
		c.Assert(ok, qt.IsTrue)
		c.Assert(u.Email, qt.Equals, "jane@example.com")
	})

	c.Run("not restored when persist is off", func(c *qt.C) {
		st := store.New(store.NewMemory())
		_, err := session.New(st, false).Login("jane@example.com", "123456")
		c.Assert(err, qt.IsNil)

		_, ok := session.New(st, false).Current()
		c.Assert(ok, qt.IsFalse)
	})

	c.Run("logout clears the persisted session", func(c *qt.C) {
		st := store.New(store.NewMemory())
		m := session.New(st, true)
		_, _ = m.Login("jane@example.com", "123456")
		m.Logout()

		_, ok := session.New(st, true).Current()
		c.Assert(ok, qt.IsFalse)
	})
}

func TestUpdateProfile_HappyPath(t *testing.T) {
	c := qt.New(t)
	st := store.New(store.NewMemory())
	m := session.New(st, true)
	_, _ = m.Login("jane@example.com", "123456")

	u, err := m.UpdateProfile(models.ProfileInput{Name: " Jane Doe ", Email: "jane.doe@example.com", Phone: "555-0100"})
	c.Assert(err, qt.IsNil)
	c.Assert(u.Name, qt.Equals, "Jane Doe")
	c.Assert(u.Email, qt.Equals, "jane.doe@example.com")
	c.Assert(u.Phone, qt.Equals, "555-0100")
	c.Assert(u.Role, qt.Equals, models.RoleUser)

	cur, _ := m.Current()
	c.Assert(cur, qt.DeepEquals, u)

	// The persisted list carries the edit, so the new email logs in after a restart.
	fresh := session.New(st, false)
	users := fresh.Users()
	c.Assert(users[1], qt.DeepEquals, u)
	_, err = fresh.Login("jane.doe@example.com", "123456")
	c.Assert(err, qt.IsNil)
}

func TestUpdateProfile_FailurePath(t *testing.T) {
	c := qt.New(t)

	c.Run("blank name leaves everything unchanged", func(c *qt.C) {
		mem := store.NewMemory()
		st := store.New(mem)
		m := session.New(st, false)
		before, _ := m.Login("jane@example.com", "123456")

		_, err := m.UpdateProfile(models.ProfileInput{Name: "", Email: "x@x.com"})
		c.Assert(err, qt.ErrorIs, models.ErrValidation)

		cur, _ := m.Current()
		c.Assert(cur, qt.DeepEquals, before)
		_, written := mem.Raw(store.KeyUsers)
		c.Assert(written, qt.IsFalse)
	})

	c.Run("email taken by another user", func(c *qt.C) {
		m := session.New(store.New(store.NewMemory()), false)
		_, _ = m.Login("jane@example.com", "123456")
		_, err := m.UpdateProfile(models.ProfileInput{Name: "Jane", Email: "john@example.com"})
		c.Assert(err, qt.ErrorIs, models.ErrValidation)
	})

	c.Run("no session", func(c *qt.C) {
		m := session.New(store.New(store.NewMemory()), false)
		_, err := m.UpdateProfile(models.ProfileInput{Name: "A", Email: "a@x.com"})
		c.Assert(err, qt.ErrorIs, session.ErrAuthRequired)
	})
}
