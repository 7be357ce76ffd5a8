// Package notify records outgoing notifications in the sentEmails log. It
// stands in for real email delivery: a message is accepted, logged and kept.
package notify

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/go-ports/eventdesk/internal/models"
	"github.com/go-ports/eventdesk/internal/store"
)

// ErrNotRecorded is returned when the log could not be persisted.
var ErrNotRecorded = errors.New("notify: message not recorded")

// Sender delivers one message.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) (models.SentEmail, error)
}

// ---------------------------------------------------------------------------
// Mailer
// ---------------------------------------------------------------------------

// Mailer is the only writer of store.KeySentEmails. New messages are prepended.
type Mailer struct {
	mu    sync.Mutex
	store *store.Store
	from  string
	sent  []models.SentEmail
	now   func() time.Time
}

// NewMailer loads the existing log from st.
func NewMailer(st *store.Store, from string) *Mailer {
	return &Mailer{
		store: st,
		from:  from,
		sent:  store.Load(st, store.KeySentEmails, make([]models.SentEmail, 0)),
		now:   time.Now,
	}
}

// Send prepends the message to the log and persists it. The message stays in
// memory even when persisting fails.
func (m *Mailer) Send(ctx context.Context, to, subject, body string) (models.SentEmail, error) {
	if err := ctx.Err(); err != nil {
		return models.SentEmail{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	msg := models.SentEmail{
		To:      to,
		Subject: subject,
		Body:    body,
		Date:    m.now().UTC().Format(time.RFC3339),
	}
	m.sent = append([]models.SentEmail{msg}, m.sent...)
	slog.Info("email sent", "from", m.from, "to", to, "subject", subject)
	if !store.Save(m.store, store.KeySentEmails, m.sent) {
		return msg, ErrNotRecorded
	}
	return msg, nil
}

// Sent returns the log, most recent first.
func (m *Mailer) Sent() []models.SentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.sent)
}

// ---------------------------------------------------------------------------
// Dispatcher
// ---------------------------------------------------------------------------

// Dispatcher runs sends as detached goroutines. Callers never see the outcome;
// failures are logged.
type Dispatcher struct {
	sender  Sender
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewDispatcher wraps sender. A nil sender makes Notify a no-op.
func NewDispatcher(sender Sender, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Dispatcher{sender: sender, timeout: timeout}
}

// Notify starts a send and returns immediately.
func (d *Dispatcher) Notify(to, subject, body string) {
	if d.sender == nil || to == "" {
		return
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				slog.Error("notify: sender panicked", "to", to, "panic", r)
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		if _, err := d.sender.Send(ctx, to, subject, body); err != nil {
			slog.Warn("notify: send failed", "to", to, "subject", subject, "err", err)
		}
	}()
}

// Wait blocks until every started send has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
