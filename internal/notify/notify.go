// Package notify delivers the confirmation messages emitted by the task
// store: to the terminal as a toast, and to the local notification log.
package notify

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nhle/achievo/internal/model"
	"github.com/nhle/achievo/internal/store"
)

// Notifier receives fire-and-forget messages.
type Notifier interface {
	Notify(title, description string)
}

// Func adapts a plain function to Notifier.
type Func func(title, description string)

// Notify calls f.
func (f Func) Notify(title, description string) { f(title, description) }

// Multi fans a message out to every notifier in order.
type Multi []Notifier

// Notify forwards to each non-nil notifier.
func (m Multi) Notify(title, description string) {
	for _, n := range m {
		if n != nil {
			n.Notify(title, description)
		}
	}
}

// writeTimeout bounds a single notification log write.
const writeTimeout = 2 * time.Second

// Log records notifications in the local notification log.
type Log struct {
	store store.NotificationLog
	log   logrus.FieldLogger
	now   func() time.Time
}

// NewLog creates a Log notifier backed by s.
func NewLog(s store.NotificationLog, log logrus.FieldLogger) *Log {
	return &Log{store: s, log: log, now: time.Now}
}

// Notify writes the message to the log. Failures are logged, never returned.
func (l *Log) Notify(title, description string) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	n := model.Notification{
		ID:        uuid.New().String(),
		Title:     title,
		Message:   description,
		CreatedAt: l.now().UTC(),
	}
	if err := l.store.CreateNotification(ctx, n); err != nil {
		l.log.WithError(err).Warn("recording notification")
		return
	}
	l.log.WithField("title", title).Debug("notification recorded")
}

// ToastMsg is the tea.Msg carrying a notification to the UI.
type ToastMsg struct {
	Title       string
	Description string
}

// Toasts buffers notifications for the terminal UI.
type Toasts struct {
	ch chan ToastMsg
}

// NewToasts creates a Toasts sink holding up to size undelivered messages.
func NewToasts(size int) *Toasts {
	if size < 1 {
		size = 1
	}
	return &Toasts{ch: make(chan ToastMsg, size)}
}

// Notify enqueues the message. When the buffer is full the oldest message
// is dropped so that Notify never blocks the caller.
func (t *Toasts) Notify(title, description string) {
	msg := ToastMsg{Title: title, Description: description}
	for {
		select {
		case t.ch <- msg:
			return
		default:
		}
		select {
		case <-t.ch:
		default:
		}
	}
}

// Wait returns a tea.Cmd that blocks until the next toast is available.
// The UI re-issues it after every ToastMsg.
func (t *Toasts) Wait() tea.Cmd {
	return func() tea.Msg {
		return <-t.ch
	}
}
