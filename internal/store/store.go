package store

import (
	"context"
	"errors"

	"github.com/nhle/achievo/internal/model"
)

// Well-known keys in the key-value table.
const (
	KeyUser  = "user"
	KeyTheme = "theme"
)

// ErrKeyNotFound is returned when a key has no stored value.
var ErrKeyNotFound = errors.New("key not found")

// KV is a string key-value store for session data and preferences.
type KV interface {
	GetValue(ctx context.Context, key string) (string, error)
	SetValue(ctx context.Context, key, value string) error
	DeleteValue(ctx context.Context, key string) error
}

// NotificationLog records the confirmation messages shown to the user.
type NotificationLog interface {
	CreateNotification(ctx context.Context, n model.Notification) error
	GetNotifications(ctx context.Context, limit int) ([]model.Notification, error)
	GetUnreadNotifications(ctx context.Context) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context) error
}

// Store defines the local persistence interface. Tasks are deliberately
// not part of it: the task collection lives in memory only.
type Store interface {
	KV
	NotificationLog
}
