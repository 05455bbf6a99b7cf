package model

import "time"

// Notification is a confirmation message surfaced to the user after a task
// is created, updated, or deleted.
type Notification struct {
	// ID is the unique identifier for this notification.
	ID string `json:"id" db:"id"`

	// Title is the short headline, e.g. "Task created!".
	Title string `json:"title" db:"title"`

	// Message is the human-readable detail text.
	Message string `json:"message" db:"message"`

	// Read indicates whether the user has dismissed this notification.
	Read bool `json:"read" db:"read"`

	// CreatedAt is when this notification was emitted.
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
