package models

import "time"

const (
	NotificationBooking = "booking"
	NotificationSystem  = "system"
	NotificationUpdate  = "update"
)

// ValidNotificationType reports whether t is a known notification type.
func ValidNotificationType(t string) bool {
	switch t {
	case NotificationBooking, NotificationSystem, NotificationUpdate:
		return true
	}
	return false
}

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
