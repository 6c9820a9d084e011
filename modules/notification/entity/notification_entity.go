package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType categorizes in-app notifications
type NotificationType string

const (
	NotificationTypeMeetingCommitted NotificationType = "meeting_committed"
	NotificationTypeMeetingCancelled NotificationType = "meeting_cancelled"
)

// Notification is one in-app notification row. Delivery transports (push,
// email) are external; this module only owns the records.
type Notification struct {
	ID        uuid.UUID        `db:"id" json:"id"`
	UserID    uuid.UUID        `db:"user_id" json:"user_id"`
	Type      NotificationType `db:"type" json:"type"`
	Title     string           `db:"title" json:"title"`
	Body      string           `db:"body" json:"body"`
	IsRead    bool             `db:"is_read" json:"is_read"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
}
