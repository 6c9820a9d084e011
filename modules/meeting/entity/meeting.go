package entity

import (
	"time"

	"github.com/google/uuid"
)

// MeetingStatus represents the status of a committed meeting
type MeetingStatus string

const (
	MeetingStatusScheduled MeetingStatus = "scheduled"
	MeetingStatusCancelled MeetingStatus = "cancelled"
)

// Meeting is a committed meeting record. It only exists once a caller
// accepts a candidate slot; the search pipeline itself never persists
// anything.
type Meeting struct {
	ID          uuid.UUID     `db:"id" json:"id"`
	PublicID    string        `db:"public_id" json:"public_id"`
	Slug        string        `db:"slug" json:"slug"`
	HostID      uuid.UUID     `db:"host_id" json:"host_id"`
	Title       string        `db:"title" json:"title"`
	Description *string       `db:"description" json:"description,omitempty"`
	StartTime   time.Time     `db:"start_time" json:"start_time"`
	EndTime     time.Time     `db:"end_time" json:"end_time"`
	Status      MeetingStatus `db:"status" json:"status"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updated_at"`
}
