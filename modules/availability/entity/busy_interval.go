package entity

import (
	"time"

	"github.com/google/uuid"
)

// BusyInterval is one existing commitment blocking its owner during
// [StartTime, EndTime). Intervals are half-open so back-to-back commitments
// never overlap each other.
type BusyInterval struct {
	ID        uuid.UUID `db:"id" json:"id"`
	OwnerID   uuid.UUID `db:"owner_id" json:"owner_id"`
	StartTime time.Time `db:"start_time" json:"start_time"`
	EndTime   time.Time `db:"end_time" json:"end_time"`
	Label     string    `db:"label" json:"label"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
