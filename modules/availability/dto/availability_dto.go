package dto

import (
	"time"

	"meetwise/modules/availability/entity"
)

// ===================== Request DTOs =====================

// CreateBusyIntervalRequest records one commitment for the caller
type CreateBusyIntervalRequest struct {
	StartTime string `json:"start_time" validate:"required"` // RFC3339
	EndTime   string `json:"end_time" validate:"required"`   // RFC3339
	Label     string `json:"label"`
}

// ListBusyIntervalsRequest bounds the listing window
type ListBusyIntervalsRequest struct {
	From string `query:"from"` // RFC3339, default now
	To   string `query:"to"`   // RFC3339, default now + 30 days
}

// ===================== Response DTOs =====================

// BusyIntervalResponse is one commitment as returned to the caller
type BusyIntervalResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
}

// ToBusyIntervalResponse maps entity to DTO
func ToBusyIntervalResponse(iv *entity.BusyInterval) *BusyIntervalResponse {
	return &BusyIntervalResponse{
		ID:        iv.ID.String(),
		OwnerID:   iv.OwnerID.String(),
		StartTime: iv.StartTime,
		EndTime:   iv.EndTime,
		Label:     iv.Label,
		CreatedAt: iv.CreatedAt,
	}
}
