package dto

import (
	"time"

	"meetwise/modules/meeting/entity"
)

// ===================== Request DTOs =====================

// CreateMeetingRequest records a committed meeting. Built by the scheduling
// module on commit, not bound from HTTP directly.
type CreateMeetingRequest struct {
	Title          string
	Description    string
	StartTime      time.Time
	EndTime        time.Time
	ParticipantIDs []string
}

// ===================== Response DTOs =====================

// MeetingResponse for meeting details
type MeetingResponse struct {
	ID           string                `json:"id"`
	PublicID     string                `json:"public_id"`
	Slug         string                `json:"slug"`
	HostID       string                `json:"host_id"`
	Title        string                `json:"title"`
	Description  string                `json:"description,omitempty"`
	StartTime    time.Time             `json:"start_time"`
	EndTime      time.Time             `json:"end_time"`
	Status       string                `json:"status"`
	Participants []ParticipantResponse `json:"participants,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
}

// ParticipantResponse for participant status
type ParticipantResponse struct {
	UserID    string `json:"user_id"`
	MeetingID string `json:"meeting_id"`
	Status    string `json:"status"`
}

// ===================== Mapper Functions =====================

// ToMeetingResponse maps entity to DTO
func ToMeetingResponse(m *entity.Meeting, participants []entity.MeetingParticipant) *MeetingResponse {
	resp := &MeetingResponse{
		ID:        m.ID.String(),
		PublicID:  m.PublicID,
		Slug:      m.Slug,
		HostID:    m.HostID.String(),
		Title:     m.Title,
		StartTime: m.StartTime,
		EndTime:   m.EndTime,
		Status:    string(m.Status),
		CreatedAt: m.CreatedAt,
	}

	if m.Description != nil {
		resp.Description = *m.Description
	}

	for _, p := range participants {
		resp.Participants = append(resp.Participants, ParticipantResponse{
			UserID:    p.UserID.String(),
			MeetingID: p.MeetingID.String(),
			Status:    string(p.Status),
		})
	}

	return resp
}
