package repository

import (
	"context"
	"database/sql"

	"meetwise/core/database"
	"meetwise/core/logger"
	"meetwise/modules/meeting/entity"

	"github.com/google/uuid"
)

// MeetingRepository handles meeting database operations
type MeetingRepository struct {
	DB database.IDatabase
}

func NewMeetingRepository(db database.IDatabase) *MeetingRepository {
	return &MeetingRepository{DB: db}
}

// MeetingRepositoryInterface defines the repository contract
type MeetingRepositoryInterface interface {
	CreateMeeting(ctx context.Context, meeting *entity.Meeting) (*entity.Meeting, error)
	GetMeetingByID(ctx context.Context, id uuid.UUID) (*entity.Meeting, error)
	GetMeetingByPublicID(ctx context.Context, publicID string) (*entity.Meeting, error)
	ListMeetingsForUser(ctx context.Context, userID uuid.UUID) ([]entity.Meeting, error)
	UpdateMeetingStatus(ctx context.Context, id uuid.UUID, status entity.MeetingStatus) error

	AddParticipant(ctx context.Context, participant *entity.MeetingParticipant) error
	GetParticipantsByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]entity.MeetingParticipant, error)
}

// ===================== Meetings =====================

func (r *MeetingRepository) CreateMeeting(ctx context.Context, meeting *entity.Meeting) (*entity.Meeting, error) {
	query := `
		INSERT INTO meetings (public_id, slug, host_id, title, description, start_time, end_time, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, public_id, slug, host_id, title, description, start_time, end_time, status, created_at, updated_at
	`

	var created entity.Meeting
	err := r.DB.GetContext(ctx, &created, query,
		meeting.PublicID, meeting.Slug, meeting.HostID, meeting.Title,
		meeting.Description, meeting.StartTime, meeting.EndTime, meeting.Status)
	if err != nil {
		logger.Error("MeetingRepository:CreateMeeting", err)
		return nil, err
	}

	return &created, nil
}

func (r *MeetingRepository) GetMeetingByID(ctx context.Context, id uuid.UUID) (*entity.Meeting, error) {
	query := `
		SELECT id, public_id, slug, host_id, title, description, start_time, end_time, status, created_at, updated_at
		FROM meetings WHERE id = $1
	`

	var meeting entity.Meeting
	err := r.DB.GetContext(ctx, &meeting, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("MeetingRepository:GetMeetingByID", err)
		return nil, err
	}

	return &meeting, nil
}

func (r *MeetingRepository) GetMeetingByPublicID(ctx context.Context, publicID string) (*entity.Meeting, error) {
	query := `
		SELECT id, public_id, slug, host_id, title, description, start_time, end_time, status, created_at, updated_at
		FROM meetings WHERE public_id = $1
	`

	var meeting entity.Meeting
	err := r.DB.GetContext(ctx, &meeting, query, publicID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("MeetingRepository:GetMeetingByPublicID", err)
		return nil, err
	}

	return &meeting, nil
}

func (r *MeetingRepository) ListMeetingsForUser(ctx context.Context, userID uuid.UUID) ([]entity.Meeting, error) {
	query := `
		SELECT DISTINCT m.id, m.public_id, m.slug, m.host_id, m.title, m.description,
		       m.start_time, m.end_time, m.status, m.created_at, m.updated_at
		FROM meetings m
		LEFT JOIN meeting_participants mp ON mp.meeting_id = m.id
		WHERE m.host_id = $1 OR mp.user_id = $1
		ORDER BY m.start_time DESC
	`

	var meetings []entity.Meeting
	err := r.DB.SelectContext(ctx, &meetings, query, userID)
	if err != nil {
		logger.Error("MeetingRepository:ListMeetingsForUser", err)
		return nil, err
	}

	return meetings, nil
}

func (r *MeetingRepository) UpdateMeetingStatus(ctx context.Context, id uuid.UUID, status entity.MeetingStatus) error {
	query := `UPDATE meetings SET status = $2, updated_at = NOW() WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id, status)
	if err != nil {
		logger.Error("MeetingRepository:UpdateMeetingStatus", err)
		return err
	}
	return nil
}

// ===================== Participants =====================

func (r *MeetingRepository) AddParticipant(ctx context.Context, participant *entity.MeetingParticipant) error {
	query := `
		INSERT INTO meeting_participants (meeting_id, user_id, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (meeting_id, user_id) DO UPDATE SET status = $3
	`

	err := r.DB.ExecContext(ctx, query,
		participant.MeetingID, participant.UserID, participant.Status)
	if err != nil {
		logger.Error("MeetingRepository:AddParticipant", err)
		return err
	}

	return nil
}

func (r *MeetingRepository) GetParticipantsByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]entity.MeetingParticipant, error) {
	query := `
		SELECT meeting_id, user_id, COALESCE(status, 'invited') as status, created_at
		FROM meeting_participants
		WHERE meeting_id = $1
		ORDER BY created_at
	`

	var participants []entity.MeetingParticipant
	err := r.DB.SelectContext(ctx, &participants, query, meetingID)
	if err != nil {
		logger.Error("MeetingRepository:GetParticipantsByMeetingID", err)
		return nil, err
	}

	return participants, nil
}
