package service

import (
	"context"

	"meetwise/core/errors"
	"meetwise/core/utils"
	"meetwise/modules/meeting/dto"
	"meetwise/modules/meeting/entity"
	"meetwise/modules/meeting/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// MeetingService handles committed meeting business logic
type MeetingService struct {
	repo repository.MeetingRepositoryInterface
}

// MeetingServiceInterface defines the service contract
type MeetingServiceInterface interface {
	CreateMeeting(ctx context.Context, hostID uuid.UUID, req *dto.CreateMeetingRequest) (*dto.MeetingResponse, *errors.AppError)
	GetMeetingByID(ctx context.Context, id uuid.UUID) (*dto.MeetingResponse, *errors.AppError)
	GetMeetingByPublicID(ctx context.Context, publicID string) (*dto.MeetingResponse, *errors.AppError)
	ListMyMeetings(ctx context.Context, userID uuid.UUID) ([]dto.MeetingResponse, *errors.AppError)
	CancelMeeting(ctx context.Context, meetingID uuid.UUID, hostID uuid.UUID) *errors.AppError
}

func NewMeetingService(repo repository.MeetingRepositoryInterface) MeetingServiceInterface {
	return &MeetingService{repo: repo}
}

// CreateMeeting records a committed meeting with its participants. The write
// is a pass-through: no availability re-check happens here.
func (s *MeetingService) CreateMeeting(ctx context.Context, hostID uuid.UUID, req *dto.CreateMeetingRequest) (*dto.MeetingResponse, *errors.AppError) {
	meeting := &entity.Meeting{
		PublicID:  utils.GenerateID(),
		Slug:      slug.Make(req.Title),
		HostID:    hostID,
		Title:     req.Title,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    entity.MeetingStatusScheduled,
	}
	if req.Description != "" {
		meeting.Description = &req.Description
	}

	created, err := s.repo.CreateMeeting(ctx, meeting)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create meeting", err)
	}

	participants := make([]entity.MeetingParticipant, 0, len(req.ParticipantIDs))
	for _, userIDStr := range req.ParticipantIDs {
		userID, parseErr := uuid.Parse(userIDStr)
		if parseErr != nil {
			continue
		}

		participant := &entity.MeetingParticipant{
			MeetingID: created.ID,
			UserID:    userID,
			Status:    entity.ParticipantStatusInvited,
		}

		if err := s.repo.AddParticipant(ctx, participant); err != nil {
			continue
		}
		participants = append(participants, *participant)
	}

	return dto.ToMeetingResponse(created, participants), nil
}

// GetMeetingByID retrieves a meeting by internal ID
func (s *MeetingService) GetMeetingByID(ctx context.Context, id uuid.UUID) (*dto.MeetingResponse, *errors.AppError) {
	meeting, err := s.repo.GetMeetingByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get meeting", err)
	}
	if meeting == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Meeting not found", nil)
	}

	participants, _ := s.repo.GetParticipantsByMeetingID(ctx, id)
	return dto.ToMeetingResponse(meeting, participants), nil
}

// GetMeetingByPublicID retrieves a meeting by its shareable public ID
func (s *MeetingService) GetMeetingByPublicID(ctx context.Context, publicID string) (*dto.MeetingResponse, *errors.AppError) {
	meeting, err := s.repo.GetMeetingByPublicID(ctx, publicID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get meeting", err)
	}
	if meeting == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Meeting not found", nil)
	}

	participants, _ := s.repo.GetParticipantsByMeetingID(ctx, meeting.ID)
	return dto.ToMeetingResponse(meeting, participants), nil
}

// ListMyMeetings retrieves meetings the user hosts or attends
func (s *MeetingService) ListMyMeetings(ctx context.Context, userID uuid.UUID) ([]dto.MeetingResponse, *errors.AppError) {
	meetings, err := s.repo.ListMeetingsForUser(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list meetings", err)
	}

	result := make([]dto.MeetingResponse, 0, len(meetings))
	for i := range meetings {
		participants, _ := s.repo.GetParticipantsByMeetingID(ctx, meetings[i].ID)
		result = append(result, *dto.ToMeetingResponse(&meetings[i], participants))
	}

	return result, nil
}

// CancelMeeting marks a meeting cancelled; only the host may cancel
func (s *MeetingService) CancelMeeting(ctx context.Context, meetingID uuid.UUID, hostID uuid.UUID) *errors.AppError {
	meeting, err := s.repo.GetMeetingByID(ctx, meetingID)
	if err != nil || meeting == nil {
		return errors.NewAppError(errors.ErrNotFound, "Meeting not found", err)
	}

	if meeting.HostID != hostID {
		return errors.NewAppError(errors.ErrForbidden, "Not authorized", nil)
	}

	if err := s.repo.UpdateMeetingStatus(ctx, meetingID, entity.MeetingStatusCancelled); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to cancel meeting", err)
	}

	return nil
}
