package service

import (
	"context"
	stderrors "errors"
	"time"

	"meetwise/core/config"
	"meetwise/core/constants"
	"meetwise/core/errors"
	"meetwise/core/logger"
	availability "meetwise/modules/availability/entity"
	meetingdto "meetwise/modules/meeting/dto"
	"meetwise/modules/scheduling/dto"
	"meetwise/modules/scheduling/entity"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// BusyIntervalSource is the read side of the event store: one batch fetch of
// busy intervals per search request, never per candidate.
type BusyIntervalSource interface {
	ListForOwners(ctx context.Context, ownerIDs []uuid.UUID, from, to time.Time) ([]availability.BusyInterval, error)
}

// MeetingCreator is the write side of the event store, used on commit.
type MeetingCreator interface {
	CreateMeeting(ctx context.Context, hostID uuid.UUID, req *meetingdto.CreateMeetingRequest) (*meetingdto.MeetingResponse, *errors.AppError)
}

// CommitNotifier fans a committed meeting out to its participants.
type CommitNotifier interface {
	NotifyMeetingCommitted(ctx context.Context, meetingID, title string, startTime time.Time, userIDs []uuid.UUID) error
}

// SchedulingService runs the slot search pipeline. It holds no state across
// requests; every search is a pure function of the spec, the fetched busy
// intervals and the reference instant.
type SchedulingService struct {
	busySource BusyIntervalSource
	meetings   MeetingCreator
	notifier   CommitNotifier
}

type SchedulingServiceInterface interface {
	Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, *errors.AppError)
	Commit(ctx context.Context, hostID uuid.UUID, req *dto.CommitRequest) (*meetingdto.MeetingResponse, *errors.AppError)
}

func NewSchedulingService(busySource BusyIntervalSource, meetings MeetingCreator, notifier CommitNotifier) SchedulingServiceInterface {
	return &SchedulingService{
		busySource: busySource,
		meetings:   meetings,
		notifier:   notifier,
	}
}

// Search validates the request, batch-fetches busy intervals once, evaluates
// candidates day by day in parallel and returns the ranked shortlist.
func (s *SchedulingService) Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, *errors.AppError) {
	spec, err := req.ToConstraintSpec(time.Now())
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	}
	if appErr := spec.Validate(); appErr != nil {
		return nil, appErr
	}
	if spec.DayCount() > constants.MaxSearchDays {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "date range too large", nil)
	}

	// Widen the fetch window by the buffer so commitments just outside the
	// range still produce conflicts once expanded.
	buffer := time.Duration(spec.BufferMinutes) * time.Minute
	fetchFrom := spec.DateFrom.Add(-buffer)
	fetchTo := spec.DateTo.AddDate(0, 0, 1).Add(buffer)

	intervals, err := s.busySource.ListForOwners(ctx, spec.ParticipantIDs, fetchFrom, fetchTo)
	if err != nil {
		// Fail closed: proceeding as if everyone were free would produce
		// misleading high-confidence scores.
		logger.Error("SchedulingService:Search:ListForOwners", "error", err)
		return nil, errors.NewAppError(errors.ErrDataFetch, "Failed to fetch busy intervals", err)
	}

	slots, status := s.evaluate(ctx, spec, intervals)

	return &dto.SearchResponse{
		Status:            status,
		TotalParticipants: len(spec.ParticipantIDs),
		Slots:             toSlotDTOs(slots),
	}, nil
}

// evaluate runs generate -> classify -> score over the date range with a
// bounded parallel map, merges per-day results in date order and ranks them.
// Cancellation is checked between days and surfaces as StatusAborted, never
// as a silently truncated result.
func (s *SchedulingService) evaluate(ctx context.Context, spec *entity.ConstraintSpec, intervals []availability.BusyInterval) ([]entity.CandidateSlot, entity.SearchStatus) {
	generator := NewCandidateGenerator()
	detector := NewConflictDetector(spec.ParticipantIDs, intervals, spec.BufferMinutes)
	scorer := NewScoringEngine(spec.Scoring)
	total := len(spec.ParticipantIDs)

	days := spec.DayCount()
	perDay := make([][]entity.CandidateSlot, days)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(dayWorkers())

	for i := 0; i < days; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			date := spec.DateAt(i)
			windows := generator.DayWindows(date, spec)

			slots := make([]entity.CandidateSlot, 0, len(windows))
			for _, w := range windows {
				available, conflicts := detector.Classify(w)
				slots = append(slots, entity.CandidateSlot{
					Start:                   w.Start,
					End:                     w.End,
					AvailableParticipantIDs: available,
					Conflicts:               conflicts,
					Score:                   scorer.Score(w, len(available), total, spec.Now),
				})
			}
			perDay[i] = slots
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
			return nil, entity.StatusAborted
		}
		// Workers only ever return context errors; anything else would be a
		// programming error, but report it as aborted rather than lying
		// about an empty search space.
		logger.Error("SchedulingService:evaluate", "error", err)
		return nil, entity.StatusAborted
	}

	merged := make([]entity.CandidateSlot, 0)
	for _, daySlots := range perDay {
		merged = append(merged, daySlots...)
	}

	ranked := RankSlots(merged, total, spec.QuorumRatio, spec.TopK)
	if len(ranked) == 0 {
		return ranked, entity.StatusNoCandidates
	}
	return ranked, entity.StatusOk
}

// Commit hands a chosen candidate to the event store as a meeting record and
// fans out notifications. The slot is not re-validated; if it has gone stale
// the caller re-runs the search.
func (s *SchedulingService) Commit(ctx context.Context, hostID uuid.UUID, req *dto.CommitRequest) (*meetingdto.MeetingResponse, *errors.AppError) {
	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid start time format", err)
	}
	endTime, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid end time format", err)
	}
	if !endTime.After(startTime) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "end_time must be after start_time", nil)
	}
	if req.Title == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "title must not be empty", nil)
	}

	meeting, appErr := s.meetings.CreateMeeting(ctx, hostID, &meetingdto.CreateMeetingRequest{
		Title:          req.Title,
		Description:    req.Description,
		StartTime:      startTime,
		EndTime:        endTime,
		ParticipantIDs: req.ParticipantIDs,
	})
	if appErr != nil {
		return nil, appErr
	}

	userIDs := make([]uuid.UUID, 0, len(req.ParticipantIDs))
	for _, raw := range req.ParticipantIDs {
		if id, parseErr := uuid.Parse(raw); parseErr == nil {
			userIDs = append(userIDs, id)
		}
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyMeetingCommitted(ctx, meeting.ID, meeting.Title, startTime, userIDs); err != nil {
			// The meeting record is already committed; notification fan-out
			// failure must not fail the request.
			logger.Error("SchedulingService:Commit:NotifyMeetingCommitted", "error", err, "meeting_id", meeting.ID)
		}
	}

	return meeting, nil
}

func dayWorkers() int {
	if cfg, ok := config.GetSafe(); ok && cfg.Scheduler.DayWorkers > 0 {
		return cfg.Scheduler.DayWorkers
	}
	return constants.SchedulerDayWorkers
}

func toSlotDTOs(slots []entity.CandidateSlot) []dto.CandidateSlotDTO {
	out := make([]dto.CandidateSlotDTO, 0, len(slots))
	for i := range slots {
		out = append(out, *dto.ToSlotDTO(&slots[i]))
	}
	return out
}
