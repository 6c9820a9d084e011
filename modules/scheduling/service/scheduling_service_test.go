package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"meetwise/core/errors"
	availability "meetwise/modules/availability/entity"
	meetingdto "meetwise/modules/meeting/dto"
	"meetwise/modules/scheduling/dto"
	"meetwise/modules/scheduling/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===================== Fakes =====================

type fakeBusySource struct {
	intervals []availability.BusyInterval
	err       error
	calls     int
}

func (f *fakeBusySource) ListForOwners(ctx context.Context, ownerIDs []uuid.UUID, from, to time.Time) ([]availability.BusyInterval, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.intervals, nil
}

type fakeMeetingCreator struct {
	created *meetingdto.CreateMeetingRequest
	appErr  *errors.AppError
}

func (f *fakeMeetingCreator) CreateMeeting(ctx context.Context, hostID uuid.UUID, req *meetingdto.CreateMeetingRequest) (*meetingdto.MeetingResponse, *errors.AppError) {
	if f.appErr != nil {
		return nil, f.appErr
	}
	f.created = req
	return &meetingdto.MeetingResponse{
		ID:        uuid.NewString(),
		HostID:    hostID.String(),
		Title:     req.Title,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    "scheduled",
	}, nil
}

type fakeNotifier struct {
	notified []uuid.UUID
	err      error
}

func (f *fakeNotifier) NotifyMeetingCommitted(ctx context.Context, meetingID, title string, startTime time.Time, userIDs []uuid.UUID) error {
	f.notified = userIDs
	return f.err
}

func newTestService(source *fakeBusySource) SchedulingServiceInterface {
	return NewSchedulingService(source, &fakeMeetingCreator{}, &fakeNotifier{})
}

func searchRequest(participantIDs []uuid.UUID) *dto.SearchRequest {
	ids := make([]string, 0, len(participantIDs))
	for _, id := range participantIDs {
		ids = append(ids, id.String())
	}
	return &dto.SearchRequest{
		ParticipantIDs:  ids,
		DateFrom:        "2025-03-10", // Monday
		DateTo:          "2025-03-10",
		Earliest:        "09:00",
		Latest:          "17:00",
		DurationMinutes: 60,
		QuorumRatio:     1.0,
		TopK:            20,
		Now:             "2025-03-10T08:00:00Z",
	}
}

// ===================== Search: scenarios =====================

func TestSearchNoBusyIntervals(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	source := &fakeBusySource{}
	svc := newTestService(source)

	resp, appErr := svc.Search(context.Background(), searchRequest([]uuid.UUID{alice, bob}))
	require.Nil(t, appErr)

	assert.Equal(t, entity.StatusOk, resp.Status)
	assert.Equal(t, 2, resp.TotalParticipants)

	// 09:00 through 16:00 starts, everyone free everywhere
	require.Len(t, resp.Slots, 15)
	for _, s := range resp.Slots {
		assert.Equal(t, 2, s.AvailableCount)
		assert.Empty(t, s.Conflicts)
		assert.Equal(t, 60*time.Minute, s.EndTime.Sub(s.StartTime))
	}

	// Exactly one batch fetch regardless of candidate count
	assert.Equal(t, 1, source.calls)
}

func TestSearchConflictReducesAvailability(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	source := &fakeBusySource{
		intervals: []availability.BusyInterval{
			busy(alice, at(10, 0), at(11, 0), "Dentist"),
		},
	}
	svc := newTestService(source)

	req := searchRequest([]uuid.UUID{alice, bob})
	req.QuorumRatio = 0.5
	req.BufferMinutes = 15

	resp, appErr := svc.Search(context.Background(), req)
	require.Nil(t, appErr)
	require.Equal(t, entity.StatusOk, resp.Status)

	// Expanded interval is 09:45-11:15; anything intersecting it conflicts
	for _, s := range resp.Slots {
		h, m := s.StartTime.Hour(), s.StartTime.Minute()
		overlapsExpanded := s.StartTime.Before(at(11, 15)) && at(9, 45).Before(s.EndTime)
		if overlapsExpanded {
			require.Len(t, s.Conflicts, 1, "slot %02d:%02d", h, m)
			assert.Equal(t, alice.String(), s.Conflicts[0].ParticipantID)
			assert.Equal(t, "Dentist", s.Conflicts[0].Label)
			assert.Equal(t, 1, s.AvailableCount)
		} else {
			assert.Empty(t, s.Conflicts, "slot %02d:%02d", h, m)
			assert.Equal(t, 2, s.AvailableCount)
		}
	}
}

func TestSearchAvoidLunch(t *testing.T) {
	alice := uuid.New()
	svc := newTestService(&fakeBusySource{})

	req := searchRequest([]uuid.UUID{alice})
	req.AvoidLunch = true

	resp, appErr := svc.Search(context.Background(), req)
	require.Nil(t, appErr)

	lunchStart := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	lunchEnd := time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC)
	for _, s := range resp.Slots {
		overlaps := s.StartTime.Before(lunchEnd) && lunchStart.Before(s.EndTime)
		assert.False(t, overlaps, "slot %v intersects lunch", s.StartTime)
	}
}

func TestSearchNoCandidatesAtFullQuorum(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	// One participant busy all day: full quorum is never reachable
	source := &fakeBusySource{
		intervals: []availability.BusyInterval{
			busy(ids[0], at(0, 0), at(23, 59), "Vacation"),
		},
	}
	svc := newTestService(source)

	resp, appErr := svc.Search(context.Background(), searchRequest(ids))
	require.Nil(t, appErr)

	assert.Equal(t, entity.StatusNoCandidates, resp.Status)
	assert.Empty(t, resp.Slots)
}

func TestSearchWeekendOnlyRange(t *testing.T) {
	alice := uuid.New()
	svc := newTestService(&fakeBusySource{})

	req := searchRequest([]uuid.UUID{alice})
	req.DateFrom = "2025-03-15" // Saturday
	req.DateTo = "2025-03-16"   // Sunday
	// days_of_week defaults to Mon-Fri

	resp, appErr := svc.Search(context.Background(), req)
	require.Nil(t, appErr)

	assert.Equal(t, entity.StatusNoCandidates, resp.Status)
	assert.Empty(t, resp.Slots)
}

func TestSearchSpansSpringForwardWeekend(t *testing.T) {
	alice := uuid.New()
	svc := newTestService(&fakeBusySource{})

	req := searchRequest([]uuid.UUID{alice})
	req.DateFrom = "2026-03-06" // Friday
	req.DateTo = "2026-03-09"   // Monday; New York clocks jump forward on 03-08
	req.Timezone = "America/New_York"
	req.Now = "2026-03-06T08:00:00-05:00"
	req.TopK = 40

	resp, appErr := svc.Search(context.Background(), req)
	require.Nil(t, appErr)
	require.Equal(t, entity.StatusOk, resp.Status)

	// Friday and Monday are both working days with 15 candidates each; the
	// short DST weekend must not swallow the Monday.
	perDay := map[int]int{}
	for _, s := range resp.Slots {
		perDay[s.StartTime.Day()]++
	}
	assert.Equal(t, map[int]int{6: 15, 9: 15}, perDay)
}

// ===================== Search: properties =====================

func TestSearchDeterministic(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	source := &fakeBusySource{
		intervals: []availability.BusyInterval{
			busy(ids[0], at(10, 0), at(11, 30), "A"),
			busy(ids[1], at(14, 0), at(15, 0), "B"),
			busy(ids[2], at(9, 0), at(9, 30), "C"),
		},
	}
	svc := newTestService(source)

	req := searchRequest(ids)
	req.QuorumRatio = 0.5
	req.DateTo = "2025-03-14" // five weekdays

	first, appErr := svc.Search(context.Background(), req)
	require.Nil(t, appErr)

	for i := 0; i < 5; i++ {
		again, appErr := svc.Search(context.Background(), req)
		require.Nil(t, appErr)
		assert.Equal(t, first, again, "run %d differs", i)
	}
}

func TestSearchRankingValid(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New()}
	source := &fakeBusySource{
		intervals: []availability.BusyInterval{
			busy(ids[0], at(9, 0), at(12, 0), "Block"),
		},
	}
	svc := newTestService(source)

	req := searchRequest(ids)
	req.QuorumRatio = 0.5

	resp, appErr := svc.Search(context.Background(), req)
	require.Nil(t, appErr)
	require.NotEmpty(t, resp.Slots)

	for i := 1; i < len(resp.Slots); i++ {
		prev, cur := resp.Slots[i-1], resp.Slots[i]
		assert.GreaterOrEqual(t, prev.Score, cur.Score)
		if prev.Score == cur.Score {
			assert.True(t, prev.StartTime.Before(cur.StartTime))
		}
	}
}

func TestSearchQuorumValid(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	source := &fakeBusySource{
		intervals: []availability.BusyInterval{
			busy(ids[0], at(9, 0), at(13, 0), "A"),
			busy(ids[1], at(13, 0), at(17, 0), "B"),
		},
	}
	svc := newTestService(source)

	req := searchRequest(ids)
	req.QuorumRatio = 0.6 // ceil(3*0.6) = 2

	resp, appErr := svc.Search(context.Background(), req)
	require.Nil(t, appErr)
	require.NotEmpty(t, resp.Slots)

	for _, s := range resp.Slots {
		assert.GreaterOrEqual(t, s.AvailableCount, 2)
	}
}

func TestSearchParticipantPartition(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	source := &fakeBusySource{
		intervals: []availability.BusyInterval{
			busy(ids[1], at(10, 0), at(14, 0), "Busy"),
		},
	}
	svc := newTestService(source)

	req := searchRequest(ids)
	req.QuorumRatio = 0.5

	resp, appErr := svc.Search(context.Background(), req)
	require.Nil(t, appErr)
	require.NotEmpty(t, resp.Slots)

	for _, s := range resp.Slots {
		assert.Equal(t, 3, len(s.AvailableParticipantIDs)+len(s.Conflicts))
	}
}

// ===================== Search: failure modes =====================

func TestSearchValidationErrors(t *testing.T) {
	alice := uuid.New()
	svc := newTestService(&fakeBusySource{})

	cases := []struct {
		name   string
		mutate func(*dto.SearchRequest)
	}{
		{"empty participants", func(r *dto.SearchRequest) { r.ParticipantIDs = nil }},
		{"reversed dates", func(r *dto.SearchRequest) { r.DateFrom = "2025-03-12"; r.DateTo = "2025-03-10" }},
		{"latest before earliest", func(r *dto.SearchRequest) { r.Earliest = "17:00"; r.Latest = "09:00" }},
		{"equal time bounds", func(r *dto.SearchRequest) { r.Earliest = "09:00"; r.Latest = "09:00" }},
		{"zero duration", func(r *dto.SearchRequest) { r.DurationMinutes = 0 }},
		{"negative duration", func(r *dto.SearchRequest) { r.DurationMinutes = -30 }},
		{"quorum above one", func(r *dto.SearchRequest) { r.QuorumRatio = 1.5 }},
		{"negative quorum", func(r *dto.SearchRequest) { r.QuorumRatio = -0.5 }},
		{"negative buffer", func(r *dto.SearchRequest) { r.BufferMinutes = -1 }},
		{"negative topK", func(r *dto.SearchRequest) { r.TopK = -1 }},
		{"bad weekday", func(r *dto.SearchRequest) { r.DaysOfWeek = []string{"funday"} }},
		{"bad participant id", func(r *dto.SearchRequest) { r.ParticipantIDs = []string{"not-a-uuid"} }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := searchRequest([]uuid.UUID{alice})
			tc.mutate(req)

			resp, appErr := svc.Search(context.Background(), req)
			require.NotNil(t, appErr, "expected validation error")
			assert.Nil(t, resp)
			assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
		})
	}
}

func TestSearchDataFetchFailsClosed(t *testing.T) {
	alice := uuid.New()
	source := &fakeBusySource{err: fmt.Errorf("connection refused")}
	svc := newTestService(source)

	resp, appErr := svc.Search(context.Background(), searchRequest([]uuid.UUID{alice}))
	require.NotNil(t, appErr)
	assert.Nil(t, resp)
	assert.Equal(t, errors.ErrDataFetch, appErr.Code)
}

func TestSearchAborted(t *testing.T) {
	alice := uuid.New()
	svc := newTestService(&fakeBusySource{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := searchRequest([]uuid.UUID{alice})
	req.DateTo = "2025-04-10"

	resp, appErr := svc.Search(ctx, req)
	require.Nil(t, appErr)
	assert.Equal(t, entity.StatusAborted, resp.Status)
	assert.Empty(t, resp.Slots)
}

// ===================== Commit =====================

func TestCommitCreatesMeetingAndNotifies(t *testing.T) {
	host := uuid.New()
	participants := []uuid.UUID{uuid.New(), uuid.New()}

	creator := &fakeMeetingCreator{}
	notifier := &fakeNotifier{}
	svc := NewSchedulingService(&fakeBusySource{}, creator, notifier)

	req := &dto.CommitRequest{
		Title:          "Design review",
		Description:    "Q2 planning",
		StartTime:      "2025-03-10T10:00:00Z",
		EndTime:        "2025-03-10T11:00:00Z",
		ParticipantIDs: []string{participants[0].String(), participants[1].String()},
	}

	resp, appErr := svc.Commit(context.Background(), host, req)
	require.Nil(t, appErr)

	assert.Equal(t, "Design review", resp.Title)
	assert.Equal(t, host.String(), resp.HostID)

	require.NotNil(t, creator.created)
	assert.Equal(t, "Design review", creator.created.Title)
	assert.Equal(t, participants, notifier.notified)
}

func TestCommitInvalidTimes(t *testing.T) {
	host := uuid.New()
	svc := newTestService(&fakeBusySource{})

	req := &dto.CommitRequest{
		Title:     "Broken",
		StartTime: "2025-03-10T11:00:00Z",
		EndTime:   "2025-03-10T10:00:00Z",
	}

	_, appErr := svc.Commit(context.Background(), host, req)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestCommitNotifierFailureDoesNotFailRequest(t *testing.T) {
	host := uuid.New()
	creator := &fakeMeetingCreator{}
	notifier := &fakeNotifier{err: fmt.Errorf("queue down")}
	svc := NewSchedulingService(&fakeBusySource{}, creator, notifier)

	req := &dto.CommitRequest{
		Title:          "Sync",
		StartTime:      "2025-03-10T10:00:00Z",
		EndTime:        "2025-03-10T10:30:00Z",
		ParticipantIDs: []string{uuid.NewString()},
	}

	resp, appErr := svc.Commit(context.Background(), host, req)
	require.Nil(t, appErr)
	assert.NotNil(t, resp)
}
