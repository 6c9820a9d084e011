package entity

import (
	"time"

	"meetwise/core/errors"

	"github.com/google/uuid"
)

// ConstraintSpec describes one slot search. It is built once per request and
// never mutated by the pipeline.
type ConstraintSpec struct {
	ParticipantIDs  []uuid.UUID
	DateFrom        time.Time // civil date, truncated to midnight; inclusive
	DateTo          time.Time // civil date, truncated to midnight; inclusive
	EarliestMinute  int       // minutes from midnight
	LatestMinute    int       // minutes from midnight, must be > EarliestMinute
	DaysOfWeek      map[time.Weekday]bool
	DurationMinutes int
	BufferMinutes   int
	AvoidLunch      bool
	QuorumRatio     float64
	TopK            int
	Now             time.Time // reference instant for recency scoring
	Scoring         ScoringPolicy
}

// Validate enforces the request preconditions. It runs before any generation
// so an invalid spec never reaches the pipeline.
func (s *ConstraintSpec) Validate() *errors.AppError {
	if len(s.ParticipantIDs) == 0 {
		return errors.NewAppError(errors.ErrInvalidInput, "participant_ids must not be empty", nil)
	}
	if s.DateTo.Before(s.DateFrom) {
		return errors.NewAppError(errors.ErrInvalidInput, "date_to must not be before date_from", nil)
	}
	if s.LatestMinute <= s.EarliestMinute {
		return errors.NewAppError(errors.ErrInvalidInput, "latest must be after earliest", nil)
	}
	if s.DurationMinutes <= 0 {
		return errors.NewAppError(errors.ErrInvalidInput, "duration_minutes must be positive", nil)
	}
	if len(s.DaysOfWeek) == 0 {
		return errors.NewAppError(errors.ErrInvalidInput, "days_of_week must not be empty", nil)
	}
	if s.BufferMinutes < 0 {
		return errors.NewAppError(errors.ErrInvalidInput, "buffer_minutes must not be negative", nil)
	}
	if s.QuorumRatio <= 0 || s.QuorumRatio > 1 {
		return errors.NewAppError(errors.ErrInvalidInput, "quorum_ratio must be in (0,1]", nil)
	}
	if s.TopK <= 0 {
		return errors.NewAppError(errors.ErrInvalidInput, "top_k must be positive", nil)
	}
	return nil
}

// DayCount returns the number of civil dates in the inclusive range. The
// dates are diffed as calendar days, not elapsed hours, so a DST transition
// inside the range never drops a day.
func (s *ConstraintSpec) DayCount() int {
	from := civilUTC(s.DateFrom)
	to := civilUTC(s.DateTo)
	return int(to.Sub(from).Hours()/24) + 1
}

// civilUTC rebuilds t's calendar date at midnight UTC, where every day is
// exactly 24 hours long.
func civilUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateAt returns the nth civil date of the range.
func (s *ConstraintSpec) DateAt(n int) time.Time {
	return s.DateFrom.AddDate(0, 0, n)
}
