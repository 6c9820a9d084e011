package service

import (
	"testing"
	"time"

	"meetwise/modules/scheduling/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekdaySet(days ...time.Weekday) map[time.Weekday]bool {
	set := make(map[time.Weekday]bool)
	for _, d := range days {
		set[d] = true
	}
	return set
}

func baseSpec() *entity.ConstraintSpec {
	// 2025-03-10 is a Monday
	return &entity.ConstraintSpec{
		DateFrom:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		DateTo:          time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		EarliestMinute:  9 * 60,
		LatestMinute:    17 * 60,
		DaysOfWeek:      weekdaySet(time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday),
		DurationMinutes: 60,
		QuorumRatio:     1.0,
		TopK:            10,
		Now:             time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
		Scoring:         entity.DefaultScoringPolicy(),
	}
}

func TestDayWindowsFullBusinessDay(t *testing.T) {
	gen := NewCandidateGenerator()
	spec := baseSpec()

	windows := gen.DayWindows(spec.DateFrom, spec)

	// 60-minute windows stepped every 30 minutes: 09:00 through 16:00 starts
	require.Len(t, windows, 15)

	first := windows[0]
	assert.Equal(t, 9, first.Start.Hour())
	assert.Equal(t, 0, first.Start.Minute())

	last := windows[len(windows)-1]
	assert.Equal(t, 16, last.Start.Hour())
	assert.Equal(t, 17, last.End.Hour())

	for _, w := range windows {
		assert.Equal(t, 60*time.Minute, w.End.Sub(w.Start))
		endMinute := w.End.Hour()*60 + w.End.Minute()
		if endMinute == 0 {
			endMinute = 24 * 60
		}
		assert.LessOrEqual(t, endMinute, spec.LatestMinute)
	}
}

func TestDayWindowsDisallowedWeekday(t *testing.T) {
	gen := NewCandidateGenerator()
	spec := baseSpec()
	spec.DaysOfWeek = weekdaySet(time.Tuesday)

	windows := gen.DayWindows(spec.DateFrom, spec) // a Monday
	assert.Empty(t, windows)
}

func TestDayWindowsDurationExceedsTimeRange(t *testing.T) {
	gen := NewCandidateGenerator()
	spec := baseSpec()
	spec.EarliestMinute = 9 * 60
	spec.LatestMinute = 10 * 60
	spec.DurationMinutes = 120

	windows := gen.DayWindows(spec.DateFrom, spec)
	assert.Empty(t, windows)
}

func TestDayWindowsAvoidLunch(t *testing.T) {
	gen := NewCandidateGenerator()
	spec := baseSpec()
	spec.AvoidLunch = true

	windows := gen.DayWindows(spec.DateFrom, spec)
	require.NotEmpty(t, windows)

	lunchStart := spec.DateFrom.Add(12 * time.Hour)
	lunchEnd := spec.DateFrom.Add(13 * time.Hour)

	for _, w := range windows {
		overlaps := w.Start.Before(lunchEnd) && lunchStart.Before(w.End)
		assert.False(t, overlaps, "window %v-%v intersects lunch", w.Start, w.End)
	}

	// A window ending exactly at 12:00 is allowed under half-open semantics
	var found bool
	for _, w := range windows {
		if w.Start.Hour() == 11 && w.Start.Minute() == 0 {
			found = true
		}
	}
	assert.True(t, found, "11:00-12:00 should survive the lunch exclusion")
}

func TestDayWindowsExactFit(t *testing.T) {
	gen := NewCandidateGenerator()
	spec := baseSpec()
	spec.EarliestMinute = 9 * 60
	spec.LatestMinute = 10 * 60
	spec.DurationMinutes = 60

	windows := gen.DayWindows(spec.DateFrom, spec)
	require.Len(t, windows, 1)
	assert.Equal(t, 9, windows[0].Start.Hour())
}
