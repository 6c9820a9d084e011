package service

import (
	"time"

	"meetwise/core/constants"
	"meetwise/modules/scheduling/entity"
)

// CandidateGenerator produces raw time windows satisfying the shape
// constraints of a spec: exact duration, allowed weekday, daily time range
// and the optional lunch exclusion. It knows nothing about participants and
// performs no I/O, so each day can be generated independently.
type CandidateGenerator struct {
	StepMinutes int
}

func NewCandidateGenerator() *CandidateGenerator {
	return &CandidateGenerator{
		StepMinutes: constants.SlotStepMinutes,
	}
}

// DayWindows returns the candidate windows for a single civil date. The date
// is expected at midnight in the request's location. A duration longer than
// the daily time range yields an empty slice, not an error.
func (g *CandidateGenerator) DayWindows(date time.Time, spec *entity.ConstraintSpec) []entity.Window {
	if !spec.DaysOfWeek[date.Weekday()] {
		return nil
	}

	duration := time.Duration(spec.DurationMinutes) * time.Minute
	windows := []entity.Window{}

	for startMin := spec.EarliestMinute; startMin+spec.DurationMinutes <= spec.LatestMinute; startMin += g.StepMinutes {
		start := date.Add(time.Duration(startMin) * time.Minute)
		end := start.Add(duration)

		if spec.AvoidLunch && overlapsLunch(startMin, startMin+spec.DurationMinutes) {
			continue
		}

		windows = append(windows, entity.Window{Start: start, End: end})
	}

	return windows
}

// overlapsLunch checks a window, in minutes from midnight, against the
// [12:00, 13:00) exclusion under half-open semantics.
func overlapsLunch(startMin, endMin int) bool {
	return startMin < constants.LunchEndMinute && constants.LunchStartMinute < endMin
}
