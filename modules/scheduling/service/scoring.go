package service

import (
	"time"

	"meetwise/modules/scheduling/entity"
)

// ScoringEngine computes the desirability score of a candidate window. The
// score is a pure function of (window, availableCount, total, now, policy):
// no clock reads and no randomness, so identical inputs always produce
// identical scores.
type ScoringEngine struct {
	policy entity.ScoringPolicy
}

func NewScoringEngine(policy entity.ScoringPolicy) *ScoringEngine {
	return &ScoringEngine{policy: policy}
}

// Score starts from the availability ratio scaled to [0,100], adds the
// morning and weekday bonuses, subtracts the recency penalty per full day
// between now and the slot date, and clamps to [0,100].
func (e *ScoringEngine) Score(w entity.Window, availableCount, totalParticipants int, now time.Time) float64 {
	score := 100 * float64(availableCount) / float64(totalParticipants)

	hour := w.Start.Hour()
	if hour >= 9 && hour < 12 {
		score += e.policy.MorningBonus
	}

	weekday := w.Start.Weekday()
	if weekday >= time.Monday && weekday <= time.Friday {
		score += e.policy.WeekdayBonus
	}

	score -= e.policy.RecencyPenaltyPerDay * float64(daysBetween(now, w.Start))

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// daysBetween counts calendar days from now's date to start's date, clamped
// at zero so past reference instants never reward a slot. Both dates are
// rebuilt at midnight UTC before diffing so a DST transition between them
// cannot shave a day off the count.
func daysBetween(now, start time.Time) int {
	nowDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	startDate := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)

	days := int(startDate.Sub(nowDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
