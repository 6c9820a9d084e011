package entity

// ScoringPolicy holds the heuristic weights applied on top of the
// availability ratio. The weights are tunable per request; the defaults are
// the documented baseline that tests pin down.
type ScoringPolicy struct {
	MorningBonus         float64 `json:"morning_bonus"`
	WeekdayBonus         float64 `json:"weekday_bonus"`
	RecencyPenaltyPerDay float64 `json:"recency_penalty_per_day"`
}

// DefaultScoringPolicy returns the baseline weights: +10 for 09:00-12:00
// starts, +5 for Mon-Fri, -2 per day between now and the slot date.
func DefaultScoringPolicy() ScoringPolicy {
	return ScoringPolicy{
		MorningBonus:         10,
		WeekdayBonus:         5,
		RecencyPenaltyPerDay: 2,
	}
}
