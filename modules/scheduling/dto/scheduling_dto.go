package dto

import (
	"fmt"
	"strings"
	"time"

	"meetwise/core/constants"
	"meetwise/modules/scheduling/entity"

	"github.com/google/uuid"
)

// ===================== Request DTOs =====================

// SearchRequest asks for a ranked shortlist of candidate slots
type SearchRequest struct {
	ParticipantIDs  []string `json:"participant_ids" validate:"required"`
	DateFrom        string   `json:"date_from" validate:"required"` // YYYY-MM-DD, inclusive
	DateTo          string   `json:"date_to" validate:"required"`   // YYYY-MM-DD, inclusive
	Earliest        string   `json:"earliest"`                      // HH:MM, default 09:00
	Latest          string   `json:"latest"`                        // HH:MM, default 17:00
	DaysOfWeek      []string `json:"days_of_week"`                  // weekday names, default Mon-Fri
	DurationMinutes int      `json:"duration_minutes" validate:"required,min=15,max=480"`
	BufferMinutes   int      `json:"buffer_minutes"`
	AvoidLunch      bool     `json:"avoid_lunch"`
	QuorumRatio     float64  `json:"quorum_ratio"` // default 1.0
	TopK            int      `json:"top_k"`        // default 10
	Now             string   `json:"now"`          // RFC3339; defaults to the server clock at request entry
	Timezone        string   `json:"timezone"`     // IANA name, default UTC

	Scoring *ScoringPolicyDTO `json:"scoring"`
}

// ScoringPolicyDTO overrides the default heuristic weights. Fields are
// pointers so an omitted weight keeps its default while an explicit zero
// disables it.
type ScoringPolicyDTO struct {
	MorningBonus         *float64 `json:"morning_bonus"`
	WeekdayBonus         *float64 `json:"weekday_bonus"`
	RecencyPenaltyPerDay *float64 `json:"recency_penalty_per_day"`
}

// CommitRequest accepts a chosen candidate and records it as a meeting
type CommitRequest struct {
	Title          string   `json:"title" validate:"required"`
	Description    string   `json:"description"`
	StartTime      string   `json:"start_time" validate:"required"` // RFC3339
	EndTime        string   `json:"end_time" validate:"required"`   // RFC3339
	ParticipantIDs []string `json:"participant_ids" validate:"required"`
}

// ===================== Response DTOs =====================

// SearchResponse carries the ranked slots and the search status
type SearchResponse struct {
	Status            entity.SearchStatus `json:"status"`
	TotalParticipants int                 `json:"total_participants"`
	Slots             []CandidateSlotDTO  `json:"slots"`
}

// CandidateSlotDTO is one ranked candidate slot
type CandidateSlotDTO struct {
	StartTime               time.Time     `json:"start_time"`
	EndTime                 time.Time     `json:"end_time"`
	Score                   float64       `json:"score"`
	AvailableCount          int           `json:"available_count"`
	AvailableParticipantIDs []string      `json:"available_participant_ids"`
	Conflicts               []ConflictDTO `json:"conflicts"`
	DayOfWeek               string        `json:"day_of_week"`
	FormattedDate           string        `json:"formatted_date"`
	FormattedTime           string        `json:"formatted_time"`
}

// ConflictDTO names the participant blocked on a slot and why
type ConflictDTO struct {
	ParticipantID string `json:"participant_id"`
	Label         string `json:"label"`
}

// ===================== Parsing =====================

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ToConstraintSpec parses and normalizes the request into a ConstraintSpec.
// Range validation happens later in ConstraintSpec.Validate; this only
// rejects values that cannot be parsed at all.
func (r *SearchRequest) ToConstraintSpec(defaultNow time.Time) (*entity.ConstraintSpec, error) {
	loc := time.UTC
	if r.Timezone != "" {
		var err error
		loc, err = time.LoadLocation(r.Timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid timezone %q", r.Timezone)
		}
	}

	participantIDs := make([]uuid.UUID, 0, len(r.ParticipantIDs))
	for _, raw := range r.ParticipantIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid participant id %q", raw)
		}
		participantIDs = append(participantIDs, id)
	}

	dateFrom, err := time.ParseInLocation("2006-01-02", r.DateFrom, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid date_from %q", r.DateFrom)
	}
	dateTo, err := time.ParseInLocation("2006-01-02", r.DateTo, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid date_to %q", r.DateTo)
	}

	earliest, err := parseMinuteOfDay(r.Earliest, 9*60)
	if err != nil {
		return nil, err
	}
	latest, err := parseMinuteOfDay(r.Latest, 17*60)
	if err != nil {
		return nil, err
	}

	days := make(map[time.Weekday]bool)
	if len(r.DaysOfWeek) == 0 {
		for d := time.Monday; d <= time.Friday; d++ {
			days[d] = true
		}
	} else {
		for _, name := range r.DaysOfWeek {
			d, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
			if !ok {
				return nil, fmt.Errorf("invalid weekday %q", name)
			}
			days[d] = true
		}
	}

	now := defaultNow
	if r.Now != "" {
		now, err = time.Parse(time.RFC3339, r.Now)
		if err != nil {
			return nil, fmt.Errorf("invalid now %q", r.Now)
		}
	}

	quorum := r.QuorumRatio
	if quorum == 0 {
		quorum = 1.0
	}
	topK := r.TopK
	if topK == 0 {
		topK = constants.DefaultTopK
	}

	scoring := entity.DefaultScoringPolicy()
	if r.Scoring != nil {
		if r.Scoring.MorningBonus != nil {
			scoring.MorningBonus = *r.Scoring.MorningBonus
		}
		if r.Scoring.WeekdayBonus != nil {
			scoring.WeekdayBonus = *r.Scoring.WeekdayBonus
		}
		if r.Scoring.RecencyPenaltyPerDay != nil {
			scoring.RecencyPenaltyPerDay = *r.Scoring.RecencyPenaltyPerDay
		}
	}

	return &entity.ConstraintSpec{
		ParticipantIDs:  participantIDs,
		DateFrom:        dateFrom,
		DateTo:          dateTo,
		EarliestMinute:  earliest,
		LatestMinute:    latest,
		DaysOfWeek:      days,
		DurationMinutes: r.DurationMinutes,
		BufferMinutes:   r.BufferMinutes,
		AvoidLunch:      r.AvoidLunch,
		QuorumRatio:     quorum,
		TopK:            topK,
		Now:             now,
		Scoring:         scoring,
	}, nil
}

func parseMinuteOfDay(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ToSlotDTO maps an evaluated slot to its response shape
func ToSlotDTO(s *entity.CandidateSlot) *CandidateSlotDTO {
	ids := make([]string, 0, len(s.AvailableParticipantIDs))
	for _, id := range s.AvailableParticipantIDs {
		ids = append(ids, id.String())
	}

	conflicts := make([]ConflictDTO, 0, len(s.Conflicts))
	for _, c := range s.Conflicts {
		conflicts = append(conflicts, ConflictDTO{
			ParticipantID: c.ParticipantID.String(),
			Label:         c.Label,
		})
	}

	return &CandidateSlotDTO{
		StartTime:               s.Start,
		EndTime:                 s.End,
		Score:                   s.Score,
		AvailableCount:          s.AvailableCount(),
		AvailableParticipantIDs: ids,
		Conflicts:               conflicts,
		DayOfWeek:               s.Start.Weekday().String(),
		FormattedDate:           s.Start.Format("02/01/2006"),
		FormattedTime:           s.Start.Format("15:04") + " - " + s.End.Format("15:04"),
	}
}
