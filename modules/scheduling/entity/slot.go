package entity

import (
	"time"

	"github.com/google/uuid"
)

// SearchStatus tells callers how a search ended. An empty result with
// StatusNoCandidates is a normal outcome, not an error; StatusAborted means
// the caller's deadline or cancellation fired mid-computation.
type SearchStatus string

const (
	StatusOk           SearchStatus = "ok"
	StatusNoCandidates SearchStatus = "no_candidates_found"
	StatusAborted      SearchStatus = "aborted"
)

// Window is a raw candidate time range before any participant evaluation
type Window struct {
	Start time.Time
	End   time.Time
}

// Conflict records why one participant cannot attend a candidate window
type Conflict struct {
	ParticipantID uuid.UUID `json:"participant_id"`
	Label         string    `json:"label"`
}

// CandidateSlot is one fully evaluated, scored candidate. Every requested
// participant appears exactly once: either in AvailableParticipantIDs or in
// Conflicts.
type CandidateSlot struct {
	Start                   time.Time   `json:"start"`
	End                     time.Time   `json:"end"`
	AvailableParticipantIDs []uuid.UUID `json:"available_participant_ids"`
	Conflicts               []Conflict  `json:"conflicts"`
	Score                   float64     `json:"score"`
}

// AvailableCount is the number of participants free for this slot
func (s *CandidateSlot) AvailableCount() int {
	return len(s.AvailableParticipantIDs)
}
