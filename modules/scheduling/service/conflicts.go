package service

import (
	"sort"
	"time"

	availability "meetwise/modules/availability/entity"
	"meetwise/modules/scheduling/entity"

	"github.com/google/uuid"
)

// expandedInterval is a busy interval already padded by the buffer on both
// ends, so the per-candidate check is a plain half-open overlap.
type expandedInterval struct {
	start time.Time
	end   time.Time
	label string
}

// ConflictDetector classifies the requested participants as free or
// conflicted for a candidate window. It is built once per request from the
// batch-fetched busy intervals; intervals owned by anyone outside the
// requested set are dropped at build time so they can never count as a
// conflict. Per-participant intervals are kept sorted by start for binary
// search lookups.
type ConflictDetector struct {
	participants []uuid.UUID
	byOwner      map[uuid.UUID][]expandedInterval
}

func NewConflictDetector(participants []uuid.UUID, intervals []availability.BusyInterval, bufferMinutes int) *ConflictDetector {
	requested := make(map[uuid.UUID]bool, len(participants))
	for _, id := range participants {
		requested[id] = true
	}

	buffer := time.Duration(bufferMinutes) * time.Minute
	byOwner := make(map[uuid.UUID][]expandedInterval, len(participants))

	for _, iv := range intervals {
		if !requested[iv.OwnerID] {
			continue
		}
		byOwner[iv.OwnerID] = append(byOwner[iv.OwnerID], expandedInterval{
			start: iv.StartTime.Add(-buffer),
			end:   iv.EndTime.Add(buffer),
			label: iv.Label,
		})
	}

	for id := range byOwner {
		ivs := byOwner[id]
		sort.Slice(ivs, func(i, j int) bool {
			return ivs[i].start.Before(ivs[j].start)
		})
	}

	return &ConflictDetector{
		participants: participants,
		byOwner:      byOwner,
	}
}

// Classify returns the available participants and the conflicts for one
// window. Every requested participant lands in exactly one of the two lists,
// preserving the request order so results stay deterministic.
func (d *ConflictDetector) Classify(w entity.Window) ([]uuid.UUID, []entity.Conflict) {
	available := make([]uuid.UUID, 0, len(d.participants))
	conflicts := []entity.Conflict{}

	for _, id := range d.participants {
		if label, conflicted := d.firstOverlap(d.byOwner[id], w); conflicted {
			conflicts = append(conflicts, entity.Conflict{
				ParticipantID: id,
				Label:         label,
			})
		} else {
			available = append(available, id)
		}
	}

	return available, conflicts
}

// firstOverlap finds an interval overlapping [w.Start, w.End) among intervals
// sorted by start. sort.Search locates the first interval starting at or
// after w.End; only intervals before that point can overlap, and among those
// the one with the greatest end is the best candidate.
func (d *ConflictDetector) firstOverlap(ivs []expandedInterval, w entity.Window) (string, bool) {
	n := sort.Search(len(ivs), func(i int) bool {
		return !ivs[i].start.Before(w.End)
	})

	// Walk backwards over intervals starting before w.End. Expanded
	// intervals can nest, so an earlier start may still reach past w.Start.
	for i := n - 1; i >= 0; i-- {
		if ivs[i].end.After(w.Start) {
			return ivs[i].label, true
		}
	}
	return "", false
}
