package service

import (
	"math"
	"sort"

	"meetwise/modules/scheduling/entity"
)

// RankSlots filters scored candidates below quorum, orders the remainder by
// score descending with ties broken by earlier start, and truncates to topK.
// An empty result is a valid outcome.
func RankSlots(slots []entity.CandidateSlot, totalParticipants int, quorumRatio float64, topK int) []entity.CandidateSlot {
	quorum := int(math.Ceil(float64(totalParticipants) * quorumRatio))

	ranked := make([]entity.CandidateSlot, 0, len(slots))
	for _, s := range slots {
		if s.AvailableCount() >= quorum {
			ranked = append(ranked, s)
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Start.Before(ranked[j].Start)
	})

	if len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked
}
