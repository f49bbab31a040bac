// internal/matching/rank.go
package matching

import "sort"

// candidate pairs a scored mentor with its draft result while the ranking
// and annotation passes run.
type candidate struct {
	mentor *MentorProfile
	score  int
	vector CompatibilityVector
}

// rankCandidates sorts by match score descending with a deterministic total
// order on ties: average rating descending, then total sessions descending,
// then mentor id ascending.
func rankCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if a.mentor.Stats.AverageRating != b.mentor.Stats.AverageRating {
			return a.mentor.Stats.AverageRating > b.mentor.Stats.AverageRating
		}
		if a.mentor.Stats.TotalSessions != b.mentor.Stats.TotalSessions {
			return a.mentor.Stats.TotalSessions > b.mentor.Stats.TotalSessions
		}
		return a.mentor.ID < b.mentor.ID
	})
}
