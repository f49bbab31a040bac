// internal/workers/matching/find-best-matches/models.go
package findbestmatches

import "mentor-match-workers/internal/matching"

type Input struct {
	MenteeProfile matching.MenteeProfile   `json:"menteeProfile"`
	MentorPool    []matching.MentorProfile `json:"mentorPool"`
	Weights       *matching.WeightVector   `json:"weights,omitempty"`
	TopN          int                      `json:"topN,omitempty"`
}

type Output struct {
	Matches            []matching.MatchResult `json:"matches"`
	TotalCandidates    int                    `json:"totalCandidates"`
	EligibleCandidates int                    `json:"eligibleCandidates"`
	GeneratedAt        string                 `json:"generatedAt"` // ISO 8601
}
