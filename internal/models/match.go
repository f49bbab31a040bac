// internal/models/match.go
package models

import "mentor-match-workers/internal/matching"

// MatchDigest carries the ranked matches for one mentee into the
// notification task.
type MatchDigest struct {
	MenteeID     string                 `json:"menteeId"`
	MenteeName   string                 `json:"menteeName"`
	MenteeEmail  string                 `json:"menteeEmail"`
	MenteePhone  string                 `json:"menteePhone,omitempty"`
	Matches      []matching.MatchResult `json:"matches"`
	MentorNames  map[string]string      `json:"mentorNames,omitempty"` // mentor id -> display name
	HighPriority bool                   `json:"highPriority"`
	GeneratedAt  string                 `json:"generatedAt"`
}

// MentorDisplayName resolves a mentor's display name for rendering,
// falling back to the id when the workflow supplied no name.
func (d *MatchDigest) MentorDisplayName(mentorID string) string {
	if name, ok := d.MentorNames[mentorID]; ok && name != "" {
		return name
	}
	return "Mentor " + mentorID
}

// MentorSearchCriteria is the filter set the query-mentor-pool task
// translates into an Elasticsearch query.
type MentorSearchCriteria struct {
	FocusAreas      []string `json:"focusAreas,omitempty"`
	Languages       []string `json:"languages,omitempty"`
	MaxHourlyRate   float64  `json:"maxHourlyRate,omitempty"`
	MinRating       float64  `json:"minRating,omitempty"`
	ExperienceLevel string   `json:"experienceLevel,omitempty"`
	VerifiedOnly    bool     `json:"verifiedOnly"`
	PoolCap         int      `json:"poolCap,omitempty"`
}
