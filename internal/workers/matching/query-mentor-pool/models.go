// internal/workers/matching/query-mentor-pool/models.go
package querymentorpool

import (
	"mentor-match-workers/internal/matching"
	"mentor-match-workers/internal/models"
)

type Input struct {
	Criteria models.MentorSearchCriteria `json:"criteria"`
}

type Output struct {
	MentorPool []matching.MentorProfile `json:"mentorPool"`
	TotalHits  int64                    `json:"totalHits"`
	Took       int64                    `json:"took"` // milliseconds
}
