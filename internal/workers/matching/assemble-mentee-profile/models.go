// internal/workers/matching/assemble-mentee-profile/models.go
package assemblementeeprofile

import "mentor-match-workers/internal/matching"

type Input struct {
	MenteeID string `json:"menteeId"`
}

type Output struct {
	MenteeProfile matching.MenteeProfile `json:"menteeProfile"`
	FromCache     bool                   `json:"fromCache"`
}
