// internal/workers/matching/send-match-digest/models.go
package sendmatchdigest

import "mentor-match-workers/internal/models"

type Input struct {
	Digest models.MatchDigest `json:"digest"`
}

type Output struct {
	NotificationID string              `json:"notificationId"`
	Status         string              `json:"status"` // "sent", "failed", "disabled"
	EmailSent      bool                `json:"emailSent"`
	SMSSent        bool                `json:"smsSent"`
	SentAt         string              `json:"sentAt"` // ISO 8601
	Notification   models.Notification `json:"notification"`
}

// Statuses
const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)
