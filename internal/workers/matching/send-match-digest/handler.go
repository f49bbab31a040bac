// internal/workers/matching/send-match-digest/handler.go
package sendmatchdigest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	commonaws "mentor-match-workers/internal/common/aws"
	"mentor-match-workers/internal/common/logger"
	"mentor-match-workers/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "send-match-digest"
)

var (
	ErrDigestSendFailed = errors.New("DIGEST_SEND_FAILED")
)

// Define interfaces for mocking
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type Handler struct {
	config    *Config
	logger    logger.Logger
	sesClient SESService
	snsClient SNSService
}

func NewHandler(config *Config, log logger.Logger) (*Handler, error) {
	ctx := context.Background()
	sesClient, err := commonaws.NewSESClient(ctx, config.AWSRegion)
	if err != nil {
		return nil, fmt.Errorf("create SES client: %w", err)
	}
	snsClient, err := commonaws.NewSNSClient(ctx, config.AWSRegion)
	if err != nil {
		return nil, fmt.Errorf("create SNS client: %w", err)
	}

	return &Handler{
		config:    config,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
		sesClient: sesClient,
		snsClient: snsClient,
	}, nil
}

// NewHandlerWithClients wires pre-built messaging clients. Used by tests and
// by deployments that manage AWS credentials themselves.
func NewHandlerWithClients(config *Config, sesClient SESService, snsClient SNSService, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
		sesClient: sesClient,
		snsClient: snsClient,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err), 0)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		retries := int32(0)
		if errors.Is(err, ErrDigestSendFailed) {
			retries = 3
		}
		h.failJob(client, job, "DIGEST_SEND_FAILED", err.Error(), retries)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	digest := &input.Digest
	sentAt := time.Now().UTC().Format(time.RFC3339)
	notificationID := uuid.New().String()

	if len(digest.Matches) == 0 {
		h.logger.Info("empty digest, nothing to send", map[string]interface{}{
			"menteeId": digest.MenteeID,
		})
		return &Output{NotificationID: notificationID, Status: StatusDisabled, SentAt: sentAt}, nil
	}

	subject, body := h.renderDigest(digest)

	emailSent := false
	smsSent := false

	if h.config.EmailEnabled && digest.MenteeEmail != "" {
		if err := h.sendEmail(ctx, digest.MenteeEmail, subject, body); err != nil {
			h.logger.Error("email send failed", map[string]interface{}{
				"error":    err,
				"menteeId": digest.MenteeID,
			})
			return &Output{NotificationID: notificationID, Status: StatusFailed, SentAt: sentAt}, nil
		}
		emailSent = true
	}

	// SMS only for high-priority digests.
	if h.config.SMSEnabled && digest.MenteePhone != "" && digest.HighPriority {
		if err := h.sendSMS(ctx, digest.MenteePhone, h.renderSMS(digest)); err != nil {
			h.logger.Error("SMS send failed", map[string]interface{}{
				"error":    err,
				"menteeId": digest.MenteeID,
			})
			return &Output{NotificationID: notificationID, Status: StatusFailed, EmailSent: emailSent, SentAt: sentAt}, nil
		}
		smsSent = true
	}

	status := StatusDisabled
	if emailSent || smsSent {
		status = StatusSent
	}

	channel := "email"
	if smsSent && !emailSent {
		channel = "sms"
	}

	return &Output{
		NotificationID: notificationID,
		Status:         status,
		EmailSent:      emailSent,
		SMSSent:        smsSent,
		SentAt:         sentAt,
		Notification: models.Notification{
			ID:            notificationID,
			RecipientID:   digest.MenteeID,
			RecipientType: "mentee",
			Type:          "match_digest",
			Channel:       channel,
			Status:        status,
			Payload: map[string]interface{}{
				"matchCount":   len(digest.Matches),
				"highPriority": digest.HighPriority,
			},
			SentAt:    sentAt,
			CreatedAt: sentAt,
		},
	}, nil
}

func (h *Handler) renderDigest(digest *models.MatchDigest) (string, string) {
	limit := h.config.MaxMatches
	if limit <= 0 || limit > len(digest.Matches) {
		limit = len(digest.Matches)
	}

	name := digest.MenteeName
	if name == "" {
		name = "there"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nWe found %d mentors for you:\n\n", name, len(digest.Matches))
	for i, match := range digest.Matches[:limit] {
		fmt.Fprintf(&b, "%d. %s (match score %d, %s confidence)\n", i+1, digest.MentorDisplayName(match.MentorID), match.MatchScore, match.Confidence)
		for _, reason := range match.MatchReasons {
			fmt.Fprintf(&b, "   - %s\n", reason)
		}
		b.WriteString("\n")
	}
	b.WriteString("Log in to review your matches and book a first session.\n")

	subject := fmt.Sprintf("Your top %d mentor matches are ready", limit)
	return subject, b.String()
}

func (h *Handler) renderSMS(digest *models.MatchDigest) string {
	top := digest.Matches[0]
	return fmt.Sprintf("New mentor matches! Top pick: %s with a %d match score. Check your email for details.", digest.MentorDisplayName(top.MentorID), top.MatchScore)
}

func (h *Handler) sendEmail(ctx context.Context, to, subject, body string) error {
	_, err := h.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(h.config.FromEmail),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDigestSendFailed, err)
	}
	return nil
}

func (h *Handler) sendSMS(ctx context.Context, to, message string) error {
	_, err := h.snsClient.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(message),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDigestSendFailed, err)
	}
	return nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string, _ int32) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
