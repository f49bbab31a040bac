// internal/workers/matching/assemble-mentee-profile/handler.go
package assemblementeeprofile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	commonerrors "mentor-match-workers/internal/common/errors"
	"mentor-match-workers/internal/common/logger"
	"mentor-match-workers/internal/matching"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "assemble-mentee-profile"
)

var (
	ErrMenteeProfileNotFound = errors.New("MENTEE_PROFILE_NOT_FOUND")
	ErrQueryExecutionFailed  = errors.New("QUERY_EXECUTION_FAILED")
)

type Handler struct {
	config       *Config
	db           *sql.DB
	redis        *redis.Client
	logger       logger.Logger
	errorHandler *commonerrors.ErrorHandler
}

func NewHandler(config *Config, db *sql.DB, redisClient *redis.Client, log logger.Logger) *Handler {
	scopedLog := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		db:           db,
		redis:        redisClient,
		logger:       scopedLog,
		errorHandler: commonerrors.NewErrorHandler(scopedLog),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(ctx, client, job, commonerrors.NewMenteeProfileInvalidError(fmt.Sprintf("parse input: %v", err)))
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(ctx, client, job, err)
		return
	}

	h.completeJob(client, job, output)
}

// convertToStandardError maps the package sentinels onto the shared error
// taxonomy so retry budgets stay in one place.
func convertToStandardError(err error) *commonerrors.StandardError {
	var stdErr *commonerrors.StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	if errors.Is(err, ErrMenteeProfileNotFound) {
		detail := strings.TrimPrefix(err.Error(), ErrMenteeProfileNotFound.Error()+": ")
		return commonerrors.NewMenteeProfileNotFoundError(detail)
	}
	return commonerrors.NewQueryExecutionFailedError("fetch mentee profile", err)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.MenteeID == "" {
		return nil, fmt.Errorf("%w: menteeId is required", ErrMenteeProfileNotFound)
	}

	cacheKey := "mentee:profile:" + input.MenteeID
	if val, err := h.redis.Get(ctx, cacheKey).Result(); err == nil {
		var profile matching.MenteeProfile
		if err := json.Unmarshal([]byte(val), &profile); err == nil {
			return &Output{MenteeProfile: profile, FromCache: true}, nil
		}
		// Poisoned cache entry, fall through to the database.
		h.redis.Del(ctx, cacheKey)
	}

	profile, err := h.fetchProfile(ctx, input.MenteeID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(profile); err == nil {
		h.redis.Set(ctx, cacheKey, data, h.config.CacheTTL)
	}

	return &Output{MenteeProfile: *profile, FromCache: false}, nil
}

func (h *Handler) fetchProfile(ctx context.Context, menteeID string) (*matching.MenteeProfile, error) {
	row := h.db.QueryRowContext(ctx, `
		SELECT personal_info, professional_info, learning_preferences,
		       mentoring_needs, communication_style, personality_traits, learning_history
		FROM mentees WHERE id = $1`, menteeID)

	var personal, professional, learningPrefs, needs, commStyle, traits, history []byte
	err := row.Scan(&personal, &professional, &learningPrefs, &needs, &commStyle, &traits, &history)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: mentee %s", ErrMenteeProfileNotFound, menteeID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
	}

	profile := matching.MenteeProfile{ID: menteeID}
	unmarshalSection(personal, &profile.PersonalInfo)
	unmarshalSection(professional, &profile.ProfessionalInfo)
	unmarshalSection(learningPrefs, &profile.LearningPreferences)
	unmarshalSection(needs, &profile.MentoringNeeds)
	unmarshalSection(commStyle, &profile.CommunicationStyle)
	unmarshalSection(traits, &profile.PersonalityTraits)
	unmarshalSection(history, &profile.LearningHistory)

	return &profile, nil
}

// unmarshalSection tolerates NULL columns and malformed JSONB; a section
// that fails to decode is left at its zero value and the engine scores it
// neutrally.
func unmarshalSection(data []byte, dst interface{}) {
	if len(data) == 0 {
		return
	}
	_ = json.Unmarshal(data, dst)
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

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, jobErr error) {
	h.errorHandler.HandleJobError(ctx, client, job, convertToStandardError(jobErr))
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
