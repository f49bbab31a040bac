// internal/workers/matching/query-mentor-pool/handler.go
package querymentorpool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/elastic/go-elasticsearch/v8"

	"mentor-match-workers/internal/common/logger"
	"mentor-match-workers/internal/workers/matching/query-mentor-pool/queries"
)

const (
	TaskType = "query-mentor-pool"
)

var (
	ErrMentorSearchFailed  = errors.New("MENTOR_SEARCH_FAILED")
	ErrMentorSearchTimeout = errors.New("MENTOR_SEARCH_TIMEOUT")
	ErrMentorIndexNotFound = errors.New("MENTOR_INDEX_NOT_FOUND")
)

type Handler struct {
	config *Config
	client *elasticsearch.Client
	logger logger.Logger
}

func NewHandler(config *Config, client *elasticsearch.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		client: client,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		h.failJob(client, job, h.mapErrorToCode(err), err.Error(), h.getRetryCount(err))
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	size := input.Criteria.PoolCap
	if size <= 0 || size > h.config.PoolCap {
		size = h.config.PoolCap
	}

	result, err := queries.Search(ctx, h.client, queries.MentorPoolQuery{
		Index:    h.config.IndexName,
		Criteria: input.Criteria,
		Size:     size,
	})
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, ErrMentorSearchTimeout
		}
		if strings.Contains(err.Error(), "not found") {
			return nil, fmt.Errorf("%w: %v", ErrMentorIndexNotFound, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrMentorSearchFailed, err)
	}

	h.logger.Info("mentor pool fetched", map[string]interface{}{
		"totalHits": result.TotalHits,
		"returned":  len(result.Mentors),
		"tookMs":    result.Took,
	})

	return &Output{
		MentorPool: result.Mentors,
		TotalHits:  result.TotalHits,
		Took:       result.Took,
	}, nil
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

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string, retries int32) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
		"retries":      retries,
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

func (h *Handler) mapErrorToCode(err error) string {
	if errors.Is(err, ErrMentorIndexNotFound) {
		return "MENTOR_INDEX_NOT_FOUND"
	} else if errors.Is(err, ErrMentorSearchTimeout) {
		return "MENTOR_SEARCH_TIMEOUT"
	} else if errors.Is(err, ErrMentorSearchFailed) {
		return "MENTOR_SEARCH_FAILED"
	}
	return "UNKNOWN_ERROR"
}

func (h *Handler) getRetryCount(err error) int32 {
	if errors.Is(err, ErrMentorSearchFailed) {
		return 3
	} else if errors.Is(err, ErrMentorSearchTimeout) {
		return 2
	}
	return 0
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
