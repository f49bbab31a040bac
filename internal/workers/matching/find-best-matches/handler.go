// internal/workers/matching/find-best-matches/handler.go
package findbestmatches

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mentor-match-workers/internal/common/logger"
	"mentor-match-workers/internal/common/metrics"
	"mentor-match-workers/internal/matching"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "find-best-matches"
)

var (
	ErrMatchRequestInvalid = errors.New("MATCH_REQUEST_INVALID")
	ErrMatchingFailed      = errors.New("MATCHING_FAILED")
)

type Handler struct {
	config *Config
	engine *matching.Engine
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		engine: matching.NewEngine(log),
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})
	start := time.Now()

	if err := validateVariables(job.Variables); err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, "MATCH_REQUEST_INVALID").Inc()
		h.failJob(client, job, "MATCH_REQUEST_INVALID", err.Error(), 0)
		return
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, "PARSE_ERROR").Inc()
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err), 0)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		errorCode := "MATCHING_FAILED"
		if errors.Is(err, ErrMatchRequestInvalid) {
			errorCode = "MATCH_REQUEST_INVALID"
		}
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()
		h.failJob(client, job, errorCode, err.Error(), 0)
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	pool := input.MentorPool
	if h.config.PoolCap > 0 && len(pool) > h.config.PoolCap {
		h.logger.Warn("mentor pool truncated", map[string]interface{}{
			"poolSize": len(pool),
			"poolCap":  h.config.PoolCap,
		})
		pool = pool[:h.config.PoolCap]
	}

	// Only verified mentors are eligible for matching. Records without a
	// verification status are treated as unverified.
	eligible := make([]*matching.MentorProfile, 0, len(pool))
	for i := range pool {
		if pool[i].VerificationStatus != matching.VerificationVerified {
			continue
		}
		eligible = append(eligible, &pool[i])
	}

	weights := matching.DefaultWeights()
	if input.Weights != nil {
		weights = *input.Weights
	}

	topN := input.TopN
	if topN <= 0 {
		topN = h.config.DefaultTopN
	}

	matches, err := h.engine.FindBestMatches(&input.MenteeProfile, eligible, weights, topN)
	if err != nil {
		var vErr *matching.ValidationError
		if errors.As(err, &vErr) {
			return nil, fmt.Errorf("%w: %v", ErrMatchRequestInvalid, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrMatchingFailed, err)
	}

	metrics.MatchCandidatesScored.WithLabelValues(TaskType).Observe(float64(len(eligible)))
	if len(matches) > 0 {
		metrics.MatchScoreDistribution.Observe(float64(matches[0].MatchScore))
	}

	h.logger.Info("matching complete", map[string]interface{}{
		"menteeId": input.MenteeProfile.ID,
		"poolSize": len(input.MentorPool),
		"eligible": len(eligible),
		"returned": len(matches),
	})

	return &Output{
		Matches:            matches,
		TotalCandidates:    len(input.MentorPool),
		EligibleCandidates: len(eligible),
		GeneratedAt:        time.Now().UTC().Format(time.RFC3339),
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
