// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	MatchCandidatesScored = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "match_candidates_scored",
			Help:    "Candidate pool size per matching call",
			Buckets: prometheus.ExponentialBuckets(1, 4, 6),
		},
		[]string{"task_type"},
	)

	MatchScoreDistribution = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "match_top_score",
			Help:    "Top match score per matching call (0-100)",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	MentorsSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "match_mentors_skipped_total",
			Help: "Malformed mentor records skipped during matching",
		},
	)
)
