// internal/matching/engine.go
package matching

import (
	"runtime"
	"sync"

	"mentor-match-workers/internal/common/logger"
	"mentor-match-workers/internal/common/metrics"
)

// parallelThreshold is the pool size above which per-candidate scoring fans
// out across goroutines. Scoring one pair is independent of all others, so
// the only ordering requirement is the final sort.
const parallelThreshold = 32

// Engine is the mentor matching engine. It is stateless across calls and
// safe for concurrent use; the logger is its only collaborator.
type Engine struct {
	logger     logger.Logger
	maxWorkers int
}

func NewEngine(log logger.Logger) *Engine {
	return &Engine{
		logger:     log.WithFields(map[string]interface{}{"component": "matching-engine"}),
		maxWorkers: runtime.NumCPU(),
	}
}

// FindBestMatches scores every candidate mentor against the mentee, ranks
// them, truncates to topN (all when topN <= 0), and annotates the survivors
// with confidence and explanations.
//
// A mentee without an id aborts the call with a ValidationError. A mentor
// without an id is skipped with a logged warning and processing continues;
// one bad record should not deny the mentee a result. An empty pool returns
// an empty slice, not an error.
func (e *Engine) FindBestMatches(mentee *MenteeProfile, mentors []*MentorProfile, weights WeightVector, topN int) ([]MatchResult, error) {
	normMentee, err := NormalizeMentee(mentee)
	if err != nil {
		return nil, err
	}

	pool := make([]*MentorProfile, 0, len(mentors))
	for i, m := range mentors {
		normMentor, err := NormalizeMentor(m)
		if err != nil {
			e.logger.Warn("skipping malformed mentor record", map[string]interface{}{
				"index": i,
				"error": err.Error(),
			})
			metrics.MentorsSkipped.Inc()
			continue
		}
		pool = append(pool, normMentor)
	}

	if len(pool) == 0 {
		return []MatchResult{}, nil
	}

	candidates := e.scorePool(normMentee, pool, weights)
	rankCandidates(candidates)

	if topN > 0 && topN < len(candidates) {
		candidates = candidates[:topN]
	}

	results := make([]MatchResult, len(candidates))
	for i, cand := range candidates {
		reasons, recs, challenges := Explain(normMentee, cand.mentor, cand.vector)
		results[i] = MatchResult{
			MentorID:            cand.mentor.ID,
			MatchScore:          cand.score,
			Compatibility:       cand.vector,
			Confidence:          ClassifyConfidence(cand.score, cand.vector),
			MatchReasons:        reasons,
			Recommendations:     recs,
			PotentialChallenges: challenges,
		}
	}

	return results, nil
}

// scorePool computes one candidate per mentor, fanning out over a bounded
// worker group for large pools. Results land at fixed indexes, so no merge
// step or lock is needed.
func (e *Engine) scorePool(mentee *MenteeProfile, pool []*MentorProfile, weights WeightVector) []candidate {
	candidates := make([]candidate, len(pool))

	scoreOne := func(i int) {
		vector := Score(mentee, pool[i])
		candidates[i] = candidate{
			mentor: pool[i],
			score:  AggregateScore(weights, vector),
			vector: vector,
		}
	}

	if len(pool) < parallelThreshold || e.maxWorkers <= 1 {
		for i := range pool {
			scoreOne(i)
		}
		return candidates
	}

	var wg sync.WaitGroup
	jobs := make(chan int)
	for w := 0; w < e.maxWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				scoreOne(i)
			}
		}()
	}
	for i := range pool {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return candidates
}
