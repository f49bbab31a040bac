// internal/workers/matching/query-mentor-pool/queries/search.go
package queries

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	"mentor-match-workers/internal/matching"
)

type SearchResult struct {
	Mentors   []matching.MentorProfile
	TotalHits int64
	Took      int64
}

type esResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source matching.MentorProfile `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search runs the pool query and decodes each hit's source document into a
// mentor profile.
func Search(ctx context.Context, esClient *elasticsearch.Client, q MentorPoolQuery) (*SearchResult, error) {
	req, err := BuildSearchRequest(q)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := req.Do(ctx, esClient)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		if res.StatusCode == 404 {
			return nil, fmt.Errorf("index %q not found", q.Index)
		}
		return nil, fmt.Errorf("mentor search failed: %s", res.String())
	}

	var r esResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, err
	}

	mentors := make([]matching.MentorProfile, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		mentors = append(mentors, hit.Source)
	}

	return &SearchResult{
		Mentors:   mentors,
		TotalHits: r.Hits.Total.Value,
		Took:      time.Since(start).Milliseconds(),
	}, nil
}
