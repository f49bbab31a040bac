// internal/workers/matching/query-mentor-pool/queries/builders.go
package queries

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"mentor-match-workers/internal/models"
)

var ErrMissingIndex = errors.New("index name is required")

// MentorPoolQuery describes one candidate-pool search.
type MentorPoolQuery struct {
	Index    string
	Criteria models.MentorSearchCriteria
	Size     int
}

// BuildSearchRequest translates the criteria into an Elasticsearch bool
// query. Expertise is a should clause so mentors who cover only part of
// the focus areas still surface, ranked lower; everything else filters.
func BuildSearchRequest(q MentorPoolQuery) (*esapi.SearchRequest, error) {
	if q.Index == "" {
		return nil, ErrMissingIndex
	}

	body, _ := json.Marshal(buildMentorPoolQuery(q.Criteria))
	size := q.Size
	from := 0

	return &esapi.SearchRequest{
		Index: []string{q.Index},
		Body:  strings.NewReader(string(body)),
		From:  &from,
		Size:  &size,
	}, nil
}

func buildMentorPoolQuery(c models.MentorSearchCriteria) map[string]interface{} {
	boolQuery := make(map[string]interface{})
	mustClauses := []interface{}{}
	filterClauses := []interface{}{}

	if len(c.FocusAreas) > 0 {
		boolQuery["should"] = []interface{}{
			map[string]interface{}{
				"terms": map[string]interface{}{
					"mentoringInfo.expertiseAreas": lowerAll(c.FocusAreas),
				},
			},
			map[string]interface{}{
				"terms": map[string]interface{}{
					"professionalInfo.skills": lowerAll(c.FocusAreas),
				},
			},
		}
		boolQuery["minimum_should_match"] = 1
	}

	if c.VerifiedOnly {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"verificationStatus": "verified"},
		})
	}

	if len(c.Languages) > 0 {
		filterClauses = append(filterClauses, map[string]interface{}{
			"terms": map[string]interface{}{"mentoringInfo.languages": lowerAll(c.Languages)},
		})
	}

	if c.ExperienceLevel != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"mentoringInfo.experienceLevel": c.ExperienceLevel},
		})
	}

	if c.MaxHourlyRate > 0 {
		filterClauses = append(filterClauses, map[string]interface{}{
			"range": map[string]interface{}{
				"mentoringInfo.pricing.hourlyRate": map[string]interface{}{"lte": c.MaxHourlyRate},
			},
		})
	}

	if c.MinRating > 0 {
		filterClauses = append(filterClauses, map[string]interface{}{
			"range": map[string]interface{}{
				"stats.averageRating": map[string]interface{}{"gte": c.MinRating},
			},
		})
	}

	if len(mustClauses) == 0 {
		mustClauses = append(mustClauses, map[string]interface{}{"match_all": map[string]interface{}{}})
	}

	boolQuery["must"] = mustClauses
	if len(filterClauses) > 0 {
		boolQuery["filter"] = filterClauses
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": boolQuery,
		},
		"sort": []map[string]interface{}{
			{"stats.averageRating": "desc"},
			{"stats.totalSessions": "desc"},
		},
	}
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
