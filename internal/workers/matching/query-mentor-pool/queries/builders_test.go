// internal/workers/matching/query-mentor-pool/queries/builders_test.go
package queries

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentor-match-workers/internal/models"
)

func TestBuildSearchRequest(t *testing.T) {
	t.Run("missing index is an error", func(t *testing.T) {
		_, err := BuildSearchRequest(MentorPoolQuery{})
		assert.ErrorIs(t, err, ErrMissingIndex)
	})

	t.Run("size and index propagate", func(t *testing.T) {
		req, err := BuildSearchRequest(MentorPoolQuery{Index: "mentors", Size: 50})
		require.NoError(t, err)
		assert.Equal(t, []string{"mentors"}, req.Index)
		assert.Equal(t, 50, *req.Size)
	})
}

func TestBuildMentorPoolQuery(t *testing.T) {
	t.Run("no criteria matches all", func(t *testing.T) {
		q := buildMentorPoolQuery(models.MentorSearchCriteria{})
		boolQuery := q["query"].(map[string]interface{})["bool"].(map[string]interface{})

		must := boolQuery["must"].([]interface{})
		require.Len(t, must, 1)
		assert.Contains(t, must[0], "match_all")
		assert.NotContains(t, boolQuery, "filter")
	})

	t.Run("verified-only adds a term filter", func(t *testing.T) {
		q := buildMentorPoolQuery(models.MentorSearchCriteria{VerifiedOnly: true})
		filters := extractFilters(t, q)

		require.Len(t, filters, 1)
		term := filters[0].(map[string]interface{})["term"].(map[string]interface{})
		assert.Equal(t, "verified", term["verificationStatus"])
	})

	t.Run("focus areas become should clauses over expertise and skills", func(t *testing.T) {
		q := buildMentorPoolQuery(models.MentorSearchCriteria{FocusAreas: []string{"System Design"}})
		boolQuery := q["query"].(map[string]interface{})["bool"].(map[string]interface{})

		should := boolQuery["should"].([]interface{})
		assert.Len(t, should, 2)
		assert.Equal(t, 1, boolQuery["minimum_should_match"])

		terms := should[0].(map[string]interface{})["terms"].(map[string]interface{})
		assert.Equal(t, []string{"system design"}, terms["mentoringInfo.expertiseAreas"])
	})

	t.Run("rate and rating bounds become range filters", func(t *testing.T) {
		q := buildMentorPoolQuery(models.MentorSearchCriteria{MaxHourlyRate: 150, MinRating: 4.0})
		filters := extractFilters(t, q)
		require.Len(t, filters, 2)

		rate := filters[0].(map[string]interface{})["range"].(map[string]interface{})["mentoringInfo.pricing.hourlyRate"].(map[string]interface{})
		assert.Equal(t, 150.0, rate["lte"])

		rating := filters[1].(map[string]interface{})["range"].(map[string]interface{})["stats.averageRating"].(map[string]interface{})
		assert.Equal(t, 4.0, rating["gte"])
	})

	t.Run("sort prefers rating then sessions", func(t *testing.T) {
		q := buildMentorPoolQuery(models.MentorSearchCriteria{})
		sortClauses := q["sort"].([]map[string]interface{})

		require.Len(t, sortClauses, 2)
		assert.Equal(t, "desc", sortClauses[0]["stats.averageRating"])
		assert.Equal(t, "desc", sortClauses[1]["stats.totalSessions"])
	})
}

func extractFilters(t *testing.T, q map[string]interface{}) []interface{} {
	t.Helper()
	boolQuery := q["query"].(map[string]interface{})["bool"].(map[string]interface{})
	filters, ok := boolQuery["filter"].([]interface{})
	require.True(t, ok, "expected filter clauses")
	return filters
}
