// internal/matching/normalize_test.go
package matching

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMentee(t *testing.T) {
	t.Run("missing id is an error", func(t *testing.T) {
		_, err := NormalizeMentee(nil)
		assert.Error(t, err)

		_, err = NormalizeMentee(&MenteeProfile{})
		assert.Error(t, err)
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		in := &MenteeProfile{ID: " mentee-1 "}
		in.ProfessionalInfo.Skills = []string{"Go", "go", " SQL "}

		out, err := NormalizeMentee(in)
		require.NoError(t, err)

		assert.Equal(t, " mentee-1 ", in.ID)
		assert.Equal(t, "mentee-1", out.ID)
		assert.Equal(t, []string{"Go", "go", " SQL "}, in.ProfessionalInfo.Skills)
	})

	t.Run("dedupes sets case-insensitively keeping first casing", func(t *testing.T) {
		in := &MenteeProfile{ID: "m"}
		in.ProfessionalInfo.Skills = []string{"Go", "go", " SQL ", "", "sql"}

		out, err := NormalizeMentee(in)
		require.NoError(t, err)
		assert.Equal(t, []string{"Go", "SQL"}, out.ProfessionalInfo.Skills)
	})

	t.Run("negative response time clamps to zero", func(t *testing.T) {
		in := &MenteeProfile{ID: "m"}
		in.CommunicationStyle.ResponseTimeHours = -3

		out, err := NormalizeMentee(in)
		require.NoError(t, err)
		assert.Zero(t, out.CommunicationStyle.ResponseTimeHours)
	})
}

func TestNormalizeBudget(t *testing.T) {
	tests := []struct {
		name        string
		in          BudgetRange
		expectedMin float64
		maxIsInf    bool
		expectedMax float64
	}{
		{"zero max becomes unbounded", BudgetRange{}, 0, true, 0},
		{"negative min clamps", BudgetRange{Min: -10, Max: 50}, 0, false, 50},
		{"swapped bounds", BudgetRange{Min: 100, Max: 40}, 40, false, 100},
		{"valid range untouched", BudgetRange{Min: 20, Max: 80}, 20, false, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := normalizeBudget(tt.in)
			assert.Equal(t, tt.expectedMin, out.Min)
			if tt.maxIsInf {
				assert.True(t, math.IsInf(out.Max, 1))
			} else {
				assert.Equal(t, tt.expectedMax, out.Max)
			}
		})
	}
}

func TestNormalizeMentor(t *testing.T) {
	t.Run("missing id is an error", func(t *testing.T) {
		_, err := NormalizeMentor(nil)
		assert.Error(t, err)

		_, err = NormalizeMentor(&MentorProfile{ID: "  "})
		assert.Error(t, err)
	})

	t.Run("stats clamp to sane ranges", func(t *testing.T) {
		in := &MentorProfile{ID: "x"}
		in.Stats.AverageRating = 9.5
		in.Stats.CompletionRate = 1.4
		in.Stats.TotalSessions = -2
		in.MentoringInfo.Pricing.HourlyRate = -10

		out, err := NormalizeMentor(in)
		require.NoError(t, err)
		assert.Equal(t, 5.0, out.Stats.AverageRating)
		assert.Equal(t, 1.0, out.Stats.CompletionRate)
		assert.Zero(t, out.Stats.TotalSessions)
		assert.Zero(t, out.MentoringInfo.Pricing.HourlyRate)
	})

	t.Run("nil availability becomes empty slice", func(t *testing.T) {
		out, err := NormalizeMentor(&MentorProfile{ID: "x"})
		require.NoError(t, err)
		assert.NotNil(t, out.MentoringInfo.Availability)
		assert.Empty(t, out.MentoringInfo.Availability)
	})
}

func TestParseUTCOffset(t *testing.T) {
	tests := []struct {
		in       string
		expected float64
		ok       bool
	}{
		{"UTC+05:30", 5.5, true},
		{"UTC-8", -8, true},
		{"GMT+2", 2, true},
		{"+02:00", 2, true},
		{"Z", 0, true},
		{"UTC", 0, true},
		{"", 0, false},
		{"Europe/Berlin", 0, false},
		{"UTC+25", 0, false},
		{"UTC+1:99", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseUTCOffset(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.expected, got, 1e-9)
			}
		})
	}
}
