// internal/workers/matching/find-best-matches/handler_test.go
package findbestmatches

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentor-match-workers/internal/common/logger"
	"mentor-match-workers/internal/matching"
)

func newTestHandler() *Handler {
	return NewHandler(&Config{DefaultTopN: 10, PoolCap: 500}, logger.NewNoOpLogger())
}

func testMentee() matching.MenteeProfile {
	mentee := matching.MenteeProfile{ID: "mentee-1"}
	mentee.ProfessionalInfo.Skills = []string{"Go", "SQL"}
	mentee.MentoringNeeds.Budget = matching.BudgetRange{Min: 40, Max: 120}
	return mentee
}

func testMentor(id string, status matching.VerificationStatus) matching.MentorProfile {
	mentor := matching.MentorProfile{ID: id, VerificationStatus: status}
	mentor.ProfessionalInfo.Skills = []string{"Go", "SQL"}
	mentor.MentoringInfo.Pricing.HourlyRate = 80
	return mentor
}

func TestValidateVariables(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{
			name: "minimal valid request",
			raw:  `{"menteeProfile":{"id":"m-1"},"mentorPool":[]}`,
		},
		{
			name:    "missing mentee profile",
			raw:     `{"mentorPool":[]}`,
			wantErr: true,
		},
		{
			name:    "mentee without id",
			raw:     `{"menteeProfile":{},"mentorPool":[]}`,
			wantErr: true,
		},
		{
			name:    "mentor pool not an array",
			raw:     `{"menteeProfile":{"id":"m-1"},"mentorPool":{}}`,
			wantErr: true,
		},
		{
			name: "negative weight accepted, clamped downstream",
			raw:  `{"menteeProfile":{"id":"m-1"},"mentorPool":[],"weights":{"skills":-1}}`,
		},
		{
			name: "weights and topN accepted",
			raw:  `{"menteeProfile":{"id":"m-1"},"mentorPool":[],"weights":{"skills":2,"budget":1},"topN":5}`,
		},
		{
			name:    "topN must be an integer",
			raw:     `{"menteeProfile":{"id":"m-1"},"mentorPool":[],"topN":2.5}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateVariables(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name           string
		input          *Input
		wantErr        bool
		validateOutput func(t *testing.T, output *Output)
	}{
		{
			name: "only verified mentors are eligible",
			input: &Input{
				MenteeProfile: testMentee(),
				MentorPool: []matching.MentorProfile{
					testMentor("mentor-verified", matching.VerificationVerified),
					testMentor("mentor-pending", matching.VerificationPending),
					testMentor("mentor-rejected", matching.VerificationRejected),
					testMentor("mentor-unset", ""),
				},
			},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, 4, output.TotalCandidates)
				assert.Equal(t, 1, output.EligibleCandidates)
				require.Len(t, output.Matches, 1)
				assert.Equal(t, "mentor-verified", output.Matches[0].MentorID)
			},
		},
		{
			name: "empty pool yields empty matches",
			input: &Input{
				MenteeProfile: testMentee(),
			},
			validateOutput: func(t *testing.T, output *Output) {
				assert.NotNil(t, output.Matches)
				assert.Empty(t, output.Matches)
				assert.Zero(t, output.EligibleCandidates)
			},
		},
		{
			name: "topN limits the result",
			input: &Input{
				MenteeProfile: testMentee(),
				MentorPool: []matching.MentorProfile{
					testMentor("mentor-1", matching.VerificationVerified),
					testMentor("mentor-2", matching.VerificationVerified),
					testMentor("mentor-3", matching.VerificationVerified),
				},
				TopN: 2,
			},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Len(t, output.Matches, 2)
			},
		},
		{
			name: "mentee without id is a request error",
			input: &Input{
				MenteeProfile: matching.MenteeProfile{},
				MentorPool: []matching.MentorProfile{
					testMentor("mentor-1", matching.VerificationVerified),
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler()
			output, err := h.Execute(context.Background(), tt.input)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMatchRequestInvalid)
				return
			}
			require.NoError(t, err)
			tt.validateOutput(t, output)
		})
	}
}

func TestHandler_Execute_CustomWeights(t *testing.T) {
	h := newTestHandler()

	skillMentor := testMentor("mentor-skill", matching.VerificationVerified)
	budgetMentor := testMentor("mentor-budget", matching.VerificationVerified)
	budgetMentor.ProfessionalInfo.Skills = []string{"Cobol"}
	skillMentor.MentoringInfo.Pricing.HourlyRate = 900

	input := &Input{
		MenteeProfile: testMentee(),
		MentorPool:    []matching.MentorProfile{skillMentor, budgetMentor},
		Weights:       &matching.WeightVector{Skills: 1},
	}

	output, err := h.Execute(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, output.Matches, 2)

	// With all weight on skills, the skill-aligned mentor wins despite the rate.
	assert.Equal(t, "mentor-skill", output.Matches[0].MentorID)
}

func TestHandler_Execute_NegativeWeightClamped(t *testing.T) {
	h := newTestHandler()

	input := &Input{
		MenteeProfile: testMentee(),
		MentorPool:    []matching.MentorProfile{testMentor("mentor-1", matching.VerificationVerified)},
		Weights:       &matching.WeightVector{Skills: -3, Budget: 1},
	}

	// A negative weight is not a request error; it contributes zero.
	output, err := h.Execute(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, output.Matches, 1)
	assert.GreaterOrEqual(t, output.Matches[0].MatchScore, 0)
}

func TestHandler_Execute_PoolCap(t *testing.T) {
	h := NewHandler(&Config{DefaultTopN: 10, PoolCap: 2}, logger.NewNoOpLogger())

	input := &Input{
		MenteeProfile: testMentee(),
		MentorPool: []matching.MentorProfile{
			testMentor("mentor-1", matching.VerificationVerified),
			testMentor("mentor-2", matching.VerificationVerified),
			testMentor("mentor-3", matching.VerificationVerified),
		},
	}

	output, err := h.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 2, output.EligibleCandidates)
}
