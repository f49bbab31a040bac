// internal/matching/score_test.go
package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pairScore(t *testing.T, mentee *MenteeProfile, mentor *MentorProfile) CompatibilityVector {
	t.Helper()
	nm, err := NormalizeMentee(mentee)
	require.NoError(t, err)
	nr, err := NormalizeMentor(mentor)
	require.NoError(t, err)
	return Score(nm, nr)
}

func baseMentee() *MenteeProfile {
	return &MenteeProfile{ID: "mentee-1"}
}

func baseMentor() *MentorProfile {
	return &MentorProfile{ID: "mentor-1"}
}

func TestScoreSkills(t *testing.T) {
	tests := []struct {
		name            string
		menteeSkills    []string
		mentorSkills    []string
		specializations []string
		expected        float64
	}{
		{
			name:         "no stated skills is neutral",
			menteeSkills: nil,
			mentorSkills: []string{"go", "sql"},
			expected:     0.5,
		},
		{
			name:            "partial coverage counts specializations",
			menteeSkills:    []string{"Go", "Kubernetes", "SQL", "Rust"},
			mentorSkills:    []string{"go", "sql"},
			specializations: []string{"kubernetes"},
			expected:        0.75,
		},
		{
			name:         "full coverage is 1.0 regardless of mentor breadth",
			menteeSkills: []string{"Go"},
			mentorSkills: []string{"go", "java", "python", "rust", "scala"},
			expected:     1.0,
		},
		{
			name:         "no overlap is 0",
			menteeSkills: []string{"haskell"},
			mentorSkills: []string{"go"},
			expected:     0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mentee := baseMentee()
			mentee.ProfessionalInfo.Skills = tt.menteeSkills
			mentor := baseMentor()
			mentor.ProfessionalInfo.Skills = tt.mentorSkills
			mentor.ProfessionalInfo.Specializations = tt.specializations

			c := pairScore(t, mentee, mentor)
			assert.InDelta(t, tt.expected, c.Skills, 1e-9)
		})
	}
}

func TestScoreAvailability(t *testing.T) {
	tests := []struct {
		name     string
		windows  []string
		slots    []AvailabilitySlot
		expected float64
	}{
		{
			name:     "no preference means no constraint",
			windows:  nil,
			slots:    nil,
			expected: 1.0,
		},
		{
			name:    "one of two windows covered",
			windows: []string{"morning", "evening"},
			slots: []AvailabilitySlot{
				{Day: "monday", StartTime: "18:00", EndTime: "21:00"},
			},
			expected: 0.5,
		},
		{
			name:    "overnight slot covers night and morning",
			windows: []string{"night", "morning"},
			slots: []AvailabilitySlot{
				{Day: "friday", StartTime: "22:00", EndTime: "06:00"},
			},
			expected: 1.0,
		},
		{
			name:    "early morning slot still counts as night",
			windows: []string{"night"},
			slots: []AvailabilitySlot{
				{Day: "sunday", StartTime: "02:00", EndTime: "04:00"},
			},
			expected: 1.0,
		},
		{
			name:    "malformed slot contributes nothing",
			windows: []string{"morning"},
			slots: []AvailabilitySlot{
				{Day: "monday", StartTime: "nine", EndTime: "11:00"},
			},
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mentee := baseMentee()
			mentee.LearningPreferences.TimesOfDay = tt.windows
			mentor := baseMentor()
			mentor.MentoringInfo.Availability = tt.slots

			c := pairScore(t, mentee, mentor)
			assert.InDelta(t, tt.expected, c.Availability, 1e-9)
		})
	}
}

func TestScoreCommunication(t *testing.T) {
	tests := []struct {
		name     string
		methods  []string
		expected float64
		channels []string
		actual   float64
		want     float64
	}{
		{
			name: "no communication data is neutral",
			want: 0.5,
		},
		{
			name:     "half channel overlap with fast responder",
			methods:  []string{"video", "email"},
			channels: []string{"email", "chat"},
			expected: 24,
			actual:   12,
			want:     0.75,
		},
		{
			name:     "slow responder decays linearly",
			methods:  []string{"email"},
			channels: []string{"email"},
			expected: 24,
			actual:   48,
			want:     0.75, // channel 1.0, response (72-48)/48 = 0.5
		},
		{
			name:     "response beyond 3x expectation bottoms out",
			methods:  []string{"email"},
			channels: []string{"email"},
			expected: 24,
			actual:   100,
			want:     0.5, // channel 1.0, response 0
		},
		{
			name:     "mentor without response history stays neutral",
			methods:  []string{"email"},
			channels: []string{"email"},
			expected: 24,
			actual:   0,
			want:     0.75, // channel 1.0, response 0.5
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mentee := baseMentee()
			mentee.CommunicationStyle.PreferredMethods = tt.methods
			mentee.CommunicationStyle.ResponseTimeHours = tt.expected
			mentor := baseMentor()
			mentor.MentoringInfo.CommunicationChannels = tt.channels
			mentor.Stats.ResponseTimeHours = tt.actual

			c := pairScore(t, mentee, mentor)
			assert.InDelta(t, tt.want, c.Communication, 1e-9)
		})
	}
}

func TestScoreExperience(t *testing.T) {
	tests := []struct {
		name      string
		menteeLvl ExperienceLevel
		mentorLvl ExperienceLevel
		expected  float64
	}{
		{"same level", ExperienceIntermediate, ExperienceIntermediate, 1.0},
		{"one step apart", ExperienceBeginner, ExperienceIntermediate, 0.75},
		{"two steps apart", ExperienceBeginner, ExperienceAdvanced, 0.5},
		{"three steps floors at zero", ExperienceBeginner, ExperienceExpert, 0.0},
		{"unknown mentee level is neutral", "", ExperienceExpert, 0.5},
		{"unknown mentor level is neutral", ExperienceBeginner, "wizard", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mentee := baseMentee()
			mentee.ProfessionalInfo.ExperienceLevel = tt.menteeLvl
			mentor := baseMentor()
			mentor.MentoringInfo.ExperienceLevel = tt.mentorLvl

			c := pairScore(t, mentee, mentor)
			assert.InDelta(t, tt.expected, c.Experience, 1e-9)
		})
	}
}

func TestScorePersonality(t *testing.T) {
	tests := []struct {
		name     string
		mentee   []string
		mentor   []string
		expected float64
	}{
		{"either side empty is neutral", nil, []string{"patient"}, 0.5},
		{"identical sets", []string{"patient", "direct"}, []string{"Direct", "Patient"}, 1.0},
		{"jaccard overlap", []string{"patient", "direct", "curious"}, []string{"patient", "analytical"}, 0.25},
		{"disjoint sets", []string{"patient"}, []string{"direct"}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mentee := baseMentee()
			mentee.PersonalityTraits = tt.mentee
			mentor := baseMentor()
			mentor.PersonalityTraits = tt.mentor

			c := pairScore(t, mentee, mentor)
			assert.InDelta(t, tt.expected, c.Personality, 1e-9)
		})
	}
}

func TestScoreLearning(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		formats  []string
		expected float64
	}{
		{"no preferred format is neutral", "", []string{"video"}, 0.5},
		{"mentor without formats is neutral", "video", nil, 0.5},
		{"direct match", "video", []string{"in-person", "Video"}, 1.0},
		{"mixed supports everything", "chat", []string{"mixed"}, 1.0},
		{"mismatch scores low", "in-person", []string{"video"}, 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mentee := baseMentee()
			mentee.LearningPreferences.Format = tt.format
			mentor := baseMentor()
			mentor.MentoringInfo.SessionFormats = tt.formats

			c := pairScore(t, mentee, mentor)
			assert.InDelta(t, tt.expected, c.Learning, 1e-9)
		})
	}
}

func TestScoreBudget(t *testing.T) {
	tests := []struct {
		name         string
		budget       BudgetRange
		rate         float64
		freeSessions int
		expected     float64
	}{
		{"rate inside range", BudgetRange{Min: 50, Max: 100}, 80, 0, 1.0},
		{"no budget means no constraint", BudgetRange{}, 500, 0, 1.0},
		{"rate above max decays over twice the max", BudgetRange{Min: 50, Max: 100}, 150, 0, 0.75},
		{"rate far above max floors at zero", BudgetRange{Min: 50, Max: 100}, 400, 0, 0.0},
		{"rate below min decays symmetrically", BudgetRange{Min: 50, Max: 100}, 0, 0, 0.75},
		{"free sessions add a capped bonus", BudgetRange{Min: 50, Max: 100}, 80, 2, 1.0},
		{"free sessions lift a near miss", BudgetRange{Min: 50, Max: 100}, 150, 1, 0.85},
		{"swapped bounds are repaired", BudgetRange{Min: 100, Max: 50}, 80, 0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mentee := baseMentee()
			mentee.MentoringNeeds.Budget = tt.budget
			mentor := baseMentor()
			mentor.MentoringInfo.Pricing = Pricing{HourlyRate: tt.rate, FreeSessions: tt.freeSessions}

			c := pairScore(t, mentee, mentor)
			assert.InDelta(t, tt.expected, c.Budget, 1e-9)
		})
	}
}

func TestScoreLocation(t *testing.T) {
	tests := []struct {
		name         string
		menteeLoc    string
		menteeTZ     string
		mentorLoc    string
		mentorTZ     string
		sessionTypes []string
		expected     float64
	}{
		{
			name:      "same location short-circuits",
			menteeLoc: "Berlin", mentorLoc: "berlin",
			expected: 1.0,
		},
		{
			name:     "same offset different spelling",
			menteeTZ: "UTC+02:00", mentorTZ: "GMT+2",
			expected: 1.0,
		},
		{
			name:     "three hour gap",
			menteeTZ: "UTC+1", mentorTZ: "UTC+4",
			sessionTypes: []string{"in-person"},
			expected:     0.75,
		},
		{
			name:     "antipodal but remote floors at 0.2",
			menteeTZ: "UTC-8", mentorTZ: "UTC+5:30",
			sessionTypes: []string{"video"},
			expected:     0.2,
		},
		{
			name:     "antipodal and strictly in-person",
			menteeTZ: "UTC-8", mentorTZ: "UTC+5:30",
			sessionTypes: []string{"in-person"},
			expected:     0.0,
		},
		{
			name:     "no session types keeps the remote floor",
			menteeTZ: "UTC-8", mentorTZ: "UTC+6",
			expected: 0.2,
		},
		{
			name:     "unparseable timezone is neutral",
			menteeTZ: "somewhere", mentorTZ: "UTC+1",
			expected: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mentee := baseMentee()
			mentee.PersonalInfo.Location = tt.menteeLoc
			mentee.PersonalInfo.Timezone = tt.menteeTZ
			mentee.MentoringNeeds.SessionTypes = tt.sessionTypes
			mentor := baseMentor()
			mentor.PersonalInfo.Location = tt.mentorLoc
			mentor.PersonalInfo.Timezone = tt.mentorTZ

			c := pairScore(t, mentee, mentor)
			assert.InDelta(t, tt.expected, c.Location, 1e-9)
		})
	}
}

func TestScoreBoundsProperty(t *testing.T) {
	// Every factor stays within [0,1] even for adversarial inputs.
	mentee := &MenteeProfile{ID: "m"}
	mentee.ProfessionalInfo.Skills = []string{"go"}
	mentee.CommunicationStyle.ResponseTimeHours = 0.001
	mentee.MentoringNeeds.Budget = BudgetRange{Min: -10, Max: -5}
	mentee.PersonalInfo.Timezone = "UTC+14"

	mentor := &MentorProfile{ID: "x"}
	mentor.Stats.ResponseTimeHours = 10000
	mentor.MentoringInfo.Pricing = Pricing{HourlyRate: 1e9, FreeSessions: 100}
	mentor.PersonalInfo.Timezone = "UTC-12"

	c := pairScore(t, mentee, mentor)
	for i, v := range []float64{
		c.Skills, c.Availability, c.Communication, c.Experience,
		c.Personality, c.Learning, c.Budget, c.Location,
	} {
		assert.GreaterOrEqual(t, v, 0.0, "factor %d below range", i)
		assert.LessOrEqual(t, v, 1.0, "factor %d above range", i)
	}
}
