// internal/matching/explain_test.go
package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExplainReasons(t *testing.T) {
	mentee := baseMentee()
	mentee.ProfessionalInfo.Skills = []string{"Go", "SQL"}
	mentee.LearningPreferences.Format = "video"

	mentor := baseMentor()
	mentor.ProfessionalInfo.Skills = []string{"Go", "SQL"}
	mentor.MentoringInfo.SessionFormats = []string{"video"}
	mentor.MentoringInfo.ExperienceLevel = ExperienceExpert

	t.Run("caps at three reasons, strongest first", func(t *testing.T) {
		c := CompatibilityVector{
			Skills: 1.0, Availability: 0.9, Communication: 0.8, Experience: 0.85,
			Personality: 0.5, Learning: 1.0, Budget: 0.5, Location: 0.5,
		}
		reasons, _, _ := Explain(mentee, mentor, c)

		assert.Len(t, reasons, 3)
		assert.Contains(t, reasons[0], "skills")
	})

	t.Run("no factor above threshold yields no reasons", func(t *testing.T) {
		c := CompatibilityVector{
			Skills: 0.7, Availability: 0.7, Communication: 0.7, Experience: 0.7,
			Personality: 0.7, Learning: 0.7, Budget: 0.7, Location: 0.7,
		}
		reasons, _, _ := Explain(mentee, mentor, c)
		assert.Empty(t, reasons)
	})

	t.Run("threshold of 0.75 is inclusive", func(t *testing.T) {
		c := CompatibilityVector{Skills: 0.75}
		reasons, _, _ := Explain(mentee, mentor, c)
		assert.Len(t, reasons, 1)
	})
}

func TestExplainChallenges(t *testing.T) {
	mentee := baseMentee()
	mentee.LearningPreferences.Format = "in-person"
	mentee.MentoringNeeds.Budget = BudgetRange{Min: 20, Max: 50}

	mentor := baseMentor()
	mentor.MentoringInfo.Pricing.HourlyRate = 200

	t.Run("weak factors sorted worst first", func(t *testing.T) {
		c := CompatibilityVector{
			Skills: 0.8, Availability: 0.9, Communication: 0.9, Experience: 0.9,
			Personality: 0.9, Learning: 0.3, Budget: 0.1, Location: 0.9,
		}
		_, _, challenges := Explain(mentee, mentor, c)

		assert.Len(t, challenges, 2)
		assert.Contains(t, challenges[0], "budget")
		assert.Contains(t, challenges[1], "in-person")
	})

	t.Run("factor at the threshold is not a challenge", func(t *testing.T) {
		c := CompatibilityVector{
			Skills: 0.4, Availability: 0.4, Communication: 0.4, Experience: 0.4,
			Personality: 0.4, Learning: 0.4, Budget: 0.4, Location: 0.4,
		}
		_, _, challenges := Explain(mentee, mentor, c)
		assert.Empty(t, challenges)
	})
}

func TestBuildRecommendations(t *testing.T) {
	t.Run("mentee cadence wins when availability fits", func(t *testing.T) {
		mentee := baseMentee()
		mentee.MentoringNeeds.SessionFrequency = "weekly"
		mentee.LearningPreferences.SessionDuration = 45
		mentee.ProfessionalInfo.Goals = []string{"System Design", "Leadership"}
		mentee.CommunicationStyle.PreferredMethods = []string{"video"}

		mentor := baseMentor()
		mentor.MentoringInfo.SessionFrequency = "monthly"
		mentor.MentoringInfo.SessionDuration = 90
		mentor.MentoringInfo.ExpertiseAreas = []string{"system design", "databases"}

		_, recs, _ := Explain(mentee, mentor, CompatibilityVector{Availability: 0.8})

		assert.Equal(t, "weekly", recs.SessionFrequency)
		assert.Equal(t, 45, recs.SessionDuration)
		assert.Equal(t, []string{"System Design"}, recs.FocusAreas)
		assert.Contains(t, recs.CommunicationStrategy, "video")
	})

	t.Run("mentor rhythm wins when availability is poor", func(t *testing.T) {
		mentee := baseMentee()
		mentee.MentoringNeeds.SessionFrequency = "weekly"
		mentee.LearningPreferences.SessionDuration = 45

		mentor := baseMentor()
		mentor.MentoringInfo.SessionFrequency = "monthly"
		mentor.MentoringInfo.SessionDuration = 90

		_, recs, _ := Explain(mentee, mentor, CompatibilityVector{Availability: 0.2})

		assert.Equal(t, "monthly", recs.SessionFrequency)
		assert.Equal(t, 90, recs.SessionDuration)
	})

	t.Run("defaults cover missing data", func(t *testing.T) {
		mentor := baseMentor()
		mentor.MentoringInfo.ExpertiseAreas = []string{"a", "b", "c", "d"}

		_, recs, _ := Explain(baseMentee(), mentor, CompatibilityVector{Availability: 1})

		assert.Equal(t, "biweekly", recs.SessionFrequency)
		assert.Equal(t, 60, recs.SessionDuration)
		assert.Equal(t, []string{"a", "b", "c"}, recs.FocusAreas)
		assert.Contains(t, recs.CommunicationStrategy, "asynchronous messages")
	})
}

func TestResponseBand(t *testing.T) {
	tests := []struct {
		hours    float64
		expected string
	}{
		{0, "at an unconfirmed pace"},
		{1.5, "within a couple of hours"},
		{8, "within 8 hours"},
		{20, "within a day"},
		{72, "within 3 days"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, responseBand(tt.hours))
	}
}
