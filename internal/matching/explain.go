// internal/matching/explain.go
package matching

import (
	"fmt"
	"sort"
	"strings"
)

const (
	reasonThreshold = 0.75
	maxReasons      = 3
)

// Explain derives the human-readable annotations for one ranked candidate:
// ordered match reasons, an engagement plan, and potential friction points.
func Explain(mentee *MenteeProfile, mentor *MentorProfile, c CompatibilityVector) ([]string, Recommendations, []string) {
	reasons := matchReasons(mentee, mentor, c)
	challenges := potentialChallenges(mentee, mentor, c)
	recs := buildRecommendations(mentee, mentor, c)
	return reasons, recs, challenges
}

type factorScore struct {
	factor Factor
	order  int // canonical position, for deterministic ties
	score  float64
}

func rankedFactors(c CompatibilityVector) []factorScore {
	values := c.values()
	out := make([]factorScore, len(Factors))
	for i, f := range Factors {
		out[i] = factorScore{factor: f, order: i, score: values[i]}
	}
	return out
}

// matchReasons emits one sentence per factor scoring at least 0.75, strongest
// first, truncated to the top three.
func matchReasons(mentee *MenteeProfile, mentor *MentorProfile, c CompatibilityVector) []string {
	factors := rankedFactors(c)
	sort.SliceStable(factors, func(i, j int) bool {
		if factors[i].score != factors[j].score {
			return factors[i].score > factors[j].score
		}
		return factors[i].order < factors[j].order
	})

	reasons := make([]string, 0, maxReasons)
	for _, fs := range factors {
		if fs.score < reasonThreshold {
			break
		}
		if r := reasonFor(fs.factor, mentee, mentor); r != "" {
			reasons = append(reasons, r)
		}
		if len(reasons) == maxReasons {
			break
		}
	}
	return reasons
}

// potentialChallenges emits one cautionary sentence per factor below the
// weak-link threshold, worst first.
func potentialChallenges(mentee *MenteeProfile, mentor *MentorProfile, c CompatibilityVector) []string {
	factors := rankedFactors(c)
	sort.SliceStable(factors, func(i, j int) bool {
		if factors[i].score != factors[j].score {
			return factors[i].score < factors[j].score
		}
		return factors[i].order < factors[j].order
	})

	var challenges []string
	for _, fs := range factors {
		if fs.score >= weakFactorThreshold {
			break
		}
		if ch := challengeFor(fs.factor, mentee, mentor); ch != "" {
			challenges = append(challenges, ch)
		}
	}
	return challenges
}

func reasonFor(f Factor, mentee *MenteeProfile, mentor *MentorProfile) string {
	switch f {
	case FactorSkills:
		shared := intersect(mentee.ProfessionalInfo.Skills,
			append(append([]string{}, mentor.ProfessionalInfo.Skills...), mentor.ProfessionalInfo.Specializations...))
		if len(shared) == 0 {
			return "Covers the skills you want to develop"
		}
		return fmt.Sprintf("Covers the skills you want to develop: %s", joinTop(shared, 4))
	case FactorAvailability:
		return "Open mentoring slots line up with your preferred times"
	case FactorCommunication:
		methods := mentee.CommunicationStyle.PreferredMethods
		if len(methods) > 0 {
			return fmt.Sprintf("Reachable over %s and typically replies %s",
				joinTop(methods, 2), responseBand(mentor.Stats.ResponseTimeHours))
		}
		return fmt.Sprintf("Typically replies %s", responseBand(mentor.Stats.ResponseTimeHours))
	case FactorExperience:
		return fmt.Sprintf("Mentoring level (%s) sits close to your current stage",
			mentor.MentoringInfo.ExperienceLevel)
	case FactorPersonality:
		shared := intersect(mentee.PersonalityTraits, mentor.PersonalityTraits)
		if len(shared) == 0 {
			return "Personality profile is a close fit"
		}
		return fmt.Sprintf("You share personality traits: %s", joinTop(shared, 3))
	case FactorLearning:
		return fmt.Sprintf("Supports your preferred %s session format",
			mentee.LearningPreferences.Format)
	case FactorBudget:
		rate := mentor.MentoringInfo.Pricing.HourlyRate
		if mentor.MentoringInfo.Pricing.FreeSessions > 0 {
			return fmt.Sprintf("Rate of %.0f/hr fits your budget, with %d free intro session(s)",
				rate, mentor.MentoringInfo.Pricing.FreeSessions)
		}
		return fmt.Sprintf("Rate of %.0f/hr fits your budget", rate)
	case FactorLocation:
		if loc := mentor.PersonalInfo.Location; loc != "" {
			return fmt.Sprintf("Based in %s, in a compatible timezone", loc)
		}
		return "Works in a compatible timezone"
	}
	return ""
}

func challengeFor(f Factor, mentee *MenteeProfile, mentor *MentorProfile) string {
	switch f {
	case FactorSkills:
		return "Limited overlap with the skills you listed"
	case FactorAvailability:
		return "Few open slots match your preferred times; expect scheduling friction"
	case FactorCommunication:
		return fmt.Sprintf("Response time (typically %s) may be slower than you expect",
			responseBand(mentor.Stats.ResponseTimeHours))
	case FactorExperience:
		return fmt.Sprintf("Experience gap: mentor operates at the %s level",
			mentor.MentoringInfo.ExperienceLevel)
	case FactorPersonality:
		return "Few shared personality traits; working styles may differ"
	case FactorLearning:
		return fmt.Sprintf("Does not list your preferred %s format",
			mentee.LearningPreferences.Format)
	case FactorBudget:
		rate := mentor.MentoringInfo.Pricing.HourlyRate
		budget := mentee.MentoringNeeds.Budget
		if rate > budget.Max {
			return fmt.Sprintf("Rate of %.0f/hr is above your budget ceiling of %.0f", rate, budget.Max)
		}
		return fmt.Sprintf("Rate of %.0f/hr falls outside your stated budget", rate)
	case FactorLocation:
		return "Large timezone gap may complicate live sessions"
	}
	return ""
}

// buildRecommendations assembles the engagement plan. Cadence and duration
// come from the mentee when availability fits, otherwise from the mentor's
// usual rhythm; focus areas come from the goal/expertise intersection with
// the mentor's leading expertise areas as fallback.
func buildRecommendations(mentee *MenteeProfile, mentor *MentorProfile, c CompatibilityVector) Recommendations {
	frequency := mentee.MentoringNeeds.SessionFrequency
	duration := mentee.LearningPreferences.SessionDuration
	if c.Availability < 0.6 {
		if mentor.MentoringInfo.SessionFrequency != "" {
			frequency = mentor.MentoringInfo.SessionFrequency
		}
		if mentor.MentoringInfo.SessionDuration > 0 {
			duration = mentor.MentoringInfo.SessionDuration
		}
	}
	if frequency == "" {
		frequency = "biweekly"
	}
	if duration <= 0 {
		duration = 60
	}

	focus := intersect(mentee.ProfessionalInfo.Goals, mentor.MentoringInfo.ExpertiseAreas)
	if len(focus) == 0 {
		focus = topN(mentor.MentoringInfo.ExpertiseAreas, 3)
	}

	method := "asynchronous messages"
	if len(mentee.CommunicationStyle.PreferredMethods) > 0 {
		method = mentee.CommunicationStyle.PreferredMethods[0]
	}
	strategy := fmt.Sprintf("Start with %s; the mentor typically replies %s",
		method, responseBand(mentor.Stats.ResponseTimeHours))

	return Recommendations{
		SessionFrequency:      frequency,
		SessionDuration:       duration,
		FocusAreas:            focus,
		CommunicationStrategy: strategy,
	}
}

// responseBand renders a mentor's historical response time as a rough band.
func responseBand(hours float64) string {
	switch {
	case hours <= 0:
		return "at an unconfirmed pace"
	case hours <= 2:
		return "within a couple of hours"
	case hours <= 12:
		return fmt.Sprintf("within %.0f hours", hours)
	case hours <= 24:
		return "within a day"
	default:
		return fmt.Sprintf("within %.0f days", hours/24)
	}
}

// intersect keeps entries of a that appear (case-insensitively) in b,
// preserving a's order.
func intersect(a, b []string) []string {
	bSet := lowerSet(b)
	var out []string
	for _, item := range a {
		if bSet[strings.ToLower(item)] {
			out = append(out, item)
		}
	}
	return out
}

func topN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

func joinTop(items []string, n int) string {
	return strings.Join(topN(items, n), ", ")
}
