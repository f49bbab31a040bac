// internal/matching/normalize.go
package matching

import (
	"math"
	"strings"
)

// NormalizeMentee returns a copy of the profile with every field the scorer
// depends on defined: string sets are deduplicated, ranges are clamped, and a
// missing budget becomes {0, +inf} (no constraint). Missing optional data is
// never an error; a missing id is.
func NormalizeMentee(p *MenteeProfile) (*MenteeProfile, error) {
	if p == nil || strings.TrimSpace(p.ID) == "" {
		return nil, missingID("mentee.id")
	}

	out := *p
	out.ID = strings.TrimSpace(p.ID)
	out.ProfessionalInfo.Skills = normalizeSet(p.ProfessionalInfo.Skills)
	out.ProfessionalInfo.Goals = normalizeSet(p.ProfessionalInfo.Goals)
	out.ProfessionalInfo.Interests = normalizeSet(p.ProfessionalInfo.Interests)
	out.PersonalityTraits = normalizeSet(p.PersonalityTraits)
	out.MentoringNeeds.FocusAreas = normalizeSet(p.MentoringNeeds.FocusAreas)
	out.MentoringNeeds.SessionTypes = normalizeSet(p.MentoringNeeds.SessionTypes)
	out.LearningPreferences.TimesOfDay = normalizeSet(p.LearningPreferences.TimesOfDay)
	out.CommunicationStyle.PreferredMethods = normalizeSet(p.CommunicationStyle.PreferredMethods)

	out.MentoringNeeds.Budget = normalizeBudget(p.MentoringNeeds.Budget)
	out.CommunicationStyle.ResponseTimeHours = math.Max(p.CommunicationStyle.ResponseTimeHours, 0)
	out.LearningPreferences.SessionDuration = clampInt(p.LearningPreferences.SessionDuration, 0, 24*60)
	out.MentoringNeeds.WeeklyHours = clampInt(p.MentoringNeeds.WeeklyHours, 0, 7*24)

	return &out, nil
}

// NormalizeMentor mirrors NormalizeMentee for the mentor side. Missing
// availability becomes an empty slot set; stats are clamped to sane ranges.
func NormalizeMentor(p *MentorProfile) (*MentorProfile, error) {
	if p == nil || strings.TrimSpace(p.ID) == "" {
		return nil, missingID("mentor.id")
	}

	out := *p
	out.ID = strings.TrimSpace(p.ID)
	out.ProfessionalInfo.Skills = normalizeSet(p.ProfessionalInfo.Skills)
	out.ProfessionalInfo.Specializations = normalizeSet(p.ProfessionalInfo.Specializations)
	out.ProfessionalInfo.YearsExperience = clampInt(p.ProfessionalInfo.YearsExperience, 0, 80)
	out.MentoringInfo.ExpertiseAreas = normalizeSet(p.MentoringInfo.ExpertiseAreas)
	out.MentoringInfo.Languages = normalizeSet(p.MentoringInfo.Languages)
	out.MentoringInfo.SessionFormats = normalizeSet(p.MentoringInfo.SessionFormats)
	out.MentoringInfo.CommunicationChannels = normalizeSet(p.MentoringInfo.CommunicationChannels)
	out.PersonalityTraits = normalizeSet(p.PersonalityTraits)

	if out.MentoringInfo.Availability == nil {
		out.MentoringInfo.Availability = []AvailabilitySlot{}
	}
	if out.MentoringInfo.Pricing.HourlyRate < 0 {
		out.MentoringInfo.Pricing.HourlyRate = 0
	}
	if out.MentoringInfo.Pricing.FreeSessions < 0 {
		out.MentoringInfo.Pricing.FreeSessions = 0
	}

	out.Stats.AverageRating = clampFloat(p.Stats.AverageRating, 0, 5)
	out.Stats.CompletionRate = clampFloat(p.Stats.CompletionRate, 0, 1)
	out.Stats.ResponseTimeHours = math.Max(p.Stats.ResponseTimeHours, 0)
	if out.Stats.TotalSessions < 0 {
		out.Stats.TotalSessions = 0
	}
	if out.Stats.TotalReviews < 0 {
		out.Stats.TotalReviews = 0
	}

	return &out, nil
}

// normalizeBudget clamps negatives to zero and treats an unset max as
// unbounded. A min above max is resolved by swapping the two.
func normalizeBudget(b BudgetRange) BudgetRange {
	out := b
	if out.Min < 0 {
		out.Min = 0
	}
	if out.Max <= 0 {
		out.Max = math.Inf(1)
	}
	if out.Min > out.Max {
		out.Min, out.Max = out.Max, out.Min
	}
	return out
}

// normalizeSet trims entries, drops empties, and removes case-insensitive
// duplicates while preserving the first-seen casing and order.
func normalizeSet(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		key := strings.ToLower(item)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}

func lowerSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[strings.ToLower(item)] = true
	}
	return set
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

func clampFloat(v, minV, maxV float64) float64 {
	return math.Min(math.Max(v, minV), maxV)
}
