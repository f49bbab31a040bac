// internal/matching/score.go
package matching

import (
	"math"
	"strconv"
	"strings"
)

// Each factor function is pure and returns a value in [0,1]. A factor whose
// required mentee input is entirely absent returns a neutral 0.5 so that
// absence of preference never penalizes a mentor.
const neutralScore = 0.5

// Score computes the full eight-factor compatibility vector for one
// (mentee, mentor) pair. Both profiles must already be normalized.
func Score(mentee *MenteeProfile, mentor *MentorProfile) CompatibilityVector {
	return CompatibilityVector{
		Skills:        scoreSkills(mentee, mentor),
		Availability:  scoreAvailability(mentee, mentor),
		Communication: scoreCommunication(mentee, mentor),
		Experience:    scoreExperience(mentee, mentor),
		Personality:   scorePersonality(mentee, mentor),
		Learning:      scoreLearning(mentee, mentor),
		Budget:        scoreBudget(mentee, mentor),
		Location:      scoreLocation(mentee, mentor),
	}
}

// scoreSkills is recall-oriented: it rewards mentors covering the mentee's
// stated skills regardless of the mentor's unrelated breadth.
func scoreSkills(mentee *MenteeProfile, mentor *MentorProfile) float64 {
	wanted := mentee.ProfessionalInfo.Skills
	if len(wanted) == 0 {
		return neutralScore
	}

	offered := lowerSet(mentor.ProfessionalInfo.Skills)
	for _, s := range mentor.ProfessionalInfo.Specializations {
		offered[strings.ToLower(s)] = true
	}

	covered := 0
	for _, s := range wanted {
		if offered[strings.ToLower(s)] {
			covered++
		}
	}

	return math.Min(float64(covered)/float64(len(wanted)), 1.0)
}

// scoreAvailability is the fraction of the mentee's preferred time-of-day
// windows that intersect at least one mentor slot. No stated preference means
// no constraint.
func scoreAvailability(mentee *MenteeProfile, mentor *MentorProfile) float64 {
	windows := mentee.LearningPreferences.TimesOfDay
	if len(windows) == 0 {
		return 1.0
	}

	open := make(map[string]bool)
	for _, slot := range mentor.MentoringInfo.Availability {
		for _, bucket := range slotBuckets(slot) {
			open[bucket] = true
		}
	}

	covered := 0
	for _, w := range windows {
		if open[strings.ToLower(w)] {
			covered++
		}
	}

	return float64(covered) / float64(len(windows))
}

// scoreCommunication averages channel overlap with a response-time fit. The
// response component is 1.0 when the mentor's historical response time meets
// the mentee's expected bound, degrading linearly to 0 at 3x the bound.
func scoreCommunication(mentee *MenteeProfile, mentor *MentorProfile) float64 {
	methods := mentee.CommunicationStyle.PreferredMethods
	expected := mentee.CommunicationStyle.ResponseTimeHours

	if len(methods) == 0 && expected <= 0 {
		return neutralScore
	}

	channelScore := neutralScore
	if len(methods) > 0 {
		supported := lowerSet(mentor.MentoringInfo.CommunicationChannels)
		overlap := 0
		for _, m := range methods {
			if supported[strings.ToLower(m)] {
				overlap++
			}
		}
		channelScore = float64(overlap) / float64(len(methods))
	}

	responseScore := neutralScore
	if expected > 0 {
		actual := mentor.Stats.ResponseTimeHours
		switch {
		case actual <= 0:
			// No response history yet; stay neutral.
			responseScore = neutralScore
		case actual <= expected:
			responseScore = 1.0
		default:
			responseScore = math.Max((3*expected-actual)/(2*expected), 0)
		}
	}

	return (channelScore + responseScore) / 2
}

// scoreExperience maps the ordinal distance between the two experience
// levels: each step costs 0.25, and three or more steps floor at 0.
func scoreExperience(mentee *MenteeProfile, mentor *MentorProfile) float64 {
	menteeLvl, ok := mentee.ProfessionalInfo.ExperienceLevel.Ordinal()
	if !ok {
		return neutralScore
	}
	mentorLvl, ok := mentor.MentoringInfo.ExperienceLevel.Ordinal()
	if !ok {
		return neutralScore
	}

	dist := menteeLvl - mentorLvl
	if dist < 0 {
		dist = -dist
	}
	if dist >= 3 {
		return 0
	}
	return 1.0 - 0.25*float64(dist)
}

// scorePersonality is the Jaccard similarity of the two trait sets, neutral
// when either side has no trait data.
func scorePersonality(mentee *MenteeProfile, mentor *MentorProfile) float64 {
	a := mentee.PersonalityTraits
	b := mentor.PersonalityTraits
	if len(a) == 0 || len(b) == 0 {
		return neutralScore
	}

	bSet := lowerSet(b)
	shared := 0
	for _, t := range a {
		if bSet[strings.ToLower(t)] {
			shared++
		}
	}

	union := len(a) + len(b) - shared
	if union == 0 {
		return neutralScore
	}
	return float64(shared) / float64(union)
}

// scoreLearning is 1.0 when the mentor supports the mentee's preferred
// session format (or declares "mixed"), else 0.3.
func scoreLearning(mentee *MenteeProfile, mentor *MentorProfile) float64 {
	format := strings.ToLower(mentee.LearningPreferences.Format)
	if format == "" {
		return neutralScore
	}

	formats := mentor.MentoringInfo.SessionFormats
	if len(formats) == 0 {
		return neutralScore
	}
	for _, f := range formats {
		f = strings.ToLower(f)
		if f == format || f == "mixed" {
			return 1.0
		}
	}
	return 0.3
}

// scoreBudget is 1.0 when the hourly rate falls inside the mentee's budget,
// decaying linearly to 0 as the rate drifts past either bound by twice the
// budget max. Mentors offering free intro sessions get a +0.1 bonus.
func scoreBudget(mentee *MenteeProfile, mentor *MentorProfile) float64 {
	budget := mentee.MentoringNeeds.Budget
	rate := mentor.MentoringInfo.Pricing.HourlyRate

	var score float64
	switch {
	case rate >= budget.Min && rate <= budget.Max:
		score = 1.0
	case math.IsInf(budget.Max, 1):
		// Unbounded budget: only a below-min rate is possible here, and a
		// cheaper-than-expected mentor is not a mismatch.
		score = 1.0
	default:
		span := 2 * budget.Max
		if span <= 0 {
			score = 0
		} else if rate > budget.Max {
			score = math.Max(1.0-(rate-budget.Max)/span, 0)
		} else {
			score = math.Max(1.0-(budget.Min-rate)/span, 0)
		}
	}

	if mentor.MentoringInfo.Pricing.FreeSessions > 0 {
		score = math.Min(score+0.1, 1.0)
	}
	return score
}

// scoreLocation is 1.0 for the same region or timezone bucket, otherwise a
// decay by timezone-offset magnitude. When the mentee requests remote-style
// sessions the score floors at 0.2, since remote sessions stay viable.
func scoreLocation(mentee *MenteeProfile, mentor *MentorProfile) float64 {
	menteeLoc := strings.ToLower(strings.TrimSpace(mentee.PersonalInfo.Location))
	mentorLoc := strings.ToLower(strings.TrimSpace(mentor.PersonalInfo.Location))
	if menteeLoc != "" && menteeLoc == mentorLoc {
		return 1.0
	}

	menteeOff, okA := parseUTCOffset(mentee.PersonalInfo.Timezone)
	mentorOff, okB := parseUTCOffset(mentor.PersonalInfo.Timezone)
	if !okA {
		return neutralScore
	}
	if !okB {
		return neutralScore
	}

	diff := math.Abs(menteeOff - mentorOff)
	if diff == 0 {
		return 1.0
	}

	score := 1.0 - diff/12.0
	floor := 0.0
	if wantsRemote(mentee.MentoringNeeds.SessionTypes) {
		floor = 0.2
	}
	return math.Max(score, floor)
}

var remoteSessionTypes = map[string]bool{
	"remote":  true,
	"video":   true,
	"online":  true,
	"virtual": true,
	"chat":    true,
}

func wantsRemote(sessionTypes []string) bool {
	// No stated session types leaves remote on the table.
	if len(sessionTypes) == 0 {
		return true
	}
	for _, t := range sessionTypes {
		if remoteSessionTypes[strings.ToLower(t)] {
			return true
		}
	}
	return false
}

// parseUTCOffset reads offsets like "UTC+05:30", "GMT-8" or "+02:00" into
// fractional hours.
func parseUTCOffset(tz string) (float64, bool) {
	tz = strings.ToUpper(strings.TrimSpace(tz))
	if tz == "" {
		return 0, false
	}
	tz = strings.TrimPrefix(tz, "UTC")
	tz = strings.TrimPrefix(tz, "GMT")
	if tz == "" || tz == "Z" {
		return 0, true
	}

	sign := 1.0
	switch tz[0] {
	case '+':
		tz = tz[1:]
	case '-':
		sign = -1.0
		tz = tz[1:]
	default:
		return 0, false
	}

	hoursPart := tz
	minutes := 0.0
	if idx := strings.IndexByte(tz, ':'); idx >= 0 {
		hoursPart = tz[:idx]
		m, err := strconv.Atoi(tz[idx+1:])
		if err != nil || m < 0 || m >= 60 {
			return 0, false
		}
		minutes = float64(m)
	}

	h, err := strconv.Atoi(hoursPart)
	if err != nil || h < 0 || h > 14 {
		return 0, false
	}

	return sign * (float64(h) + minutes/60), true
}

// --- time-of-day bucketing ---

// bucketRange is [start, end) in hours; night wraps midnight.
var bucketRanges = map[string][2]int{
	"morning":   {5, 12},
	"afternoon": {12, 17},
	"evening":   {17, 22},
	"night":     {22, 29}, // 22:00-05:00, hours past 24 wrap
}

// slotBuckets maps a mentor availability slot onto the time-of-day buckets it
// overlaps. Malformed slots map to nothing.
func slotBuckets(slot AvailabilitySlot) []string {
	start, okS := parseHour(slot.StartTime)
	end, okE := parseHour(slot.EndTime)
	if !okS || !okE {
		return nil
	}
	if end <= start {
		end += 24 // overnight slot
	}

	var buckets []string
	for name, r := range bucketRanges {
		b0, b1 := float64(r[0]), float64(r[1])
		// Both slot and bucket may wrap midnight, so compare each against
		// the other shifted by a day.
		if rangesOverlap(start, end, b0, b1) ||
			rangesOverlap(start+24, end+24, b0, b1) ||
			rangesOverlap(start, end, b0+24, b1+24) {
			buckets = append(buckets, name)
		}
	}
	return buckets
}

func rangesOverlap(aStart, aEnd, bStart, bEnd float64) bool {
	return aStart < bEnd && bStart < aEnd
}

func parseHour(hhmm string) (float64, bool) {
	parts := strings.SplitN(strings.TrimSpace(hhmm), ":", 2)
	if len(parts) == 0 || parts[0] == "" {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m := 0
	if len(parts) == 2 {
		m, err = strconv.Atoi(parts[1])
		if err != nil || m < 0 || m > 59 {
			return 0, false
		}
	}
	return float64(h) + float64(m)/60, true
}
