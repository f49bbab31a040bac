// internal/matching/types.go
package matching

// ExperienceLevel is the ordinal career-stage scale shared by mentees and mentors.
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
	ExperienceExpert       ExperienceLevel = "expert"
)

// Ordinal maps the level onto {0..3}. The second return is false for
// unknown or empty levels.
func (l ExperienceLevel) Ordinal() (int, bool) {
	switch l {
	case ExperienceBeginner:
		return 0, true
	case ExperienceIntermediate:
		return 1, true
	case ExperienceAdvanced:
		return 2, true
	case ExperienceExpert:
		return 3, true
	}
	return 0, false
}

// VerificationStatus tracks a mentor through the verification workflow.
// Only verified mentors should reach the engine; filtering is the caller's job.
type VerificationStatus string

const (
	VerificationPending   VerificationStatus = "pending"
	VerificationVerified  VerificationStatus = "verified"
	VerificationRejected  VerificationStatus = "rejected"
	VerificationSuspended VerificationStatus = "suspended"
)

// Confidence bands a match's reliability.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Factor identifies one of the eight scored compatibility dimensions.
type Factor string

const (
	FactorSkills        Factor = "skills"
	FactorAvailability  Factor = "availability"
	FactorCommunication Factor = "communication"
	FactorExperience    Factor = "experience"
	FactorPersonality   Factor = "personality"
	FactorLearning      Factor = "learning"
	FactorBudget        Factor = "budget"
	FactorLocation      Factor = "location"
)

// Factors is the canonical factor order used for iteration and tie-breaks.
var Factors = [8]Factor{
	FactorSkills,
	FactorAvailability,
	FactorCommunication,
	FactorExperience,
	FactorPersonality,
	FactorLearning,
	FactorBudget,
	FactorLocation,
}

// --- Mentee profile ---

type MenteeProfile struct {
	ID                  string              `json:"id"`
	PersonalInfo        PersonalInfo        `json:"personalInfo"`
	ProfessionalInfo    ProfessionalInfo    `json:"professionalInfo"`
	LearningPreferences LearningPreferences `json:"learningPreferences"`
	MentoringNeeds      MentoringNeeds      `json:"mentoringNeeds"`
	CommunicationStyle  CommunicationStyle  `json:"communicationStyle"`
	PersonalityTraits   []string            `json:"personalityTraits"`
	LearningHistory     LearningHistory     `json:"learningHistory"`
}

type PersonalInfo struct {
	Name     string `json:"name,omitempty"`
	AgeBand  string `json:"ageBand,omitempty"`
	Location string `json:"location,omitempty"`
	Timezone string `json:"timezone,omitempty"` // e.g. "UTC+05:30", "UTC-8"
	Bio      string `json:"bio,omitempty"`
}

type ProfessionalInfo struct {
	Role            string          `json:"role,omitempty"`
	Industry        string          `json:"industry,omitempty"`
	ExperienceLevel ExperienceLevel `json:"experienceLevel,omitempty"`
	Skills          []string        `json:"skills,omitempty"`
	Goals           []string        `json:"goals,omitempty"`
	Interests       []string        `json:"interests,omitempty"`
}

type LearningPreferences struct {
	Pace            string   `json:"pace,omitempty"`
	Format          string   `json:"format,omitempty"` // "video", "in-person", "chat", ...
	TimesOfDay      []string `json:"timesOfDay,omitempty"`
	SessionDuration int      `json:"sessionDuration,omitempty"` // minutes
}

type MentoringNeeds struct {
	FocusAreas       []string    `json:"focusAreas,omitempty"`
	SessionTypes     []string    `json:"sessionTypes,omitempty"` // "video", "in-person", ...
	SessionFrequency string      `json:"sessionFrequency,omitempty"`
	Budget           BudgetRange `json:"budget"`
	WeeklyHours      int         `json:"weeklyHours,omitempty"`
}

type BudgetRange struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency,omitempty"`
}

type CommunicationStyle struct {
	PreferredMethods  []string `json:"preferredMethods,omitempty"`
	ResponseTimeHours float64  `json:"responseTimeHours,omitempty"` // expected upper bound
	Frequency         string   `json:"frequency,omitempty"`
}

type LearningHistory struct {
	CompletedCourses int `json:"completedCourses,omitempty"`
	Projects         int `json:"projects,omitempty"`
	SkillsMastered   int `json:"skillsMastered,omitempty"`
	StreakDays       int `json:"streakDays,omitempty"`
}

// --- Mentor profile ---

type MentorProfile struct {
	ID                 string             `json:"id"`
	PersonalInfo       PersonalInfo       `json:"personalInfo"`
	ProfessionalInfo   MentorProfessional `json:"professionalInfo"`
	MentoringInfo      MentoringInfo      `json:"mentoringInfo"`
	VerificationStatus VerificationStatus `json:"verificationStatus,omitempty"`
	PersonalityTraits  []string           `json:"personalityTraits,omitempty"`
	Stats              MentorStats        `json:"stats"`
}

type MentorProfessional struct {
	Role            string   `json:"role,omitempty"`
	Company         string   `json:"company,omitempty"`
	Industry        string   `json:"industry,omitempty"`
	YearsExperience int      `json:"yearsExperience,omitempty"`
	Skills          []string `json:"skills,omitempty"`
	Specializations []string `json:"specializations,omitempty"`
}

type MentoringInfo struct {
	ExpertiseAreas        []string           `json:"expertiseAreas,omitempty"`
	ExperienceLevel       ExperienceLevel    `json:"experienceLevel,omitempty"`
	Pricing               Pricing            `json:"pricing"`
	Availability          []AvailabilitySlot `json:"availability,omitempty"`
	Languages             []string           `json:"languages,omitempty"`
	SessionFormats        []string           `json:"sessionFormats,omitempty"` // may contain "mixed"
	CommunicationChannels []string           `json:"communicationChannels,omitempty"`
	SessionFrequency      string             `json:"sessionFrequency,omitempty"` // mentor's usual cadence
	SessionDuration       int                `json:"sessionDuration,omitempty"`  // minutes
}

type Pricing struct {
	HourlyRate   float64 `json:"hourlyRate"`
	Currency     string  `json:"currency,omitempty"`
	FreeSessions int     `json:"freeSessions,omitempty"`
}

type AvailabilitySlot struct {
	Day       string `json:"day"`       // "monday".."sunday"
	StartTime string `json:"startTime"` // "HH:MM" 24h
	EndTime   string `json:"endTime"`
}

type MentorStats struct {
	AverageRating     float64 `json:"averageRating"`
	TotalReviews      int     `json:"totalReviews"`
	TotalSessions     int     `json:"totalSessions"`
	CompletionRate    float64 `json:"completionRate"`
	ResponseTimeHours float64 `json:"responseTimeHours"`
}

// --- Weights and results ---

// WeightVector holds the caller-supplied factor weights. Values need not sum
// to 1; negatives are clamped to 0 and the vector is normalized before use.
type WeightVector struct {
	Skills        float64 `json:"skills"`
	Availability  float64 `json:"availability"`
	Communication float64 `json:"communication"`
	Experience    float64 `json:"experience"`
	Personality   float64 `json:"personality"`
	Learning      float64 `json:"learning"`
	Budget        float64 `json:"budget"`
	Location      float64 `json:"location"`
}

// DefaultWeights weighs all eight factors equally.
func DefaultWeights() WeightVector {
	return WeightVector{
		Skills:        1,
		Availability:  1,
		Communication: 1,
		Experience:    1,
		Personality:   1,
		Learning:      1,
		Budget:        1,
		Location:      1,
	}
}

func (w WeightVector) values() [8]float64 {
	return [8]float64{
		w.Skills, w.Availability, w.Communication, w.Experience,
		w.Personality, w.Learning, w.Budget, w.Location,
	}
}

// CompatibilityVector holds the per-factor scores for one (mentee, mentor)
// pair. All values are in [0,1]. Computed per request, never persisted.
type CompatibilityVector struct {
	Skills        float64 `json:"skills"`
	Availability  float64 `json:"availability"`
	Communication float64 `json:"communication"`
	Experience    float64 `json:"experience"`
	Personality   float64 `json:"personality"`
	Learning      float64 `json:"learning"`
	Budget        float64 `json:"budget"`
	Location      float64 `json:"location"`
}

func (c CompatibilityVector) values() [8]float64 {
	return [8]float64{
		c.Skills, c.Availability, c.Communication, c.Experience,
		c.Personality, c.Learning, c.Budget, c.Location,
	}
}

// Get returns the score for a named factor.
func (c CompatibilityVector) Get(f Factor) float64 {
	for i, name := range Factors {
		if name == f {
			return c.values()[i]
		}
	}
	return 0
}

// WeakCount counts factors scoring below the given threshold.
func (c CompatibilityVector) WeakCount(threshold float64) int {
	n := 0
	for _, v := range c.values() {
		if v < threshold {
			n++
		}
	}
	return n
}

// Recommendations is the engagement plan attached to a match.
type Recommendations struct {
	SessionFrequency      string   `json:"sessionFrequency"`
	SessionDuration       int      `json:"sessionDuration"`
	FocusAreas            []string `json:"focusAreas"`
	CommunicationStrategy string   `json:"communicationStrategy"`
}

// MatchResult is one ranked candidate. Immutable once returned; it has no
// identity beyond the request that produced it.
type MatchResult struct {
	MentorID            string              `json:"mentorId"`
	MatchScore          int                 `json:"matchScore"` // 0-100
	Compatibility       CompatibilityVector `json:"compatibility"`
	Confidence          Confidence          `json:"confidence"`
	MatchReasons        []string            `json:"matchReasons"`
	Recommendations     Recommendations     `json:"recommendations"`
	PotentialChallenges []string            `json:"potentialChallenges"`
}
