// internal/matching/confidence_test.go
package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyConfidence(t *testing.T) {
	strong := CompatibilityVector{
		Skills: 0.9, Availability: 0.8, Communication: 0.9, Experience: 1,
		Personality: 0.7, Learning: 1, Budget: 0.9, Location: 0.8,
	}
	oneWeak := strong
	oneWeak.Location = 0.1
	twoWeak := oneWeak
	twoWeak.Budget = 0.2

	tests := []struct {
		name     string
		score    int
		vector   CompatibilityVector
		expected Confidence
	}{
		{"high score with no weak factor", 85, strong, ConfidenceHigh},
		{"high score with one weak factor", 85, oneWeak, ConfidenceMedium},
		{"high score with two weak factors", 85, twoWeak, ConfidenceMedium},
		{"mid score regardless of spread", 65, twoWeak, ConfidenceMedium},
		{"boundary at 80", 80, strong, ConfidenceHigh},
		{"boundary at 60", 60, strong, ConfidenceMedium},
		{"below 60 is low", 59, strong, ConfidenceLow},
		{"weak factor at exactly 0.4 does not count", 85, withFactor(strong, 0.4), ConfidenceHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyConfidence(tt.score, tt.vector))
		})
	}
}

func withFactor(c CompatibilityVector, v float64) CompatibilityVector {
	c.Personality = v
	return c
}
