// internal/matching/confidence.go
package matching

// weakFactorThreshold marks an individual factor as a weak link. The high
// band requires both a strong aggregate and no weak link, so one
// catastrophic mismatch can never hide behind a high overall score.
const weakFactorThreshold = 0.4

// ClassifyConfidence bands a match by aggregate score and factor spread.
func ClassifyConfidence(matchScore int, c CompatibilityVector) Confidence {
	weak := c.WeakCount(weakFactorThreshold)

	switch {
	case matchScore >= 80 && weak == 0:
		return ConfidenceHigh
	case matchScore >= 80 && weak <= 1:
		return ConfidenceMedium
	case matchScore >= 60:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
