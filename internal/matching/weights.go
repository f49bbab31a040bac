// internal/matching/weights.go
package matching

import "math"

// Normalized clamps negative weights to 0 and scales the vector to sum to 1.
// A degenerate vector (all zero after clamping) falls back to uniform 1/8
// weighting; that is documented behavior, not an error.
func (w WeightVector) Normalized() [8]float64 {
	values := w.values()

	sum := 0.0
	for i, v := range values {
		if v < 0 {
			values[i] = 0
			continue
		}
		sum += v
	}

	if sum == 0 {
		for i := range values {
			values[i] = 1.0 / 8.0
		}
		return values
	}

	for i := range values {
		values[i] /= sum
	}
	return values
}

// AggregateScore folds a compatibility vector into the 0-100 match score
// using the normalized weights. Deterministic and order-independent.
func AggregateScore(w WeightVector, c CompatibilityVector) int {
	weights := w.Normalized()
	scores := c.values()

	total := 0.0
	for i := range weights {
		total += weights[i] * scores[i]
	}

	return int(math.Round(100 * total))
}
