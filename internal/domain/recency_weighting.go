package domain

import (
	"math"
	"time"
)

// TimestampedVector pairs a review-embedding vector with the time the
// underlying rating was made.
type TimestampedVector struct {
	Vector  []float32
	RatedAt time.Time
}

// RecencyWeightedVector averages vectors with exponential decay so that a
// reader's recent ratings dominate their taste vector. Each vector's weight
// is exp(-lambda * days_ago) with lambda = ln(2) / halfLifeDays.
//
// Returns nil if vectors is empty or all weights sum to zero.
func RecencyWeightedVector(
	vectors []TimestampedVector,
	halfLifeDays float64,
	now time.Time,
) []float32 {
	if len(vectors) == 0 {
		return nil
	}

	lambda := math.Ln2 / halfLifeDays

	var weightedSum []float32
	var totalWeight float64

	for _, v := range vectors {
		daysSinceRating := now.Sub(v.RatedAt).Hours() / 24
		weight := math.Exp(-lambda * daysSinceRating)

		if weightedSum == nil {
			weightedSum = make([]float32, len(v.Vector))
		}

		for i, val := range v.Vector {
			weightedSum[i] += float32(weight) * val
		}
		totalWeight += weight
	}

	if totalWeight == 0 {
		return nil
	}

	result := make([]float32, len(weightedSum))
	for i, val := range weightedSum {
		result[i] = val / float32(totalWeight)
	}

	return result
}
