package domain

import (
	"fmt"
	"time"
)

// Subscore bounds for every criterion.
const (
	MinSubscore = 1
	MaxSubscore = 5
)

// RatingRecord is one reader's evaluation of one book. A criterion absent
// from Scores was not rated; absence is meaningful and must never be
// defaulted to zero or to a mean.
type RatingRecord struct {
	BookID    string
	RaterID   string
	Scores    map[RatingCriterion]int
	Review    string
	CreatedAt time.Time
}

// ValidateScores checks every present subscore is a known criterion within
// [MinSubscore, MaxSubscore], and that at least one criterion was scored.
func (r RatingRecord) ValidateScores() error {
	if len(r.Scores) == 0 {
		return ValidationError{
			Field:  "scores",
			Reason: "at least one criterion must be scored",
		}
	}

	for criterion, score := range r.Scores {
		if !IsValidCriterion(criterion) {
			return ValidationError{
				Field:  "scores",
				Reason: "unknown criterion [" + string(criterion) + "]",
			}
		}
		if score < MinSubscore || score > MaxSubscore {
			return ValidationError{
				Field: "scores",
				Reason: fmt.Sprintf("%s score [%d] outside range [%d,%d]",
					criterion, score, MinSubscore, MaxSubscore),
			}
		}
	}

	return nil
}
