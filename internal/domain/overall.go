package domain

// OverallMode selects how the five subscores of a rating reduce to a single
// overall value. Different product surfaces deliberately use different
// modes, so the choice is always an explicit parameter and never inferred.
type OverallMode string

const (
	// OverallModeStraight is the unweighted arithmetic mean of the present
	// subscores.
	OverallModeStraight OverallMode = "straight"

	// OverallModeWeighted is the rank-weighted sum of the subscores under a
	// reader's criteria order.
	OverallModeWeighted OverallMode = "weighted"
)

// ParseOverallMode converts a wire value into an OverallMode.
func ParseOverallMode(s string) (OverallMode, error) {
	switch OverallMode(s) {
	case OverallModeStraight:
		return OverallModeStraight, nil
	case OverallModeWeighted:
		return OverallModeWeighted, nil
	default:
		return "", ValidationError{
			Field:  "mode",
			Reason: "must be \"straight\" or \"weighted\"",
		}
	}
}

// OverallOf reduces one rating record's subscores to a single overall value.
//
// In weighted mode, a criterion the record doesn't score simply drops its
// weighted contribution; the remaining weights are not renormalised. In
// straight mode, absent criteria are excluded from both the numerator and
// the denominator. order is only consulted in weighted mode.
func OverallOf(record RatingRecord, mode OverallMode, order CriteriaOrder) (float64, error) {
	if err := record.ValidateScores(); err != nil {
		return 0, err
	}

	values := make(map[RatingCriterion]float64, len(record.Scores))
	for criterion, score := range record.Scores {
		values[criterion] = float64(score)
	}

	return reduceOverall(values, mode, order)
}

// reduceOverall reduces per-criterion values (raw subscores or aggregate
// means) to one overall value. Criteria missing from values are handled per
// OverallOf's contract.
func reduceOverall(
	values map[RatingCriterion]float64, mode OverallMode, order CriteriaOrder,
) (float64, error) {
	switch mode {
	case OverallModeStraight:
		var sum float64
		var count int
		for _, criterion := range AllCriteria {
			v, ok := values[criterion]
			if !ok {
				continue
			}
			sum += v
			count++
		}
		if count == 0 {
			return 0, ValidationError{Field: "scores", Reason: "no criteria present"}
		}
		return sum / float64(count), nil

	case OverallModeWeighted:
		weights, err := WeightsFor(order)
		if err != nil {
			return 0, err
		}
		var total float64
		for criterion, weight := range weights {
			v, ok := values[criterion]
			if !ok {
				continue
			}
			total += v * weight
		}
		return total, nil

	default:
		return 0, ValidationError{
			Field:  "mode",
			Reason: "unknown overall mode [" + string(mode) + "]",
		}
	}
}
