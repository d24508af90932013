package domain

import "math"

// MinRatingsForCompatibility is the number of ratings an author must have
// collected before a compatibility score is computed.
const MinRatingsForCompatibility = 10

// maxSubscoreDifference is the largest possible gap between two values on
// the 1-5 rating scale, used to normalise per-criterion differences.
const maxSubscoreDifference = 4.0

// CompatibilityLabel is the qualitative band a compatibility score falls in.
type CompatibilityLabel string

const (
	LabelHighlyCompatible     CompatibilityLabel = "Highly Compatible"
	LabelCompatible           CompatibilityLabel = "Compatible"
	LabelModeratelyCompatible CompatibilityLabel = "Moderately Compatible"
	LabelSomewhatDifferent    CompatibilityLabel = "Somewhat Different"
	LabelLowCompatibility     CompatibilityLabel = "Low Compatibility"
)

// compatibilityBands maps score thresholds to labels, highest first.
// The bands are exhaustive and non-overlapping over [0,1].
var compatibilityBands = []struct {
	threshold float64
	label     CompatibilityLabel
}{
	{0.85, LabelHighlyCompatible},
	{0.65, LabelCompatible},
	{0.45, LabelModeratelyCompatible},
	{0.25, LabelSomewhatDifferent},
	{math.Inf(-1), LabelLowCompatibility},
}

// TasteProfile holds a reader's historical average score per criterion, on
// the same 1-5 scale as an author's aggregate means. A criterion the reader
// has never scored is absent.
type TasteProfile map[RatingCriterion]float64

// TasteProfileOf computes a reader's taste profile as the plain arithmetic
// mean of each criterion across their rating history.
func TasteProfileOf(records []RatingRecord) TasteProfile {
	if len(records) == 0 {
		return nil
	}

	sums := make(map[RatingCriterion]float64, len(AllCriteria))
	counts := make(map[RatingCriterion]int, len(AllCriteria))
	for _, record := range records {
		for criterion, score := range record.Scores {
			sums[criterion] += float64(score)
			counts[criterion]++
		}
	}

	taste := make(TasteProfile, len(sums))
	for criterion, sum := range sums {
		taste[criterion] = sum / float64(counts[criterion])
	}

	return taste
}

// CriterionDelta is the gap between a reader's taste and an author's
// aggregate profile on one criterion.
type CriterionDelta struct {
	Difference float64
	Normalized float64
}

// CompatibilityResult is the derived similarity between one reader's taste
// and one author's body of work. When HasEnoughRatings is false, only
// TotalRatings and RatingsNeeded are populated; callers must check the gate
// before reading Score, Label, or Criteria.
type CompatibilityResult struct {
	TotalRatings     int
	HasEnoughRatings bool
	RatingsNeeded    int

	Score    float64
	Label    CompatibilityLabel
	Criteria map[RatingCriterion]CriterionDelta
}

// Compatibility compares a reader's taste profile against an author's
// aggregate profile, weighting each criterion's gap by the reader's own
// importance order so that the criteria the reader cares about most dominate
// the measurement. Score is bounded to [0,1] and decreases monotonically as
// any criterion's difference grows.
//
// "Not enough ratings yet" is an expected, gated state, not an error; a nil
// authorProfile, an invalid readerOrder, or a comparison with no criterion
// scored by both sides is a ValidationError.
func Compatibility(
	readerOrder CriteriaOrder,
	taste TasteProfile,
	authorProfile *AggregateProfile,
	totalRatings int,
) (CompatibilityResult, error) {
	weights, err := WeightsFor(readerOrder)
	if err != nil {
		return CompatibilityResult{}, err
	}

	if totalRatings < MinRatingsForCompatibility {
		return CompatibilityResult{
			TotalRatings:  totalRatings,
			RatingsNeeded: MinRatingsForCompatibility - totalRatings,
		}, nil
	}

	if authorProfile == nil {
		return CompatibilityResult{}, ValidationError{
			Field:  "author_profile",
			Reason: "profile is required once the author has ratings",
		}
	}

	// A criterion missing from either side is excluded from both the
	// numerator and the denominator, never read as zero. The overall
	// difference is the weighted mean over the criteria both sides cover.
	criteria := make(map[RatingCriterion]CriterionDelta, len(AllCriteria))
	var weightedNormalized, weightCovered float64
	for _, criterion := range AllCriteria {
		readerValue, readerHas := taste[criterion]
		authorMean, authorHas := authorProfile.Means[criterion]
		if !readerHas || !authorHas {
			continue
		}

		difference := math.Abs(readerValue - authorMean)
		normalized := clamp01(difference / maxSubscoreDifference)

		criteria[criterion] = CriterionDelta{
			Difference: difference,
			Normalized: normalized,
		}
		weightedNormalized += normalized * weights[criterion]
		weightCovered += weights[criterion]
	}

	if weightCovered == 0 {
		return CompatibilityResult{}, ValidationError{
			Field:  "taste profile",
			Reason: "no criterion is scored by both the reader and the author's profile",
		}
	}

	score := clamp01(1 - weightedNormalized/weightCovered)

	return CompatibilityResult{
		TotalRatings:     totalRatings,
		HasEnoughRatings: true,
		Score:            score,
		Label:            labelForScore(score),
		Criteria:         criteria,
	}, nil
}

func labelForScore(score float64) CompatibilityLabel {
	for _, band := range compatibilityBands {
		if score >= band.threshold {
			return band.label
		}
	}
	return LabelLowCompatibility
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
