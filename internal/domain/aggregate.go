package domain

// AggregateProfile is the derived rating profile of a set of rating records
// scoped to one book or one author: the arithmetic mean of each criterion
// across the set, the count of contributing records, and an overall value.
// It is recomputed on demand and never stored or merged with another
// profile; merging two profiles by averaging is not associative when record
// counts differ per criterion, so callers must aggregate from the union of
// the underlying records instead.
type AggregateProfile struct {
	Means   map[RatingCriterion]float64
	Overall float64
	Count   int
}

// Aggregate reduces many rating records to an AggregateProfile, or nil for
// an empty set ("no ratings yet" is the caller's state to render).
//
// Order of operations matters and is fixed: per-criterion means are computed
// first, then a single overall reduction is applied to the vector of means
// via the same calculator used for individual records. Records missing a
// criterion are ignored for that criterion's mean only.
func Aggregate(
	records []RatingRecord, mode OverallMode, order CriteriaOrder,
) (*AggregateProfile, error) {
	if len(records) == 0 {
		return nil, nil
	}

	sums := make(map[RatingCriterion]float64, len(AllCriteria))
	counts := make(map[RatingCriterion]int, len(AllCriteria))
	for _, record := range records {
		if err := record.ValidateScores(); err != nil {
			return nil, err
		}
		for criterion, score := range record.Scores {
			sums[criterion] += float64(score)
			counts[criterion]++
		}
	}

	means := make(map[RatingCriterion]float64, len(sums))
	for criterion, sum := range sums {
		means[criterion] = sum / float64(counts[criterion])
	}

	overall, err := reduceOverall(means, mode, order)
	if err != nil {
		return nil, err
	}

	return &AggregateProfile{
		Means:   means,
		Overall: overall,
		Count:   len(records),
	}, nil
}
