package domain

// rankWeights is the fixed weight assigned to each rank position of a
// reader's criteria order, most important first. The weights sum to 1.0;
// only their assignment to criteria varies, via the reader's order.
var rankWeights = [...]float64{0.35, 0.25, 0.20, 0.12, 0.08}

// WeightsFor maps each criterion to its weight under the given order: the
// criterion the reader ranked first receives 0.35, the second 0.25, and so
// on down to 0.08. The returned weights always sum to 1.0 for any valid
// permutation.
func WeightsFor(order CriteriaOrder) (map[RatingCriterion]float64, error) {
	if err := order.Validate(); err != nil {
		return nil, err
	}

	weights := make(map[RatingCriterion]float64, len(order))
	for rank, criterion := range order {
		weights[criterion] = rankWeights[rank]
	}

	return weights, nil
}
