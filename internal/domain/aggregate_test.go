package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_EmptyReturnsNil(t *testing.T) {
	profile, err := Aggregate(nil, OverallModeStraight, nil)
	require.NoError(t, err)
	assert.Nil(t, profile)

	profile, err = Aggregate([]RatingRecord{}, OverallModeStraight, nil)
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestAggregate_IdenticalRecords(t *testing.T) {
	record := RatingRecord{
		BookID:  "book1",
		RaterID: "reader1",
		Scores: map[RatingCriterion]int{
			CriterionEnjoyment:     5,
			CriterionWriting:       4,
			CriterionThemes:        3,
			CriterionCharacters:    2,
			CriterionWorldbuilding: 1,
		},
	}

	records := []RatingRecord{record, record, record}
	profile, err := Aggregate(records, OverallModeStraight, nil)
	require.NoError(t, err)
	require.NotNil(t, profile)

	assert.Equal(t, 3, profile.Count)
	for criterion, score := range record.Scores {
		assert.InDelta(t, float64(score), profile.Means[criterion], 1e-9)
	}
	assert.InDelta(t, 3.0, profile.Overall, 1e-9)
}

func TestAggregate_PerCriterionMeansIgnoreAbsentScores(t *testing.T) {
	records := []RatingRecord{
		{Scores: map[RatingCriterion]int{
			CriterionEnjoyment: 5,
			CriterionWriting:   2,
		}},
		{Scores: map[RatingCriterion]int{
			CriterionEnjoyment: 3,
		}},
	}

	profile, err := Aggregate(records, OverallModeStraight, nil)
	require.NoError(t, err)
	require.NotNil(t, profile)

	assert.Equal(t, 2, profile.Count)
	// enjoyment averages over both records, writing only over the record
	// that scored it.
	assert.InDelta(t, 4.0, profile.Means[CriterionEnjoyment], 1e-9)
	assert.InDelta(t, 2.0, profile.Means[CriterionWriting], 1e-9)
	_, present := profile.Means[CriterionThemes]
	assert.False(t, present)

	// Overall reduces the vector of means: (4 + 2) / 2.
	assert.InDelta(t, 3.0, profile.Overall, 1e-9)
}

func TestAggregate_MeansFirstThenReduce(t *testing.T) {
	// Weighted-mean-of-means differs from mean-of-weighted-sums when
	// criterion coverage differs per record; the contract fixes the former.
	order := DefaultCriteriaOrder()
	records := []RatingRecord{
		{Scores: map[RatingCriterion]int{
			CriterionEnjoyment: 5,
			CriterionWriting:   1,
			CriterionThemes:    1,
		}},
		{Scores: map[RatingCriterion]int{
			CriterionEnjoyment: 1,
		}},
	}

	profile, err := Aggregate(records, OverallModeWeighted, order)
	require.NoError(t, err)
	require.NotNil(t, profile)

	// Means: enjoyment 3, writing 1, themes 1. Weighted overall applies
	// weights to the means and drops absent criteria without renormalising:
	// 3*0.35 + 1*0.25 + 1*0.20.
	assert.InDelta(t, 1.5, profile.Overall, 1e-9)

	// The other order of operations would give a different value; guard
	// against a silent swap.
	first, err := OverallOf(records[0], OverallModeWeighted, order)
	require.NoError(t, err)
	second, err := OverallOf(records[1], OverallModeWeighted, order)
	require.NoError(t, err)
	meanOfOveralls := (first + second) / 2
	assert.Greater(t, math.Abs(meanOfOveralls-profile.Overall), 1e-9)
}

func TestAggregate_WeightedNeedsValidOrder(t *testing.T) {
	records := []RatingRecord{
		{Scores: map[RatingCriterion]int{CriterionEnjoyment: 4}},
	}

	_, err := Aggregate(records, OverallModeWeighted, CriteriaOrder{CriterionEnjoyment})
	require.Error(t, err)

	var validationErr ValidationError
	assert.ErrorAs(t, err, &validationErr)
}
