package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allFoursRecord() RatingRecord {
	return RatingRecord{
		BookID:  "book1",
		RaterID: "reader1",
		Scores: map[RatingCriterion]int{
			CriterionEnjoyment:     4,
			CriterionWriting:       4,
			CriterionThemes:        4,
			CriterionCharacters:    4,
			CriterionWorldbuilding: 4,
		},
	}
}

func TestOverallOf_Straight(t *testing.T) {
	cases := []struct {
		name   string
		scores map[RatingCriterion]int
		want   float64
	}{
		{
			name:   "all_fours",
			scores: allFoursRecord().Scores,
			want:   4.0,
		},
		{
			name: "mixed_scores",
			scores: map[RatingCriterion]int{
				CriterionEnjoyment:     5,
				CriterionWriting:       1,
				CriterionThemes:        1,
				CriterionCharacters:    1,
				CriterionWorldbuilding: 1,
			},
			want: 1.8,
		},
		{
			// A missing criterion is excluded from both numerator and
			// denominator, never defaulted to zero.
			name: "missing_criterion_shrinks_denominator",
			scores: map[RatingCriterion]int{
				CriterionEnjoyment: 5,
				CriterionWriting:   3,
				CriterionThemes:    4,
			},
			want: 4.0,
		},
		{
			name: "single_criterion",
			scores: map[RatingCriterion]int{
				CriterionWorldbuilding: 2,
			},
			want: 2.0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := OverallOf(RatingRecord{Scores: tc.scores}, OverallModeStraight, nil)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestOverallOf_Weighted(t *testing.T) {
	reversed := CriteriaOrder{
		CriterionWorldbuilding,
		CriterionCharacters,
		CriterionThemes,
		CriterionWriting,
		CriterionEnjoyment,
	}

	cases := []struct {
		name   string
		order  CriteriaOrder
		scores map[RatingCriterion]int
		want   float64
	}{
		{
			name:  "reversed_order",
			order: reversed,
			scores: map[RatingCriterion]int{
				CriterionEnjoyment:     5,
				CriterionWriting:       1,
				CriterionThemes:        1,
				CriterionCharacters:    1,
				CriterionWorldbuilding: 1,
			},
			// 1*0.35 + 1*0.25 + 1*0.20 + 1*0.12 + 5*0.08
			want: 1.32,
		},
		{
			name:   "all_fours_any_order",
			order:  DefaultCriteriaOrder(),
			scores: allFoursRecord().Scores,
			want:   4.0,
		},
		{
			// A missing criterion drops its weighted contribution; the
			// remaining weights are not renormalised.
			name:  "missing_criterion_lowers_total",
			order: DefaultCriteriaOrder(),
			scores: map[RatingCriterion]int{
				CriterionWriting:       4,
				CriterionThemes:        4,
				CriterionCharacters:    4,
				CriterionWorldbuilding: 4,
			},
			// 4 * (0.25 + 0.20 + 0.12 + 0.08)
			want: 2.6,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := OverallOf(RatingRecord{Scores: tc.scores}, OverallModeWeighted, tc.order)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestOverallOf_Errors(t *testing.T) {
	cases := []struct {
		name   string
		scores map[RatingCriterion]int
		mode   OverallMode
		order  CriteriaOrder
	}{
		{
			name:   "no_scores",
			scores: map[RatingCriterion]int{},
			mode:   OverallModeStraight,
		},
		{
			name:   "score_out_of_range",
			scores: map[RatingCriterion]int{CriterionEnjoyment: 6},
			mode:   OverallModeStraight,
		},
		{
			name:   "score_below_range",
			scores: map[RatingCriterion]int{CriterionEnjoyment: 0},
			mode:   OverallModeStraight,
		},
		{
			name:   "unknown_criterion",
			scores: map[RatingCriterion]int{RatingCriterion("pacing"): 3},
			mode:   OverallModeStraight,
		},
		{
			name:   "weighted_without_order",
			scores: allFoursRecord().Scores,
			mode:   OverallModeWeighted,
		},
		{
			name:   "unknown_mode",
			scores: allFoursRecord().Scores,
			mode:   OverallMode("averaged"),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := OverallOf(RatingRecord{Scores: tc.scores}, tc.mode, tc.order)
			require.Error(t, err)

			var validationErr ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestParseOverallMode(t *testing.T) {
	mode, err := ParseOverallMode("straight")
	require.NoError(t, err)
	assert.Equal(t, OverallModeStraight, mode)

	mode, err = ParseOverallMode("weighted")
	require.NoError(t, err)
	assert.Equal(t, OverallModeWeighted, mode)

	_, err = ParseOverallMode("mean")
	assert.Error(t, err)
}
