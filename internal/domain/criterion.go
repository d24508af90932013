package domain

// RatingCriterion is one of the five fixed dimensions a book is rated along.
// The set is closed; readers can reorder it but never extend it.
type RatingCriterion string

const (
	CriterionEnjoyment     RatingCriterion = "enjoyment"
	CriterionWriting       RatingCriterion = "writing"
	CriterionThemes        RatingCriterion = "themes"
	CriterionCharacters    RatingCriterion = "characters"
	CriterionWorldbuilding RatingCriterion = "worldbuilding"
)

// AllCriteria lists every rating criterion in canonical order.
var AllCriteria = []RatingCriterion{
	CriterionEnjoyment,
	CriterionWriting,
	CriterionThemes,
	CriterionCharacters,
	CriterionWorldbuilding,
}

// CriteriaOrder is one reader's personal ranking of the five criteria,
// most important first. A valid order is a permutation of AllCriteria.
// It is owned by exactly one reader and replaced wholesale on each save.
type CriteriaOrder []RatingCriterion

// DefaultCriteriaOrder returns the order assigned to readers at onboarding.
func DefaultCriteriaOrder() CriteriaOrder {
	order := make(CriteriaOrder, len(AllCriteria))
	copy(order, AllCriteria)
	return order
}

// Validate checks that the order is a permutation of exactly the five defined
// criteria. Duplicate, missing, or foreign entries are rejected.
func (o CriteriaOrder) Validate() error {
	if len(o) != len(AllCriteria) {
		return ValidationError{
			Field:  "criteria_order",
			Reason: "must contain exactly five criteria",
		}
	}

	seen := make(map[RatingCriterion]bool, len(AllCriteria))
	for _, c := range o {
		if !IsValidCriterion(c) {
			return ValidationError{
				Field:  "criteria_order",
				Reason: "unknown criterion [" + string(c) + "]",
			}
		}
		if seen[c] {
			return ValidationError{
				Field:  "criteria_order",
				Reason: "duplicate criterion [" + string(c) + "]",
			}
		}
		seen[c] = true
	}

	return nil
}

// IsValidCriterion reports whether c is one of the five defined criteria.
func IsValidCriterion(c RatingCriterion) bool {
	for _, known := range AllCriteria {
		if c == known {
			return true
		}
	}
	return false
}
