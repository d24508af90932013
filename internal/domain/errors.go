package domain

import "fmt"

// ValidationError indicates that a caller supplied malformed input: a
// criteria order that isn't a permutation, an out-of-range subscore, or a
// nil profile where one is required. It is never recovered internally and
// must be surfaced to the caller unchanged.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
