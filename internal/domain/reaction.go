package domain

import "time"

// Reaction classifies a rating's straight overall into the coarse signal the
// recommendation pipeline consumes.
type Reaction string

const (
	// ReactionLoved marks ratings with a straight overall of 4.0 or above.
	ReactionLoved Reaction = "loved"
	// ReactionDisliked marks ratings with a straight overall of 2.0 or below.
	ReactionDisliked Reaction = "disliked"
)

const (
	lovedOverallThreshold    = 4.0
	dislikedOverallThreshold = 2.0
)

// ReactionForOverall classifies a straight overall value. Ratings in the
// middle band carry no recommendation signal and report ok=false.
func ReactionForOverall(overall float64) (reaction Reaction, ok bool) {
	switch {
	case overall >= lovedOverallThreshold:
		return ReactionLoved, true
	case overall <= dislikedOverallThreshold:
		return ReactionDisliked, true
	default:
		return "", false
	}
}

// ReaderBookVector is the stored review-embedding vector for a book a reader
// has rated, tagged with the rating's reaction class and time.
type ReaderBookVector struct {
	BookID   string
	Vector   []float32
	Reaction Reaction
	RatedAt  time.Time
}
