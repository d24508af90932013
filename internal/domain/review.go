package domain

import "time"

// ReviewFeedEntry is one written review joined with its book, as rendered in
// the recent-reviews feed.
type ReviewFeedEntry struct {
	BookID          string
	BookTitle       string
	AuthorName      string
	RaterID         string
	Review          string
	OverallStraight float64
	CreatedAt       time.Time
}
