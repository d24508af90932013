package command

import (
	"context"
	"fmt"

	"github.com/averyhn/shelfrate/internal/datasources"
	"github.com/averyhn/shelfrate/internal/domain"
)

// SubmitRatingRequest is the request for the SubmitRating command.
type SubmitRatingRequest struct {
	RaterID string
	BookID  string
	Scores  map[domain.RatingCriterion]int
	Review  string
}

// SubmitRating stores one reader's rating of one book. It validates the
// subscores, fetches the book's review-embedding vector best-effort,
// denormalises the straight overall for reaction classification, and flags
// the reader's recommendations as stale.
type SubmitRating struct {
	BookVectorFetcher datasources.BookVectorFetcher
	RatingUpserter    datasources.RatingUpserter
	RefreshMarker     datasources.ReaderRefreshMarker
}

// NewSubmitRating creates a properly initialized SubmitRating command.
func NewSubmitRating(
	bookVectorFetcher datasources.BookVectorFetcher,
	ratingUpserter datasources.RatingUpserter,
	refreshMarker datasources.ReaderRefreshMarker,
) *SubmitRating {
	return &SubmitRating{
		BookVectorFetcher: bookVectorFetcher,
		RatingUpserter:    ratingUpserter,
		RefreshMarker:     refreshMarker,
	}
}

// Execute validates and stores the rating.
func (c *SubmitRating) Execute(ctx context.Context, req SubmitRatingRequest) (Empty, error) {
	logger := domain.LoggerFromContext(ctx)

	record := domain.RatingRecord{
		BookID:  req.BookID,
		RaterID: req.RaterID,
		Scores:  req.Scores,
		Review:  req.Review,
	}

	overallStraight, err := domain.OverallOf(record, domain.OverallModeStraight, nil)
	if err != nil {
		return Empty{}, err
	}

	// Vector fetch is best-effort; a rating without a vector still counts,
	// it just carries no recommendation signal.
	vector, err := c.BookVectorFetcher.FetchBookVector(ctx, req.BookID)
	if err != nil {
		logger.WarnContext(ctx, "failed to fetch book vector, proceeding without vector",
			"error", err, "bookID", req.BookID)
		vector = nil
	}
	if vector == nil {
		logger.DebugContext(ctx, "book has no vector", "bookID", req.BookID)
	}

	if err := c.RatingUpserter.UpsertRating(ctx, record, overallStraight, vector); err != nil {
		return Empty{}, fmt.Errorf("storing rating: %w", err)
	}

	logger.DebugContext(ctx, "stored rating",
		"bookID", req.BookID, "criteriaScored", len(req.Scores), "overallStraight", overallStraight)

	if err := c.RefreshMarker.MarkReaderNeedsRefresh(ctx, req.RaterID); err != nil {
		logger.WarnContext(ctx, "failed to mark reader for recommendation refresh", "error", err)
	}

	return Empty{}, nil
}
