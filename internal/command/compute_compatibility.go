package command

import (
	"context"
	"fmt"

	"github.com/averyhn/shelfrate/internal/datasources"
	"github.com/averyhn/shelfrate/internal/domain"
)

// ComputeCompatibilityRequest is the request for the ComputeCompatibility command.
type ComputeCompatibilityRequest struct {
	ReaderID string
	AuthorID string
}

// ComputeCompatibility derives the compatibility between a reader's taste
// and an author's body of work: the reader's criteria order weights the
// per-criterion gaps between the reader's historical averages and the
// author's aggregate profile.
type ComputeCompatibility struct {
	OrderGetter   datasources.CriteriaOrderGetter
	AuthorRatings datasources.AuthorRatingsLister
	AuthorCounter datasources.AuthorRatingCounter
	ReaderRatings datasources.ReaderRatingsLister
}

// NewComputeCompatibility creates a properly initialized ComputeCompatibility command.
func NewComputeCompatibility(
	orderGetter datasources.CriteriaOrderGetter,
	authorRatings datasources.AuthorRatingsLister,
	authorCounter datasources.AuthorRatingCounter,
	readerRatings datasources.ReaderRatingsLister,
) *ComputeCompatibility {
	return &ComputeCompatibility{
		OrderGetter:   orderGetter,
		AuthorRatings: authorRatings,
		AuthorCounter: authorCounter,
		ReaderRatings: readerRatings,
	}
}

// Execute assembles the inputs and runs the compatibility calculation.
func (c *ComputeCompatibility) Execute(
	ctx context.Context, req ComputeCompatibilityRequest,
) (domain.CompatibilityResult, error) {
	order, err := c.OrderGetter.GetCriteriaOrder(ctx, req.ReaderID)
	if err != nil {
		return domain.CompatibilityResult{}, fmt.Errorf("getting criteria order: %w", err)
	}
	if order == nil {
		// A reader who never reordered keeps the onboarding default. This is
		// the absent case, not the invalid one; invalid stored orders still fail.
		order = domain.DefaultCriteriaOrder()
	}

	totalRatings, err := c.AuthorCounter.CountRatingsByAuthor(ctx, req.AuthorID)
	if err != nil {
		return domain.CompatibilityResult{}, fmt.Errorf("counting author ratings: %w", err)
	}

	// Below the gate no profile or taste is needed; skip the heavier queries.
	if totalRatings < domain.MinRatingsForCompatibility {
		return domain.Compatibility(order, nil, nil, totalRatings)
	}

	authorRecords, err := c.AuthorRatings.ListRatingsByAuthor(ctx, req.AuthorID)
	if err != nil {
		return domain.CompatibilityResult{}, fmt.Errorf("listing author ratings: %w", err)
	}

	profile, err := domain.Aggregate(authorRecords, domain.OverallModeStraight, nil)
	if err != nil {
		return domain.CompatibilityResult{}, fmt.Errorf("aggregating author ratings: %w", err)
	}

	readerRecords, err := c.ReaderRatings.ListRatingsByReader(ctx, req.ReaderID)
	if err != nil {
		return domain.CompatibilityResult{}, fmt.Errorf("listing reader ratings: %w", err)
	}
	taste := domain.TasteProfileOf(readerRecords)

	return domain.Compatibility(order, taste, profile, totalRatings)
}
