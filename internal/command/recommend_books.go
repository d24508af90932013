package command

import (
	"context"
	"fmt"
	"time"

	"github.com/averyhn/shelfrate/internal/datasources"
	"github.com/averyhn/shelfrate/internal/domain"
)

// RecommendBooksRequest is the request for the RecommendBooks command.
type RecommendBooksRequest struct {
	ReaderID string
	Limit    int
}

// RecommendBooksConfig holds configuration for serving recommendations.
type RecommendBooksConfig struct {
	// PrecomputedStaleThreshold is how old precomputed recommendations can
	// be before we fall back to live generation.
	PrecomputedStaleThreshold time.Duration

	// PrecomputedFetchLimit is how many precomputed rows to fetch before
	// trimming to the request limit.
	PrecomputedFetchLimit int
}

// RecommendBooks serves book recommendations for a reader: fresh precomputed
// rows when available, live generation otherwise.
type RecommendBooks struct {
	GenerateCmd       *GenerateRecommendations
	PrecomputedGetter datasources.PrecomputedRecommendationGetter
	BookFetcher       datasources.BookFetcher
	Config            RecommendBooksConfig
}

// NewRecommendBooks creates a properly initialized RecommendBooks command.
func NewRecommendBooks(
	generateCmd *GenerateRecommendations,
	precomputedGetter datasources.PrecomputedRecommendationGetter,
	bookFetcher datasources.BookFetcher,
	config RecommendBooksConfig,
) *RecommendBooks {
	return &RecommendBooks{
		GenerateCmd:       generateCmd,
		PrecomputedGetter: precomputedGetter,
		BookFetcher:       bookFetcher,
		Config:            config,
	}
}

// Execute returns up to Limit recommended books for the reader, most
// relevant first. Returns nil when the reader has no usable signal yet.
func (c *RecommendBooks) Execute(ctx context.Context, req RecommendBooksRequest) ([]domain.Book, error) {
	logger := domain.LoggerFromContext(ctx)

	ids, err := c.precomputedBookIDs(ctx, req)
	if err != nil {
		logger.WarnContext(ctx, "failed to read precomputed recommendations, generating live", "error", err)
		ids = nil
	}

	if len(ids) == 0 {
		scored, err := c.GenerateCmd.Execute(ctx, GenerateRecommendationsRequest{
			ReaderID: req.ReaderID,
			Limit:    req.Limit,
		})
		if err != nil {
			return nil, fmt.Errorf("generating recommendations: %w", err)
		}
		for _, s := range scored {
			ids = append(ids, s.BookID)
		}
	}

	if len(ids) == 0 {
		return nil, nil
	}

	if len(ids) > req.Limit {
		ids = ids[:req.Limit]
	}

	books, err := c.BookFetcher.FetchBooksByID(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("fetching recommended books: %w", err)
	}

	return orderBooksByIDs(books, ids), nil
}

// precomputedBookIDs returns precomputed recommendation IDs if they exist
// and are fresh enough, or nil to trigger live generation.
func (c *RecommendBooks) precomputedBookIDs(
	ctx context.Context, req RecommendBooksRequest,
) ([]string, error) {
	generatedAt, err := c.PrecomputedGetter.GetPrecomputedRecommendationAge(ctx, req.ReaderID)
	if err != nil {
		return nil, err
	}
	if generatedAt.IsZero() || time.Since(generatedAt) > c.Config.PrecomputedStaleThreshold {
		return nil, nil
	}

	rows, err := c.PrecomputedGetter.GetPrecomputedRecommendations(
		ctx, req.ReaderID, c.Config.PrecomputedFetchLimit,
	)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.BookID)
	}
	return ids, nil
}

// orderBooksByIDs restores recommendation order after a batched fetch.
func orderBooksByIDs(books []domain.Book, ids []string) []domain.Book {
	byID := make(map[string]domain.Book, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}

	ordered := make([]domain.Book, 0, len(ids))
	for _, id := range ids {
		if b, ok := byID[id]; ok {
			ordered = append(ordered, b)
		}
	}
	return ordered
}
