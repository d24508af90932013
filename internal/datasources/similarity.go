package datasources

import (
	"context"

	"github.com/averyhn/shelfrate/internal/domain"
)

// SimilarityRepository combines all review-embedding similarity interfaces.
type SimilarityRepository interface {
	SimilarBookLister
	BookVectorFetcher
	SimilarBooksByVectorLister
}

type SimilarBookLister interface {
	ListSimilarBooks(
		ctx context.Context,
		bookIDs []string,
		count int,
	) ([]domain.SimilarBook, error)
}

type BookVectorFetcher interface {
	FetchBookVector(ctx context.Context, bookID string) ([]float32, error)
}

type SimilarBooksByVectorLister interface {
	ListSimilarBooksByVector(
		ctx context.Context,
		excludeBookIDs []string,
		vector []float32,
		limit int,
	) ([]domain.SimilarBook, error)
}

// NullSimilarityRepository is a null implementation of SimilarityRepository.
type NullSimilarityRepository struct{}

var _ SimilarityRepository = NullSimilarityRepository{}

func (NullSimilarityRepository) ListSimilarBooks(
	_ context.Context,
	_ []string,
	_ int,
) ([]domain.SimilarBook, error) {
	return nil, nil
}

func (NullSimilarityRepository) FetchBookVector(_ context.Context, _ string) ([]float32, error) {
	return nil, nil
}

func (NullSimilarityRepository) ListSimilarBooksByVector(
	_ context.Context,
	_ []string,
	_ []float32,
	_ int,
) ([]domain.SimilarBook, error) {
	return nil, nil
}
