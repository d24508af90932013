// Package mocks provides testify/mock doubles for the datasources interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/averyhn/shelfrate/internal/datasources"
	"github.com/averyhn/shelfrate/internal/domain"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockBookVectorFetcher mocks datasources.BookVectorFetcher.
type MockBookVectorFetcher struct{ mock.Mock }

func NewMockBookVectorFetcher(t testingT) *MockBookVectorFetcher {
	m := &MockBookVectorFetcher{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockBookVectorFetcher) FetchBookVector(ctx context.Context, bookID string) ([]float32, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

var _ datasources.BookVectorFetcher = (*MockBookVectorFetcher)(nil)

// MockRatingUpserter mocks datasources.RatingUpserter.
type MockRatingUpserter struct{ mock.Mock }

func NewMockRatingUpserter(t testingT) *MockRatingUpserter {
	m := &MockRatingUpserter{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRatingUpserter) UpsertRating(
	ctx context.Context, record domain.RatingRecord, overallStraight float64, vector []float32,
) error {
	args := m.Called(ctx, record, overallStraight, vector)
	return args.Error(0)
}

var _ datasources.RatingUpserter = (*MockRatingUpserter)(nil)

// MockReaderRefreshMarker mocks datasources.ReaderRefreshMarker.
type MockReaderRefreshMarker struct{ mock.Mock }

func NewMockReaderRefreshMarker(t testingT) *MockReaderRefreshMarker {
	m := &MockReaderRefreshMarker{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockReaderRefreshMarker) MarkReaderNeedsRefresh(ctx context.Context, readerID string) error {
	args := m.Called(ctx, readerID)
	return args.Error(0)
}

var _ datasources.ReaderRefreshMarker = (*MockReaderRefreshMarker)(nil)

// MockCriteriaOrderGetter mocks datasources.CriteriaOrderGetter.
type MockCriteriaOrderGetter struct{ mock.Mock }

func NewMockCriteriaOrderGetter(t testingT) *MockCriteriaOrderGetter {
	m := &MockCriteriaOrderGetter{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCriteriaOrderGetter) GetCriteriaOrder(
	ctx context.Context, readerID string,
) (domain.CriteriaOrder, error) {
	args := m.Called(ctx, readerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.CriteriaOrder), args.Error(1)
}

var _ datasources.CriteriaOrderGetter = (*MockCriteriaOrderGetter)(nil)

// MockCriteriaOrderSetter mocks datasources.CriteriaOrderSetter.
type MockCriteriaOrderSetter struct{ mock.Mock }

func NewMockCriteriaOrderSetter(t testingT) *MockCriteriaOrderSetter {
	m := &MockCriteriaOrderSetter{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCriteriaOrderSetter) SetCriteriaOrder(
	ctx context.Context, readerID string, order domain.CriteriaOrder,
) error {
	args := m.Called(ctx, readerID, order)
	return args.Error(0)
}

var _ datasources.CriteriaOrderSetter = (*MockCriteriaOrderSetter)(nil)

// MockAuthorRatingsLister mocks datasources.AuthorRatingsLister.
type MockAuthorRatingsLister struct{ mock.Mock }

func NewMockAuthorRatingsLister(t testingT) *MockAuthorRatingsLister {
	m := &MockAuthorRatingsLister{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAuthorRatingsLister) ListRatingsByAuthor(
	ctx context.Context, authorID string,
) ([]domain.RatingRecord, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RatingRecord), args.Error(1)
}

var _ datasources.AuthorRatingsLister = (*MockAuthorRatingsLister)(nil)

// MockAuthorRatingCounter mocks datasources.AuthorRatingCounter.
type MockAuthorRatingCounter struct{ mock.Mock }

func NewMockAuthorRatingCounter(t testingT) *MockAuthorRatingCounter {
	m := &MockAuthorRatingCounter{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAuthorRatingCounter) CountRatingsByAuthor(ctx context.Context, authorID string) (int, error) {
	args := m.Called(ctx, authorID)
	return args.Int(0), args.Error(1)
}

var _ datasources.AuthorRatingCounter = (*MockAuthorRatingCounter)(nil)

// MockReaderRatingsLister mocks datasources.ReaderRatingsLister.
type MockReaderRatingsLister struct{ mock.Mock }

func NewMockReaderRatingsLister(t testingT) *MockReaderRatingsLister {
	m := &MockReaderRatingsLister{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockReaderRatingsLister) ListRatingsByReader(
	ctx context.Context, readerID string,
) ([]domain.RatingRecord, error) {
	args := m.Called(ctx, readerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RatingRecord), args.Error(1)
}

var _ datasources.ReaderRatingsLister = (*MockReaderRatingsLister)(nil)

// MockSimilarBooksByVectorLister mocks datasources.SimilarBooksByVectorLister.
type MockSimilarBooksByVectorLister struct{ mock.Mock }

func NewMockSimilarBooksByVectorLister(t testingT) *MockSimilarBooksByVectorLister {
	m := &MockSimilarBooksByVectorLister{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockSimilarBooksByVectorLister) ListSimilarBooksByVector(
	ctx context.Context, excludeBookIDs []string, vector []float32, limit int,
) ([]domain.SimilarBook, error) {
	args := m.Called(ctx, excludeBookIDs, vector, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SimilarBook), args.Error(1)
}

var _ datasources.SimilarBooksByVectorLister = (*MockSimilarBooksByVectorLister)(nil)

// MockSimilarBookLister mocks datasources.SimilarBookLister.
type MockSimilarBookLister struct{ mock.Mock }

func NewMockSimilarBookLister(t testingT) *MockSimilarBookLister {
	m := &MockSimilarBookLister{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockSimilarBookLister) ListSimilarBooks(
	ctx context.Context, bookIDs []string, count int,
) ([]domain.SimilarBook, error) {
	args := m.Called(ctx, bookIDs, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SimilarBook), args.Error(1)
}

var _ datasources.SimilarBookLister = (*MockSimilarBookLister)(nil)

// MockReaderBookVectorsGetter mocks datasources.ReaderBookVectorsGetter.
type MockReaderBookVectorsGetter struct{ mock.Mock }

func NewMockReaderBookVectorsGetter(t testingT) *MockReaderBookVectorsGetter {
	m := &MockReaderBookVectorsGetter{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockReaderBookVectorsGetter) GetReaderBookVectorsByReaction(
	ctx context.Context, readerID string, reaction domain.Reaction,
) ([]domain.ReaderBookVector, error) {
	args := m.Called(ctx, readerID, reaction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReaderBookVector), args.Error(1)
}

var _ datasources.ReaderBookVectorsGetter = (*MockReaderBookVectorsGetter)(nil)

// MockTasteClusterGetter mocks datasources.TasteClusterGetter.
type MockTasteClusterGetter struct{ mock.Mock }

func NewMockTasteClusterGetter(t testingT) *MockTasteClusterGetter {
	m := &MockTasteClusterGetter{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTasteClusterGetter) GetTasteClusters(
	ctx context.Context, readerID string,
) ([]datasources.TasteCluster, error) {
	args := m.Called(ctx, readerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]datasources.TasteCluster), args.Error(1)
}

var _ datasources.TasteClusterGetter = (*MockTasteClusterGetter)(nil)

// MockRatedBookIDsLister mocks datasources.RatedBookIDsLister.
type MockRatedBookIDsLister struct{ mock.Mock }

func NewMockRatedBookIDsLister(t testingT) *MockRatedBookIDsLister {
	m := &MockRatedBookIDsLister{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRatedBookIDsLister) ListRatedBookIDs(ctx context.Context, readerID string) ([]string, error) {
	args := m.Called(ctx, readerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

var _ datasources.RatedBookIDsLister = (*MockRatedBookIDsLister)(nil)

// MockBookFetcher mocks datasources.BookFetcher.
type MockBookFetcher struct{ mock.Mock }

func NewMockBookFetcher(t testingT) *MockBookFetcher {
	m := &MockBookFetcher{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockBookFetcher) FetchBooksByID(ctx context.Context, ids []string) ([]domain.Book, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Book), args.Error(1)
}

var _ datasources.BookFetcher = (*MockBookFetcher)(nil)

// MockLatestBookLister mocks datasources.LatestBookLister.
type MockLatestBookLister struct{ mock.Mock }

func NewMockLatestBookLister(t testingT) *MockLatestBookLister {
	m := &MockLatestBookLister{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockLatestBookLister) ListLatestBookIDs(
	ctx context.Context, filters domain.BookFilters, options domain.BookListOptions,
) ([]string, error) {
	args := m.Called(ctx, filters, options)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

var _ datasources.LatestBookLister = (*MockLatestBookLister)(nil)

// MockBookRatingsLister mocks datasources.BookRatingsLister.
type MockBookRatingsLister struct{ mock.Mock }

func NewMockBookRatingsLister(t testingT) *MockBookRatingsLister {
	m := &MockBookRatingsLister{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockBookRatingsLister) ListRatingsByBook(
	ctx context.Context, bookID string, page, pageSize int,
) ([]domain.RatingRecord, error) {
	args := m.Called(ctx, bookID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RatingRecord), args.Error(1)
}

var _ datasources.BookRatingsLister = (*MockBookRatingsLister)(nil)

// MockBookRatingsAllLister mocks datasources.BookRatingsAllLister.
type MockBookRatingsAllLister struct{ mock.Mock }

func NewMockBookRatingsAllLister(t testingT) *MockBookRatingsAllLister {
	m := &MockBookRatingsAllLister{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockBookRatingsAllLister) ListAllRatingsByBook(
	ctx context.Context, bookID string,
) ([]domain.RatingRecord, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RatingRecord), args.Error(1)
}

var _ datasources.BookRatingsAllLister = (*MockBookRatingsAllLister)(nil)

// MockRecentReviewsLister mocks datasources.RecentReviewsLister.
type MockRecentReviewsLister struct{ mock.Mock }

func NewMockRecentReviewsLister(t testingT) *MockRecentReviewsLister {
	m := &MockRecentReviewsLister{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRecentReviewsLister) ListRecentReviews(
	ctx context.Context, limit int,
) ([]domain.ReviewFeedEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReviewFeedEntry), args.Error(1)
}

var _ datasources.RecentReviewsLister = (*MockRecentReviewsLister)(nil)

// MockEmbedder mocks datasources.Embedder.
type MockEmbedder struct{ mock.Mock }

func NewMockEmbedder(t testingT) *MockEmbedder {
	m := &MockEmbedder{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

var _ datasources.Embedder = (*MockEmbedder)(nil)

// MockPrecomputedRecommendationGetter mocks datasources.PrecomputedRecommendationGetter.
type MockPrecomputedRecommendationGetter struct{ mock.Mock }

func NewMockPrecomputedRecommendationGetter(t testingT) *MockPrecomputedRecommendationGetter {
	m := &MockPrecomputedRecommendationGetter{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPrecomputedRecommendationGetter) GetPrecomputedRecommendations(
	ctx context.Context, readerID string, limit int,
) ([]datasources.PrecomputedRecommendation, error) {
	args := m.Called(ctx, readerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]datasources.PrecomputedRecommendation), args.Error(1)
}

func (m *MockPrecomputedRecommendationGetter) GetPrecomputedRecommendationAge(
	ctx context.Context, readerID string,
) (time.Time, error) {
	args := m.Called(ctx, readerID)
	return args.Get(0).(time.Time), args.Error(1)
}

var _ datasources.PrecomputedRecommendationGetter = (*MockPrecomputedRecommendationGetter)(nil)
