package datasources

import (
	"context"
	"time"

	"github.com/averyhn/shelfrate/internal/domain"
)

// LibraryRepository combines every persistence concern of the platform.
type LibraryRepository interface {
	LatestBookLister
	BookFetcher
	BookRatingsLister
	BookRatingsAllLister
	RecentReviewsLister
	AuthorRatingsLister
	AuthorRatingCounter
	ReaderRatingsLister
	RatedBookIDsLister
	RatingUpserter
	RatingDeleter
	CriteriaOrderGetter
	CriteriaOrderSetter
	ReaderBookVectorsGetter
	TasteClusterGetter
	TasteClusterWriter
	PrecomputedRecommendationGetter
	PrecomputedRecommendationWriter
	ReaderRefreshStatusRepository
	APITokenRepository
}

type LatestBookLister interface {
	ListLatestBookIDs(
		ctx context.Context,
		filters domain.BookFilters,
		options domain.BookListOptions,
	) ([]string, error)
}

type BookFetcher interface {
	FetchBooksByID(ctx context.Context, ids []string) ([]domain.Book, error)
}

type BookRatingsLister interface {
	ListRatingsByBook(ctx context.Context, bookID string, page, pageSize int) ([]domain.RatingRecord, error)
}

// BookRatingsAllLister lists every rating of one book, unpaginated, for
// aggregate profile computation.
type BookRatingsAllLister interface {
	ListAllRatingsByBook(ctx context.Context, bookID string) ([]domain.RatingRecord, error)
}

// RecentReviewsLister lists the most recent ratings that carry review text,
// newest first, for the reviews feed.
type RecentReviewsLister interface {
	ListRecentReviews(ctx context.Context, limit int) ([]domain.ReviewFeedEntry, error)
}

type AuthorRatingsLister interface {
	ListRatingsByAuthor(ctx context.Context, authorID string) ([]domain.RatingRecord, error)
}

type AuthorRatingCounter interface {
	CountRatingsByAuthor(ctx context.Context, authorID string) (int, error)
}

type ReaderRatingsLister interface {
	ListRatingsByReader(ctx context.Context, readerID string) ([]domain.RatingRecord, error)
}

// RatedBookIDsLister lists the IDs of every book a reader has rated, used to
// exclude them from recommendations.
type RatedBookIDsLister interface {
	ListRatedBookIDs(ctx context.Context, readerID string) ([]string, error)
}

// RatingUpserter stores one reader's rating of one book, replacing any
// earlier rating by the same reader. overallStraight is the denormalised
// straight overall stored alongside for reaction classification; vector is
// the book's review-embedding vector, nil when unavailable.
type RatingUpserter interface {
	UpsertRating(
		ctx context.Context,
		record domain.RatingRecord,
		overallStraight float64,
		vector []float32,
	) error
}

type RatingDeleter interface {
	DeleteRating(ctx context.Context, bookID, raterID string) error
}

// CriteriaOrderGetter fetches a reader's stored criteria order. Readers who
// never saved one get (nil, nil); callers decide whether the onboarding
// default applies.
type CriteriaOrderGetter interface {
	GetCriteriaOrder(ctx context.Context, readerID string) (domain.CriteriaOrder, error)
}

// CriteriaOrderSetter replaces a reader's criteria order wholesale.
type CriteriaOrderSetter interface {
	SetCriteriaOrder(ctx context.Context, readerID string, order domain.CriteriaOrder) error
}

type ReaderBookVectorsGetter interface {
	GetReaderBookVectorsByReaction(
		ctx context.Context,
		readerID string,
		reaction domain.Reaction,
	) ([]domain.ReaderBookVector, error)
}

// TasteCluster is one stored taste cluster for a reader.
type TasteCluster struct {
	ClusterID      int
	CentroidVector []float32
	BookCount      int
}

type TasteClusterGetter interface {
	GetTasteClusters(ctx context.Context, readerID string) ([]TasteCluster, error)
}

type TasteClusterWriter interface {
	UpsertTasteCluster(
		ctx context.Context,
		readerID string,
		clusterID int,
		centroid []float32,
		bookCount int,
	) error
	DeleteTasteClusters(ctx context.Context, readerID string) error
}

// PrecomputedRecommendation is one stored recommendation row.
type PrecomputedRecommendation struct {
	BookID string
	Score  float64
	Source string
}

type PrecomputedRecommendationGetter interface {
	GetPrecomputedRecommendations(
		ctx context.Context,
		readerID string,
		limit int,
	) ([]PrecomputedRecommendation, error)
	GetPrecomputedRecommendationAge(ctx context.Context, readerID string) (time.Time, error)
}

type PrecomputedRecommendationWriter interface {
	UpsertPrecomputedRecommendation(
		ctx context.Context,
		readerID, bookID string,
		score float64,
		source string,
	) error
	DeleteReaderPrecomputedRecommendations(ctx context.Context, readerID string) error
}

// ReaderRefreshMarker flags a reader's recommendations as stale after a new
// rating arrives.
type ReaderRefreshMarker interface {
	MarkReaderNeedsRefresh(ctx context.Context, readerID string) error
}

// ReaderRefreshStatusRepository tracks which readers need their
// recommendations regenerated.
type ReaderRefreshStatusRepository interface {
	ReaderRefreshMarker
	MarkReaderRefreshed(ctx context.Context, readerID string) error
	ListReadersNeedingRefresh(ctx context.Context) ([]string, error)
}
