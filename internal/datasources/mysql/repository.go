package mysql

import (
	"context"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/averyhn/shelfrate/internal/datasources"
	"github.com/averyhn/shelfrate/internal/domain"
	"github.com/huandu/go-sqlbuilder"
)

var _ datasources.LibraryRepository = (*Repository)(nil)

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ============================================
// Books
// ============================================

func (r *Repository) ListLatestBookIDs(
	ctx context.Context,
	filters domain.BookFilters,
	options domain.BookListOptions,
) ([]string, error) {
	sb := sqlbuilder.Select("id")
	sb.From("books")

	conds := buildBooksConditions(sb, filters)
	if len(conds) > 0 {
		sb.Where(conds...)
	}

	orderings, err := buildBooksOrder(options)
	if err != nil {
		return nil, fmt.Errorf("building books order by clause: %w", err)
	}

	sb.OrderBy(orderings...)
	sb.Offset((options.Page - 1) * options.PageSize)
	sb.Limit(options.PageSize)

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running books query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	bookIDs := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning books: %w", err)
		}
		bookIDs = append(bookIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return bookIDs, nil
}

func (r *Repository) FetchBooksByID(ctx context.Context, ids []string) ([]domain.Book, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	sb := sqlbuilder.Select("id", "title", "author_id", "author_name", "blurb_start", "date_published")
	sb.From("books")
	sb.Where(sb.In("id", stringsToAny(ids)...))

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching books by ID: %w", err)
	}
	defer func() { _ = rows.Close() }()

	bookMap := make(map[string]domain.Book, len(ids))
	for rows.Next() {
		var b domain.Book
		var blurb sql.NullString
		if err := rows.Scan(&b.ID, &b.Title, &b.AuthorID, &b.AuthorName, &blurb, &b.PublishedAt); err != nil {
			return nil, fmt.Errorf("scanning book: %w", err)
		}
		b.BlurbStart = blurb.String
		bookMap[b.ID] = b
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	// Results follow the order of the input IDs.
	books := make([]domain.Book, 0, len(ids))
	for _, id := range ids {
		if book, exists := bookMap[id]; exists {
			books = append(books, book)
		}
	}

	return books, nil
}

func buildBooksConditions(sb *sqlbuilder.SelectBuilder, filters domain.BookFilters) []string {
	var conds []string

	if len(filters.OnlyAuthors) > 0 {
		conds = append(conds, sb.In("author_id", stringsToAny(filters.OnlyAuthors)...))
	}

	if len(filters.ExceptAuthors) > 0 {
		conds = append(conds, sb.NotIn("author_id", stringsToAny(filters.ExceptAuthors)...))
	}

	return conds
}

func buildBooksOrder(options domain.BookListOptions) ([]string, error) {
	if len(options.Ordering) == 0 {
		return []string{"date_published DESC"}, nil
	}

	var orderings []string
	for _, ordering := range options.Ordering {
		var col string
		switch ordering.Field {
		case domain.BookOrderingFieldPublishedAt:
			col = "date_published"
		case domain.BookOrderingFieldAuthorName:
			col = "author_name"
		case domain.BookOrderingFieldTitle:
			col = "title"
		default:
			return nil, fmt.Errorf("unknown ordering field: %s", ordering.Field)
		}

		if ordering.Desc {
			col += " DESC"
		}
		orderings = append(orderings, col)
	}

	return orderings, nil
}

func stringsToAny(values []string) []interface{} {
	result := make([]interface{}, 0, len(values))
	for _, v := range values {
		result = append(result, v)
	}
	return result
}

// ============================================
// Ratings
// ============================================

// scoreColumns maps criteria to their nullable subscore columns, in the
// order they are selected and scanned.
var scoreColumns = []struct {
	criterion domain.RatingCriterion
	column    string
}{
	{domain.CriterionEnjoyment, "score_enjoyment"},
	{domain.CriterionWriting, "score_writing"},
	{domain.CriterionThemes, "score_themes"},
	{domain.CriterionCharacters, "score_characters"},
	{domain.CriterionWorldbuilding, "score_worldbuilding"},
}

func ratingSelectColumns(prefix string) []string {
	cols := []string{prefix + "book_id", prefix + "rater_id"}
	for _, sc := range scoreColumns {
		cols = append(cols, prefix+sc.column)
	}
	return append(cols, prefix+"review", prefix+"date_rated")
}

func scanRatingRows(rows *sql.Rows) ([]domain.RatingRecord, error) {
	var records []domain.RatingRecord
	for rows.Next() {
		var record domain.RatingRecord
		scores := make([]sql.NullInt64, len(scoreColumns))
		var review sql.NullString

		dest := []interface{}{&record.BookID, &record.RaterID}
		for i := range scores {
			dest = append(dest, &scores[i])
		}
		dest = append(dest, &review, &record.CreatedAt)

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning rating: %w", err)
		}

		// NULL columns stay absent from the map; absence is meaningful.
		record.Scores = make(map[domain.RatingCriterion]int)
		for i, sc := range scoreColumns {
			if scores[i].Valid {
				record.Scores[sc.criterion] = int(scores[i].Int64)
			}
		}
		record.Review = review.String

		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return records, nil
}

func (r *Repository) queryRatings(ctx context.Context, sb *sqlbuilder.SelectBuilder) ([]domain.RatingRecord, error) {
	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running ratings query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanRatingRows(rows)
}

func (r *Repository) ListRatingsByBook(
	ctx context.Context, bookID string, page, pageSize int,
) ([]domain.RatingRecord, error) {
	limit, offset := paginationToLimitOffset(page, pageSize)

	sb := sqlbuilder.Select(ratingSelectColumns("")...)
	sb.From("ratings")
	sb.Where(sb.Equal("book_id", bookID))
	sb.OrderBy("date_rated DESC")
	sb.Limit(int(limit))
	sb.Offset(int(offset))

	return r.queryRatings(ctx, sb)
}

func (r *Repository) ListAllRatingsByBook(
	ctx context.Context, bookID string,
) ([]domain.RatingRecord, error) {
	sb := sqlbuilder.Select(ratingSelectColumns("")...)
	sb.From("ratings")
	sb.Where(sb.Equal("book_id", bookID))

	return r.queryRatings(ctx, sb)
}

func (r *Repository) ListRecentReviews(
	ctx context.Context, limit int,
) ([]domain.ReviewFeedEntry, error) {
	sb := sqlbuilder.Select(
		"ratings.book_id", "books.title", "books.author_name",
		"ratings.rater_id", "ratings.review", "ratings.overall_straight", "ratings.date_rated",
	)
	sb.From("ratings")
	sb.JoinWithOption(sqlbuilder.InnerJoin, "books", "ratings.book_id = books.id")
	sb.Where("ratings.review IS NOT NULL", "ratings.review != ''")
	sb.OrderBy("ratings.date_rated DESC")
	sb.Limit(limit)

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing recent reviews: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []domain.ReviewFeedEntry
	for rows.Next() {
		var entry domain.ReviewFeedEntry
		if err := rows.Scan(
			&entry.BookID, &entry.BookTitle, &entry.AuthorName,
			&entry.RaterID, &entry.Review, &entry.OverallStraight, &entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning review feed entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return entries, nil
}

func (r *Repository) ListRatingsByAuthor(
	ctx context.Context, authorID string,
) ([]domain.RatingRecord, error) {
	sb := sqlbuilder.Select(ratingSelectColumns("ratings.")...)
	sb.From("ratings")
	sb.JoinWithOption(sqlbuilder.InnerJoin, "books", "ratings.book_id = books.id")
	sb.Where(sb.Equal("books.author_id", authorID))

	return r.queryRatings(ctx, sb)
}

func (r *Repository) CountRatingsByAuthor(ctx context.Context, authorID string) (int, error) {
	sb := sqlbuilder.Select("COUNT(*)")
	sb.From("ratings")
	sb.JoinWithOption(sqlbuilder.InnerJoin, "books", "ratings.book_id = books.id")
	sb.Where(sb.Equal("books.author_id", authorID))

	query, args := sb.Build()
	row := r.db.QueryRowContext(ctx, query, args...)

	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting author ratings: %w", err)
	}
	return count, nil
}

func (r *Repository) ListRatingsByReader(
	ctx context.Context, readerID string,
) ([]domain.RatingRecord, error) {
	sb := sqlbuilder.Select(ratingSelectColumns("")...)
	sb.From("ratings")
	sb.Where(sb.Equal("rater_id", readerID))

	return r.queryRatings(ctx, sb)
}

func (r *Repository) ListRatedBookIDs(ctx context.Context, readerID string) ([]string, error) {
	sb := sqlbuilder.Select("book_id")
	sb.From("ratings")
	sb.Where(sb.Equal("rater_id", readerID))

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing rated book IDs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning book ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return ids, nil
}

const upsertRatingSQL = `
INSERT INTO ratings (
	book_id, rater_id,
	score_enjoyment, score_writing, score_themes, score_characters, score_worldbuilding,
	review, overall_straight, vector, date_rated
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
ON DUPLICATE KEY UPDATE
	score_enjoyment = VALUES(score_enjoyment),
	score_writing = VALUES(score_writing),
	score_themes = VALUES(score_themes),
	score_characters = VALUES(score_characters),
	score_worldbuilding = VALUES(score_worldbuilding),
	review = VALUES(review),
	overall_straight = VALUES(overall_straight),
	vector = VALUES(vector),
	date_rated = NOW()
`

func (r *Repository) UpsertRating(
	ctx context.Context, record domain.RatingRecord, overallStraight float64, vector []float32,
) error {
	args := []interface{}{record.BookID, record.RaterID}
	for _, sc := range scoreColumns {
		var score sql.NullInt64
		if v, ok := record.Scores[sc.criterion]; ok {
			score = sql.NullInt64{Int64: int64(v), Valid: true}
		}
		args = append(args, score)
	}

	var review sql.NullString
	if record.Review != "" {
		review = sql.NullString{String: record.Review, Valid: true}
	}

	var vectorBytes []byte
	if vector != nil {
		vectorBytes = float32SliceToBytes(vector)
	}

	args = append(args, review, overallStraight, vectorBytes)

	if _, err := r.db.ExecContext(ctx, upsertRatingSQL, args...); err != nil {
		return fmt.Errorf("upserting rating: %w", err)
	}
	return nil
}

func (r *Repository) DeleteRating(ctx context.Context, bookID, raterID string) error {
	db := sqlbuilder.DeleteFrom("ratings")
	db.Where(db.Equal("book_id", bookID), db.Equal("rater_id", raterID))

	query, args := db.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("deleting rating: %w", err)
	}
	return nil
}

// ============================================
// Criteria Orders
// ============================================

const upsertCriteriaOrderSQL = `
INSERT INTO reader_criteria_orders (reader_id, ordering, updated_at)
VALUES (?, ?, NOW())
ON DUPLICATE KEY UPDATE ordering = VALUES(ordering), updated_at = NOW()
`

func (r *Repository) GetCriteriaOrder(
	ctx context.Context, readerID string,
) (domain.CriteriaOrder, error) {
	sb := sqlbuilder.Select("ordering")
	sb.From("reader_criteria_orders")
	sb.Where(sb.Equal("reader_id", readerID))

	query, args := sb.Build()
	row := r.db.QueryRowContext(ctx, query, args...)

	var ordering string
	if err := row.Scan(&ordering); err != nil {
		// A reader with no stored order is the absent case, not an error.
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetching criteria order: %w", err)
	}

	parts := strings.Split(ordering, ",")
	order := make(domain.CriteriaOrder, 0, len(parts))
	for _, part := range parts {
		order = append(order, domain.RatingCriterion(part))
	}
	if err := order.Validate(); err != nil {
		return nil, fmt.Errorf("stored criteria order is corrupt for reader %s: %w", readerID, err)
	}
	return order, nil
}

func (r *Repository) SetCriteriaOrder(
	ctx context.Context, readerID string, order domain.CriteriaOrder,
) error {
	parts := make([]string, 0, len(order))
	for _, criterion := range order {
		parts = append(parts, string(criterion))
	}

	if _, err := r.db.ExecContext(ctx, upsertCriteriaOrderSQL, readerID, strings.Join(parts, ",")); err != nil {
		return fmt.Errorf("upserting criteria order: %w", err)
	}
	return nil
}

// ============================================
// Reader Book Vectors
// ============================================

// GetReaderBookVectorsByReaction retrieves the stored vectors of a reader's
// rated books, filtered by the reaction class of each rating's denormalised
// straight overall.
func (r *Repository) GetReaderBookVectorsByReaction(
	ctx context.Context, readerID string, reaction domain.Reaction,
) ([]domain.ReaderBookVector, error) {
	sb := sqlbuilder.Select("book_id", "vector", "date_rated")
	sb.From("ratings")

	conds := []string{
		sb.Equal("rater_id", readerID),
		"vector IS NOT NULL",
	}
	switch reaction {
	case domain.ReactionLoved:
		conds = append(conds, sb.GreaterEqualThan("overall_straight", 4.0))
	case domain.ReactionDisliked:
		conds = append(conds, sb.LessEqualThan("overall_straight", 2.0))
	default:
		return nil, fmt.Errorf("unknown reaction: %s", reaction)
	}
	sb.Where(conds...)

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching reader book vectors: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []domain.ReaderBookVector
	for rows.Next() {
		var bookID string
		var vectorBytes []byte
		var ratedAt time.Time
		if err := rows.Scan(&bookID, &vectorBytes, &ratedAt); err != nil {
			return nil, fmt.Errorf("scanning reader book vector: %w", err)
		}

		vector, err := bytesToFloat32Slice(vectorBytes)
		if err != nil {
			return nil, fmt.Errorf("decoding vector for book %s: %w", bookID, err)
		}
		result = append(result, domain.ReaderBookVector{
			BookID:   bookID,
			Vector:   vector,
			Reaction: reaction,
			RatedAt:  ratedAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return result, nil
}

// ============================================
// Taste Clusters
// ============================================

const upsertTasteClusterSQL = `
INSERT INTO reader_taste_clusters (reader_id, cluster_id, centroid_vector, book_count, updated_at)
VALUES (?, ?, ?, ?, NOW())
ON DUPLICATE KEY UPDATE
	centroid_vector = VALUES(centroid_vector),
	book_count = VALUES(book_count),
	updated_at = NOW()
`

func (r *Repository) UpsertTasteCluster(
	ctx context.Context, readerID string, clusterID int, centroid []float32, bookCount int,
) error {
	if _, err := r.db.ExecContext(ctx, upsertTasteClusterSQL,
		readerID, clusterID, float32SliceToBytes(centroid), bookCount,
	); err != nil {
		return fmt.Errorf("upserting taste cluster: %w", err)
	}
	return nil
}

func (r *Repository) GetTasteClusters(
	ctx context.Context, readerID string,
) ([]datasources.TasteCluster, error) {
	sb := sqlbuilder.Select("cluster_id", "centroid_vector", "book_count")
	sb.From("reader_taste_clusters")
	sb.Where(sb.Equal("reader_id", readerID))
	sb.OrderBy("cluster_id")

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching taste clusters: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []datasources.TasteCluster
	for rows.Next() {
		var cluster datasources.TasteCluster
		var vectorBytes []byte
		if err := rows.Scan(&cluster.ClusterID, &vectorBytes, &cluster.BookCount); err != nil {
			return nil, fmt.Errorf("scanning taste cluster: %w", err)
		}

		cluster.CentroidVector, err = bytesToFloat32Slice(vectorBytes)
		if err != nil {
			return nil, fmt.Errorf("decoding centroid vector for cluster %d: %w", cluster.ClusterID, err)
		}
		result = append(result, cluster)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return result, nil
}

func (r *Repository) DeleteTasteClusters(ctx context.Context, readerID string) error {
	db := sqlbuilder.DeleteFrom("reader_taste_clusters")
	db.Where(db.Equal("reader_id", readerID))

	query, args := db.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("deleting taste clusters: %w", err)
	}
	return nil
}

// ============================================
// Precomputed Recommendations
// ============================================

const upsertPrecomputedRecommendationSQL = `
INSERT INTO precomputed_recommendations (reader_id, book_id, score, source, generated_at)
VALUES (?, ?, ?, ?, NOW())
ON DUPLICATE KEY UPDATE
	score = VALUES(score),
	source = VALUES(source),
	generated_at = NOW()
`

func (r *Repository) UpsertPrecomputedRecommendation(
	ctx context.Context, readerID, bookID string, score float64, source string,
) error {
	if _, err := r.db.ExecContext(ctx, upsertPrecomputedRecommendationSQL,
		readerID, bookID, score, source,
	); err != nil {
		return fmt.Errorf("upserting precomputed recommendation: %w", err)
	}
	return nil
}

func (r *Repository) DeleteReaderPrecomputedRecommendations(ctx context.Context, readerID string) error {
	db := sqlbuilder.DeleteFrom("precomputed_recommendations")
	db.Where(db.Equal("reader_id", readerID))

	query, args := db.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("deleting precomputed recommendations: %w", err)
	}
	return nil
}

func (r *Repository) GetPrecomputedRecommendations(
	ctx context.Context, readerID string, limit int,
) ([]datasources.PrecomputedRecommendation, error) {
	sb := sqlbuilder.Select("book_id", "score", "source")
	sb.From("precomputed_recommendations")
	sb.Where(sb.Equal("reader_id", readerID))
	sb.OrderBy("score DESC")
	sb.Limit(limit)

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching precomputed recommendations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []datasources.PrecomputedRecommendation
	for rows.Next() {
		var rec datasources.PrecomputedRecommendation
		if err := rows.Scan(&rec.BookID, &rec.Score, &rec.Source); err != nil {
			return nil, fmt.Errorf("scanning precomputed recommendation: %w", err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return result, nil
}

// GetPrecomputedRecommendationAge returns when recommendations were last
// generated for a reader. Returns zero time if none exist.
func (r *Repository) GetPrecomputedRecommendationAge(
	ctx context.Context, readerID string,
) (time.Time, error) {
	sb := sqlbuilder.Select("MAX(generated_at)")
	sb.From("precomputed_recommendations")
	sb.Where(sb.Equal("reader_id", readerID))

	query, args := sb.Build()
	row := r.db.QueryRowContext(ctx, query, args...)

	var generatedAt sql.NullTime
	if err := row.Scan(&generatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("fetching recommendation age: %w", err)
	}
	return generatedAt.Time, nil
}

// ============================================
// Reader Refresh State
// ============================================

const markReaderNeedsRefreshSQL = `
INSERT INTO reader_refresh_state (reader_id, needs_refresh, last_rating_at)
VALUES (?, TRUE, NOW())
ON DUPLICATE KEY UPDATE needs_refresh = TRUE, last_rating_at = NOW()
`

const markReaderRefreshedSQL = `
INSERT INTO reader_refresh_state (reader_id, needs_refresh, last_refreshed_at)
VALUES (?, FALSE, NOW())
ON DUPLICATE KEY UPDATE needs_refresh = FALSE, last_refreshed_at = NOW()
`

func (r *Repository) MarkReaderNeedsRefresh(ctx context.Context, readerID string) error {
	if _, err := r.db.ExecContext(ctx, markReaderNeedsRefreshSQL, readerID); err != nil {
		return fmt.Errorf("marking reader needs refresh: %w", err)
	}
	return nil
}

func (r *Repository) MarkReaderRefreshed(ctx context.Context, readerID string) error {
	if _, err := r.db.ExecContext(ctx, markReaderRefreshedSQL, readerID); err != nil {
		return fmt.Errorf("marking reader refreshed: %w", err)
	}
	return nil
}

func (r *Repository) ListReadersNeedingRefresh(ctx context.Context) ([]string, error) {
	sb := sqlbuilder.Select("reader_id")
	sb.From("reader_refresh_state")
	sb.Where("needs_refresh = TRUE")

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing readers needing refresh: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var readerIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning reader ID: %w", err)
		}
		readerIDs = append(readerIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return readerIDs, nil
}

// ============================================
// API Tokens
// ============================================

const apiTokenColumns = "id, reader_id, token_hash, token_prefix, name, created_at, last_used_at, expires_at, revoked_at"

func (r *Repository) CreateAPIToken(
	ctx context.Context,
	id, readerID, tokenHash, tokenPrefix string,
	name *string,
	expiresAt *time.Time,
) error {
	ib := sqlbuilder.InsertInto("api_tokens")
	ib.Cols("id", "reader_id", "token_hash", "token_prefix", "name", "expires_at", "created_at")
	ib.Values(id, readerID, tokenHash, tokenPrefix, name, expiresAt, sqlbuilder.Raw("NOW()"))

	query, args := ib.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("creating API token: %w", err)
	}
	return nil
}

func scanAPIToken(row *sql.Row) (domain.APIToken, error) {
	var token domain.APIToken
	var name sql.NullString
	var lastUsedAt, expiresAt, revokedAt sql.NullTime

	err := row.Scan(
		&token.ID, &token.ReaderID, &token.TokenHash, &token.Prefix,
		&name, &token.CreatedAt, &lastUsedAt, &expiresAt, &revokedAt,
	)
	if err != nil {
		return domain.APIToken{}, err
	}

	if name.Valid {
		token.Name = &name.String
	}
	if lastUsedAt.Valid {
		token.LastUsedAt = &lastUsedAt.Time
	}
	if expiresAt.Valid {
		token.ExpiresAt = &expiresAt.Time
	}
	if revokedAt.Valid {
		token.RevokedAt = &revokedAt.Time
	}
	return token, nil
}

func (r *Repository) GetAPITokenByHash(ctx context.Context, tokenHash string) (domain.APIToken, error) {
	sb := sqlbuilder.Select(apiTokenColumns)
	sb.From("api_tokens")
	sb.Where(sb.Equal("token_hash", tokenHash))

	query, args := sb.Build()
	token, err := scanAPIToken(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.APIToken{}, datasources.ErrAPITokenNotFound
		}
		return domain.APIToken{}, fmt.Errorf("fetching API token by hash: %w", err)
	}
	return token, nil
}

func (r *Repository) UpdateAPITokenLastUsed(ctx context.Context, tokenID string) error {
	ub := sqlbuilder.Update("api_tokens")
	ub.Set("last_used_at = NOW()")
	ub.Where(ub.Equal("id", tokenID))

	query, args := ub.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("updating API token last used: %w", err)
	}
	return nil
}

func (r *Repository) ListReaderAPITokens(ctx context.Context, readerID string) ([]domain.APIToken, error) {
	sb := sqlbuilder.Select(apiTokenColumns)
	sb.From("api_tokens")
	sb.Where(sb.Equal("reader_id", readerID), "revoked_at IS NULL")
	sb.OrderBy("created_at DESC")

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing reader API tokens: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tokens []domain.APIToken
	for rows.Next() {
		var token domain.APIToken
		var name sql.NullString
		var lastUsedAt, expiresAt, revokedAt sql.NullTime

		if err := rows.Scan(
			&token.ID, &token.ReaderID, &token.TokenHash, &token.Prefix,
			&name, &token.CreatedAt, &lastUsedAt, &expiresAt, &revokedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning API token: %w", err)
		}

		if name.Valid {
			token.Name = &name.String
		}
		if lastUsedAt.Valid {
			token.LastUsedAt = &lastUsedAt.Time
		}
		if expiresAt.Valid {
			token.ExpiresAt = &expiresAt.Time
		}
		if revokedAt.Valid {
			token.RevokedAt = &revokedAt.Time
		}
		tokens = append(tokens, token)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return tokens, nil
}

func (r *Repository) CountReaderActiveAPITokens(ctx context.Context, readerID string) (int64, error) {
	sb := sqlbuilder.Select("COUNT(*)")
	sb.From("api_tokens")
	sb.Where(
		sb.Equal("reader_id", readerID),
		"revoked_at IS NULL",
		"(expires_at IS NULL OR expires_at > NOW())",
	)

	query, args := sb.Build()
	row := r.db.QueryRowContext(ctx, query, args...)

	var count int64
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting active API tokens: %w", err)
	}
	return count, nil
}

func (r *Repository) RevokeAPIToken(ctx context.Context, tokenID, readerID string) error {
	ub := sqlbuilder.Update("api_tokens")
	ub.Set("revoked_at = NOW()")
	ub.Where(ub.Equal("id", tokenID), ub.Equal("reader_id", readerID), "revoked_at IS NULL")

	query, args := ub.Build()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("revoking API token: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking revocation result: %w", err)
	}
	if affected == 0 {
		return datasources.ErrAPITokenNotFound
	}
	return nil
}

// Helper functions for binary vector serialization

func float32SliceToBytes(floats []float32) []byte {
	bytes := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(bytes[i*4:], math.Float32bits(f))
	}
	return bytes
}

func bytesToFloat32Slice(bytes []byte) ([]float32, error) {
	if len(bytes)%4 != 0 {
		return nil, fmt.Errorf("invalid byte length for float32 slice: %d", len(bytes))
	}
	floats := make([]float32, len(bytes)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(bytes[i*4:]))
	}
	return floats, nil
}

// paginationToLimitOffset converts page/pageSize to limit/offset with bounds checking.
// Clamps values to int32 range to prevent overflow.
func paginationToLimitOffset(page, pageSize int) (limit, offset int32) {
	if pageSize > math.MaxInt32 {
		pageSize = math.MaxInt32
	}
	limit = int32(pageSize) //nolint:gosec // bounds checked above

	off := (page - 1) * pageSize
	if off > math.MaxInt32 {
		off = math.MaxInt32
	}
	offset = int32(off) //nolint:gosec // bounds checked above

	return limit, offset
}
