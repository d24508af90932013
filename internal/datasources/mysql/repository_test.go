package mysql

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/averyhn/shelfrate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const insertBookSQL = `
INSERT INTO books (id, title, author_id, author_name, blurb_start, date_published)
VALUES (?, ?, ?, ?, ?, ?)
`

func setupTestDB(t *testing.T) *sql.DB {
	if testing.Short() {
		t.Skip("skipping MySQL integration tests in short mode")
	}

	db, err := Connect(context.Background(), os.Getenv("MYSQL_URI"))
	if err != nil {
		t.Fatal(err)
	}

	_, err = db.ExecContext(context.Background(), insertBookSQL,
		"book-mistborn", "Mistborn: The Final Empire", "author-sanderson", "Brandon Sanderson",
		"For a thousand years the ash fell", time.Date(2006, 7, 17, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	_, err = db.ExecContext(context.Background(), insertBookSQL,
		"book-piranesi", "Piranesi", "author-clarke", "Susanna Clarke",
		"When the Moon rose in the Third Northern Hall", time.Date(2020, 9, 15, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	return db
}

func teardownTestDB(t *testing.T, db *sql.DB) {
	if testing.Short() {
		t.Skip("skipping MySQL integration tests in short mode")
	}

	for _, table := range []string{
		"ratings", "reader_criteria_orders", "reader_taste_clusters",
		"precomputed_recommendations", "reader_refresh_state", "api_tokens", "books",
	} {
		_, err := db.ExecContext(context.Background(), "DELETE FROM "+table)
		require.NoError(t, err)
	}

	err := db.Close()
	require.NoError(t, err)
}

func TestRepository_ListLatestBookIDs(t *testing.T) {
	cases := []struct {
		name     string
		filters  domain.BookFilters
		expected []string
	}{
		{
			name:     "all_latest_first",
			filters:  domain.BookFilters{},
			expected: []string{"book-piranesi", "book-mistborn"},
		},
		{
			name: "only_author",
			filters: domain.BookFilters{
				OnlyAuthors: []string{"author-sanderson"},
			},
			expected: []string{"book-mistborn"},
		},
		{
			name: "except_author",
			filters: domain.BookFilters{
				ExceptAuthors: []string{"author-sanderson"},
			},
			expected: []string{"book-piranesi"},
		},
	}

	db := setupTestDB(t)
	defer teardownTestDB(t, db)

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sut := New(db)

			results, err := sut.ListLatestBookIDs(context.Background(), c.filters, domain.BookListOptions{
				PageSize: 100,
				Page:     1,
			})
			require.NoError(t, err)
			assert.Equal(t, c.expected, results)
		})
	}
}

func TestRepository_FetchBooksByID(t *testing.T) {
	db := setupTestDB(t)
	defer teardownTestDB(t, db)

	sut := New(db)

	// Results follow the requested order, skipping unknown IDs.
	results, err := sut.FetchBooksByID(context.Background(),
		[]string{"book-piranesi", "does-not-exist", "book-mistborn"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "book-piranesi", results[0].ID)
	assert.Equal(t, "Susanna Clarke", results[0].AuthorName)
	assert.Equal(t, "book-mistborn", results[1].ID)
}

func TestRepository_Ratings(t *testing.T) {
	db := setupTestDB(t)
	defer teardownTestDB(t, db)

	sut := New(db)
	ctx := context.Background()

	record := domain.RatingRecord{
		BookID:  "book-mistborn",
		RaterID: "test-reader-123",
		Scores: map[domain.RatingCriterion]int{
			domain.CriterionEnjoyment: 5,
			domain.CriterionWriting:   4,
		},
		Review: "The heist structure carries it.",
	}
	err := sut.UpsertRating(ctx, record, 4.5, []float32{0.1, 0.2, 0.3})
	require.NoError(t, err)

	t.Run("list_by_reader_preserves_absent_scores", func(t *testing.T) {
		records, err := sut.ListRatingsByReader(ctx, "test-reader-123")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, record.Scores, records[0].Scores)
		assert.NotContains(t, records[0].Scores, domain.CriterionThemes)
		assert.Equal(t, record.Review, records[0].Review)
	})

	t.Run("count_by_author", func(t *testing.T) {
		count, err := sut.CountRatingsByAuthor(ctx, "author-sanderson")
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		count, err = sut.CountRatingsByAuthor(ctx, "author-clarke")
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("upsert_replaces_earlier_rating", func(t *testing.T) {
		updated := record
		updated.Scores = map[domain.RatingCriterion]int{domain.CriterionEnjoyment: 2}
		err := sut.UpsertRating(ctx, updated, 2.0, nil)
		require.NoError(t, err)

		records, err := sut.ListRatingsByBook(ctx, "book-mistborn", 1, 10)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, updated.Scores, records[0].Scores)
	})

	t.Run("loved_vectors_by_reaction", func(t *testing.T) {
		err := sut.UpsertRating(ctx, domain.RatingRecord{
			BookID:  "book-piranesi",
			RaterID: "test-reader-123",
			Scores:  map[domain.RatingCriterion]int{domain.CriterionEnjoyment: 5},
		}, 5.0, []float32{0.4, 0.5, 0.6})
		require.NoError(t, err)

		loved, err := sut.GetReaderBookVectorsByReaction(ctx, "test-reader-123", domain.ReactionLoved)
		require.NoError(t, err)
		require.Len(t, loved, 1)
		assert.Equal(t, "book-piranesi", loved[0].BookID)
		assert.Equal(t, []float32{0.4, 0.5, 0.6}, loved[0].Vector)
	})
}

func TestRepository_CriteriaOrder(t *testing.T) {
	db := setupTestDB(t)
	defer teardownTestDB(t, db)

	sut := New(db)
	ctx := context.Background()

	t.Run("absent_is_nil_not_error", func(t *testing.T) {
		order, err := sut.GetCriteriaOrder(ctx, "reader-without-order")
		require.NoError(t, err)
		assert.Nil(t, order)
	})

	t.Run("round_trip", func(t *testing.T) {
		stored := domain.CriteriaOrder{
			domain.CriterionWorldbuilding,
			domain.CriterionThemes,
			domain.CriterionEnjoyment,
			domain.CriterionWriting,
			domain.CriterionCharacters,
		}
		err := sut.SetCriteriaOrder(ctx, "test-reader-123", stored)
		require.NoError(t, err)

		got, err := sut.GetCriteriaOrder(ctx, "test-reader-123")
		require.NoError(t, err)
		assert.Equal(t, stored, got)
	})
}

func TestRepository_PrecomputedRecommendations(t *testing.T) {
	db := setupTestDB(t)
	defer teardownTestDB(t, db)

	sut := New(db)
	ctx := context.Background()

	t.Run("age_zero_when_none", func(t *testing.T) {
		age, err := sut.GetPrecomputedRecommendationAge(ctx, "test-reader-123")
		require.NoError(t, err)
		assert.True(t, age.IsZero())
	})

	t.Run("store_and_list_by_score", func(t *testing.T) {
		require.NoError(t, sut.UpsertPrecomputedRecommendation(ctx,
			"test-reader-123", "book-mistborn", 0.7, "recency"))
		require.NoError(t, sut.UpsertPrecomputedRecommendation(ctx,
			"test-reader-123", "book-piranesi", 0.9, "cluster_0"))

		recs, err := sut.GetPrecomputedRecommendations(ctx, "test-reader-123", 10)
		require.NoError(t, err)
		require.Len(t, recs, 2)
		assert.Equal(t, "book-piranesi", recs[0].BookID)
		assert.Equal(t, "book-mistborn", recs[1].BookID)

		age, err := sut.GetPrecomputedRecommendationAge(ctx, "test-reader-123")
		require.NoError(t, err)
		assert.False(t, age.IsZero())
	})
}
