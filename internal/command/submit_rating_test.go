package command

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/averyhn/shelfrate/internal/datasources/mocks"
	"github.com/averyhn/shelfrate/internal/domain"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fullScores(v int) map[domain.RatingCriterion]int {
	scores := make(map[domain.RatingCriterion]int, len(domain.AllCriteria))
	for _, c := range domain.AllCriteria {
		scores[c] = v
	}
	return scores
}

func TestSubmitRating_Execute(t *testing.T) {
	testVector := []float32{0.1, 0.2, 0.3}

	cases := []struct {
		name        string
		scores      map[domain.RatingCriterion]int
		vector      []float32
		vectorErr   error
		wantOverall float64
	}{
		{
			name:        "stores_with_vector",
			scores:      fullScores(4),
			vector:      testVector,
			wantOverall: 4.0,
		},
		{
			name: "partial_scores_straight_overall",
			scores: map[domain.RatingCriterion]int{
				domain.CriterionEnjoyment: 5,
				domain.CriterionWriting:   3,
			},
			vector:      testVector,
			wantOverall: 4.0,
		},
		{
			name:        "vector_fetch_error_proceeds_without_vector",
			scores:      fullScores(3),
			vectorErr:   errors.New("pinecone error"),
			wantOverall: 3.0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := mocks.NewMockBookVectorFetcher(t)
			upserter := mocks.NewMockRatingUpserter(t)
			marker := mocks.NewMockReaderRefreshMarker(t)

			fetcher.On("FetchBookVector", mock.Anything, "book1").
				Return(tc.vector, tc.vectorErr)

			upserter.On("UpsertRating",
				mock.Anything,
				mock.MatchedBy(func(record domain.RatingRecord) bool {
					return record.BookID == "book1" && record.RaterID == "reader1"
				}),
				tc.wantOverall,
				tc.vector,
			).Return(nil)

			marker.On("MarkReaderNeedsRefresh", mock.Anything, "reader1").Return(nil)

			cmd := NewSubmitRating(fetcher, upserter, marker)

			ctx := domain.ContextWithLogger(context.Background(), testLogger())
			_, err := cmd.Execute(ctx, SubmitRatingRequest{
				RaterID: "reader1",
				BookID:  "book1",
				Scores:  tc.scores,
			})
			require.NoError(t, err)
		})
	}
}

func TestSubmitRating_Execute_InvalidScores(t *testing.T) {
	fetcher := mocks.NewMockBookVectorFetcher(t)
	upserter := mocks.NewMockRatingUpserter(t)
	marker := mocks.NewMockReaderRefreshMarker(t)

	cmd := NewSubmitRating(fetcher, upserter, marker)

	ctx := domain.ContextWithLogger(context.Background(), testLogger())
	_, err := cmd.Execute(ctx, SubmitRatingRequest{
		RaterID: "reader1",
		BookID:  "book1",
		Scores: map[domain.RatingCriterion]int{
			domain.CriterionEnjoyment: 6,
		},
	})

	var validationErr domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	upserter.AssertNotCalled(t, "UpsertRating")
}

func TestSubmitRating_Execute_UpsertError(t *testing.T) {
	fetcher := mocks.NewMockBookVectorFetcher(t)
	upserter := mocks.NewMockRatingUpserter(t)
	marker := mocks.NewMockReaderRefreshMarker(t)

	fetcher.On("FetchBookVector", mock.Anything, "book1").
		Return([]float32{0.1}, nil)
	upserter.On("UpsertRating", mock.Anything, mock.Anything, 4.0, []float32{0.1}).
		Return(errors.New("db error"))

	cmd := NewSubmitRating(fetcher, upserter, marker)

	ctx := domain.ContextWithLogger(context.Background(), testLogger())
	_, err := cmd.Execute(ctx, SubmitRatingRequest{
		RaterID: "reader1",
		BookID:  "book1",
		Scores:  fullScores(4),
	})

	require.Error(t, err)
	require.Contains(t, err.Error(), "storing rating")
	marker.AssertNotCalled(t, "MarkReaderNeedsRefresh")
}

func TestSubmitRating_Execute_RefreshMarkErrorIgnored(t *testing.T) {
	fetcher := mocks.NewMockBookVectorFetcher(t)
	upserter := mocks.NewMockRatingUpserter(t)
	marker := mocks.NewMockReaderRefreshMarker(t)

	fetcher.On("FetchBookVector", mock.Anything, "book1").
		Return([]float32{0.1}, nil)
	upserter.On("UpsertRating", mock.Anything, mock.Anything, 4.0, []float32{0.1}).
		Return(nil)
	marker.On("MarkReaderNeedsRefresh", mock.Anything, "reader1").
		Return(errors.New("db error"))

	cmd := NewSubmitRating(fetcher, upserter, marker)

	ctx := domain.ContextWithLogger(context.Background(), testLogger())
	_, err := cmd.Execute(ctx, SubmitRatingRequest{
		RaterID: "reader1",
		BookID:  "book1",
		Scores:  fullScores(4),
	})

	// A stale refresh flag is recoverable; the rating is already stored.
	require.NoError(t, err)
}
