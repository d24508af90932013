package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/averyhn/shelfrate/internal/datasources/mocks"
	"github.com/averyhn/shelfrate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReviewSearch_ServeHTTP(t *testing.T) {
	testVector := []float32{0.1, 0.2, 0.3}

	t.Run("successful_search", func(t *testing.T) {
		embedder := mocks.NewMockEmbedder(t)
		embedder.On("EmbedText", mock.Anything, "atmospheric fantasy with slow worldbuilding").
			Return(testVector, nil)

		similarity := mocks.NewMockSimilarBooksByVectorLister(t)
		similarity.On("ListSimilarBooksByVector", mock.Anything, []string(nil), testVector, 10).
			Return([]domain.SimilarBook{{BookID: "book-piranesi", Score: 0.95}}, nil)

		books := []domain.Book{{ID: "book-piranesi", Title: "Piranesi"}}
		fetcher := mocks.NewMockBookFetcher(t)
		fetcher.On("FetchBooksByID", mock.Anything, []string{"book-piranesi"}).
			Return(books, nil)

		controller := ReviewSearch{
			Embedder:   embedder,
			Similarity: similarity,
			Fetcher:    fetcher,
		}

		req := httptest.NewRequest(http.MethodPost, "/v1/search/reviews",
			strings.NewReader(`{"text":"atmospheric fantasy with slow worldbuilding"}`))
		req = testContext()(req)
		rec := httptest.NewRecorder()

		controller.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var response BooksListResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, books, response.Data)
	})

	t.Run("limit_clamped_to_maximum", func(t *testing.T) {
		embedder := mocks.NewMockEmbedder(t)
		embedder.On("EmbedText", mock.Anything, "space opera").
			Return(testVector, nil)

		similarity := mocks.NewMockSimilarBooksByVectorLister(t)
		similarity.On("ListSimilarBooksByVector", mock.Anything, []string(nil), testVector, 100).
			Return(nil, nil)

		fetcher := mocks.NewMockBookFetcher(t)
		fetcher.On("FetchBooksByID", mock.Anything, []string{}).
			Return(nil, nil)

		controller := ReviewSearch{
			Embedder:   embedder,
			Similarity: similarity,
			Fetcher:    fetcher,
		}

		req := httptest.NewRequest(http.MethodPost, "/v1/search/reviews",
			strings.NewReader(`{"text":"space opera","limit":5000}`))
		req = testContext()(req)
		rec := httptest.NewRecorder()

		controller.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("empty_text", func(t *testing.T) {
		controller := ReviewSearch{
			Embedder:   mocks.NewMockEmbedder(t),
			Similarity: mocks.NewMockSimilarBooksByVectorLister(t),
			Fetcher:    mocks.NewMockBookFetcher(t),
		}

		req := httptest.NewRequest(http.MethodPost, "/v1/search/reviews",
			strings.NewReader(`{"text":""}`))
		req = testContext()(req)
		rec := httptest.NewRecorder()

		controller.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed_body", func(t *testing.T) {
		controller := ReviewSearch{
			Embedder:   mocks.NewMockEmbedder(t),
			Similarity: mocks.NewMockSimilarBooksByVectorLister(t),
			Fetcher:    mocks.NewMockBookFetcher(t),
		}

		req := httptest.NewRequest(http.MethodPost, "/v1/search/reviews",
			strings.NewReader(`{"text":`))
		req = testContext()(req)
		rec := httptest.NewRecorder()

		controller.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("embedder_unavailable", func(t *testing.T) {
		embedder := mocks.NewMockEmbedder(t)
		embedder.On("EmbedText", mock.Anything, "space opera").
			Return(nil, nil)

		controller := ReviewSearch{
			Embedder:   embedder,
			Similarity: mocks.NewMockSimilarBooksByVectorLister(t),
			Fetcher:    mocks.NewMockBookFetcher(t),
		}

		req := httptest.NewRequest(http.MethodPost, "/v1/search/reviews",
			strings.NewReader(`{"text":"space opera"}`))
		req = testContext()(req)
		rec := httptest.NewRecorder()

		controller.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("embed_error", func(t *testing.T) {
		embedder := mocks.NewMockEmbedder(t)
		embedder.On("EmbedText", mock.Anything, "space opera").
			Return(nil, assert.AnError)

		controller := ReviewSearch{
			Embedder:   embedder,
			Similarity: mocks.NewMockSimilarBooksByVectorLister(t),
			Fetcher:    mocks.NewMockBookFetcher(t),
		}

		req := httptest.NewRequest(http.MethodPost, "/v1/search/reviews",
			strings.NewReader(`{"text":"space opera"}`))
		req = testContext()(req)
		rec := httptest.NewRecorder()

		controller.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
