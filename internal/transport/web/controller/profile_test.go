package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/averyhn/shelfrate/internal/datasources/mocks"
	"github.com/averyhn/shelfrate/internal/domain"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func profileRatings(score int, count int) []domain.RatingRecord {
	records := make([]domain.RatingRecord, 0, count)
	for i := 0; i < count; i++ {
		scores := make(map[domain.RatingCriterion]int, len(domain.AllCriteria))
		for _, criterion := range domain.AllCriteria {
			scores[criterion] = score
		}
		records = append(records, domain.RatingRecord{
			RaterID: "reader1",
			BookID:  "book1",
			Scores:  scores,
		})
	}
	return records
}

func TestBookProfileGet_ServeHTTP(t *testing.T) {
	t.Run("straight_profile", func(t *testing.T) {
		lister := mocks.NewMockBookRatingsAllLister(t)
		lister.On("ListAllRatingsByBook", mock.Anything, "book-mistborn").
			Return(profileRatings(4, 3), nil)

		orderGetter := mocks.NewMockCriteriaOrderGetter(t)

		controller := BookProfileGet{
			RatingsLister: lister,
			OrderGetter:   orderGetter,
		}

		req := httptest.NewRequest(http.MethodGet, "/v1/books/book-mistborn/profile", nil)
		req = testContext()(req)
		req = mux.SetURLVars(req, map[string]string{"book_id": "book-mistborn"})
		rec := httptest.NewRecorder()

		controller.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		orderGetter.AssertNotCalled(t, "GetCriteriaOrder", mock.Anything, mock.Anything)

		var response ProfileResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		require.NotNil(t, response.Overall)
		assert.InDelta(t, 4.0, *response.Overall, 0.0001)
		assert.Equal(t, 3, response.Count)
		assert.Equal(t, domain.OverallModeStraight, response.Mode)
	})

	t.Run("weighted_profile_uses_reader_order", func(t *testing.T) {
		lister := mocks.NewMockBookRatingsAllLister(t)
		lister.On("ListAllRatingsByBook", mock.Anything, "book-mistborn").
			Return(profileRatings(5, 2), nil)

		order := domain.CriteriaOrder{
			domain.CriterionWorldbuilding,
			domain.CriterionCharacters,
			domain.CriterionThemes,
			domain.CriterionWriting,
			domain.CriterionEnjoyment,
		}
		orderGetter := mocks.NewMockCriteriaOrderGetter(t)
		orderGetter.On("GetCriteriaOrder", mock.Anything, "reader123").
			Return(order, nil)

		controller := BookProfileGet{
			RatingsLister: lister,
			OrderGetter:   orderGetter,
		}

		req := httptest.NewRequest(
			http.MethodGet, "/v1/books/book-mistborn/profile?mode=weighted", nil)
		req = testContextWithReaderID("reader123")(req)
		req = mux.SetURLVars(req, map[string]string{"book_id": "book-mistborn"})
		rec := httptest.NewRecorder()

		controller.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var response ProfileResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		require.NotNil(t, response.Overall)
		assert.InDelta(t, 5.0, *response.Overall, 0.0001)
		assert.Equal(t, domain.OverallModeWeighted, response.Mode)
	})

	t.Run("weighted_anonymous_uses_default_order", func(t *testing.T) {
		lister := mocks.NewMockBookRatingsAllLister(t)
		lister.On("ListAllRatingsByBook", mock.Anything, "book-mistborn").
			Return(profileRatings(3, 1), nil)

		orderGetter := mocks.NewMockCriteriaOrderGetter(t)

		controller := BookProfileGet{
			RatingsLister: lister,
			OrderGetter:   orderGetter,
		}

		req := httptest.NewRequest(
			http.MethodGet, "/v1/books/book-mistborn/profile?mode=weighted", nil)
		req = testContext()(req)
		req = mux.SetURLVars(req, map[string]string{"book_id": "book-mistborn"})
		rec := httptest.NewRecorder()

		controller.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		orderGetter.AssertNotCalled(t, "GetCriteriaOrder", mock.Anything, mock.Anything)
	})

	t.Run("no_ratings_yet", func(t *testing.T) {
		lister := mocks.NewMockBookRatingsAllLister(t)
		lister.On("ListAllRatingsByBook", mock.Anything, "book-unrated").
			Return(nil, nil)

		controller := BookProfileGet{
			RatingsLister: lister,
			OrderGetter:   mocks.NewMockCriteriaOrderGetter(t),
		}

		req := httptest.NewRequest(http.MethodGet, "/v1/books/book-unrated/profile", nil)
		req = testContext()(req)
		req = mux.SetURLVars(req, map[string]string{"book_id": "book-unrated"})
		rec := httptest.NewRecorder()

		controller.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var response ProfileResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Nil(t, response.Overall)
		assert.Equal(t, 0, response.Count)
	})

	t.Run("unknown_mode", func(t *testing.T) {
		controller := BookProfileGet{
			RatingsLister: mocks.NewMockBookRatingsAllLister(t),
			OrderGetter:   mocks.NewMockCriteriaOrderGetter(t),
		}

		req := httptest.NewRequest(
			http.MethodGet, "/v1/books/book-mistborn/profile?mode=median", nil)
		req = testContext()(req)
		req = mux.SetURLVars(req, map[string]string{"book_id": "book-mistborn"})
		rec := httptest.NewRecorder()

		controller.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("list_error", func(t *testing.T) {
		lister := mocks.NewMockBookRatingsAllLister(t)
		lister.On("ListAllRatingsByBook", mock.Anything, "book-mistborn").
			Return(nil, assert.AnError)

		controller := BookProfileGet{
			RatingsLister: lister,
			OrderGetter:   mocks.NewMockCriteriaOrderGetter(t),
		}

		req := httptest.NewRequest(http.MethodGet, "/v1/books/book-mistborn/profile", nil)
		req = testContext()(req)
		req = mux.SetURLVars(req, map[string]string{"book_id": "book-mistborn"})
		rec := httptest.NewRecorder()

		controller.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestAuthorProfileGet_ServeHTTP(t *testing.T) {
	t.Run("straight_profile", func(t *testing.T) {
		lister := mocks.NewMockAuthorRatingsLister(t)
		lister.On("ListRatingsByAuthor", mock.Anything, "author-sanderson").
			Return(profileRatings(4, 12), nil)

		controller := AuthorProfileGet{
			RatingsLister: lister,
			OrderGetter:   mocks.NewMockCriteriaOrderGetter(t),
		}

		req := httptest.NewRequest(
			http.MethodGet, "/v1/authors/author-sanderson/profile", nil)
		req = testContext()(req)
		req = mux.SetURLVars(req, map[string]string{"author_id": "author-sanderson"})
		rec := httptest.NewRecorder()

		controller.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var response ProfileResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		require.NotNil(t, response.Overall)
		assert.InDelta(t, 4.0, *response.Overall, 0.0001)
		assert.Equal(t, 12, response.Count)
	})

	t.Run("list_error", func(t *testing.T) {
		lister := mocks.NewMockAuthorRatingsLister(t)
		lister.On("ListRatingsByAuthor", mock.Anything, "author-sanderson").
			Return(nil, assert.AnError)

		controller := AuthorProfileGet{
			RatingsLister: lister,
			OrderGetter:   mocks.NewMockCriteriaOrderGetter(t),
		}

		req := httptest.NewRequest(
			http.MethodGet, "/v1/authors/author-sanderson/profile", nil)
		req = testContext()(req)
		req = mux.SetURLVars(req, map[string]string{"author_id": "author-sanderson"})
		rec := httptest.NewRecorder()

		controller.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
