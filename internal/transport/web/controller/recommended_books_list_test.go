package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/averyhn/shelfrate/internal/command"
	cmdmocks "github.com/averyhn/shelfrate/internal/command/mocks"
	"github.com/averyhn/shelfrate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRecommendedBooksList_ServeHTTP(t *testing.T) {
	t.Run("successful_list", func(t *testing.T) {
		books := []domain.Book{
			{ID: "book1", Title: "Book 1"},
			{ID: "book2", Title: "Book 2"},
		}
		cmd := cmdmocks.NewMockCommand[command.RecommendBooksRequest, []domain.Book](t)
		cmd.On("Execute", mock.Anything, command.RecommendBooksRequest{
			ReaderID: "reader123",
			Limit:    10,
		}).Return(books, nil)

		controller := RecommendedBooksList{Command: cmd}

		req := httptest.NewRequest(http.MethodGet, "/v1/books/recommended", nil)
		req = testContextWithReaderID("reader123")(req)
		rec := httptest.NewRecorder()

		controller.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var response BooksListResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, books, response.Data)
	})

	t.Run("no_recommendations", func(t *testing.T) {
		cmd := cmdmocks.NewMockCommand[command.RecommendBooksRequest, []domain.Book](t)
		cmd.On("Execute", mock.Anything, mock.Anything).
			Return(nil, nil)

		controller := RecommendedBooksList{Command: cmd}

		req := httptest.NewRequest(http.MethodGet, "/v1/books/recommended", nil)
		req = testContextWithReaderID("reader123")(req)
		rec := httptest.NewRecorder()

		controller.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var response BooksListResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, []domain.Book{}, response.Data)
	})

	t.Run("command_error", func(t *testing.T) {
		cmd := cmdmocks.NewMockCommand[command.RecommendBooksRequest, []domain.Book](t)
		cmd.On("Execute", mock.Anything, mock.Anything).
			Return(nil, assert.AnError)

		controller := RecommendedBooksList{Command: cmd}

		req := httptest.NewRequest(http.MethodGet, "/v1/books/recommended", nil)
		req = testContextWithReaderID("reader123")(req)
		rec := httptest.NewRecorder()

		controller.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
