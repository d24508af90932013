package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/averyhn/shelfrate/internal/datasources/mocks"
	"github.com/averyhn/shelfrate/internal/domain"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBookGet_ServeHTTP(t *testing.T) {
	testTime := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name          string
		bookID        string
		setupContext  func(r *http.Request) *http.Request
		books         []domain.Book
		fetchErr      error
		wantStatus    int
		wantCacheCtrl string
		wantBook      *domain.Book
	}{
		{
			name:         "successful_fetch",
			bookID:       "book-mistborn",
			setupContext: testContext(),
			books: []domain.Book{
				{
					ID:          "book-mistborn",
					Title:       "Mistborn",
					AuthorID:    "author-sanderson",
					AuthorName:  "Brandon Sanderson",
					PublishedAt: testTime,
				},
			},
			wantStatus:    http.StatusOK,
			wantCacheCtrl: "max-age=3600",
			wantBook: &domain.Book{
				ID:          "book-mistborn",
				Title:       "Mistborn",
				AuthorID:    "author-sanderson",
				AuthorName:  "Brandon Sanderson",
				PublishedAt: testTime,
			},
		},
		{
			name:         "no_cache_for_authenticated_reader",
			bookID:       "book-mistborn",
			setupContext: testContextWithReaderID("reader456"),
			books: []domain.Book{
				{ID: "book-mistborn", Title: "Mistborn", PublishedAt: testTime},
			},
			wantStatus:    http.StatusOK,
			wantCacheCtrl: "",
			wantBook: &domain.Book{
				ID: "book-mistborn", Title: "Mistborn", PublishedAt: testTime,
			},
		},
		{
			name:         "not_found",
			bookID:       "book-unknown",
			setupContext: testContext(),
			books:        nil,
			wantStatus:   http.StatusNotFound,
		},
		{
			name:         "fetch_error",
			bookID:       "book-mistborn",
			setupContext: testContext(),
			fetchErr:     errors.New("database error"),
			wantStatus:   http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := mocks.NewMockBookFetcher(t)

			fetcher.On("FetchBooksByID", mock.Anything, []string{tc.bookID}).
				Return(tc.books, tc.fetchErr)

			controller := BookGet{
				Fetcher:     fetcher,
				CacheMaxAge: time.Hour,
			}

			req := httptest.NewRequest(http.MethodGet, "/v1/books/"+tc.bookID, nil)
			req = tc.setupContext(req)
			req = mux.SetURLVars(req, map[string]string{"book_id": tc.bookID})
			rec := httptest.NewRecorder()

			controller.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)

			if tc.wantStatus == http.StatusOK {
				if tc.wantCacheCtrl != "" {
					assert.Equal(t, tc.wantCacheCtrl, rec.Header().Get("Cache-Control"))
				} else {
					assert.Empty(t, rec.Header().Get("Cache-Control"))
				}

				var book domain.Book
				err := json.NewDecoder(rec.Body).Decode(&book)
				require.NoError(t, err)
				assert.Equal(t, *tc.wantBook, book)
			}
		})
	}
}
