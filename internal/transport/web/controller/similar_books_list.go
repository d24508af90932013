package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/averyhn/shelfrate/internal/datasources"
	"github.com/averyhn/shelfrate/internal/domain"
	"github.com/gorilla/mux"
)

type SimilarBooksList struct {
	Fetcher     datasources.BookFetcher
	Similarity  datasources.SimilarBookLister
	CacheMaxAge time.Duration
}

func (c SimilarBooksList) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	vars := mux.Vars(r)
	bookID := vars["book_id"]

	similarBooks, err := c.Similarity.ListSimilarBooks(ctx, []string{bookID}, 10)
	if err != nil {
		logger.ErrorContext(ctx, "unable to fetch similar books", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	ids := make([]string, 0, len(similarBooks))
	for _, similar := range similarBooks {
		ids = append(ids, similar.BookID)
	}

	books, err := c.Fetcher.FetchBooksByID(ctx, ids)
	if err != nil {
		logger.ErrorContext(ctx, "unable to fetch books", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if c.CacheMaxAge > 0 {
		w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int(c.CacheMaxAge.Seconds())))
	}

	if err := json.NewEncoder(w).Encode(BooksListResponse{
		Data:     books,
		Metadata: BooksListMetadata{},
	}); err != nil {
		logger.ErrorContext(ctx, "unable to write books to response", "error", err)
	}
}
