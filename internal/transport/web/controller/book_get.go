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

type BookGet struct {
	Fetcher     datasources.BookFetcher
	CacheMaxAge time.Duration
}

func (c BookGet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["book_id"]

	books, err := c.Fetcher.FetchBooksByID(r.Context(), []string{id})
	if err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to fetch book", "error", err)

		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if len(books) == 0 {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if domain.ReaderIDFromContext(r.Context()) == "" {
		w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int(c.CacheMaxAge.Seconds())))
	}

	if err := json.NewEncoder(w).Encode(books[0]); err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to write book to response", "error", err)
	}
}
